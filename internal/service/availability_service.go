package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/repository"
)

// DefaultHorizonDays is the rolling window slots are materialized over.
const DefaultHorizonDays = 30

// TemplateRule is one recurring weekly availability rule.
type TemplateRule struct {
	Weekday   time.Weekday
	StartTime booking.ClockTime
	EndTime   booking.ClockTime
}

// AvailabilityService owns the recurring weekly templates and their
// expansion into concrete dated slots.
type AvailabilityService struct {
	db          *gorm.DB
	coaches     repository.CoachRepository
	templates   repository.TemplateRepository
	slots       repository.SlotRepository
	horizonDays int
	logger      *zap.Logger
}

func NewAvailabilityService(
	db *gorm.DB,
	coaches repository.CoachRepository,
	templates repository.TemplateRepository,
	slots repository.SlotRepository,
	horizonDays int,
	logger *zap.Logger,
) *AvailabilityService {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &AvailabilityService{
		db:          db,
		coaches:     coaches,
		templates:   templates,
		slots:       slots,
		horizonDays: horizonDays,
		logger:      logger,
	}
}

// SetWeeklyTemplate replaces a coach's active rule set. Existing active
// templates are deactivated (soft — slots keep their back-reference),
// new rows are inserted active, unbooked slots of the deactivated rules
// are pruned, and the horizon is re-materialized. Admin only.
func (s *AvailabilityService) SetWeeklyTemplate(ctx context.Context, ident booking.Identity, coachID uuid.UUID, rules []TemplateRule) error {
	if !ident.IsAdmin() {
		return booking.PermissionDenied("only admins can manage availability templates")
	}
	if len(rules) == 0 {
		return booking.Validationf("at least one availability rule is required")
	}
	for _, r := range rules {
		if err := booking.ValidateInterval(r.StartTime, r.EndTime); err != nil {
			return err
		}
		// Slot-based booking skips the business-hours gate, so the gate
		// has to hold at the template level.
		if err := booking.CheckBusinessHours(r.StartTime, r.EndTime); err != nil {
			return err
		}
	}

	coach, err := s.coaches.GetByID(ctx, coachID.String())
	if err != nil {
		if isNotFound(err) {
			return booking.NotFound("coach", coachID.String())
		}
		return fmt.Errorf("get coach: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templates := repository.NewGormTemplateRepository(tx)
		slots := repository.NewGormSlotRepository(tx)

		if err := templates.DeactivateByCoach(ctx, coach.ID); err != nil {
			return fmt.Errorf("deactivate templates: %w", err)
		}
		for _, r := range rules {
			tpl := &model.AvailabilityTemplate{
				CoachID:   coach.ID,
				Weekday:   r.Weekday,
				StartTime: r.StartTime,
				EndTime:   r.EndTime,
				Active:    true,
			}
			if err := templates.Create(ctx, tpl); err != nil {
				return fmt.Errorf("create template: %w", err)
			}
		}

		pruned, err := slots.PruneInactive(ctx, coach.ID)
		if err != nil {
			return fmt.Errorf("prune slots: %w", err)
		}
		if pruned > 0 {
			s.logger.Info("pruned orphan slots",
				zap.String("coach_id", coach.ID.String()),
				zap.Int64("count", pruned))
		}

		return s.materialize(ctx, tx, coach.ID, time.Now(), s.horizonDays)
	})
	if err != nil {
		return err
	}

	s.logger.Info("weekly template replaced",
		zap.String("coach_id", coach.ID.String()),
		zap.Int("rules", len(rules)))
	return nil
}

// ListActiveTemplates returns the coach's current recurring rules.
func (s *AvailabilityService) ListActiveTemplates(ctx context.Context, coachID uuid.UUID) ([]model.AvailabilityTemplate, error) {
	if _, err := s.coaches.GetByID(ctx, coachID.String()); err != nil {
		if isNotFound(err) {
			return nil, booking.NotFound("coach", coachID.String())
		}
		return nil, fmt.Errorf("get coach: %w", err)
	}
	return s.templates.ListActiveByCoach(ctx, coachID)
}

// Materialize expands the coach's active templates into slots over
// [from, from+horizonDays]. Idempotent: an identical slot is skipped
// via the composite unique index, so re-running — even concurrently
// with bookings — never duplicates.
func (s *AvailabilityService) Materialize(ctx context.Context, coachID uuid.UUID, from time.Time, horizonDays int) error {
	if horizonDays <= 0 {
		horizonDays = s.horizonDays
	}
	if _, err := s.coaches.GetByID(ctx, coachID.String()); err != nil {
		if isNotFound(err) {
			return booking.NotFound("coach", coachID.String())
		}
		return fmt.Errorf("get coach: %w", err)
	}
	return s.materialize(ctx, s.db.WithContext(ctx), coachID, from, horizonDays)
}

func (s *AvailabilityService) materialize(ctx context.Context, db *gorm.DB, coachID uuid.UUID, from time.Time, horizonDays int) error {
	templates := repository.NewGormTemplateRepository(db)
	slots := repository.NewGormSlotRepository(db)

	var created int
	for i := 0; i <= horizonDays; i++ {
		day := from.AddDate(0, 0, i)
		tpls, err := templates.ListActiveByCoachWeekday(ctx, coachID, day.Weekday())
		if err != nil {
			return fmt.Errorf("list templates: %w", err)
		}
		for _, tpl := range tpls {
			tplID := tpl.ID
			slot := &model.Slot{
				CoachID:    coachID,
				TemplateID: &tplID,
				Date:       model.DateOf(day),
				StartTime:  tpl.StartTime,
				EndTime:    tpl.EndTime,
			}
			inserted, err := slots.EnsureExists(ctx, slot)
			if err != nil {
				return fmt.Errorf("ensure slot: %w", err)
			}
			if inserted {
				created++
			}
		}
	}

	if created > 0 {
		s.logger.Info("materialized slots",
			zap.String("coach_id", coachID.String()),
			zap.Int("created", created),
			zap.Int("horizon_days", horizonDays))
	}
	return nil
}

// MaterializeAll refreshes the rolling horizon for every active coach;
// this is what the periodic job runs. Per-coach failures are logged and
// skipped so one broken coach cannot starve the rest.
func (s *AvailabilityService) MaterializeAll(ctx context.Context) error {
	coaches, err := s.coaches.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active coaches: %w", err)
	}
	now := time.Now()
	for _, coach := range coaches {
		if err := s.materialize(ctx, s.db.WithContext(ctx), coach.ID, now, s.horizonDays); err != nil {
			s.logger.Error("materialize coach slots",
				zap.String("coach_id", coach.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// AvailableSlots lists the coach's unbooked slots in [from, to],
// ordered by date then start time.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, coachID uuid.UUID, from, to time.Time) ([]model.Slot, error) {
	if _, err := s.coaches.GetByID(ctx, coachID.String()); err != nil {
		if isNotFound(err) {
			return nil, booking.NotFound("coach", coachID.String())
		}
		return nil, fmt.Errorf("get coach: %w", err)
	}
	return s.slots.ListFree(ctx, coachID, model.DateOf(from), model.DateOf(to))
}
