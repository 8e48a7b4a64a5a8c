package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/repository"
)

// SchedulingService orchestrates the booking ledger: validation,
// conflict detection, reservation lifecycle and pricing for courts and
// coaches. Every conflict-scan-then-insert runs inside one transaction
// with the resource row locked, so two simultaneous requests for the
// same resource and overlapping interval cannot both win; the loser
// gets a conflict error.
type SchedulingService struct {
	db           *gorm.DB
	courts       repository.CourtRepository
	coaches      repository.CoachRepository
	slots        repository.SlotRepository
	reservations repository.ReservationRepository
	events       *EventRecorder
	logger       *zap.Logger
}

func NewSchedulingService(
	db *gorm.DB,
	courts repository.CourtRepository,
	coaches repository.CoachRepository,
	slots repository.SlotRepository,
	reservations repository.ReservationRepository,
	events *EventRecorder,
	logger *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		db:           db,
		courts:       courts,
		coaches:      coaches,
		slots:        slots,
		reservations: reservations,
		events:       events,
		logger:       logger,
	}
}

// CourtBooking is a confirmed court reservation together with its
// computed price. Court prices are derived, not stored.
type CourtBooking struct {
	Reservation *model.CourtReservation
	Price       decimal.Decimal
}

func (s *SchedulingService) validateWindow(date time.Time, start, end booking.ClockTime) error {
	if err := booking.ValidateInterval(start, end); err != nil {
		return err
	}
	if err := booking.CheckBusinessHours(start, end); err != nil {
		return err
	}
	if model.DateBefore(model.DateOf(date), model.Today()) {
		return booking.PastDate("reservation date is in the past")
	}
	return nil
}

// BookCourt creates a court reservation. Anonymous callers are allowed.
func (s *SchedulingService) BookCourt(ctx context.Context, ident booking.Identity, courtID uuid.UUID, date time.Time, start, end booking.ClockTime) (*CourtBooking, error) {
	if err := s.validateWindow(date, start, end); err != nil {
		return nil, err
	}
	day := model.DateOf(date)

	var out CourtBooking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var court model.Court
		if err := lockForUpdate(tx).First(&court, "id = ?", courtID).Error; err != nil {
			if isNotFound(err) {
				return booking.NotFound("court", courtID.String())
			}
			return fmt.Errorf("get court: %w", err)
		}
		if !court.Available {
			return booking.Unavailable("court", court.ID.String(), "court is not available")
		}

		ledger := repository.NewGormReservationRepository(tx)
		overlap, err := ledger.CourtOverlapExists(ctx, court.ID, day, start, end, nil)
		if err != nil {
			return fmt.Errorf("overlap scan: %w", err)
		}
		if overlap {
			return booking.Conflict("court", court.ID.String(), "time slot is already booked")
		}

		resa := &model.CourtReservation{
			UserID:    callerIDPtr(ident),
			CourtID:   court.ID,
			Date:      day,
			StartTime: start,
			EndTime:   end,
		}
		if err := ledger.CreateCourt(ctx, resa); err != nil {
			if isDuplicate(err) {
				return booking.Conflict("court", court.ID.String(), "time slot is already booked")
			}
			return fmt.Errorf("create reservation: %w", err)
		}

		price, err := booking.Price(start, end, court.HourlyRate)
		if err != nil {
			return err
		}
		out = CourtBooking{Reservation: resa, Price: price}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, model.EventCourtReservationCreated,
		out.Reservation.UserID, &out.Reservation.ID, &out.Price, "court booked")
	s.logger.Info("court reservation created",
		zap.String("reservation_id", out.Reservation.ID.String()),
		zap.String("court_id", courtID.String()),
		zap.String("start", start.String()),
		zap.String("end", end.String()))
	return &out, nil
}

// UpdateCourt moves an existing court reservation to a new interval,
// re-validating against everything except its own current row.
func (s *SchedulingService) UpdateCourt(ctx context.Context, ident booking.Identity, id uuid.UUID, date time.Time, start, end booking.ClockTime) (*CourtBooking, error) {
	resa, err := s.reservations.GetCourtByID(ctx, id.String())
	if err != nil {
		if isNotFound(err) {
			return nil, booking.NotFound("reservation", id.String())
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if !ident.CanManage(resa.UserID) {
		return nil, booking.PermissionDenied("you can only modify your own reservations")
	}
	if err := s.validateWindow(date, start, end); err != nil {
		return nil, err
	}
	day := model.DateOf(date)

	var out CourtBooking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var court model.Court
		if err := lockForUpdate(tx).First(&court, "id = ?", resa.CourtID).Error; err != nil {
			if isNotFound(err) {
				return booking.NotFound("court", resa.CourtID.String())
			}
			return fmt.Errorf("get court: %w", err)
		}
		if !court.Available {
			return booking.Unavailable("court", court.ID.String(), "court is not available")
		}

		ledger := repository.NewGormReservationRepository(tx)
		own := resa.ID
		overlap, err := ledger.CourtOverlapExists(ctx, court.ID, day, start, end, &own)
		if err != nil {
			return fmt.Errorf("overlap scan: %w", err)
		}
		if overlap {
			return booking.Conflict("court", court.ID.String(), "time slot is already booked")
		}

		resa.Date = day
		resa.StartTime = start
		resa.EndTime = end
		if err := ledger.SaveCourt(ctx, resa); err != nil {
			if isDuplicate(err) {
				return booking.Conflict("court", court.ID.String(), "time slot is already booked")
			}
			return fmt.Errorf("save reservation: %w", err)
		}

		price, err := booking.Price(start, end, court.HourlyRate)
		if err != nil {
			return err
		}
		out = CourtBooking{Reservation: resa, Price: price}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, model.EventCourtReservationUpdated,
		resa.UserID, &resa.ID, &out.Price, "court reservation rescheduled")
	return &out, nil
}

// CancelCourt deletes a court reservation; owner or admin only.
func (s *SchedulingService) CancelCourt(ctx context.Context, ident booking.Identity, id uuid.UUID) error {
	resa, err := s.reservations.GetCourtByID(ctx, id.String())
	if err != nil {
		if isNotFound(err) {
			return booking.NotFound("reservation", id.String())
		}
		return fmt.Errorf("get reservation: %w", err)
	}
	if !ident.CanManage(resa.UserID) {
		return booking.PermissionDenied("you can only cancel your own reservations")
	}

	if err := s.reservations.DeleteCourt(ctx, resa.ID); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.events.Record(ctx, model.EventCourtReservationCancelled,
		resa.UserID, &resa.ID, nil, "court reservation cancelled")
	s.logger.Info("court reservation cancelled",
		zap.String("reservation_id", resa.ID.String()))
	return nil
}

// UserReservation is one row of the merged court + coach view.
type UserReservation struct {
	ID           uuid.UUID         `json:"id"`
	Kind         string            `json:"kind"` // "court" or "coach"
	ResourceID   uuid.UUID         `json:"resource_id"`
	ResourceName string            `json:"resource_name"`
	Date         time.Time         `json:"-"`
	StartTime    booking.ClockTime `json:"start_time"`
	EndTime      booking.ClockTime `json:"end_time"`
	Price        decimal.Decimal   `json:"price"`
}

// ReservationOverview splits a caller's reservations by date: past is
// strictly before today, everything else is upcoming. History needs no
// stored flag.
type ReservationOverview struct {
	Upcoming []UserReservation
	Past     []UserReservation
}

// ListUserReservations returns the caller's merged, date-sorted court
// and coach reservations.
func (s *SchedulingService) ListUserReservations(ctx context.Context, ident booking.Identity) (*ReservationOverview, error) {
	if ident.IsAnonymous() {
		return nil, booking.Validationf("caller identity is required")
	}

	courtResas, err := s.reservations.ListCourtByUser(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("list court reservations: %w", err)
	}
	coachResas, err := s.reservations.ListCoachByUser(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("list coach reservations: %w", err)
	}

	merged := make([]UserReservation, 0, len(courtResas)+len(coachResas))
	for _, r := range courtResas {
		row := UserReservation{
			ID:         r.ID,
			Kind:       "court",
			ResourceID: r.CourtID,
			Date:       time.Time(r.Date),
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
		}
		if r.Court != nil {
			row.ResourceName = r.Court.Name
			if price, err := booking.Price(r.StartTime, r.EndTime, r.Court.HourlyRate); err == nil {
				row.Price = price
			}
		}
		merged = append(merged, row)
	}
	for _, r := range coachResas {
		row := UserReservation{
			ID:         r.ID,
			Kind:       "coach",
			ResourceID: r.CoachID,
			Date:       time.Time(r.Date),
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			Price:      r.TotalPrice,
		}
		if r.Coach != nil {
			row.ResourceName = r.Coach.Name
		}
		merged = append(merged, row)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date) {
			return merged[i].Date.Before(merged[j].Date)
		}
		return merged[i].StartTime < merged[j].StartTime
	})

	today := time.Time(model.Today())
	overview := &ReservationOverview{
		Upcoming: []UserReservation{},
		Past:     []UserReservation{},
	}
	for _, row := range merged {
		if row.Date.Before(today) {
			overview.Past = append(overview.Past, row)
		} else {
			overview.Upcoming = append(overview.Upcoming, row)
		}
	}
	return overview, nil
}
