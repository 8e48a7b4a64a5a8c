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

// Coach bookings have two deliberately distinct entry points.
// BookCoachSlot consumes a pre-materialized slot whole and is the
// strict path; BookCoachDirect takes raw parameters and only checks the
// reservation ledger, for the window before materialization has run.
// They accept and reject different requests on purpose — do not merge.

// BookCoachSlot books the full window of an unbooked materialized slot.
// The business-hours gate is skipped: slots are only ever generated
// inside business hours.
func (s *SchedulingService) BookCoachSlot(ctx context.Context, ident booking.Identity, slotID uuid.UUID) (*model.CoachReservation, error) {
	if ident.IsAnonymous() {
		return nil, booking.Validationf("caller identity is required to book a coach")
	}

	var resa *model.CoachReservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot model.Slot
		if err := lockForUpdate(tx).First(&slot, "id = ?", slotID).Error; err != nil {
			if isNotFound(err) {
				return booking.NotFound("slot", slotID.String())
			}
			return fmt.Errorf("get slot: %w", err)
		}
		if slot.IsBooked {
			return booking.SlotUnavailable("slot is already booked")
		}
		if model.DateBefore(slot.Date, model.Today()) {
			return booking.PastDate("slot date is in the past")
		}

		var coach model.Coach
		if err := tx.First(&coach, "id = ?", slot.CoachID).Error; err != nil {
			if isNotFound(err) {
				return booking.NotFound("coach", slot.CoachID.String())
			}
			return fmt.Errorf("get coach: %w", err)
		}
		if !coach.Active {
			return booking.Unavailable("coach", coach.ID.String(), "coach is not active")
		}

		// Overlapping templates may have produced a twin slot covering
		// the same wall-clock window; the ledger scan is what actually
		// guarantees the coach is booked at most once per interval.
		ledger := repository.NewGormReservationRepository(tx)
		overlap, err := ledger.CoachOverlapExists(ctx, coach.ID, slot.Date, slot.StartTime, slot.EndTime, nil)
		if err != nil {
			return fmt.Errorf("overlap scan: %w", err)
		}
		if overlap {
			return booking.Conflict("coach", coach.ID.String(), "coach already has a reservation in this interval")
		}

		price, err := booking.Price(slot.StartTime, slot.EndTime, coach.HourlyRate)
		if err != nil {
			return err
		}
		resa = &model.CoachReservation{
			UserID:     ident.UserID,
			CoachID:    coach.ID,
			Date:       slot.Date,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			TotalPrice: price,
		}
		if err := ledger.CreateCoach(ctx, resa); err != nil {
			if isDuplicate(err) {
				return booking.Conflict("coach", coach.ID.String(), "coach already has a reservation in this interval")
			}
			return fmt.Errorf("create reservation: %w", err)
		}

		bookedBy := ident.UserID
		if err := repository.NewGormSlotRepository(tx).MarkBooked(ctx, slot.ID, &bookedBy); err != nil {
			return fmt.Errorf("mark slot booked: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, model.EventCoachReservationCreated,
		&resa.UserID, &resa.ID, &resa.TotalPrice, "coach slot booked")
	s.logger.Info("coach reservation created",
		zap.String("reservation_id", resa.ID.String()),
		zap.String("slot_id", slotID.String()))
	return resa, nil
}

// BookCoachDirect books a coach from raw parameters. Availability comes
// from the reservation ledger alone: no materialized slot is required,
// though a covering free slot is consumed when one exists so the slot
// view stays consistent.
func (s *SchedulingService) BookCoachDirect(ctx context.Context, ident booking.Identity, coachID uuid.UUID, date time.Time, start, end booking.ClockTime) (*model.CoachReservation, error) {
	if ident.IsAnonymous() {
		return nil, booking.Validationf("caller identity is required to book a coach")
	}
	if err := s.validateWindow(date, start, end); err != nil {
		return nil, err
	}
	day := model.DateOf(date)

	var resa *model.CoachReservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var coach model.Coach
		if err := lockForUpdate(tx).First(&coach, "id = ?", coachID).Error; err != nil {
			if isNotFound(err) {
				return booking.NotFound("coach", coachID.String())
			}
			return fmt.Errorf("get coach: %w", err)
		}
		if !coach.Active {
			return booking.Unavailable("coach", coach.ID.String(), "coach is not active")
		}

		ledger := repository.NewGormReservationRepository(tx)
		overlap, err := ledger.CoachOverlapExists(ctx, coach.ID, day, start, end, nil)
		if err != nil {
			return fmt.Errorf("overlap scan: %w", err)
		}
		if overlap {
			return booking.Conflict("coach", coach.ID.String(), "coach already has a reservation in this interval")
		}

		price, err := booking.Price(start, end, coach.HourlyRate)
		if err != nil {
			return err
		}
		resa = &model.CoachReservation{
			UserID:     ident.UserID,
			CoachID:    coach.ID,
			Date:       day,
			StartTime:  start,
			EndTime:    end,
			TotalPrice: price,
		}
		if err := ledger.CreateCoach(ctx, resa); err != nil {
			if isDuplicate(err) {
				return booking.Conflict("coach", coach.ID.String(), "coach already has a reservation in this interval")
			}
			return fmt.Errorf("create reservation: %w", err)
		}

		slots := repository.NewGormSlotRepository(tx)
		slot, err := slots.FindCoveringFree(ctx, coach.ID, day, start, end)
		switch {
		case err == nil:
			bookedBy := ident.UserID
			if err := slots.MarkBooked(ctx, slot.ID, &bookedBy); err != nil {
				return fmt.Errorf("mark slot booked: %w", err)
			}
		case isNotFound(err):
			// Permissive path: no covering slot is fine.
		default:
			return fmt.Errorf("find covering slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, model.EventCoachReservationCreated,
		&resa.UserID, &resa.ID, &resa.TotalPrice, "coach booked directly")
	s.logger.Info("coach reservation created",
		zap.String("reservation_id", resa.ID.String()),
		zap.String("coach_id", coachID.String()))
	return resa, nil
}

// UpdateCoach reschedules a coach reservation: the old consumed slot is
// released (a no-op for direct-parameter bookings that never consumed
// one), the new interval must be covered by an unbooked slot, and the
// price is recomputed unconditionally from the target coach's rate.
// newCoachID switches the reservation to another coach when non-nil.
func (s *SchedulingService) UpdateCoach(ctx context.Context, ident booking.Identity, id uuid.UUID, newCoachID *uuid.UUID, date time.Time, start, end booking.ClockTime) (*model.CoachReservation, error) {
	resa, err := s.reservations.GetCoachByID(ctx, id.String())
	if err != nil {
		if isNotFound(err) {
			return nil, booking.NotFound("reservation", id.String())
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	owner := resa.UserID
	if !ident.CanManage(&owner) {
		return nil, booking.PermissionDenied("you can only modify your own reservations")
	}
	if err := s.validateWindow(date, start, end); err != nil {
		return nil, err
	}

	targetCoachID := resa.CoachID
	if newCoachID != nil {
		targetCoachID = *newCoachID
	}
	day := model.DateOf(date)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var coach model.Coach
		if err := lockForUpdate(tx).First(&coach, "id = ?", targetCoachID).Error; err != nil {
			if isNotFound(err) {
				return booking.NotFound("coach", targetCoachID.String())
			}
			return fmt.Errorf("get coach: %w", err)
		}
		if !coach.Active {
			return booking.Unavailable("coach", coach.ID.String(), "coach is not active")
		}

		ledger := repository.NewGormReservationRepository(tx)
		own := resa.ID
		overlap, err := ledger.CoachOverlapExists(ctx, coach.ID, day, start, end, &own)
		if err != nil {
			return fmt.Errorf("overlap scan: %w", err)
		}
		if overlap {
			return booking.Conflict("coach", coach.ID.String(), "coach already has a reservation in this interval")
		}

		slots := repository.NewGormSlotRepository(tx)

		// Release before searching so a move inside the same slot
		// window finds its own slot free again.
		oldSlot, err := slots.FindCoveringBooked(ctx, resa.CoachID, resa.Date, resa.StartTime, resa.EndTime)
		switch {
		case err == nil:
			if err := slots.Release(ctx, oldSlot.ID); err != nil {
				return fmt.Errorf("release slot: %w", err)
			}
		case isNotFound(err):
			// Reservation predates materialization; nothing to release.
		default:
			return fmt.Errorf("find old slot: %w", err)
		}

		newSlot, err := slots.FindCoveringFree(ctx, coach.ID, day, start, end)
		if err != nil {
			if isNotFound(err) {
				return booking.SlotUnavailable("no available slot covers the requested interval")
			}
			return fmt.Errorf("find covering slot: %w", err)
		}
		bookedBy := resa.UserID
		if err := slots.MarkBooked(ctx, newSlot.ID, &bookedBy); err != nil {
			return fmt.Errorf("mark slot booked: %w", err)
		}

		price, err := booking.Price(start, end, coach.HourlyRate)
		if err != nil {
			return err
		}
		resa.CoachID = coach.ID
		resa.Date = day
		resa.StartTime = start
		resa.EndTime = end
		resa.TotalPrice = price
		if err := ledger.SaveCoach(ctx, resa); err != nil {
			if isDuplicate(err) {
				return booking.Conflict("coach", coach.ID.String(), "coach already has a reservation in this interval")
			}
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, model.EventCoachReservationUpdated,
		&resa.UserID, &resa.ID, &resa.TotalPrice, "coach reservation rescheduled")
	return resa, nil
}

// CancelCoach deletes a coach reservation and releases the consumed
// slot when one covers the reservation window, making it immediately
// rebookable.
func (s *SchedulingService) CancelCoach(ctx context.Context, ident booking.Identity, id uuid.UUID) error {
	resa, err := s.reservations.GetCoachByID(ctx, id.String())
	if err != nil {
		if isNotFound(err) {
			return booking.NotFound("reservation", id.String())
		}
		return fmt.Errorf("get reservation: %w", err)
	}
	owner := resa.UserID
	if !ident.CanManage(&owner) {
		return booking.PermissionDenied("you can only cancel your own reservations")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := repository.NewGormSlotRepository(tx)
		slot, err := slots.FindCoveringBooked(ctx, resa.CoachID, resa.Date, resa.StartTime, resa.EndTime)
		switch {
		case err == nil:
			if err := slots.Release(ctx, slot.ID); err != nil {
				return fmt.Errorf("release slot: %w", err)
			}
		case isNotFound(err):
			// Direct-parameter booking without a slot; nothing to release.
		default:
			return fmt.Errorf("find slot: %w", err)
		}
		return repository.NewGormReservationRepository(tx).DeleteCoach(ctx, resa.ID)
	})
	if err != nil {
		return err
	}

	s.events.Record(ctx, model.EventCoachReservationCancelled,
		&resa.UserID, &resa.ID, nil, "coach reservation cancelled")
	s.logger.Info("coach reservation cancelled",
		zap.String("reservation_id", resa.ID.String()))
	return nil
}
