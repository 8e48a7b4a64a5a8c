package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
)

type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*model.Slot, error)
	// Unbooked slots of a coach in [from, to], ordered (date, start).
	ListFree(ctx context.Context, coachID uuid.UUID, from, to datatypes.Date) ([]model.Slot, error)
	// Insert unless an identical (coach, date, start, end) slot exists.
	// Returns false when the slot was already there; this is what makes
	// materialization idempotent and safe to run concurrently.
	EnsureExists(ctx context.Context, slot *model.Slot) (bool, error)
	// First unbooked slot fully containing [start, end) on date.
	FindCoveringFree(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime) (*model.Slot, error)
	// First booked slot fully containing [start, end) on date; used to
	// release the consumed slot on cancel/update.
	FindCoveringBooked(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime) (*model.Slot, error)
	MarkBooked(ctx context.Context, id uuid.UUID, bookedBy *uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
	// Remove unbooked slots whose originating template was deactivated.
	// Booked slots are never deleted here.
	PruneInactive(ctx context.Context, coachID uuid.UUID) (int64, error)
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	var s model.Slot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSlotRepository) ListFree(ctx context.Context, coachID uuid.UUID, from, to datatypes.Date) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND is_booked = ?", coachID, false).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) EnsureExists(ctx context.Context, slot *model.Slot) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(slot)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormSlotRepository) FindCoveringFree(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime) (*model.Slot, error) {
	return r.findCovering(ctx, coachID, date, start, end, false)
}

func (r *GormSlotRepository) FindCoveringBooked(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime) (*model.Slot, error) {
	return r.findCovering(ctx, coachID, date, start, end, true)
}

func (r *GormSlotRepository) findCovering(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime, booked bool) (*model.Slot, error) {
	var s model.Slot
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND date = ? AND is_booked = ?", coachID, date, booked).
		Where("start_time <= ? AND end_time >= ?", start, end).
		Order("start_time ASC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSlotRepository) MarkBooked(ctx context.Context, id uuid.UUID, bookedBy *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_booked": true, "booked_by": bookedBy}).
		Error
}

func (r *GormSlotRepository) Release(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_booked": false, "booked_by": nil}).
		Error
}

func (r *GormSlotRepository) PruneInactive(ctx context.Context, coachID uuid.UUID) (int64, error) {
	inactive := r.db.
		Model(&model.AvailabilityTemplate{}).
		Select("id").
		Where("coach_id = ? AND active = ?", coachID, false)

	res := r.db.WithContext(ctx).
		Where("coach_id = ? AND is_booked = ? AND template_id IN (?)", coachID, false, inactive).
		Delete(&model.Slot{})
	return res.RowsAffected, res.Error
}
