package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
)

// ReservationRepository is the booking ledger: the authoritative set of
// confirmed court and coach reservations plus their overlap scans.
type ReservationRepository interface {
	// True when any reservation for the resource on date intersects the
	// half-open interval [start, end). exclude removes the caller's own
	// row from the scan on updates.
	CourtOverlapExists(ctx context.Context, courtID uuid.UUID, date datatypes.Date, start, end booking.ClockTime, exclude *uuid.UUID) (bool, error)
	CoachOverlapExists(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime, exclude *uuid.UUID) (bool, error)

	CreateCourt(ctx context.Context, r *model.CourtReservation) error
	CreateCoach(ctx context.Context, r *model.CoachReservation) error
	GetCourtByID(ctx context.Context, id string) (*model.CourtReservation, error)
	GetCoachByID(ctx context.Context, id string) (*model.CoachReservation, error)
	SaveCourt(ctx context.Context, r *model.CourtReservation) error
	SaveCoach(ctx context.Context, r *model.CoachReservation) error
	DeleteCourt(ctx context.Context, id uuid.UUID) error
	DeleteCoach(ctx context.Context, id uuid.UUID) error

	ListCourtByUser(ctx context.Context, userID uuid.UUID) ([]model.CourtReservation, error)
	ListCoachByUser(ctx context.Context, userID uuid.UUID) ([]model.CoachReservation, error)
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) CourtOverlapExists(ctx context.Context, courtID uuid.UUID, date datatypes.Date, start, end booking.ClockTime, exclude *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.CourtReservation{}).
		Where("court_id = ? AND date = ?", courtID, date).
		Where("start_time < ? AND end_time > ?", end, start)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormReservationRepository) CoachOverlapExists(ctx context.Context, coachID uuid.UUID, date datatypes.Date, start, end booking.ClockTime, exclude *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.CoachReservation{}).
		Where("coach_id = ? AND date = ?", coachID, date).
		Where("start_time < ? AND end_time > ?", end, start)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormReservationRepository) CreateCourt(ctx context.Context, resa *model.CourtReservation) error {
	return r.db.WithContext(ctx).Create(resa).Error
}

func (r *GormReservationRepository) CreateCoach(ctx context.Context, resa *model.CoachReservation) error {
	return r.db.WithContext(ctx).Create(resa).Error
}

func (r *GormReservationRepository) GetCourtByID(ctx context.Context, id string) (*model.CourtReservation, error) {
	var resa model.CourtReservation
	if err := r.db.WithContext(ctx).First(&resa, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resa, nil
}

func (r *GormReservationRepository) GetCoachByID(ctx context.Context, id string) (*model.CoachReservation, error) {
	var resa model.CoachReservation
	if err := r.db.WithContext(ctx).First(&resa, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resa, nil
}

func (r *GormReservationRepository) SaveCourt(ctx context.Context, resa *model.CourtReservation) error {
	return r.db.WithContext(ctx).Save(resa).Error
}

func (r *GormReservationRepository) SaveCoach(ctx context.Context, resa *model.CoachReservation) error {
	return r.db.WithContext(ctx).Save(resa).Error
}

func (r *GormReservationRepository) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CourtReservation{}, "id = ?", id).Error
}

func (r *GormReservationRepository) DeleteCoach(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CoachReservation{}, "id = ?", id).Error
}

func (r *GormReservationRepository) ListCourtByUser(ctx context.Context, userID uuid.UUID) ([]model.CourtReservation, error) {
	var out []model.CourtReservation
	err := r.db.WithContext(ctx).
		Preload("Court").
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormReservationRepository) ListCoachByUser(ctx context.Context, userID uuid.UUID) ([]model.CoachReservation, error) {
	var out []model.CoachReservation
	err := r.db.WithContext(ctx).
		Preload("Coach").
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
