package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/model"
)

type TemplateRepository interface {
	// Active recurring rules of a coach, ordered for stable output.
	ListActiveByCoach(ctx context.Context, coachID uuid.UUID) ([]model.AvailabilityTemplate, error)
	// Active rules matching one weekday; what the materializer consumes.
	ListActiveByCoachWeekday(ctx context.Context, coachID uuid.UUID, weekday time.Weekday) ([]model.AvailabilityTemplate, error)
	// Soft-deactivate the coach's whole active rule set.
	DeactivateByCoach(ctx context.Context, coachID uuid.UUID) error
	Create(ctx context.Context, tpl *model.AvailabilityTemplate) error
}

type GormTemplateRepository struct {
	db *gorm.DB
}

func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) ListActiveByCoach(ctx context.Context, coachID uuid.UUID) ([]model.AvailabilityTemplate, error) {
	var tpls []model.AvailabilityTemplate
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND active = ?", coachID, true).
		Order("weekday ASC, start_time ASC").
		Find(&tpls).Error
	if err != nil {
		return nil, err
	}
	return tpls, nil
}

func (r *GormTemplateRepository) ListActiveByCoachWeekday(ctx context.Context, coachID uuid.UUID, weekday time.Weekday) ([]model.AvailabilityTemplate, error) {
	var tpls []model.AvailabilityTemplate
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND weekday = ? AND active = ?", coachID, weekday, true).
		Order("start_time ASC").
		Find(&tpls).Error
	if err != nil {
		return nil, err
	}
	return tpls, nil
}

func (r *GormTemplateRepository) DeactivateByCoach(ctx context.Context, coachID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.AvailabilityTemplate{}).
		Where("coach_id = ? AND active = ?", coachID, true).
		Update("active", false).
		Error
}

func (r *GormTemplateRepository) Create(ctx context.Context, tpl *model.AvailabilityTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}
