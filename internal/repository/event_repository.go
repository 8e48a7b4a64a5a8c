package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/model"
)

type EventRepository interface {
	Append(ctx context.Context, event *model.Event) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Append(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
