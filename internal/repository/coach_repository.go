package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/model"
)

type CoachRepository interface {
	GetByID(ctx context.Context, id string) (*model.Coach, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Coach, error)
	List(ctx context.Context) ([]model.Coach, error)
	ListActive(ctx context.Context) ([]model.Coach, error)
	Create(ctx context.Context, coach *model.Coach) error
}

type GormCoachRepository struct {
	db *gorm.DB
}

func NewGormCoachRepository(db *gorm.DB) *GormCoachRepository {
	return &GormCoachRepository{db: db}
}

func (r *GormCoachRepository) GetByID(ctx context.Context, id string) (*model.Coach, error) {
	var c model.Coach
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCoachRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Coach, error) {
	var c model.Coach
	if err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCoachRepository) List(ctx context.Context) ([]model.Coach, error) {
	var coaches []model.Coach
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&coaches).Error; err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *GormCoachRepository) ListActive(ctx context.Context) ([]model.Coach, error) {
	var coaches []model.Coach
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&coaches).Error
	if err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *GormCoachRepository) Create(ctx context.Context, coach *model.Coach) error {
	return r.db.WithContext(ctx).Create(coach).Error
}
