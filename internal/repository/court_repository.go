package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/model"
)

type CourtRepository interface {
	GetByID(ctx context.Context, id string) (*model.Court, error)
	List(ctx context.Context) ([]model.Court, error)
	Create(ctx context.Context, court *model.Court) error
}

type GormCourtRepository struct {
	db *gorm.DB
}

func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

func (r *GormCourtRepository) GetByID(ctx context.Context, id string) (*model.Court, error) {
	var c model.Court
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCourtRepository) List(ctx context.Context) ([]model.Court, error) {
	var courts []model.Court
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *GormCourtRepository) Create(ctx context.Context, court *model.Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}
