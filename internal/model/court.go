package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// courts — a bookable terrain. Registry CRUD is owned by the admin
// collaborator; the core reads hourly_rate and available.
type Court struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name     string `gorm:"type:varchar(100);not null"`
	Location string `gorm:"type:varchar(255);not null"`

	HourlyRate decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available  bool            `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (c *Court) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
