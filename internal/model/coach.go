package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// coaches — referenced by templates, slots and coach reservations.
// Optionally linked to a user identity.
type Coach struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`

	Name            string `gorm:"type:varchar(100);not null"`
	Email           string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone           string `gorm:"type:varchar(32)"`
	Specialty       string `gorm:"type:varchar(100)"`
	ExperienceYears int    `gorm:"not null;default:0"`

	HourlyRate decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Active     bool            `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (c *Coach) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
