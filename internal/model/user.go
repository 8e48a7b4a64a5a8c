package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
)

// users — the referenced identity record. Authentication and role
// management are owned by an external collaborator; the booking core
// only reads the role.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone string `gorm:"type:varchar(32)"`

	Role booking.Role `gorm:"type:varchar(16);not null;default:'joueur';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
