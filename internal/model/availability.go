package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
)

// availability_templates — a coach's recurring weekly rule: day of
// week plus a time range, not a concrete date. Replacing a coach's
// rule set deactivates the old rows; they are never hard-deleted while
// slots reference them. Overlapping templates for the same coach/day
// are allowed on purpose: materialization simply produces multiple
// candidate slots.
type AvailabilityTemplate struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CoachID uuid.UUID `gorm:"type:uuid;not null;index"`

	Weekday   time.Weekday      `gorm:"not null"`
	StartTime booking.ClockTime `gorm:"not null"`
	EndTime   booking.ClockTime `gorm:"not null"`

	Active bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Coach *Coach `gorm:"foreignKey:CoachID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (t *AvailabilityTemplate) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
