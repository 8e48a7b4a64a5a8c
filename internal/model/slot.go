package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
)

// slots — a concrete dated bookable window materialized from an
// availability template. At most one slot exists per (coach, date,
// start, end); the composite unique index is also the race guard for
// concurrent materialization. Slots are a convenience view: the coach
// reservation, not the slot, is the source of truth for "busy".
type Slot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CoachID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_slot_window"`
	TemplateID *uuid.UUID `gorm:"type:uuid;index"`

	Date      datatypes.Date    `gorm:"not null;uniqueIndex:idx_slot_window"`
	StartTime booking.ClockTime `gorm:"not null;uniqueIndex:idx_slot_window"`
	EndTime   booking.ClockTime `gorm:"not null;uniqueIndex:idx_slot_window"`

	IsBooked bool       `gorm:"not null;default:false;index"`
	BookedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Coach    *Coach                `gorm:"foreignKey:CoachID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Template *AvailabilityTemplate `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (s *Slot) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DateOf truncates t to a pure calendar date at UTC midnight. Every
// date stored by the core goes through this, so equality comparisons
// are stable across dialects.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Today is DateOf(now); reservations earlier than this are history.
func Today() datatypes.Date {
	return DateOf(time.Now().UTC())
}

// DateBefore reports a < b as calendar dates.
func DateBefore(a, b datatypes.Date) bool {
	return time.Time(a).Before(time.Time(b))
}
