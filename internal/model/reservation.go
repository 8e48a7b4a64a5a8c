package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
)

// court_reservations — the authoritative record of a court booking.
// Anonymous bookings are permitted, so user_id is nullable. The
// composite unique index backs up the transactional overlap check for
// identical-interval races; overlapping-but-different intervals are
// rejected by the scan inside the booking transaction.
type CourtReservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID  *uuid.UUID `gorm:"type:uuid;index"`
	CourtID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_court_resa_window"`

	Date      datatypes.Date    `gorm:"not null;uniqueIndex:idx_court_resa_window"`
	StartTime booking.ClockTime `gorm:"not null;uniqueIndex:idx_court_resa_window"`
	EndTime   booking.ClockTime `gorm:"not null;uniqueIndex:idx_court_resa_window"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Court *Court `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (r *CourtReservation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// coach_reservations — the authoritative record of a coach booking.
// total_price is stored and recomputed whenever the interval or the
// coach changes: billable hours (one-hour minimum) times the coach's
// hourly rate.
type CoachReservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CoachID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_coach_resa_window"`

	Date      datatypes.Date    `gorm:"not null;uniqueIndex:idx_coach_resa_window"`
	StartTime booking.ClockTime `gorm:"not null;uniqueIndex:idx_coach_resa_window"`
	EndTime   booking.ClockTime `gorm:"not null;uniqueIndex:idx_coach_resa_window"`

	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Coach *Coach `gorm:"foreignKey:CoachID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (r *CoachReservation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
