package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event type of the reservation fact stream.
type EventType string

const (
	EventCourtReservationCreated   EventType = "court_reservation_created"
	EventCourtReservationUpdated   EventType = "court_reservation_updated"
	EventCourtReservationCancelled EventType = "court_reservation_cancelled"
	EventCoachReservationCreated   EventType = "coach_reservation_created"
	EventCoachReservationUpdated   EventType = "coach_reservation_updated"
	EventCoachReservationCancelled EventType = "coach_reservation_cancelled"
)

// events — append-only facts the core emits on reservation lifecycle
// changes. Notification and payment collaborators consume these;
// formatting and delivery live outside the core.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index"`

	// Computed price accompanying created/updated facts; the payment
	// collaborator books against it.
	Amount decimal.NullDecimal `gorm:"type:numeric(10,2)"`

	Details string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
