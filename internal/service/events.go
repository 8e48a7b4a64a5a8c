package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/repository"
)

// EventRecorder appends reservation facts for the notification and
// payment collaborators. Recording happens after the booking
// transaction commits and is best-effort: a failed append is logged,
// never surfaced to the caller (it is outside the core's consistency
// boundary).
type EventRecorder struct {
	events repository.EventRepository
	logger *zap.Logger
}

func NewEventRecorder(db *gorm.DB, logger *zap.Logger) *EventRecorder {
	return &EventRecorder{
		events: repository.NewGormEventRepository(db),
		logger: logger,
	}
}

func (e *EventRecorder) Record(
	ctx context.Context,
	eventType model.EventType,
	userID, reservationID *uuid.UUID,
	amount *decimal.Decimal,
	details string,
) {
	ev := &model.Event{
		EventType:     eventType,
		UserID:        userID,
		ReservationID: reservationID,
		Details:       details,
	}
	if amount != nil {
		ev.Amount = decimal.NullDecimal{Decimal: *amount, Valid: true}
	}
	if err := e.events.Append(ctx, ev); err != nil {
		e.logger.Warn("append reservation event",
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}
