package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tennispark/booking-platform/internal/booking"
)

// lockForUpdate serializes concurrent bookings for the same resource
// row. FOR UPDATE is postgres-only; sqlite's transaction write lock
// already serializes writers, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate detects the unique-index backstop firing on a race the
// pre-check did not see. Requires TranslateError on the gorm config.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func callerIDPtr(ident booking.Identity) *uuid.UUID {
	if ident.IsAnonymous() {
		return nil
	}
	id := ident.UserID
	return &id
}
