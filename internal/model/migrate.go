package model

import "gorm.io/gorm"

// AutoMigrate migrates all entities of the booking core.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Court{},
		&Coach{},
		&AvailabilityTemplate{},
		&Slot{},
		&CourtReservation{},
		&CoachReservation{},
		&Event{},
	)
}
