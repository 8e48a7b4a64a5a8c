package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/repository"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// One connection max: each pooled connection would otherwise get its
// own private :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db           *gorm.DB
	scheduling   *SchedulingService
	availability *AvailabilityService
	profiles     *ProfileService
	slots        repository.SlotRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	logger := zap.NewNop()

	courts := repository.NewGormCourtRepository(db)
	coaches := repository.NewGormCoachRepository(db)
	templates := repository.NewGormTemplateRepository(db)
	slots := repository.NewGormSlotRepository(db)
	reservations := repository.NewGormReservationRepository(db)
	users := repository.NewGormUserRepository(db)

	recorder := NewEventRecorder(db, logger)
	return &testEnv{
		db:           db,
		scheduling:   NewSchedulingService(db, courts, coaches, slots, reservations, recorder, logger),
		availability: NewAvailabilityService(db, coaches, templates, slots, DefaultHorizonDays, logger),
		profiles:     NewProfileService(users, coaches, logger),
		slots:        slots,
	}
}

func seedCourt(t *testing.T, db *gorm.DB, rate int64) *model.Court {
	t.Helper()
	court := &model.Court{
		Name:       "Court " + uuid.NewString()[:8],
		Location:   "Hall A",
		HourlyRate: decimal.NewFromInt(rate),
		Available:  true,
	}
	if err := db.Create(court).Error; err != nil {
		t.Fatalf("seed court: %v", err)
	}
	return court
}

func seedCoach(t *testing.T, db *gorm.DB, rate int64) *model.Coach {
	t.Helper()
	coach := &model.Coach{
		Name:       "Coach " + uuid.NewString()[:8],
		Email:      uuid.NewString() + "@example.com",
		HourlyRate: decimal.NewFromInt(rate),
		Active:     true,
	}
	if err := db.Create(coach).Error; err != nil {
		t.Fatalf("seed coach: %v", err)
	}
	return coach
}

func seedUser(t *testing.T, db *gorm.DB, role booking.Role) *model.User {
	t.Helper()
	user := &model.User{
		Name:  "User " + uuid.NewString()[:8],
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func playerIdentity() booking.Identity {
	return booking.Identity{UserID: uuid.New(), Role: booking.RolePlayer}
}

func adminIdentity() booking.Identity {
	return booking.Identity{UserID: uuid.New(), Role: booking.RoleAdmin}
}
