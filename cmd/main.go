package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tennispark/booking-platform/internal/config"
	"github.com/tennispark/booking-platform/internal/db"
	"github.com/tennispark/booking-platform/internal/httpapi"
	"github.com/tennispark/booking-platform/internal/logger"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/repository"
	"github.com/tennispark/booking-platform/internal/service"
)

func main() {
	// 1. Load configuration from the environment.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Structured logger.
	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	// 3. Database connection via GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		zl.Fatal("init db", zap.Error(err))
	}

	// 4. Model migrations.
	if err := model.AutoMigrate(gormDB); err != nil {
		zl.Fatal("auto migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		zl.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 5. Repositories.
	courtRepo := repository.NewGormCourtRepository(gormDB)
	coachRepo := repository.NewGormCoachRepository(gormDB)
	templateRepo := repository.NewGormTemplateRepository(gormDB)
	slotRepo := repository.NewGormSlotRepository(gormDB)
	reservationRepo := repository.NewGormReservationRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 6. Services.
	recorder := service.NewEventRecorder(gormDB, zl)
	availabilitySvc := service.NewAvailabilityService(gormDB, coachRepo, templateRepo, slotRepo, cfg.SlotHorizonDays, zl)
	schedulingSvc := service.NewSchedulingService(gormDB, courtRepo, coachRepo, slotRepo, reservationRepo, recorder, zl)
	profileSvc := service.NewProfileService(userRepo, coachRepo, zl)

	// 7. Slot materialization: once at startup, then on schedule.
	if err := availabilitySvc.MaterializeAll(context.Background()); err != nil {
		zl.Warn("initial slot materialization", zap.Error(err))
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.MaterializeCron, func() {
		if err := availabilitySvc.MaterializeAll(context.Background()); err != nil {
			zl.Warn("scheduled slot materialization", zap.Error(err))
		}
	}); err != nil {
		zl.Fatal("schedule materialization", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 8. HTTP server.
	server := httpapi.NewServer(schedulingSvc, availabilitySvc, profileSvc, courtRepo, coachRepo, slotRepo, eventRepo, zl)

	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.Listen(cfg.HTTPAddr); err != nil {
			zl.Fatal("http serve", zap.Error(err))
		}
	}()

	// 9. Graceful shutdown on signal.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
}
