package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/tennispark/booking-platform/internal/repository"
	"github.com/tennispark/booking-platform/internal/service"
)

// Server is the HTTP transport over the booking services.
type Server struct {
	app          *fiber.App
	scheduling   *service.SchedulingService
	availability *service.AvailabilityService
	profiles     *service.ProfileService
	courts       repository.CourtRepository
	coaches      repository.CoachRepository
	slots        repository.SlotRepository
	events       repository.EventRepository
	logger       *zap.Logger
}

func NewServer(
	scheduling *service.SchedulingService,
	availability *service.AvailabilityService,
	profiles *service.ProfileService,
	courts repository.CourtRepository,
	coaches repository.CoachRepository,
	slots repository.SlotRepository,
	events repository.EventRepository,
	logger *zap.Logger,
) *Server {
	s := &Server{
		scheduling:   scheduling,
		availability: availability,
		profiles:     profiles,
		courts:       courts,
		coaches:      coaches,
		slots:        slots,
		events:       events,
		logger:       logger,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "booking-platform",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	s.app.Use(recover.New())
	s.app.Use(s.requestLogger())
	s.app.Use(IdentityMiddleware())

	s.routes()
	return s
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.logger.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)))
		return err
	}
}

func (s *Server) routes() {
	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/courts", s.listCourts)
	api.Get("/courts/:id", s.getCourt)
	api.Post("/courts", AdminRequired(), s.createCourt)
	api.Get("/coaches", s.listCoaches)
	api.Get("/coaches/:id", s.getCoach)
	api.Get("/slots/:id", s.getSlot)
	api.Get("/coaches/:id/slots", s.listCoachSlots)
	api.Get("/coaches/:id/templates", s.listCoachTemplates)
	api.Put("/coaches/:id/templates", AdminRequired(), s.setCoachTemplates)

	api.Post("/reservations/courts", s.bookCourt)
	api.Put("/reservations/courts/:id", s.updateCourtReservation)
	api.Delete("/reservations/courts/:id", s.cancelCourtReservation)

	api.Post("/reservations/coaches", s.bookCoachDirect)
	api.Post("/slots/:id/book", s.bookCoachSlot)
	api.Put("/reservations/coaches/:id", s.updateCoachReservation)
	api.Delete("/reservations/coaches/:id", s.cancelCoachReservation)

	api.Get("/reservations/me", s.listMyReservations)
	api.Get("/events/me", s.listMyEvents)

	api.Post("/users/:id/coach-profile", s.ensureCoachProfile)
}

// Listen blocks serving HTTP until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
