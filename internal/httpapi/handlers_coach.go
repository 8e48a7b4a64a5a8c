package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/service"
)

// listCoaches shows active coaches; admins see inactive ones too.
func (s *Server) listCoaches(c *fiber.Ctx) error {
	var (
		coaches []model.Coach
		err     error
	)
	if identityFrom(c).IsAdmin() {
		coaches, err = s.coaches.List(c.Context())
	} else {
		coaches, err = s.coaches.ListActive(c.Context())
	}
	if err != nil {
		return s.renderError(c, err)
	}

	items := make([]coachResponse, 0, len(coaches))
	for _, coach := range coaches {
		items = append(items, renderCoach(coach))
	}

	page, pageSize := pageParams(c)
	return c.JSON(Paginate(items, page, pageSize))
}

func (s *Server) listCoachSlots(c *fiber.Ctx) error {
	coachID, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 0, service.DefaultHorizonDays)
	if raw := c.Query("from"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			return s.renderError(c, err)
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			return s.renderError(c, err)
		}
	}

	slots, err := s.availability.AvailableSlots(c.Context(), coachID, from, to)
	if err != nil {
		return s.renderError(c, err)
	}

	items := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		items = append(items, renderSlot(slot))
	}

	page, pageSize := pageParams(c)
	return c.JSON(Paginate(items, page, pageSize))
}

func (s *Server) listCoachTemplates(c *fiber.Ctx) error {
	coachID, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	templates, err := s.availability.ListActiveTemplates(c.Context(), coachID)
	if err != nil {
		return s.renderError(c, err)
	}

	items := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		items = append(items, renderTemplate(t))
	}
	return c.JSON(fiber.Map{"templates": items})
}

func (s *Server) setCoachTemplates(c *fiber.Ctx) error {
	coachID, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	var req setTemplatesRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, booking.Validationf("cannot parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return s.renderError(c, booking.Validationf("%v", err))
	}

	rules := make([]service.TemplateRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		weekday, err := booking.ParseWeekday(r.Weekday)
		if err != nil {
			return s.renderError(c, err)
		}
		start, err := booking.ParseClock(r.StartTime)
		if err != nil {
			return s.renderError(c, err)
		}
		end, err := booking.ParseClock(r.EndTime)
		if err != nil {
			return s.renderError(c, err)
		}
		rules = append(rules, service.TemplateRule{
			Weekday:   weekday,
			StartTime: start,
			EndTime:   end,
		})
	}

	if err := s.availability.SetWeeklyTemplate(c.Context(), identityFrom(c), coachID, rules); err != nil {
		return s.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) bookCoachSlot(c *fiber.Ctx) error {
	slotID, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	resa, err := s.scheduling.BookCoachSlot(c.Context(), identityFrom(c), slotID)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(renderCoachReservation(resa))
}

func (s *Server) bookCoachDirect(c *fiber.Ctx) error {
	var req bookCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, booking.Validationf("cannot parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return s.renderError(c, booking.Validationf("%v", err))
	}

	coachID, _ := uuid.Parse(req.CoachID)
	date, err := parseDate(req.Date)
	if err != nil {
		return s.renderError(c, err)
	}
	start, err := booking.ParseClock(req.StartTime)
	if err != nil {
		return s.renderError(c, err)
	}
	end, err := booking.ParseClock(req.EndTime)
	if err != nil {
		return s.renderError(c, err)
	}

	resa, err := s.scheduling.BookCoachDirect(c.Context(), identityFrom(c), coachID, date, start, end)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(renderCoachReservation(resa))
}

func (s *Server) updateCoachReservation(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	var req updateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, booking.Validationf("cannot parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return s.renderError(c, booking.Validationf("%v", err))
	}

	var newCoachID *uuid.UUID
	if req.CoachID != "" {
		parsed, _ := uuid.Parse(req.CoachID)
		newCoachID = &parsed
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return s.renderError(c, err)
	}
	start, err := booking.ParseClock(req.StartTime)
	if err != nil {
		return s.renderError(c, err)
	}
	end, err := booking.ParseClock(req.EndTime)
	if err != nil {
		return s.renderError(c, err)
	}

	resa, err := s.scheduling.UpdateCoach(c.Context(), identityFrom(c), id, newCoachID, date, start, end)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(renderCoachReservation(resa))
}

func (s *Server) cancelCoachReservation(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}
	if err := s.scheduling.CancelCoach(c.Context(), identityFrom(c), id); err != nil {
		return s.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ensureCoachProfile(c *fiber.Ctx) error {
	userID, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	coach, err := s.profiles.EnsureCoachProfile(c.Context(), userID)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(renderCoach(*coach))
}
