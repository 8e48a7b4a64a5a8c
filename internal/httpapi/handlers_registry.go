package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
)

func notFoundAs(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.NotFound(resource, id)
	}
	return err
}

func (s *Server) getCourt(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}
	court, err := s.courts.GetByID(c.Context(), id.String())
	if err != nil {
		return s.renderError(c, notFoundAs(err, "court", id.String()))
	}
	return c.JSON(renderCourt(*court))
}

func (s *Server) getCoach(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}
	coach, err := s.coaches.GetByID(c.Context(), id.String())
	if err != nil {
		return s.renderError(c, notFoundAs(err, "coach", id.String()))
	}
	return c.JSON(renderCoach(*coach))
}

func (s *Server) getSlot(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}
	slot, err := s.slots.GetByID(c.Context(), id.String())
	if err != nil {
		return s.renderError(c, notFoundAs(err, "slot", id.String()))
	}
	return c.JSON(renderSlot(*slot))
}

type createCourtRequest struct {
	Name       string `json:"name" validate:"required"`
	Location   string `json:"location" validate:"required"`
	HourlyRate string `json:"hourly_rate" validate:"required"`
}

func (s *Server) createCourt(c *fiber.Ctx) error {
	var req createCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, booking.Validationf("cannot parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return s.renderError(c, booking.Validationf("%v", err))
	}
	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil || rate.IsNegative() {
		return s.renderError(c, booking.Validationf("invalid hourly_rate %q", req.HourlyRate))
	}

	court := &model.Court{
		Name:       req.Name,
		Location:   req.Location,
		HourlyRate: rate,
		Available:  true,
	}
	if err := s.courts.Create(c.Context(), court); err != nil {
		return s.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(renderCourt(*court))
}
