package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tennispark/booking-platform/internal/booking"
)

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, booking.Validationf("invalid id %q", c.Params("id"))
	}
	return id, nil
}

func (s *Server) listCourts(c *fiber.Ctx) error {
	courts, err := s.courts.List(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}

	items := make([]courtResponse, 0, len(courts))
	for _, court := range courts {
		items = append(items, renderCourt(court))
	}

	page, pageSize := pageParams(c)
	return c.JSON(Paginate(items, page, pageSize))
}

func (s *Server) bookCourt(c *fiber.Ctx) error {
	var req bookCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, booking.Validationf("cannot parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return s.renderError(c, booking.Validationf("%v", err))
	}

	courtID, _ := uuid.Parse(req.CourtID)
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

	result, err := s.scheduling.BookCourt(c.Context(), identityFrom(c), courtID, date, start, end)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(renderCourtBooking(result))
}

func (s *Server) updateCourtReservation(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}

	var req updateCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return s.renderError(c, booking.Validationf("cannot parse request body"))
	}
	if err := validate.Struct(req); err != nil {
		return s.renderError(c, booking.Validationf("%v", err))
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

	result, err := s.scheduling.UpdateCourt(c.Context(), identityFrom(c), id, date, start, end)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(renderCourtBooking(result))
}

func (s *Server) cancelCourtReservation(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return s.renderError(c, err)
	}
	if err := s.scheduling.CancelCourt(c.Context(), identityFrom(c), id); err != nil {
		return s.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// listMyEvents is the caller's reservation fact feed; the same stream
// the notification and payment collaborators consume.
func (s *Server) listMyEvents(c *fiber.Ctx) error {
	ident := identityFrom(c)
	if ident.IsAnonymous() {
		return s.renderError(c, booking.Validationf("caller identity is required"))
	}

	events, err := s.events.ListByUser(c.Context(), ident.UserID, c.QueryInt("limit", 50))
	if err != nil {
		return s.renderError(c, err)
	}

	items := make([]eventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, renderEvent(e))
	}
	return c.JSON(fiber.Map{"events": items})
}

func (s *Server) listMyReservations(c *fiber.Ctx) error {
	overview, err := s.scheduling.ListUserReservations(c.Context(), identityFrom(c))
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"upcoming": renderReservationRows(overview.Upcoming),
		"past":     renderReservationRows(overview.Past),
	})
}
