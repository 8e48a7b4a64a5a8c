package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tennispark/booking-platform/internal/booking"
)

func statusOf(kind booking.ErrorKind) int {
	switch kind {
	case booking.KindValidation:
		return fiber.StatusBadRequest
	case booking.KindNotFound:
		return fiber.StatusNotFound
	case booking.KindPermissionDenied:
		return fiber.StatusForbidden
	case booking.KindConflict:
		return fiber.StatusConflict
	case booking.KindPastDate,
		booking.KindOutsideBusinessHours,
		booking.KindUnavailable,
		booking.KindSlotUnavailable:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// renderError maps booking errors onto their HTTP status. Unclassified
// errors are infrastructure faults: log the cause, hide the detail.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	kind := booking.KindOf(err)
	status := statusOf(kind)

	if status == fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  string(kind),
	})
}
