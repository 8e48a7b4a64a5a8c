package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tennispark/booking-platform/internal/booking"
)

const identityKey = "identity"

// IdentityMiddleware resolves the caller from the X-User-ID and
// X-User-Role headers set by the authentication gateway in front of
// this service. Requests without headers proceed as an anonymous
// player, which is enough for court booking.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := booking.Identity{Role: booking.RolePlayer}

		if raw := c.Get("X-User-ID"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid X-User-ID header",
				})
			}
			ident.UserID = id
		}
		if role := c.Get("X-User-Role"); role != "" {
			ident.Role = booking.Role(role)
		}

		c.Locals(identityKey, ident)
		return c.Next()
	}
}

func identityFrom(c *fiber.Ctx) booking.Identity {
	if ident, ok := c.Locals(identityKey).(booking.Identity); ok {
		return ident
	}
	return booking.Identity{Role: booking.RolePlayer}
}

// AdminRequired rejects callers whose role is not admin.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !identityFrom(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
