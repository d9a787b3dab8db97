package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/models"
)

// RequireRole must run after AuthMiddleware. Without a bound identity it refuses the request.
func RequireRole(required models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserEmail(c) == "" {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Forbidden access"))
		}
		if !UserRole(c).Satisfies(required) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Forbidden access: requires " + string(required) + " role"))
		}
		return c.Next()
	}
}

func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

func TouristOnly() fiber.Handler {
	return RequireRole(models.RoleTourist)
}

func TourGuideOnly() fiber.Handler {
	return RequireRole(models.RoleTourGuide)
}
