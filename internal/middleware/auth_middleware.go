package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/models"
	jwtPkg "github.com/sefazor/tournest-backend/pkg/jwt"
)

const (
	LocalsUserEmail = "userEmail"
	LocalsUserRole  = "userRole"
)

// AuthMiddleware binds the token's email and role to the request. A missing or malformed header
// is 401; a token that fails verification, or an ?email= that is not the caller's, is 403.
func AuthMiddleware(jwtManager *jwtPkg.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Invalid token"))
		}

		if email := c.Query("email"); email != "" && email != claims.Email {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Email does not match token"))
		}

		c.Locals(LocalsUserEmail, claims.Email)
		c.Locals(LocalsUserRole, models.Role(claims.Role))

		return c.Next()
	}
}

func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalsUserEmail).(string)
	return email
}

func UserRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(LocalsUserRole).(models.Role)
	return role
}
