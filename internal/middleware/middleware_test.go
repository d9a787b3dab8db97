package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/models"
	jwtPkg "github.com/sefazor/tournest-backend/pkg/jwt"
)

func newTestApp(manager *jwtPkg.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/open", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return c.SendString("ok") })

	api := app.Group("/", AuthMiddleware(manager))
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(UserEmail(c) + "|" + string(UserRole(c)))
	})
	api.Get("/admin", AdminOnly(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	api.Get("/tourist", TouristOnly(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	api.Get("/guide", TourGuideOnly(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func request(t *testing.T, app *fiber.App, path, auth string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwtPkg.NewManager("secret", time.Hour)
	app := newTestApp(manager)

	token, err := manager.GenerateToken("jane@example.com", "tourist")
	if err != nil {
		t.Fatal(err)
	}
	foreign, _ := jwtPkg.NewManager("other", time.Hour).GenerateToken("jane@example.com", "admin")

	tests := []struct {
		name string
		path string
		auth string
		want int
	}{
		{"missing header", "/me", "", fiber.StatusUnauthorized},
		{"no bearer prefix", "/me", "Token " + token, fiber.StatusUnauthorized},
		{"garbage token", "/me", "Bearer not-a-jwt", fiber.StatusForbidden},
		{"foreign secret", "/me", "Bearer " + foreign, fiber.StatusForbidden},
		{"valid", "/me", "Bearer " + token, fiber.StatusOK},
		{"matching email", "/me?email=jane@example.com", "Bearer " + token, fiber.StatusOK},
		{"mismatched email", "/me?email=john@example.com", "Bearer " + token, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := request(t, app, tt.path, tt.auth); got != tt.want {
				t.Fatalf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRoleGate(t *testing.T) {
	manager := jwtPkg.NewManager("secret", time.Hour)
	app := newTestApp(manager)

	tokens := map[models.Role]string{}
	for _, role := range append(models.AllRoles, models.Role("superuser")) {
		tok, err := manager.GenerateToken("user@example.com", string(role))
		if err != nil {
			t.Fatal(err)
		}
		tokens[role] = "Bearer " + tok
	}

	routes := map[string]models.Role{
		"/admin":   models.RoleAdmin,
		"/tourist": models.RoleTourist,
		"/guide":   models.RoleTourGuide,
	}
	for path, allowed := range routes {
		for role, auth := range tokens {
			want := fiber.StatusForbidden
			if role == allowed {
				want = fiber.StatusOK
			}
			if got := request(t, app, path, auth); got != want {
				t.Errorf("%s as %q: status %d, want %d", path, role, got, want)
			}
		}
	}
}

func TestRoleGateFailsClosedWithoutIdentity(t *testing.T) {
	app := newTestApp(jwtPkg.NewManager("secret", time.Hour))
	if got := request(t, app, "/open", ""); got != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", got)
	}
}
