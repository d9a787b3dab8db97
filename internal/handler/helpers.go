package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{service.ErrBadRequest, fiber.StatusBadRequest},
	{service.ErrForbidden, fiber.StatusForbidden},
	{service.ErrNotFound, fiber.StatusNotFound},
	{service.ErrConflict, fiber.StatusConflict},
	{service.ErrUnavailable, fiber.StatusServiceUnavailable},
}

// respondError renders service errors as envelopes. Anything unrecognised goes to the app's
// ErrorHandler, which logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			msg := strings.TrimSuffix(err.Error(), ": "+s.err.Error())
			return c.Status(s.status).JSON(models.ErrorResponse(msg))
		}
	}
	return err
}

func bindAndValidate(c *fiber.Ctx, v *utils.Validator, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("Invalid request body: %w", service.ErrBadRequest)
	}
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", utils.FormatErrors(err), service.ErrBadRequest)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("Invalid %s: %w", name, service.ErrBadRequest)
	}
	return uint(id), nil
}

func actor(c *fiber.Ctx) service.Actor {
	return service.Actor{
		Email: middleware.UserEmail(c),
		Role:  middleware.UserRole(c),
	}
}
