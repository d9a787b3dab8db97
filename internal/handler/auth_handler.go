package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// IssueToken handles POST /jwt.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req models.TokenRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(token, "Token issued"))
}
