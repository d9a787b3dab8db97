package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req models.LoginUserRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.userService.Login(req)
	if err != nil {
		return respondError(c, err)
	}

	if result.Created {
		return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "User created"))
	}
	return c.JSON(models.SuccessResponse(result, "Login recorded"))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := h.userService.List(service.UserListParams{
		Search:     c.Query("search"),
		SearchType: c.Query("searchType"),
		Role:       c.Query("role"),
		Page:       utils.ParsePagination(c, utils.DefaultLimit),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	role, err := h.userService.GetRole(c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"role": role}, ""))
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) ListGuides(c *fiber.Ctx) error {
	page, err := h.userService.ListGuides(c.Query("search"), utils.ParsePagination(c, utils.DefaultLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

func (h *UserHandler) GetGuide(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	guide, err := h.userService.GetGuide(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(guide, ""))
}

func (h *UserHandler) UpdateGuideInfo(c *fiber.Ctx) error {
	var req models.UpdateGuideInfoRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.UpdateGuideInfo(middleware.UserEmail(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Guide profile updated"))
}
