package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
	validator          *utils.Validator
}

func NewApplicationHandler(applicationService *service.ApplicationService, validator *utils.Validator) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		validator:          validator,
	}
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	page, err := h.applicationService.List(service.ApplicationListParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Region: c.Query("region"),
		Page:   utils.ParsePagination(c, utils.DefaultLimit),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	application, created, err := h.applicationService.Apply(req, middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	if !created {
		return c.JSON(models.SuccessResponse(application, "You have already applied."))
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(application, "Application submitted"))
}

func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	var req models.ApproveApplicationRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.applicationService.Approve(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Application approved"))
}

func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.applicationService.Reject(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Application rejected"))
}
