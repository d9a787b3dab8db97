package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type PackageHandler struct {
	packageService *service.PackageService
	validator      *utils.Validator
}

func NewPackageHandler(packageService *service.PackageService, validator *utils.Validator) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
		validator:      validator,
	}
}

// GetAllPackages returns every package unless limit is given.
func (h *PackageHandler) GetAllPackages(c *fiber.Ctx) error {
	page, err := h.packageService.List(c.Query("search"), c.Query("tourType"), utils.ParsePagination(c, 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, "Packages retrieved successfully"))
}

func (h *PackageHandler) GetRandomPackages(c *fiber.Ctx) error {
	packages, err := h.packageService.Random(c.QueryInt("size", service.DefaultRandomSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(packages, ""))
}

func (h *PackageHandler) GetPackageByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	pkg, err := h.packageService.GetPackageByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(pkg, "Package retrieved successfully"))
}

func (h *PackageHandler) CreatePackage(c *fiber.Ctx) error {
	var req models.CreatePackageRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	pkg, err := h.packageService.Create(req, middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(pkg, "Package created"))
}
