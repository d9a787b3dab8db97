package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/qrcode"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type BookingHandler struct {
	bookingService *service.BookingService
	validator      *utils.Validator
}

func NewBookingHandler(bookingService *service.BookingService, validator *utils.Validator) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		validator:      validator,
	}
}

// ListMine returns the caller's bookings, newest first. The auth middleware has already
// checked ?email= against the token.
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	page, err := h.bookingService.ListForTourist(middleware.UserEmail(c), c.Query("search"), utils.ParsePagination(c, utils.DefaultLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

func (h *BookingHandler) ListAssigned(c *fiber.Ctx) error {
	page, err := h.bookingService.ListAssigned(
		middleware.UserEmail(c),
		c.Query("status"),
		c.Query("search"),
		utils.ParsePagination(c, utils.DefaultLimit),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req models.CreateBookingRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	booking, err := h.bookingService.Create(req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(booking, "Booking created"))
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	booking, err := h.bookingService.Get(id, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(booking, ""))
}

func (h *BookingHandler) QRCode(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	png, err := h.bookingService.Ticket(id, actor(c), c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return respondError(c, err)
	}

	c.Type("png")
	return c.Send(png)
}

func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateBookingStatusRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.bookingService.UpdateStatus(id, req.Status, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(result, result.Message))
}
