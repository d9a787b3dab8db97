package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var req models.CreatePaymentIntentRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	intent, err := h.paymentService.CreatePaymentIntent(req, middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(intent, ""))
}

func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req models.CreatePaymentRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	payment, err := h.paymentService.RecordPayment(req, middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(payment, "Payment recorded"))
}

func (h *PaymentHandler) GetPaymentHistory(c *fiber.Ctx) error {
	page, err := h.paymentService.History(middleware.UserEmail(c), utils.ParsePagination(c, utils.DefaultLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

// HandleStripeWebhook needs the raw body for signature verification.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	if err := h.paymentService.HandleStripeWebhook(c.Body(), c.Get("Stripe-Signature")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Webhook processed"))
}
