package service

import (
	"time"

	"github.com/stripe/stripe-go/v74"
)

// Notifier is implemented by pkg/email.EmailService.
type Notifier interface {
	SendGuideApprovedEmail(to, name string) error
	SendApplicationRejectedEmail(to, name string) error
	SendBookingStatusEmail(to, name, packageName, status string, tourDate time.Time) error
}

// PaymentGateway is implemented by pkg/payment.StripeService.
type PaymentGateway interface {
	CreatePaymentIntent(amount int64, metadata map[string]string) (*stripe.PaymentIntent, error)
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

// TicketGenerator is implemented by pkg/qrcode.QRService.
type TicketGenerator interface {
	GenerateTicket(bookingID uint, size int) ([]byte, error)
}
