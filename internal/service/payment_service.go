package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

type PaymentService struct {
	gateway     PaymentGateway
	paymentRepo *repository.PaymentRepository
	bookingRepo *repository.BookingRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewPaymentService(gateway PaymentGateway, paymentRepo *repository.PaymentRepository, bookingRepo *repository.BookingRepository, log *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		log:         log.Named("payments"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ToMinorUnits converts a price to cents, rounding to the nearest unit so 19.99 becomes 1999.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *PaymentService) CreatePaymentIntent(req models.CreatePaymentIntentRequest, touristEmail string) (*models.PaymentIntent, error) {
	amount := ToMinorUnits(req.Price)
	if amount <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", ErrBadRequest)
	}

	metadata := map[string]string{"tourist_email": touristEmail}
	if req.BookingID != 0 {
		metadata["booking_id"] = strconv.FormatUint(uint64(req.BookingID), 10)
	}

	pi, err := s.gateway.CreatePaymentIntent(amount, metadata)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// RecordPayment stores the payment confirmed by the client. The booking is forced to
// "in review" and "paid" whatever its current status; replaying the call records again.
func (s *PaymentService) RecordPayment(req models.CreatePaymentRequest, touristEmail string) (*models.Payment, error) {
	booking, err := s.bookingRepo.GetByID(req.BookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if booking.TouristEmail != touristEmail {
		return nil, fmt.Errorf("booking %d belongs to another tourist: %w", booking.ID, ErrForbidden)
	}
	return s.record(booking, req.TransactionID)
}

// HandleStripeWebhook verifies the event signature and records succeeded payment intents that
// carry a booking_id in their metadata.
func (s *PaymentService) HandleStripeWebhook(payload []byte, signature string) error {
	event, err := s.gateway.ConstructEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("webhook: %v: %w", err, ErrBadRequest)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("webhook payload: %v: %w", err, ErrBadRequest)
		}

		raw, ok := pi.Metadata["booking_id"]
		if !ok {
			s.log.Info("payment intent without booking, ignoring", zap.String("payment_intent", pi.ID))
			return nil
		}
		bookingID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("booking_id metadata %q: %w", raw, ErrBadRequest)
		}

		booking, err := s.bookingRepo.GetByID(uint(bookingID))
		if err != nil {
			return notFound(err, "booking")
		}
		_, err = s.record(booking, pi.ID)
		return err

	default:
		s.log.Debug("unhandled stripe event", zap.String("type", string(event.Type)))
	}

	return nil
}

func (s *PaymentService) record(booking *models.Booking, transactionID string) (*models.Payment, error) {
	now := s.now()
	payment := &models.Payment{
		BookingID:      booking.ID,
		PackageID:      booking.PackageID,
		PackageName:    booking.PackageName,
		TouristEmail:   booking.TouristEmail,
		TourGuideEmail: booking.TourGuideEmail,
		Price:          booking.Price,
		TransactionID:  transactionID,
		PaidAt:         now,
	}

	if err := s.paymentRepo.RecordForBooking(payment, now); err != nil {
		return nil, notFound(err, "booking")
	}

	s.log.Info("payment recorded",
		zap.Uint("booking_id", booking.ID),
		zap.String("transaction_id", transactionID),
		zap.String("previous_status", string(booking.Status)),
	)
	return payment, nil
}

func (s *PaymentService) History(touristEmail string, page utils.Pagination) (*models.Page[models.Payment], error) {
	payments, total, err := s.paymentRepo.List(repository.ListQuery{
		Filters: map[string]interface{}{"tourist_email": touristEmail},
		OrderBy: "paid_at DESC",
		Offset:  page.Offset,
		Limit:   page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Payment]{Items: payments, Total: total, Page: page.Page, Limit: page.Limit}, nil
}
