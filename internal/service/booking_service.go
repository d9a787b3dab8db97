package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/internal/statemachine"
	"github.com/sefazor/tournest-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BookingService struct {
	bookingRepo *repository.BookingRepository
	packageRepo *repository.PackageRepository
	userRepo    *repository.UserRepository
	notifier    Notifier
	tickets     TicketGenerator
	log         *zap.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo *repository.BookingRepository,
	packageRepo *repository.PackageRepository,
	userRepo *repository.UserRepository,
	notifier Notifier,
	tickets TicketGenerator,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		tickets:     tickets,
		log:         log.Named("bookings"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Actor is the authenticated caller as bound by the auth middleware.
type Actor struct {
	Email string
	Role  models.Role
}

// Create books a package for the caller. A second unpaid, still-active booking of the same
// package is a conflict. The check and the insert are not atomic.
func (s *BookingService) Create(req models.CreateBookingRequest, actor Actor) (*models.Booking, error) {
	touristEmail := actor.Email
	if req.TouristEmail != "" && req.TouristEmail != actor.Email {
		return nil, fmt.Errorf("tourist email does not match the signed-in user: %w", ErrForbidden)
	}

	pkg, err := s.packageRepo.GetByID(req.PackageID)
	if err != nil {
		return nil, notFound(err, "package")
	}

	booking := &models.Booking{
		PackageID:     pkg.ID,
		PackageName:   pkg.Title,
		TouristEmail:  touristEmail,
		TouristName:   req.TouristName,
		TouristPhoto:  req.TouristPhoto,
		Price:         pkg.Price,
		TourDate:      req.TourDate.UTC(),
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentNotPaid,
		BookingAt:     s.now(),
	}

	guideEmail := strings.TrimSpace(req.TourGuideEmail)
	if guideEmail == "" {
		return nil, fmt.Errorf("tour guide email is required: %w", ErrBadRequest)
	}
	guide, err := s.userRepo.GetByEmail(guideEmail)
	if err != nil {
		return nil, notFound(err, "tour guide")
	}
	if guide.Role != models.RoleTourGuide {
		return nil, fmt.Errorf("%s is not a tour guide: %w", guideEmail, ErrBadRequest)
	}
	booking.TourGuideEmail = guide.Email
	booking.TourGuideName = guide.Name

	_, err = s.bookingRepo.FindActiveUnpaid(pkg.ID, touristEmail)
	switch {
	case err == nil:
		return nil, fmt.Errorf("you already have an unpaid booking for this package: %w", ErrConflict)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListForTourist(email, search string, page utils.Pagination) (*models.Page[models.Booking], error) {
	return s.list(map[string]interface{}{"tourist_email": email}, search, page)
}

func (s *BookingService) ListAssigned(guideEmail, status, search string, page utils.Pagination) (*models.Page[models.Booking], error) {
	filters := map[string]interface{}{"tour_guide_email": guideEmail}
	if status != "" {
		if !models.BookingStatus(status).Valid() {
			return nil, fmt.Errorf("unknown booking status %q: %w", status, ErrBadRequest)
		}
		filters["status"] = status
	}
	return s.list(filters, search, page)
}

func (s *BookingService) list(filters map[string]interface{}, search string, page utils.Pagination) (*models.Page[models.Booking], error) {
	bookings, total, err := s.bookingRepo.List(repository.ListQuery{
		SearchColumn: "package_name",
		Search:       search,
		Filters:      filters,
		OrderBy:      "booking_at DESC",
		Offset:       page.Offset,
		Limit:        page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Booking]{Items: bookings, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// Get returns the booking to its tourist, its assigned guide or an admin.
func (s *BookingService) Get(id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if !canView(booking, actor) {
		return nil, fmt.Errorf("booking %d belongs to someone else: %w", id, ErrForbidden)
	}
	return booking, nil
}

func (s *BookingService) Ticket(id uint, actor Actor, size int) ([]byte, error) {
	booking, err := s.Get(id, actor)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, fmt.Errorf("booking is %s: %w", booking.Status, ErrConflict)
	}
	return s.tickets.GenerateTicket(booking.ID, size)
}

// UpdateStatus applies a lifecycle transition. Checks run in a fixed order: known status,
// caller role, booking exists, transition edge.
func (s *BookingService) UpdateStatus(id uint, status models.BookingStatus, actor Actor) (*models.BookingStatusUpdate, error) {
	if err := statemachine.CheckRole(status, actor.Role); err != nil {
		return nil, transitionError(err)
	}

	booking, err := s.bookingRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "booking")
	}

	if err := statemachine.CanTransition(booking.Status, status, actor.Role); err != nil {
		return nil, transitionError(err)
	}

	update := &models.BookingStatusUpdate{
		BookingID:      booking.ID,
		PreviousStatus: booking.Status,
		CurrentStatus:  status,
	}
	if booking.Status == status {
		update.Message = "Booking status unchanged"
		return update, nil
	}

	modified, err := s.bookingRepo.UpdateByID(booking.ID, map[string]interface{}{
		"status":     string(status),
		"updated_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	update.ModifiedCount = modified
	update.Message = "Booking status updated"

	if err := s.notifier.SendBookingStatusEmail(booking.TouristEmail, booking.TouristName, booking.PackageName, string(status), booking.TourDate); err != nil {
		s.log.Warn("booking status email failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
	return update, nil
}

func canView(b *models.Booking, actor Actor) bool {
	return actor.Role == models.RoleAdmin ||
		b.TouristEmail == actor.Email ||
		(b.TourGuideEmail != "" && b.TourGuideEmail == actor.Email)
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, statemachine.ErrUnknownStatus):
		return fmt.Errorf("%v: %w", err, ErrBadRequest)
	case errors.Is(err, statemachine.ErrRoleNotAllowed):
		return fmt.Errorf("%v: %w", err, ErrForbidden)
	case errors.Is(err, statemachine.ErrInvalidTransition):
		return fmt.Errorf("%v: %w", err, ErrConflict)
	}
	return err
}
