package statemachine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
)

var (
	ErrRoleNotAllowed    = errors.New("role not allowed to set this status")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrUnknownStatus     = errors.New("unknown booking status")
)

// Transition is a status change the PATCH endpoint may perform. An empty Role means any
// authenticated caller.
type Transition struct {
	From models.BookingStatus
	To   models.BookingStatus
	Role models.Role
}

// "in review" is never a target here; only a recorded payment moves a booking into it.
var validTransitions = []Transition{
	{From: models.BookingPending, To: models.BookingAccepted, Role: models.RoleTourGuide},
	{From: models.BookingPending, To: models.BookingRejected, Role: models.RoleTourGuide},
	{From: models.BookingPending, To: models.BookingCancelled},
	{From: models.BookingInReview, To: models.BookingAccepted, Role: models.RoleTourGuide},
	{From: models.BookingInReview, To: models.BookingRejected, Role: models.RoleTourGuide},
	{From: models.BookingInReview, To: models.BookingCancelled},
	{From: models.BookingAccepted, To: models.BookingCancelled},
}

type transitionKey struct {
	From models.BookingStatus
	To   models.BookingStatus
}

var transitionMap = func() map[transitionKey]Transition {
	m := make(map[transitionKey]Transition, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = t
	}
	return m
}()

// RequiredRole returns the role needed to move a booking into status, if any.
// Accepting and rejecting belong to tour guides regardless of the current status.
func RequiredRole(to models.BookingStatus) (models.Role, bool) {
	switch to {
	case models.BookingAccepted, models.BookingRejected:
		return models.RoleTourGuide, true
	}
	return "", false
}

// CheckRole is evaluated before the booking is loaded.
func CheckRole(to models.BookingStatus, actor models.Role) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if required, ok := RequiredRole(to); ok && !actor.Satisfies(required) {
		return fmt.Errorf("%w: %q requires role %q", ErrRoleNotAllowed, to, required)
	}
	return nil
}

// CanTransition checks the edge from -> to for actor. Setting the current status again is allowed.
func CanTransition(from, to models.BookingStatus, actor models.Role) error {
	if err := CheckRole(to, actor); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	t, ok := transitionMap[transitionKey{from, to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s, valid next states from %s: %s",
			ErrInvalidTransition, from, to, from, describeValidFrom(from))
	}
	if t.Role != "" && !actor.Satisfies(t.Role) {
		return fmt.Errorf("%w: %q requires role %q", ErrRoleNotAllowed, to, t.Role)
	}
	return nil
}

func ValidTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	var nexts []models.BookingStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

func describeValidFrom(status models.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Derived reporting states. None of these are stored.

func IsUpcoming(b *models.Booking, now time.Time) bool {
	return b.TourDate.After(now) &&
		(b.Status == models.BookingAccepted || b.Status == models.BookingInReview)
}

// IsCompleted treats the tour as finished once tour_date plus the package length has passed.
func IsCompleted(b *models.Booking, durationDays int, now time.Time) bool {
	if b.Status != models.BookingAccepted {
		return false
	}
	if durationDays < 1 {
		durationDays = 1
	}
	end := b.TourDate.AddDate(0, 0, durationDays)
	return end.Before(now)
}

func IsPendingPayment(b *models.Booking) bool {
	return !b.Status.Terminal() && b.PaymentStatus != models.PaymentPaid
}
