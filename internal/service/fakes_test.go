package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/internal/testutil"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentEmail struct {
	kind   string
	to     string
	status string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeNotifier) record(e sentEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return f.err
}

func (f *fakeNotifier) SendGuideApprovedEmail(to, name string) error {
	return f.record(sentEmail{kind: "approved", to: to})
}

func (f *fakeNotifier) SendApplicationRejectedEmail(to, name string) error {
	return f.record(sentEmail{kind: "rejected", to: to})
}

func (f *fakeNotifier) SendBookingStatusEmail(to, name, packageName, status string, tourDate time.Time) error {
	return f.record(sentEmail{kind: "booking", to: to, status: status})
}

type fakeGateway struct {
	amounts  []int64
	metadata []map[string]string
	event    stripe.Event
	eventErr error
}

func (f *fakeGateway) CreatePaymentIntent(amount int64, metadata map[string]string) (*stripe.PaymentIntent, error) {
	f.amounts = append(f.amounts, amount)
	f.metadata = append(f.metadata, metadata)
	return &stripe.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       amount,
		Currency:     stripe.Currency("usd"),
	}, nil
}

func (f *fakeGateway) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	if f.eventErr != nil {
		return stripe.Event{}, f.eventErr
	}
	return f.event, nil
}

type fakeStorage struct {
	keys      []string
	deleted   []string
	failKey   int
	deleteErr error
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if f.failKey > 0 && len(f.keys)+1 == f.failKey {
		return "", errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, "https://cdn.example.com/")
	return key, ok && key != ""
}

type fakeTickets struct{}

func (fakeTickets) GenerateTicket(bookingID uint, size int) ([]byte, error) {
	return []byte("\x89PNG-ticket"), nil
}

type fixture struct {
	db           *gorm.DB
	users        *repository.UserRepository
	packages     *repository.PackageRepository
	applications *repository.ApplicationRepository
	bookings     *repository.BookingRepository
	payments     *repository.PaymentRepository
	stories      *repository.StoryRepository
	notifier     *fakeNotifier
	gateway      *fakeGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:           db,
		users:        repository.NewUserRepository(db),
		packages:     repository.NewPackageRepository(db),
		applications: repository.NewApplicationRepository(db),
		bookings:     repository.NewBookingRepository(db),
		payments:     repository.NewPaymentRepository(db),
		stories:      repository.NewStoryRepository(db),
		notifier:     &fakeNotifier{},
		gateway:      &fakeGateway{},
	}
}

func (f *fixture) bookingService() *BookingService {
	return NewBookingService(f.bookings, f.packages, f.users, f.notifier, fakeTickets{}, zap.NewNop())
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(f.gateway, f.payments, f.bookings, zap.NewNop())
}

func (f *fixture) mustUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, Role: role}
	if err := f.users.Create(u); err != nil {
		t.Fatal(err)
	}
	return u
}

func (f *fixture) mustPackage(t *testing.T, title string, price float64, days int) *models.Package {
	t.Helper()
	plan := make([]models.TourDay, days)
	for i := range plan {
		plan[i] = models.TourDay{Day: i + 1, Title: "Day"}
	}
	p := &models.Package{Title: title, Price: price, TourPlan: plan}
	if err := f.packages.Create(p); err != nil {
		t.Fatal(err)
	}
	return p
}
