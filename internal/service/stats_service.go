package service

import (
	"sort"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/internal/statemachine"
)

// StatsService recomputes dashboard numbers on every call. Nothing is cached.
type StatsService struct {
	userRepo        *repository.UserRepository
	packageRepo     *repository.PackageRepository
	applicationRepo *repository.ApplicationRepository
	bookingRepo     *repository.BookingRepository
	paymentRepo     *repository.PaymentRepository
	storyRepo       *repository.StoryRepository
	now             func() time.Time
}

func NewStatsService(
	userRepo *repository.UserRepository,
	packageRepo *repository.PackageRepository,
	applicationRepo *repository.ApplicationRepository,
	bookingRepo *repository.BookingRepository,
	paymentRepo *repository.PaymentRepository,
	storyRepo *repository.StoryRepository,
) *StatsService {
	return &StatsService{
		userRepo:        userRepo,
		packageRepo:     packageRepo,
		applicationRepo: applicationRepo,
		bookingRepo:     bookingRepo,
		paymentRepo:     paymentRepo,
		storyRepo:       storyRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *StatsService) TouristStats(email string) (*models.TouristStats, error) {
	bookings, err := s.bookingRepo.ListByTourist(email)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByTourist(email)
	if err != nil {
		return nil, err
	}
	counts, err := s.countBookings(bookings)
	if err != nil {
		return nil, err
	}

	return &models.TouristStats{
		Email:           email,
		Bookings:        counts,
		TotalSpent:      sumPayments(payments),
		PaymentCount:    len(payments),
		MonthlySpending: MonthlySeries(payments),
		PerPackage:      PerPackage(payments),
	}, nil
}

func (s *StatsService) TourGuideStats(email string) (*models.TourGuideStats, error) {
	bookings, err := s.bookingRepo.ListByGuide(email)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByGuide(email)
	if err != nil {
		return nil, err
	}
	counts, err := s.countBookings(bookings)
	if err != nil {
		return nil, err
	}

	return &models.TourGuideStats{
		Email:           email,
		Bookings:        counts,
		TotalEarned:     sumPayments(payments),
		PaymentCount:    len(payments),
		MonthlyEarnings: MonthlySeries(payments),
		PerPackage:      PerPackage(payments),
	}, nil
}

func (s *StatsService) AdminStats() (*models.AdminStats, error) {
	byRole, err := s.userRepo.CountByRole()
	if err != nil {
		return nil, err
	}
	var totalUsers int64
	for _, n := range byRole {
		totalUsers += int64(n)
	}

	totalPackages, err := s.packageRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	totalStories, err := s.storyRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.applicationRepo.Count(map[string]interface{}{"status": models.ApplicationStatusPending})
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListAll()
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListAll()
	if err != nil {
		return nil, err
	}
	counts, err := s.countBookings(bookings)
	if err != nil {
		return nil, err
	}

	return &models.AdminStats{
		UsersByRole:         byRole,
		TotalUsers:          totalUsers,
		TotalPackages:       totalPackages,
		TotalStories:        totalStories,
		PendingApplications: pending,
		Bookings:            counts,
		TotalRevenue:        sumPayments(payments),
		PaymentCount:        len(payments),
		MonthlyRevenue:      MonthlySeries(payments),
		PerPackage:          PerPackage(payments),
	}, nil
}

func (s *StatsService) countBookings(bookings []models.Booking) (models.BookingCounts, error) {
	ids := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, b := range bookings {
		if !seen[b.PackageID] {
			seen[b.PackageID] = true
			ids = append(ids, b.PackageID)
		}
	}

	packages, err := s.packageRepo.GetByIDs(ids)
	if err != nil {
		return models.BookingCounts{}, err
	}
	durations := make(map[uint]int, len(packages))
	for i := range packages {
		durations[packages[i].ID] = packages[i].DurationDays()
	}

	return CountBookings(bookings, durations, s.now()), nil
}

// CountBookings tallies stored statuses and derived states. Packages missing from durations
// count as one-day tours.
func CountBookings(bookings []models.Booking, durations map[uint]int, now time.Time) models.BookingCounts {
	counts := models.BookingCounts{
		Total:    len(bookings),
		ByStatus: make(map[models.BookingStatus]int, len(models.AllBookingStatuses)),
	}
	for _, st := range models.AllBookingStatuses {
		counts.ByStatus[st] = 0
	}

	for i := range bookings {
		b := &bookings[i]
		counts.ByStatus[b.Status]++
		if statemachine.IsUpcoming(b, now) {
			counts.Upcoming++
		}
		if statemachine.IsCompleted(b, durations[b.PackageID], now) {
			counts.Completed++
		}
		if statemachine.IsPendingPayment(b) {
			counts.PendingPayment++
		}
	}
	return counts
}

type yearMonth struct {
	year  int
	month time.Month
}

// MonthlySeries groups payments by UTC calendar month, oldest first.
func MonthlySeries(payments []models.Payment) []models.MonthlyTotal {
	buckets := make(map[yearMonth]*models.MonthlyTotal)
	for _, p := range payments {
		t := p.PaidAt.UTC()
		key := yearMonth{t.Year(), t.Month()}
		m, ok := buckets[key]
		if !ok {
			m = &models.MonthlyTotal{
				Year:  key.year,
				Month: int(key.month),
				Label: time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			}
			buckets[key] = m
		}
		m.Total += p.Price
		m.Count++
	}

	series := make([]models.MonthlyTotal, 0, len(buckets))
	for _, m := range buckets {
		series = append(series, *m)
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series
}

// PerPackage sums payments per package, largest total first, ties broken by name.
func PerPackage(payments []models.Payment) []models.PackageTotal {
	buckets := make(map[uint]*models.PackageTotal)
	for _, p := range payments {
		t, ok := buckets[p.PackageID]
		if !ok {
			t = &models.PackageTotal{PackageID: p.PackageID, PackageName: p.PackageName}
			buckets[p.PackageID] = t
		}
		t.Total += p.Price
		t.Count++
	}

	totals := make([]models.PackageTotal, 0, len(buckets))
	for _, t := range buckets {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		if totals[i].PackageName != totals[j].PackageName {
			return totals[i].PackageName < totals[j].PackageName
		}
		return totals[i].PackageID < totals[j].PackageID
	})
	return totals
}

func sumPayments(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Price
	}
	return total
}
