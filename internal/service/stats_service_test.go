package service

import (
	"testing"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
)

func TestMonthlySeriesIsChronological(t *testing.T) {
	payments := []models.Payment{
		{Price: 100, PaidAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Price: 50, PaidAt: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{Price: 25, PaidAt: time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)},
		{Price: 10, PaidAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	series := MonthlySeries(payments)
	if len(series) != 3 {
		t.Fatalf("series = %+v", series)
	}
	want := []struct {
		label string
		total float64
	}{
		{"Feb 2024", 50},
		{"Dec 2024", 10},
		{"Jan 2025", 125},
	}
	for i, w := range want {
		if series[i].Label != w.label || series[i].Total != w.total {
			t.Errorf("series[%d] = %+v, want %s %.0f", i, series[i], w.label, w.total)
		}
	}
}

func TestMonthlySeriesUsesUTC(t *testing.T) {
	dhaka := time.FixedZone("BST", 6*3600)
	payments := []models.Payment{{Price: 1, PaidAt: time.Date(2025, 3, 1, 2, 0, 0, 0, dhaka)}}

	series := MonthlySeries(payments)
	if series[0].Month != 2 {
		t.Fatalf("month = %d, want February in UTC", series[0].Month)
	}
}

func TestPerPackageOrdering(t *testing.T) {
	payments := []models.Payment{
		{PackageID: 1, PackageName: "Sylhet", Price: 100},
		{PackageID: 2, PackageName: "Bandarban", Price: 100},
		{PackageID: 3, PackageName: "Sundarbans", Price: 300},
		{PackageID: 1, PackageName: "Sylhet", Price: 50},
	}

	totals := PerPackage(payments)
	names := []string{totals[0].PackageName, totals[1].PackageName, totals[2].PackageName}
	if names[0] != "Sundarbans" || names[1] != "Sylhet" || names[2] != "Bandarban" {
		t.Fatalf("order = %v", names)
	}
	if totals[1].Count != 2 || totals[1].Total != 150 {
		t.Fatalf("Sylhet = %+v", totals[1])
	}
}

func TestCountBookingsDerivedStates(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{PackageID: 1, Status: models.BookingAccepted, PaymentStatus: models.PaymentPaid, TourDate: now.AddDate(0, 0, 3)},
		{PackageID: 1, Status: models.BookingAccepted, PaymentStatus: models.PaymentPaid, TourDate: now.AddDate(0, 0, -10)},
		{PackageID: 2, Status: models.BookingAccepted, PaymentStatus: models.PaymentPaid, TourDate: now.AddDate(0, 0, -2)},
		{PackageID: 1, Status: models.BookingPending, PaymentStatus: models.PaymentNotPaid, TourDate: now.AddDate(0, 0, 3)},
		{PackageID: 1, Status: models.BookingRejected, PaymentStatus: models.PaymentNotPaid, TourDate: now.AddDate(0, 0, 3)},
	}

	counts := CountBookings(bookings, map[uint]int{1: 1, 2: 5}, now)
	if counts.Total != 5 || counts.ByStatus[models.BookingAccepted] != 3 || counts.ByStatus[models.BookingCancelled] != 0 {
		t.Fatalf("by status = %+v", counts.ByStatus)
	}
	if counts.Upcoming != 1 {
		t.Errorf("upcoming = %d, want 1", counts.Upcoming)
	}
	// package 2 runs five days, so the tour that started two days ago is still going
	if counts.Completed != 1 {
		t.Errorf("completed = %d, want 1", counts.Completed)
	}
	if counts.PendingPayment != 1 {
		t.Errorf("pending payment = %d, want 1", counts.PendingPayment)
	}
}

func TestStatsEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, tourist.Email, models.RoleTourist)
	f.mustUser(t, guide.Email, models.RoleTourGuide)
	pkg := f.mustPackage(t, "Sundarbans", 250, 3)

	booking, err := f.bookingService().Create(models.CreateBookingRequest{PackageID: pkg.ID, TourGuideEmail: guide.Email, TourDate: time.Now().AddDate(0, 1, 0)}, tourist)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.paymentService().RecordPayment(models.CreatePaymentRequest{BookingID: booking.ID, TransactionID: "pi_1"}, tourist.Email); err != nil {
		t.Fatal(err)
	}

	svc := NewStatsService(f.users, f.packages, f.applications, f.bookings, f.payments, f.stories)

	ts, err := svc.TouristStats(tourist.Email)
	if err != nil {
		t.Fatal(err)
	}
	if ts.TotalSpent != 250 || ts.Bookings.ByStatus[models.BookingInReview] != 1 || ts.Bookings.Upcoming != 1 {
		t.Fatalf("tourist stats = %+v", ts)
	}

	gs, err := svc.TourGuideStats(guide.Email)
	if err != nil {
		t.Fatal(err)
	}
	if gs.TotalEarned != 250 || len(gs.PerPackage) != 1 {
		t.Fatalf("guide stats = %+v", gs)
	}

	as, err := svc.AdminStats()
	if err != nil {
		t.Fatal(err)
	}
	if as.TotalUsers != 2 || as.UsersByRole[models.RoleAdmin] != 0 || as.TotalPackages != 1 || as.TotalRevenue != 250 || len(as.MonthlyRevenue) != 1 {
		t.Fatalf("admin stats = %+v", as)
	}
}
