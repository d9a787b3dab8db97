package repository_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/internal/testutil"
	"gorm.io/gorm"
)

func TestUserListSearchFilterAndPaginate(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)

	for i := 1; i <= 5; i++ {
		role := models.RoleTourist
		if i%2 == 0 {
			role = models.RoleTourGuide
		}
		if err := users.Create(&models.User{
			Name:  fmt.Sprintf("Traveller %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
			Role:  role,
		}); err != nil {
			t.Fatal(err)
		}
	}
	users.Create(&models.User{Name: "Admin 50%", Email: "boss@example.com", Role: models.RoleAdmin})

	items, total, err := users.List(repository.ListQuery{
		SearchColumn: "name",
		Search:       "TRAVELLER",
		OrderBy:      "id ASC",
		Offset:       1,
		Limit:        2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(items) != 2 || items[0].Email != "user2@example.com" {
		t.Fatalf("unexpected page: %+v", items)
	}

	_, total, err = users.List(repository.ListQuery{
		Filters: map[string]interface{}{"role": string(models.RoleTourGuide)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("guides = %d, want 2", total)
	}

	// wildcard characters in the search term are literal
	items, total, _ = users.List(repository.ListQuery{SearchColumn: "name", Search: "50%"})
	if total != 1 || items[0].Email != "boss@example.com" {
		t.Fatalf("escaped search returned %d rows", total)
	}
	_, total, _ = users.List(repository.ListQuery{SearchColumn: "name", Search: "_"})
	if total != 0 {
		t.Fatalf("underscore should not match everything, got %d", total)
	}
}

func TestUpsertOnLogin(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleTourist}
	created, updated, err := users.UpsertOnLogin(user, first)
	if err != nil {
		t.Fatal(err)
	}
	if !created || updated {
		t.Fatalf("first login: created=%v updated=%v", created, updated)
	}

	later := first.Add(time.Hour)
	again := &models.User{Name: "Someone Else", Email: "jane@example.com", Role: models.RoleAdmin}
	created, updated, err = users.UpsertOnLogin(again, later)
	if err != nil {
		t.Fatal(err)
	}
	if created || !updated {
		t.Fatalf("second login: created=%v updated=%v", created, updated)
	}

	stored, err := users.GetByEmail("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Jane" || stored.Role != models.RoleTourist {
		t.Fatalf("login must not overwrite profile or role: %+v", stored)
	}
	if !stored.LastLogIn.Equal(later) {
		t.Fatalf("last_log_in = %v, want %v", stored.LastLogIn, later)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("users = %d, want 1", count)
	}
}

func TestCountByRoleIncludesEmptyRoles(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	users.Create(&models.User{Email: "a@example.com", Role: models.RoleTourist})
	users.Create(&models.User{Email: "b@example.com", Role: models.RoleTourist})

	counts, err := users.CountByRole()
	if err != nil {
		t.Fatal(err)
	}
	if counts[models.RoleTourist] != 2 || counts[models.RoleAdmin] != 0 || counts[models.RoleTourGuide] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestFindActiveUnpaid(t *testing.T) {
	db := testutil.NewDB(t)
	bookings := repository.NewBookingRepository(db)

	seed := []models.Booking{
		{PackageID: 1, TouristEmail: "jane@example.com", Status: models.BookingCancelled, PaymentStatus: models.PaymentNotPaid},
		{PackageID: 1, TouristEmail: "jane@example.com", Status: models.BookingRejected, PaymentStatus: models.PaymentNotPaid},
		{PackageID: 1, TouristEmail: "jane@example.com", Status: models.BookingInReview, PaymentStatus: models.PaymentPaid},
		{PackageID: 2, TouristEmail: "jane@example.com", Status: models.BookingPending, PaymentStatus: models.PaymentNotPaid},
	}
	for i := range seed {
		if err := bookings.Create(&seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := bookings.FindActiveUnpaid(1, "jane@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("package 1: expected not found, got %v", err)
	}
	found, err := bookings.FindActiveUnpaid(2, "jane@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if found.ID != seed[3].ID {
		t.Fatalf("found booking %d, want %d", found.ID, seed[3].ID)
	}
}

func TestRecordForBookingForcesTransition(t *testing.T) {
	db := testutil.NewDB(t)
	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)

	booking := &models.Booking{PackageID: 1, TouristEmail: "jane@example.com", Status: models.BookingCancelled, PaymentStatus: models.PaymentNotPaid, Price: 120}
	if err := bookings.Create(booking); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	if err := payments.RecordForBooking(&models.Payment{BookingID: booking.ID, TouristEmail: "jane@example.com", Price: 120, PaidAt: now}, now); err != nil {
		t.Fatal(err)
	}

	stored, _ := bookings.GetByID(booking.ID)
	if stored.Status != models.BookingInReview || stored.PaymentStatus != models.PaymentPaid {
		t.Fatalf("booking after payment: %s / %s", stored.Status, stored.PaymentStatus)
	}

	err := payments.RecordForBooking(&models.Payment{BookingID: 999, TouristEmail: "jane@example.com", Price: 1, PaidAt: now}, now)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for missing booking, got %v", err)
	}
	count, _ := payments.Count(nil)
	if count != 1 {
		t.Fatalf("payments = %d, want 1 (failed insert rolled back)", count)
	}
}

func TestUpdateFieldsAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	stories := repository.NewStoryRepository(db)

	story := &models.Story{Title: "Sundarbans", AuthorEmail: "jane@example.com", Images: []string{"https://img/1.jpg"}}
	if err := stories.Create(story); err != nil {
		t.Fatal(err)
	}

	n, err := stories.UpdateFields(map[string]interface{}{"id": story.ID}, map[string]interface{}{"title": "Sundarbans trip"})
	if err != nil || n != 1 {
		t.Fatalf("update: n=%d err=%v", n, err)
	}
	stored, _ := stories.GetByID(story.ID)
	if stored.Title != "Sundarbans trip" || len(stored.Images) != 1 {
		t.Fatalf("unexpected story %+v", stored)
	}

	n, err = stories.Delete(story.ID)
	if err != nil || n != 1 {
		t.Fatalf("delete: n=%d err=%v", n, err)
	}
	if _, err := stories.GetByID(story.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestPackageTourPlanRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	packages := repository.NewPackageRepository(db)

	pkg := &models.Package{
		Title: "Cox's Bazar",
		Price: 300,
		TourPlan: []models.TourDay{
			{Day: 1, Title: "Arrival"},
			{Day: 2, Title: "Beach"},
			{Day: 3, Title: "Departure"},
		},
	}
	if err := packages.Create(pkg); err != nil {
		t.Fatal(err)
	}

	got, err := packages.GetByIDs([]uint{pkg.ID, 42})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].DurationDays() != 3 || got[0].TourPlan[1].Title != "Beach" {
		t.Fatalf("unexpected packages %+v", got)
	}

	random, err := packages.Random(5)
	if err != nil || len(random) != 1 {
		t.Fatalf("random: %v %d", err, len(random))
	}
}
