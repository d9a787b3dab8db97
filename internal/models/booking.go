package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingInReview  BookingStatus = "in review"
	BookingCancelled BookingStatus = "cancelled"
)

var AllBookingStatuses = []BookingStatus{
	BookingPending, BookingAccepted, BookingRejected, BookingInReview, BookingCancelled,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingRejected, BookingInReview, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingRejected
}

type PaymentStatus string

const (
	PaymentNotPaid PaymentStatus = "not_paid"
	PaymentPaid    PaymentStatus = "paid"
)

type Booking struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	PackageID      uint          `json:"package_id" gorm:"not null;index:idx_booking_package_tourist"`
	PackageName    string        `json:"package_name"`
	TouristEmail   string        `json:"tourist_email" gorm:"not null;index:idx_booking_package_tourist"`
	TouristName    string        `json:"tourist_name"`
	TouristPhoto   string        `json:"tourist_photo"`
	TourGuideEmail string        `json:"tour_guide_email" gorm:"index"`
	TourGuideName  string        `json:"tour_guide_name"`
	Price          float64       `json:"price" gorm:"not null"`
	TourDate       time.Time     `json:"tour_date"`
	Status         BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"not null;default:'not_paid'"`
	BookingAt      time.Time     `json:"booking_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type CreateBookingRequest struct {
	PackageID      uint      `json:"package_id" validate:"required"`
	TouristEmail   string    `json:"tourist_email" validate:"omitempty,email"`
	TouristName    string    `json:"tourist_name"`
	TouristPhoto   string    `json:"tourist_photo"`
	TourGuideEmail string    `json:"tour_guide_email" validate:"required,email"`
	TourDate       time.Time `json:"tour_date" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required,booking_status"`
}

type BookingStatusUpdate struct {
	Message        string        `json:"message"`
	BookingID      uint          `json:"booking_id"`
	PreviousStatus BookingStatus `json:"previous_status"`
	CurrentStatus  BookingStatus `json:"current_status"`
	ModifiedCount  int64         `json:"modified_count"`
}
