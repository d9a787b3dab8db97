package models

import "time"

// Payment is append-only. Recording one moves its booking to "in review" and "paid".
type Payment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	BookingID      uint      `json:"booking_id" gorm:"not null;index"`
	PackageID      uint      `json:"package_id" gorm:"index"`
	PackageName    string    `json:"package_name"`
	TouristEmail   string    `json:"tourist_email" gorm:"not null;index"`
	TourGuideEmail string    `json:"tour_guide_email" gorm:"index"`
	Price          float64   `json:"price" gorm:"not null"`
	TransactionID  string    `json:"transaction_id"`
	PaidAt         time.Time `json:"paid_at"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreatePaymentIntentRequest struct {
	Price     float64 `json:"price" validate:"required,gt=0"`
	BookingID uint    `json:"booking_id"`
}

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type CreatePaymentRequest struct {
	BookingID     uint   `json:"booking_id" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required"`
}
