package repository

import (
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	crud[models.Payment]
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{crud: crud[models.Payment]{db: db}}
}

// RecordForBooking appends the payment and forces its booking to "in review" / "paid" in one
// transaction. There is no deduplication key, so replays insert again.
func (r *PaymentRepository) RecordForBooking(payment *models.Payment, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":         string(models.BookingInReview),
				"payment_status": string(models.PaymentPaid),
				"updated_at":     now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PaymentRepository) ListByTourist(email string) ([]models.Payment, error) {
	return r.findAll("tourist_email = ?", email)
}

func (r *PaymentRepository) ListByGuide(email string) ([]models.Payment, error) {
	return r.findAll("tour_guide_email = ?", email)
}

func (r *PaymentRepository) ListAll() ([]models.Payment, error) {
	return r.findAll("1 = 1")
}

func (r *PaymentRepository) findAll(query string, args ...interface{}) ([]models.Payment, error) {
	payments := make([]models.Payment, 0)
	err := r.db.Where(query, args...).Order("paid_at DESC").Find(&payments).Error
	return payments, err
}
