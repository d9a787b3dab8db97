package repository

import (
	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/gorm"
)

type BookingRepository struct {
	crud[models.Booking]
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{crud: crud[models.Booking]{db: db}}
}

// FindActiveUnpaid returns a booking for the same package and tourist that is still unpaid and
// not in a terminal state, or gorm.ErrRecordNotFound.
func (r *BookingRepository) FindActiveUnpaid(packageID uint, touristEmail string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.
		Where("package_id = ? AND tourist_email = ?", packageID, touristEmail).
		Where("payment_status = ?", string(models.PaymentNotPaid)).
		Where("status NOT IN ?", []string{string(models.BookingCancelled), string(models.BookingRejected)}).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateByID(id uint, fields map[string]interface{}) (int64, error) {
	return r.UpdateFields(map[string]interface{}{"id": id}, fields)
}

func (r *BookingRepository) ListByTourist(email string) ([]models.Booking, error) {
	return r.findAll("tourist_email = ?", email)
}

func (r *BookingRepository) ListByGuide(email string) ([]models.Booking, error) {
	return r.findAll("tour_guide_email = ?", email)
}

func (r *BookingRepository) ListAll() ([]models.Booking, error) {
	return r.findAll("1 = 1")
}

func (r *BookingRepository) findAll(query string, args ...interface{}) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	err := r.db.Where(query, args...).Order("booking_at DESC").Find(&bookings).Error
	return bookings, err
}
