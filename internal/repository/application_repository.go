package repository

import (
	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	crud[models.Application]
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{crud: crud[models.Application]{db: db}}
}

func (r *ApplicationRepository) GetByEmail(email string) (*models.Application, error) {
	var application models.Application
	if err := r.db.Where("email = ?", email).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) DeleteByEmail(email string) (int64, error) {
	result := r.db.Where("email = ?", email).Delete(&models.Application{})
	return result.RowsAffected, result.Error
}
