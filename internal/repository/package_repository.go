package repository

import (
	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/gorm"
)

type PackageRepository struct {
	crud[models.Package]
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{crud: crud[models.Package]{db: db}}
}

func (r *PackageRepository) GetByIDs(ids []uint) ([]models.Package, error) {
	packages := make([]models.Package, 0, len(ids))
	if len(ids) == 0 {
		return packages, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&packages).Error
	return packages, err
}
