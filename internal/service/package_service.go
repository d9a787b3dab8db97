package service

import (
	"strings"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

const (
	DefaultRandomSize = 3
	MaxRandomSize     = 20
)

type PackageService struct {
	packageRepo *repository.PackageRepository
}

func NewPackageService(packageRepo *repository.PackageRepository) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
	}
}

// List returns every package when page.Limit is 0.
func (s *PackageService) List(search, tourType string, page utils.Pagination) (*models.Page[models.Package], error) {
	q := repository.ListQuery{
		SearchColumn: "title",
		Search:       search,
		OrderBy:      "created_at DESC",
		Offset:       page.Offset,
		Limit:        page.Limit,
	}
	if tourType = strings.TrimSpace(tourType); tourType != "" {
		q.Filters = map[string]interface{}{"tour_type": tourType}
	}

	packages, total, err := s.packageRepo.List(q)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Package]{Items: packages, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *PackageService) Random(size int) ([]models.Package, error) {
	return s.packageRepo.Random(clampRandomSize(size))
}

func (s *PackageService) GetPackageByID(id uint) (*models.Package, error) {
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "package")
	}
	return pkg, nil
}

func (s *PackageService) Create(req models.CreatePackageRequest, createdBy string) (*models.Package, error) {
	pkg := &models.Package{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TourType:    strings.TrimSpace(req.TourType),
		Location:    req.Location,
		Price:       req.Price,
		Images:      req.Images,
		TourPlan:    req.TourPlan,
		CreatedBy:   createdBy,
	}
	if pkg.Images == nil {
		pkg.Images = []string{}
	}

	if err := s.packageRepo.Create(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func clampRandomSize(size int) int {
	if size < 1 {
		return DefaultRandomSize
	}
	if size > MaxRandomSize {
		return MaxRandomSize
	}
	return size
}
