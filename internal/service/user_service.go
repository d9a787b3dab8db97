package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type UserService struct {
	userRepo *repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type UserListParams struct {
	Search     string
	SearchType string // name or email
	Role       string
	Page       utils.Pagination
}

// Login creates the account on first sight and otherwise only stamps last_log_in.
func (s *UserService) Login(req models.LoginUserRequest) (*models.LoginUserResult, error) {
	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Photo: req.Photo,
		Role:  models.RoleTourist,
	}

	created, updated, err := s.userRepo.UpsertOnLogin(user, s.now())
	if err != nil {
		return nil, err
	}

	return &models.LoginUserResult{Created: created, Updated: updated, User: user}, nil
}

func (s *UserService) List(params UserListParams) (*models.Page[models.User], error) {
	q := repository.ListQuery{
		SearchColumn: "name",
		Search:       params.Search,
		OrderBy:      "created_at DESC",
		Offset:       params.Page.Offset,
		Limit:        params.Page.Limit,
	}
	switch params.SearchType {
	case "", "name":
	case "email":
		q.SearchColumn = "email"
	default:
		return nil, fmt.Errorf("unsupported searchType %q: %w", params.SearchType, ErrBadRequest)
	}

	if params.Role != "" {
		role, ok := models.ParseRole(params.Role)
		if !ok {
			return nil, fmt.Errorf("unknown role %q: %w", params.Role, ErrBadRequest)
		}
		q.Filters = map[string]interface{}{"role": string(role)}
	}

	users, total, err := s.userRepo.List(q)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.User]{Items: users, Total: total, Page: params.Page.Page, Limit: params.Page.Limit}, nil
}

func (s *UserService) GetRole(email string) (models.Role, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", notFound(err, "user")
	}
	return user.Role, nil
}

func (s *UserService) GetProfile(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *UserService) ListGuides(search string, page utils.Pagination) (*models.Page[models.User], error) {
	guides, total, err := s.userRepo.List(repository.ListQuery{
		SearchColumn: "name",
		Search:       search,
		Filters:      map[string]interface{}{"role": string(models.RoleTourGuide)},
		OrderBy:      "name ASC",
		Offset:       page.Offset,
		Limit:        page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &models.Page[models.User]{Items: guides, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *UserService) GetGuide(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "tour guide")
	}
	if user.Role != models.RoleTourGuide {
		return nil, fmt.Errorf("tour guide not found: %w", ErrNotFound)
	}
	return user, nil
}

// UpdateGuideInfo merges the non-nil fields into the caller's guide profile.
func (s *UserService) UpdateGuideInfo(email string, req models.UpdateGuideInfoRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if user.Role != models.RoleTourGuide {
		return nil, fmt.Errorf("only tour guides have a guide profile: %w", ErrForbidden)
	}

	info := user.GuideInfo
	if info == nil {
		info = &models.GuideInfo{Name: user.Name, Email: user.Email, Photo: user.Photo}
	}
	setString(&info.Phone, req.Phone)
	setString(&info.Region, req.Region)
	setString(&info.District, req.District)
	setString(&info.Experience, req.Experience)
	setString(&info.Photo, req.Photo)
	setString(&info.Bio, req.Bio)
	if req.Age != nil {
		info.Age = *req.Age
	}
	if req.Languages != nil {
		info.Languages = req.Languages
	}

	user.GuideInfo = info
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
