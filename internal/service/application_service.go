package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	"github.com/sefazor/tournest-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ApplicationService struct {
	applicationRepo *repository.ApplicationRepository
	userRepo        *repository.UserRepository
	notifier        Notifier
	log             *zap.Logger
	now             func() time.Time
}

func NewApplicationService(applicationRepo *repository.ApplicationRepository, userRepo *repository.UserRepository, notifier Notifier, log *zap.Logger) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		log:             log.Named("applications"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

type ApplicationListParams struct {
	Status string
	Search string
	Region string
	Page   utils.Pagination
}

// Apply stores one application per email, always the applicant's own. A repeat returns the
// stored one with created=false.
func (s *ApplicationService) Apply(req models.CreateApplicationRequest, applicantEmail string) (*models.Application, bool, error) {
	email := strings.TrimSpace(applicantEmail)
	if email == "" {
		return nil, false, fmt.Errorf("applicant email is required: %w", ErrBadRequest)
	}
	if body := strings.TrimSpace(req.Email); body != "" && !strings.EqualFold(body, email) {
		return nil, false, fmt.Errorf("application email does not match the signed-in user: %w", ErrForbidden)
	}

	existing, err := s.applicationRepo.GetByEmail(email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	application := &models.Application{
		Email:      email,
		Name:       strings.TrimSpace(req.Name),
		Phone:      req.Phone,
		Region:     strings.TrimSpace(req.Region),
		District:   strings.TrimSpace(req.District),
		Experience: req.Experience,
		Languages:  req.Languages,
		Age:        req.Age,
		Photo:      req.Photo,
		CVLink:     req.CVLink,
		Reason:     req.Reason,
		Status:     models.ApplicationStatusPending,
	}
	if application.Languages == nil {
		application.Languages = []string{}
	}

	if err := s.applicationRepo.Create(application); err != nil {
		return nil, false, err
	}
	return application, true, nil
}

func (s *ApplicationService) List(params ApplicationListParams) (*models.Page[models.Application], error) {
	status := params.Status
	if status == "" {
		status = models.ApplicationStatusPending
	}
	filters := map[string]interface{}{"status": status}
	if region := strings.TrimSpace(params.Region); region != "" {
		filters["region"] = region
	}

	applications, total, err := s.applicationRepo.List(repository.ListQuery{
		SearchColumn: "name",
		Search:       params.Search,
		Filters:      filters,
		OrderBy:      "created_at ASC",
		Offset:       params.Page.Offset,
		Limit:        params.Page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Application]{Items: applications, Total: total, Page: params.Page.Page, Limit: params.Page.Limit}, nil
}

// Approve sets the candidate's role and guide profile, then drops the application.
func (s *ApplicationService) Approve(req models.ApproveApplicationRequest) (*models.User, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, ErrBadRequest)
	}

	c := req.Candidate
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(c.Email))
	if err != nil {
		return nil, notFound(err, "candidate user")
	}

	user.Role = role
	if role == models.RoleTourGuide {
		user.GuideInfo = &models.GuideInfo{
			Name:        firstNonEmpty(c.Name, user.Name),
			Email:       user.Email,
			Phone:       c.Phone,
			Region:      c.Region,
			District:    c.District,
			Experience:  c.Experience,
			Languages:   c.Languages,
			Age:         c.Age,
			Photo:       firstNonEmpty(c.Photo, user.Photo),
			TourGuideAt: s.now(),
		}
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if _, err := s.applicationRepo.DeleteByEmail(user.Email); err != nil {
		return nil, err
	}

	if err := s.notifier.SendGuideApprovedEmail(user.Email, user.Name); err != nil {
		s.log.Warn("approval email failed", zap.String("email", user.Email), zap.Error(err))
	}
	return user, nil
}

// Reject removes the application. The user keeps the tourist role.
func (s *ApplicationService) Reject(id uint) error {
	application, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return notFound(err, "application")
	}

	if _, err := s.applicationRepo.Delete(id); err != nil {
		return err
	}

	if err := s.notifier.SendApplicationRejectedEmail(application.Email, application.Name); err != nil {
		s.log.Warn("rejection email failed", zap.String("email", application.Email), zap.Error(err))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
