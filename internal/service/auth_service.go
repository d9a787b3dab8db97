package service

import (
	"strings"

	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/repository"
	jwtPkg "github.com/sefazor/tournest-backend/pkg/jwt"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *jwtPkg.Manager
}

func NewAuthService(userRepo *repository.UserRepository, jwtManager *jwtPkg.Manager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// IssueToken signs a token carrying the stored role of a known user.
func (s *AuthService) IssueToken(email string) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, notFound(err, "user")
	}

	token, err := s.jwtManager.GenerateToken(user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{Token: token}, nil
}
