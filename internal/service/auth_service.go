package service

import (
	"context"
	"errors"

	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService authenticates login/password pairs and authorizes decoded
// session tokens against a required role set.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Authenticate looks the user up by login and verifies the password. An
// unknown login and a wrong password both report domain.ErrInvalidCredentials
// so the response does not reveal whether the account exists.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Authorize runs the three-stage check in order, short-circuiting at the
// first failure: access token validity, subject existence, role membership.
func (s *AuthService) Authorize(ctx context.Context, token string, roles ...domain.Role) (*domain.User, error) {
	userID, err := s.tokens.Decode(token, TokenAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, domain.ErrForbidden
}
