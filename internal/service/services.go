package service

import (
	"github.com/pkazakov/accounts-service/internal/config"
	"github.com/pkazakov/accounts-service/internal/repository"
)

type Services struct {
	Tokens *TokenService
	Auth   *AuthService
	Users  *UserService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	tokens := NewTokenService(TokenConfig{
		Secret:        []byte(cfg.JWTSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		SecureCookies: cfg.SecureCookies,
	})
	return &Services{
		Tokens: tokens,
		Auth:   NewAuthService(repos.User, tokens),
		Users:  NewUserService(repos.User, repos.City),
	}
}
