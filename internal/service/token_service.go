package service

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkazakov/accounts-service/internal/domain"
)

// TokenKind distinguishes the two credentials the service mints: short-lived
// access tokens and the longer-lived refresh tokens used to renew them.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

const (
	AccessCookieName  = "access_token_cookie"
	RefreshCookieName = "refresh_token_cookie"
)

// TokenConfig is the process-wide signing configuration, injected explicitly
// rather than held as package state.
type TokenConfig struct {
	Secret        []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SecureCookies bool
}

// TokenService issues and verifies the JWT session credentials carried in
// cookies. Tokens are entirely client-held; validity is a pure function of
// signature and expiry, so logout never touches server-side state.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

type sessionClaims struct {
	TokenType TokenKind `json:"type"`
	jwt.RegisteredClaims
}

func (s *TokenService) IssueAccessToken(userID uint) (string, error) {
	return s.issue(userID, TokenAccess, s.cfg.AccessTTL)
}

func (s *TokenService) IssueRefreshToken(userID uint) (string, error) {
	return s.issue(userID, TokenRefresh, s.cfg.RefreshTTL)
}

func (s *TokenService) issue(userID uint, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// Decode verifies signature, expiry and kind, returning the subject user id.
// A malformed, tampered or expired token yields domain.ErrInvalidToken; a
// valid token of the other kind yields domain.ErrWrongTokenType.
func (s *TokenService) Decode(tokenString string, kind TokenKind) (uint, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.cfg.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	if claims.TokenType != kind {
		return 0, domain.ErrWrongTokenType
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return uint(userID), nil
}

func (s *TokenService) SetAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(AccessCookieName, token, s.cfg.AccessTTL))
}

func (s *TokenService) SetRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(RefreshCookieName, token, s.cfg.RefreshTTL))
}

// ClearCookies expires both token cookies on the response. The tokens
// themselves stay valid until natural expiry; there is no revocation list.
func (s *TokenService) ClearCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		c := s.cookie(name, "", 0)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (s *TokenService) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
