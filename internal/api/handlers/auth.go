package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkazakov/accounts-service/internal/api/respond"
	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
}

func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// Login authenticates the login/password pair, sets the access and refresh
// cookies and returns the caller's own profile projection.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Login == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Login and password are required.")
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "Access denied. Wrong login or password.")
			return
		}
		respond.ServerError(w, err)
		return
	}

	accessToken, err := h.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		respond.ServerError(w, err)
		return
	}
	refreshToken, err := h.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		respond.ServerError(w, err)
		return
	}

	h.tokenService.SetAccessCookie(w, accessToken)
	h.tokenService.SetRefreshCookie(w, refreshToken)

	respond.JSON(w, http.StatusOK, newCurrentUserResponse(user))
}

// Refresh mints a new access token from a valid refresh cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(service.RefreshCookieName)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Access denied. Refresh token is invalid.")
		return
	}

	userID, err := h.tokenService.Decode(cookie.Value, service.TokenRefresh)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Access denied. Refresh token is invalid.")
		return
	}

	accessToken, err := h.tokenService.IssueAccessToken(userID)
	if err != nil {
		respond.ServerError(w, err)
		return
	}

	h.tokenService.SetAccessCookie(w, accessToken)
	respond.Message(w, http.StatusOK, "Access token refreshed.")
}

// Logout clears both token cookies. Logout is stateless: nothing is revoked
// server-side, an issued token stays valid until its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(service.AccessCookieName)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Access denied. Access token is invalid.")
		return
	}
	if _, err := h.tokenService.Decode(cookie.Value, service.TokenAccess); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Access denied. Access token is invalid.")
		return
	}

	h.tokenService.ClearCookies(w)
	respond.Message(w, http.StatusOK, "Logged out.")
}
