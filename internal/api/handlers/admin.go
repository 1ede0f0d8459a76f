package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkazakov/accounts-service/internal/api/respond"
	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/service"
)

// AdminHandler serves the privileged /private namespace: full user CRUD and
// the listing with city hints.
type AdminHandler struct {
	userService *service.UserService
}

func NewAdminHandler(userService *service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, err := pagination(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	users, hints, total, err := h.userService.ListPage(r.Context(), page, size)
	if err != nil {
		respond.ServerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, PrivateUsersListResponse{
		Data: newUserListElements(users),
		Meta: PrivateUsersListMeta{
			Pagination: Pagination{Total: total, Page: page, Size: size},
			Hint:       CityHintMeta{City: hints},
		},
	})
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PrivateCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "First name, last name, email and password are required.")
		return
	}

	user, err := h.userService.Create(r.Context(), service.CreateUserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		OtherName:      req.OtherName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       timeFromDate(req.Birthday),
		CityID:         req.City,
		AdditionalInfo: req.AdditionalInfo,
		IsAdmin:        req.IsAdmin,
		Password:       req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, newPrivateDetailUserResponse(user))
}

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, newPrivateDetailUserResponse(user))
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req PrivateUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.userService.UpdateByID(r.Context(), id, service.AdminUpdateUserInput{
		UpdateUserInput: service.UpdateUserInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			OtherName: req.OtherName,
			Email:     req.Email,
			Phone:     req.Phone,
			Birthday:  timeFromDate(req.Birthday),
		},
		CityID:         req.City,
		AdditionalInfo: req.AdditionalInfo,
		IsAdmin:        req.IsAdmin,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, newPrivateDetailUserResponse(user))
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		// A missing delete target reports a conflict, not a 404. This is
		// the contract callers observe; do not normalize it.
		if errors.Is(err, domain.ErrUserNotFound) {
			respond.Error(w, http.StatusConflict, "User with this ID does not exist.")
			return
		}
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func userID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "User ID must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}
