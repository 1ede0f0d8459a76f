package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pkazakov/accounts-service/internal/api/middleware"
	"github.com/pkazakov/accounts-service/internal/api/respond"
	"github.com/pkazakov/accounts-service/internal/service"
)

// UserHandler serves the self-service profile routes and the general listing.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. Access token is invalid.")
		return
	}

	respond.JSON(w, http.StatusOK, newCurrentUserResponse(user))
}

func (h *UserHandler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access denied. Access token is invalid.")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.userService.UpdateCurrent(r.Context(), user, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		OtherName: req.OtherName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  timeFromDate(req.Birthday),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, newUpdateUserResponse(updated))
}

// List returns the paginated brief projection available to every
// authenticated user. City hints are a privileged-listing concern and are
// not exposed here.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, err := pagination(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	users, _, total, err := h.userService.ListPage(r.Context(), page, size)
	if err != nil {
		respond.ServerError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, UsersListResponse{
		Data: newUserListElements(users),
		Meta: UsersListMeta{
			Pagination: Pagination{Total: total, Page: page, Size: size},
		},
	})
}
