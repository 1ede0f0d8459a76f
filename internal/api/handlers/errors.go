package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pkazakov/accounts-service/internal/api/respond"
	"github.com/pkazakov/accounts-service/internal/domain"
)

// writeServiceError maps a service failure to its status code and body.
// Call sites with deviating codes (delete-absent → 409) handle those before
// falling through to this mapping.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		respond.Error(w, http.StatusConflict, "User with this login already exists. Choose another and try again.")
	case errors.Is(err, domain.ErrCityNotFound):
		respond.Error(w, http.StatusConflict, "City with this ID does not exist.")
	case errors.Is(err, domain.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, "User with this ID does not exist.")
	default:
		respond.ServerError(w, err)
	}
}

// pagination reads the required 1-indexed page and size query parameters.
func pagination(r *http.Request) (page, size int, err error) {
	page, err = strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 0, 0, errors.New("page must be a positive integer")
	}
	size, err = strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 {
		return 0, 0, errors.New("size must be a positive integer")
	}
	return page, size, nil
}
