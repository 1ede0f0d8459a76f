// Package respond writes the service's JSON response and error bodies.
// Validation failures (400) carry {code, message}; every other error is a
// bare {message}. Unanticipated failures are masked behind a generic message
// and logged for operators.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const serverErrorMessage = "Something went wrong, we are already fixing it."

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error().Err(err).Msg("encode response")
		}
	}
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, messageResponse{Message: message})
}

func Error(w http.ResponseWriter, status int, message string) {
	if status == http.StatusBadRequest {
		JSON(w, status, errorResponse{Code: status, Message: message})
		return
	}
	JSON(w, status, messageResponse{Message: message})
}

func ServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("internal error")
	Error(w, http.StatusInternalServerError, serverErrorMessage)
}
