// Package handler translates HTTP requests into service calls and wraps
// every response in the API envelope: {"success":true,"data":...} on
// success, {"success":false,"error":...} on failure.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Response is the success envelope.
type Response struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes a JSON body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// writePage writes a success envelope with pagination.
func writePage(w http.ResponseWriter, status int, data interface{}, pagination model.Pagination) {
	writeJSON(w, status, Response{Success: true, Data: data, Pagination: &pagination})
}

// statusForCode maps domain error codes onto HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidationFailed, model.ErrCodeInsufficientInventory:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error onto the failure envelope. Domain errors
// keep their message; anything else is masked as an internal error.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusForCode(domainErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Msg("handler error")
		}
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

// writeBadRequest rejects a request before it reaches a service.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
