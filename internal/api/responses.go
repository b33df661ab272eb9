package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sapchat/internal/answer"
	app_errors "sapchat/internal/errors"
)

// This file contains shared DTOs for API responses and helpers for sending
// consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that don't
// return a full resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// ReplyResponse carries the statement returned by the quick-reply exchange.
type ReplyResponse struct {
	Statement string `json:"statement"`
}

// ToggleResponse carries the new value of a flipped session flag.
type ToggleResponse struct {
	Enabled bool `json:"enabled"`
}

// respondWithError is the centralized error handler for the API layer. It
// maps business-layer sentinels and answer-client failures to HTTP status
// codes and formats a standard JSON error body.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	var reqErr *answer.RequestError
	var malformedErr *answer.MalformedError

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages from the service layer are already
		// user-friendly.
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &reqErr):
		statusCode = http.StatusBadGateway
		message = reqErr.Detail
	case errors.As(err, &malformedErr):
		statusCode = http.StatusBadGateway
		message = "The answer service returned an unreadable response."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals a payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
