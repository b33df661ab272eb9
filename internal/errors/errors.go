package errors

import "errors"

// This package defines the application's sentinel errors. Services return
// these without knowing anything about HTTP; the API layer matches them with
// `errors.Is()` and maps them to status codes.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed business rule
	// validation. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrInternal signifies an unexpected server-side error. Used as a
	// generic fallback so implementation details never leak to the client.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
