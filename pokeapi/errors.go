package pokeapi

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrValidation indicates a required argument was missing
	ErrValidation = errors.New("invalid argument")
	// ErrNotFound indicates the requested Pokémon does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrFetch indicates the API answered with a non-success status
	ErrFetch = errors.New("unsuccessful API response")
)

// ValidationError is returned before any request is made when a required
// argument is empty.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned when a single-entity lookup answers 404
type NotFoundError struct {
	Identifier string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Pokémon no encontrado: %s", e.Identifier)
}

// Is reports whether target is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FetchError represents any other non-2xx response
type FetchError struct {
	Message    string
	StatusCode int
	StatusText string
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return strings.TrimSpace(fmt.Sprintf("%s: %d %s", e.Message, e.StatusCode, e.StatusText))
}

// Is reports whether target is ErrFetch
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// IsNotFound checks if the error indicates a not found response
func (e *FetchError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError checks if the API failed on its side
func (e *FetchError) IsServerError() bool {
	return e.StatusCode >= 500
}
