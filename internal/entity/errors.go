package entity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrInvalidRequest     = errors.New("invalid request")
)

var (
	ErrCodeInvalid   = errors.New("invalid code")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrRouteNotFound = errors.New("unknown route")
)

// APIError carries the backend's structured detail alongside the HTTP
// status. Unwrap maps the status to a sentinel so callers can errors.Is.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
	}

	return fmt.Sprintf("api error: status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidRequest
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrBackendUnavailable
	default:
		return nil
	}
}
