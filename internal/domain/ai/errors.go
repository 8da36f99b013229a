package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

var (
	// ErrNotConfigured is matched by every NotConfiguredError.
	ErrNotConfigured     = errors.New("ai client not configured")
	ErrMalformedResponse = errors.New("API returned an empty or invalid response")
	ErrTimeout           = errors.New("API request timed out after 30 seconds")
)

// StatusKind classifies a non-success HTTP status.
type StatusKind string

const (
	StatusBadRequest   StatusKind = "bad-request"
	StatusUnauthorized StatusKind = "unauthorized"
	StatusForbidden    StatusKind = "forbidden"
	StatusNotFound     StatusKind = "not-found"
	StatusRateLimited  StatusKind = "rate-limited"
	StatusServer       StatusKind = "server-error"
	StatusUnknown      StatusKind = "unknown"
)

// Classify maps an HTTP status code to its kind and human label.
func Classify(code int) (StatusKind, string) {
	switch {
	case code == http.StatusBadRequest:
		return StatusBadRequest, "Invalid request parameters"
	case code == http.StatusUnauthorized:
		return StatusUnauthorized, "Invalid API key or unauthorized"
	case code == http.StatusForbidden:
		return StatusForbidden, "API key doesn't have access to this resource"
	case code == http.StatusNotFound:
		return StatusNotFound, "Requested resource not found"
	case code == http.StatusTooManyRequests:
		return StatusRateLimited, "Rate limit exceeded"
	case code >= 500:
		return StatusServer, "Server error"
	}
	return StatusUnknown, ""
}

// StatusError is a classified non-success response from a provider.
type StatusError struct {
	Code    int
	Kind    StatusKind
	Message string
}

func NewStatusError(code int, message string) *StatusError {
	kind, _ := Classify(code)
	return &StatusError{Code: code, Kind: kind, Message: message}
}

func (e *StatusError) Error() string {
	if _, label := Classify(e.Code); label != "" {
		return fmt.Sprintf("API Error (%d): %s - %s", e.Code, label, e.Message)
	}
	return fmt.Sprintf("API Error (%d): %s", e.Code, e.Message)
}

// Is lets callers match rate limiting with errors.Is(err, ErrQuotaExceeded).
func (e *StatusError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.Kind == StatusRateLimited
}

// NotConfiguredError is returned when a client has no credential (demo mode).
type NotConfiguredError struct {
	Provider string
	Detail   string
}

func (e *NotConfiguredError) Error() string {
	if e.Detail == "" {
		return e.Provider + ": using demo mode - API call skipped"
	}
	return e.Provider + ": using demo mode - " + e.Detail
}

func (e *NotConfiguredError) Is(target error) bool { return target == ErrNotConfigured }
