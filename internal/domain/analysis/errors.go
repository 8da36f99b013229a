package analysis

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("analysis not found")

// ValidationError rejects a request before any remote attempt.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrImageRequired = &ValidationError{Field: "image", Message: "Please select an image first"}
	ErrNoActivity    = &ValidationError{Field: "activities", Message: "Please enter at least one non-zero activity value"}
)

// SchemaError means a remote payload could not be turned into a result at all.
type SchemaError struct {
	Kind   Kind
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s response: %s", e.Kind, e.Reason)
}
