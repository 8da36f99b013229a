package middleware

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Input validation and sanitization utilities

// MaxImageBytes is the upload limit for a single image
const MaxImageBytes = 10 << 20

// MaxTextLen caps free text fields such as location and notes
const MaxTextLen = 500

var tenantPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateAnalysisID accepts only UUIDs
func ValidateAnalysisID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &analysis.ValidationError{Field: "id", Message: "invalid analysis ID format"}
	}
	return nil
}

// ValidateKind accepts an empty kind (no filter) or one of the known kinds
func ValidateKind(kind string) (analysis.Kind, error) {
	k := analysis.Kind(strings.ToLower(strings.TrimSpace(kind)))
	if k == "" || k.Valid() {
		return k, nil
	}
	return "", &analysis.ValidationError{Field: "kind", Message: fmt.Sprintf("Unknown analysis kind %q", kind)}
}

// ValidateUpload enforces the size limit and sniffs the content, the
// client supplied Content-Type is not trusted. Returns the detected type.
func ValidateUpload(data []byte) (string, error) {
	if len(data) == 0 {
		return "", analysis.ErrImageRequired
	}
	if len(data) > MaxImageBytes {
		return "", &analysis.ValidationError{Field: "image", Message: "Image must be 10 MB or smaller"}
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "", &analysis.ValidationError{Field: "image", Message: "Please upload an image file"}
	}
	return ct, nil
}

// ValidateText sanitizes a free text field and enforces MaxTextLen
func ValidateText(field, value string) (string, error) {
	clean := SanitizeString(value)
	if len([]rune(clean)) > MaxTextLen {
		return "", &analysis.ValidationError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, MaxTextLen)}
	}
	return clean, nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// ValidatePage parses a 1-based page number, default 1
func ValidatePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// ValidateLimit validates pagination limit
func ValidateLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
