package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code  int
		kind  StatusKind
		label string
	}{
		{400, StatusBadRequest, "Invalid request parameters"},
		{401, StatusUnauthorized, "Invalid API key or unauthorized"},
		{403, StatusForbidden, "API key doesn't have access to this resource"},
		{404, StatusNotFound, "Requested resource not found"},
		{429, StatusRateLimited, "Rate limit exceeded"},
		{500, StatusServer, "Server error"},
		{503, StatusServer, "Server error"},
		{418, StatusUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			kind, label := Classify(tt.code)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestStatusError(t *testing.T) {
	err := NewStatusError(429, "quota")
	assert.Equal(t, "API Error (429): Rate limit exceeded - quota", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrQuotaExceeded))

	other := NewStatusError(418, "teapot")
	assert.Equal(t, "API Error (418): teapot", other.Error())
	assert.False(t, errors.Is(other, ErrQuotaExceeded))
}

func TestNotConfiguredError(t *testing.T) {
	err := error(&NotConfiguredError{Provider: "gemini"})
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Contains(t, err.Error(), "API call skipped")
}

func TestOutcome(t *testing.T) {
	ok := Success(3)
	v, good := ok.Get()
	assert.True(t, good)
	assert.Equal(t, 3, v)
	assert.NoError(t, ok.Reason())

	bad := Failure[int](nil)
	assert.False(t, bad.OK())
	assert.ErrorIs(t, bad.Reason(), ErrMalformedResponse)
}

func TestGenerateRequest_WithDefaults(t *testing.T) {
	r := GenerateRequest{Temperature: 0.2, MaxTokens: 4096}.WithDefaults()
	assert.Equal(t, float32(0.2), r.Temperature)
	assert.Equal(t, int32(4096), r.MaxTokens)
	assert.Equal(t, DefaultTopP, r.TopP)
	assert.Equal(t, DefaultTopK, r.TopK)
}
