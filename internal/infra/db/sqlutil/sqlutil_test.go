package sqlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetails(t *testing.T) {
	assert.Equal(t, "{}", Details("  "))
	assert.Equal(t, `{"status_code":403}`, Details(`{"status_code":403}`))
	assert.Equal(t, `{"raw":"boom \"quoted\""}`, Details(`boom "quoted"`))
}

func TestPage(t *testing.T) {
	tests := []struct {
		page, size    int
		limit, offset int
	}{
		{0, 0, 20, 0},
		{1, 10, 10, 0},
		{3, 10, 10, 20},
		{2, 500, 100, 100},
	}
	for _, tt := range tests {
		limit, offset := Page(tt.page, tt.size)
		assert.Equal(t, tt.limit, limit)
		assert.Equal(t, tt.offset, offset)
	}
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", OrDash(" "))
	assert.Equal(t, "t1", OrDash("t1"))
	assert.Equal(t, 20, Limit(0))
	assert.Equal(t, 5, Limit(5))
}
