// Package sqlutil holds the value normalization shared by the SQL
// repositories.
package sqlutil

import (
	"encoding/json"
	"strings"
)

// DefaultPageSize is used when the caller passes page_size <= 0.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrDash returns "-" when the input is empty/whitespace
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// OrEmptyObject keeps a result column valid JSON.
func OrEmptyObject(s string) string {
	if strings.TrimSpace(s) == "" {
		return "{}"
	}
	return s
}

// Details makes sure the details column holds a JSON document; anything
// else is wrapped as {"raw": ...}.
func Details(s string) string {
	if strings.TrimSpace(s) == "" {
		return "{}"
	}
	var js any
	if json.Unmarshal([]byte(s), &js) != nil {
		b, _ := json.Marshal(map[string]string{"raw": s})
		return string(b)
	}
	return s
}

// Page converts page/pageSize into limit/offset.
func Page(page, pageSize int) (limit, offset int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// Limit applies the default list size.
func Limit(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	return n
}
