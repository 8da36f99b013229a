package analysis

import (
	"math"
	"strings"
)

// Fields is a decoded JSON object coming back from a model. The accessors
// never fail: a missing or mistyped value yields the supplied default.
type Fields map[string]any

// Has reports whether at least one of keys is present.
func (f Fields) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := f[k]; ok {
			return true
		}
	}
	return false
}

func (f Fields) String(key, def string) string {
	s, ok := f[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

// OneOf returns the value when it matches one of allowed (exact), else def.
func (f Fields) OneOf(key string, allowed []string, def string) string {
	s, ok := f[key].(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// Strings returns the non-blank string items of an array. The result is never
// empty: def is copied in when nothing usable is found.
func (f Fields) Strings(key string, def []string) []string {
	raw, ok := f[key].([]any)
	if ok {
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return append([]string(nil), def...)
}

func (f Fields) Number(key string, def float64) float64 {
	v, ok := f[key].(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// NumberMap keeps only numeric members of a nested object.
func (f Fields) NumberMap(key string) map[string]float64 {
	out := map[string]float64{}
	raw, ok := f[key].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range raw {
		if n, ok := v.(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			out[k] = n
		}
	}
	return out
}

// Confidence reads a score and clamps it into [0,1].
func (f Fields) Confidence(key string, def float64) float64 {
	return Clamp01(f.Number(key, def))
}

func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
