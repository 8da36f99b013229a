// Package prompt builds the instruction text sent to generative endpoints and
// pulls the structured JSON object back out of free-form replies.
package prompt

import (
	"strings"
	"unicode"
)

// Clean removes control characters (newlines included) from user supplied
// text before it is interpolated into a prompt. Nothing else is escaped.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

type builder struct{ strings.Builder }

// sentence appends "<format value>. " only when the cleaned value is not blank.
func (b *builder) sentence(prefix, value, suffix string) {
	if v := Clean(value); v != "" {
		b.WriteString(prefix)
		b.WriteString(v)
		b.WriteString(suffix)
	}
}
