package pipeline

import (
	"time"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Result is implemented by every domain result; Score is the confidence
// stored alongside the record.
type Result interface {
	Score() float64
}

// Report is what a service hands back for one analysis run.
type Report[T Result] struct {
	ID            analysis.AnalysisID     `json:"id"`
	Kind          analysis.Kind           `json:"kind"`
	Source        analysis.Source         `json:"source"`
	Result        T                       `json:"result"`
	FailureReason string                  `json:"failure_reason,omitempty"`
	ImageURL      string                  `json:"image_url,omitempty"`
	Location      string                  `json:"location,omitempty"`
	Profile       *analysis.ImageProfile  `json:"profile,omitempty"`
	Metadata      *analysis.ImageMetadata `json:"metadata,omitempty"`
	States        []analysis.State        `json:"states"`
	Cached        bool                    `json:"cached"`
	CreatedAt     time.Time               `json:"created_at"`
}

// Fallback reports whether the result came from the local generator.
func (r *Report[T]) Fallback() bool { return r.Source == analysis.SourceFallback }

func (r *Report[T]) clone() *Report[T] {
	c := *r
	c.States = append([]analysis.State(nil), r.States...)
	return &c
}
