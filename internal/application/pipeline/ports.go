package pipeline

import (
	"time"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Cache holds finished reports keyed by request fingerprint.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
}

// Recorder receives run metrics.
type Recorder interface {
	AnalysisCompleted(kind analysis.Kind, source analysis.Source, elapsed time.Duration)
	FailureRecorded(kind analysis.Kind, phase analysis.Phase)
}
