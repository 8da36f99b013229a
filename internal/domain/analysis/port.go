package analysis

import "context"

// Repository port for persisting and querying analyses
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, tenant string, id AnalysisID) (*Record, error)
	// Paginate lists newest first; an empty kind matches every kind.
	Paginate(ctx context.Context, tenant string, kind Kind, page, pageSize int) ([]*Record, error)
}

// FailureRepository persists remote failures for later inspection
type FailureRepository interface {
	Save(ctx context.Context, f *Failure) error
	ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*Failure, error)
}

// ImageStore keeps uploaded images, returns the object URL
type ImageStore interface {
	Upload(ctx context.Context, key string, u *Upload) (string, error)
}
