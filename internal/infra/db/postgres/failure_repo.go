package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/infra/db/sqlutil"
)

type FailureRepository struct{ db *sql.DB }

func NewFailureRepository(db *sql.DB) *FailureRepository { return &FailureRepository{db: db} }

func (r *FailureRepository) Save(ctx context.Context, f *analysis.Failure) error {
	const q = `
INSERT INTO eco_analysis_failures
  (tenant_id, analysis_id, kind, phase, message, details_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id;`
	msg := f.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return r.db.QueryRowContext(ctx, q,
		sqlutil.OrDash(f.TenantID), sqlutil.OrDash(f.AnalysisID),
		sqlutil.OrDash(string(f.Kind)), sqlutil.OrDash(string(f.Phase)),
		msg, sqlutil.Details(f.DetailsJSON), created,
	).Scan(&f.ID)
}

func (r *FailureRepository) ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*analysis.Failure, error) {
	const q = `
SELECT id, tenant_id, analysis_id, kind, phase, message, details_json::text, created_at
FROM eco_analysis_failures
WHERE tenant_id=$1 AND analysis_id=$2
ORDER BY created_at DESC, id DESC
LIMIT $3;`
	rows, err := r.db.QueryContext(ctx, q, tenant, analysisID, sqlutil.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*analysis.Failure
	for rows.Next() {
		var f analysis.Failure
		var kind, phase string
		if err := rows.Scan(&f.ID, &f.TenantID, &f.AnalysisID, &kind, &phase, &f.Message, &f.DetailsJSON, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Kind = analysis.Kind(kind)
		f.Phase = analysis.Phase(phase)
		out = append(out, &f)
	}
	return out, rows.Err()
}
