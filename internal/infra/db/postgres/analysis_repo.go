package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/infra/db/sqlutil"
)

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

const analysisColumns = `id, tenant_id, kind, source, filename, image_url, location,
       result_json::text, confidence, failure_reason, created_at`

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *analysis.Record) error {
	const q = `
INSERT INTO eco_analyses
  (id, tenant_id, kind, source, filename, image_url, location,
   result_json, confidence, failure_reason, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
  source=EXCLUDED.source,
  image_url=EXCLUDED.image_url,
  result_json=EXCLUDED.result_json,
  confidence=EXCLUDED.confidence,
  failure_reason=EXCLUDED.failure_reason;`

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		string(a.ID), sqlutil.OrDash(a.TenantID), string(a.Kind), string(a.Source),
		a.Filename, a.ImageURL, a.Location,
		sqlutil.OrEmptyObject(a.Result), a.Confidence, a.FailureReason, created,
	)
	if err != nil {
		return fmt.Errorf("saving analysis %s: %w", a.ID, err)
	}
	return nil
}

func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id analysis.AnalysisID) (*analysis.Record, error) {
	q := `SELECT ` + analysisColumns + `
FROM eco_analyses
WHERE tenant_id=$1 AND id=$2
LIMIT 1;`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, tenant, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, analysis.ErrNotFound
	}
	return rec, err
}

// Paginate returns a page of records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, kind analysis.Kind, page, pageSize int) ([]*analysis.Record, error) {
	limit, offset := sqlutil.Page(page, pageSize)

	query := `SELECT ` + analysisColumns + `
FROM eco_analyses
WHERE tenant_id=$1`
	args := []any{tenant}
	if kind != "" {
		args = append(args, string(kind))
		query += fmt.Sprintf(" AND kind=$%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf("\nORDER BY created_at DESC, id DESC\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	out := []*analysis.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*analysis.Record, error) {
	var rec analysis.Record
	var id, kind, source string
	if err := s.Scan(&id, &rec.TenantID, &kind, &source, &rec.Filename, &rec.ImageURL, &rec.Location,
		&rec.Result, &rec.Confidence, &rec.FailureReason, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.ID = analysis.AnalysisID(id)
	rec.Kind = analysis.Kind(kind)
	rec.Source = analysis.Source(source)
	return &rec, nil
}
