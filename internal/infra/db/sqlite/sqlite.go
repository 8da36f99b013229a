// Package sqlite is the embedded default store, backed by the pure-Go
// modernc.org/sqlite driver. Timestamps are kept as unix milliseconds.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/infra/db/sqlutil"
)

// Open opens (or creates) the database file and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: empty path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// satu koneksi saja, sqlite tidak suka writer paralel
	db.SetMaxOpenConns(1)

	for _, stmt := range pragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}
	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var pragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS eco_analyses (
  id             TEXT    PRIMARY KEY,
  tenant_id      TEXT    NOT NULL,
  kind           TEXT    NOT NULL,
  source         TEXT    NOT NULL,
  filename       TEXT    NOT NULL DEFAULT '',
  image_url      TEXT    NOT NULL DEFAULT '',
  location       TEXT    NOT NULL DEFAULT '',
  result_json    TEXT    NOT NULL,
  confidence     REAL    NOT NULL DEFAULT 0,
  failure_reason TEXT    NOT NULL DEFAULT '',
  created_at     INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_eco_analyses_tenant_kind ON eco_analyses (tenant_id, kind, created_at)`, `
CREATE TABLE IF NOT EXISTS eco_analysis_failures (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  tenant_id    TEXT    NOT NULL,
  analysis_id  TEXT    NOT NULL,
  kind         TEXT    NOT NULL,
  phase        TEXT    NOT NULL,
  message      TEXT    NOT NULL,
  details_json TEXT    NOT NULL,
  created_at   INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_eco_failures_analysis ON eco_analysis_failures (tenant_id, analysis_id, created_at)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

const analysisColumns = `id, tenant_id, kind, source, filename, image_url, location,
       result_json, confidence, failure_reason, created_at`

func (r *AnalysisRepository) Save(ctx context.Context, a *analysis.Record) error {
	const q = `
INSERT INTO eco_analyses
  (id, tenant_id, kind, source, filename, image_url, location,
   result_json, confidence, failure_reason, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT (id) DO UPDATE SET
  source=excluded.source,
  image_url=excluded.image_url,
  result_json=excluded.result_json,
  confidence=excluded.confidence,
  failure_reason=excluded.failure_reason;`

	_, err := r.db.ExecContext(ctx, q,
		string(a.ID), sqlutil.OrDash(a.TenantID), string(a.Kind), string(a.Source),
		a.Filename, a.ImageURL, a.Location,
		sqlutil.OrEmptyObject(a.Result), a.Confidence, a.FailureReason, toMillis(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving analysis %s: %w", a.ID, err)
	}
	return nil
}

func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id analysis.AnalysisID) (*analysis.Record, error) {
	q := `SELECT ` + analysisColumns + ` FROM eco_analyses WHERE tenant_id=? AND id=? LIMIT 1`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, tenant, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, analysis.ErrNotFound
	}
	return rec, err
}

func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, kind analysis.Kind, page, pageSize int) ([]*analysis.Record, error) {
	limit, offset := sqlutil.Page(page, pageSize)

	query := `SELECT ` + analysisColumns + ` FROM eco_analyses WHERE tenant_id=?`
	args := []any{tenant}
	if kind != "" {
		query += " AND kind=?"
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

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
	var created int64
	if err := s.Scan(&id, &rec.TenantID, &kind, &source, &rec.Filename, &rec.ImageURL, &rec.Location,
		&rec.Result, &rec.Confidence, &rec.FailureReason, &created); err != nil {
		return nil, err
	}
	rec.ID = analysis.AnalysisID(id)
	rec.Kind = analysis.Kind(kind)
	rec.Source = analysis.Source(source)
	rec.CreatedAt = fromMillis(created)
	return &rec, nil
}

type FailureRepository struct{ db *sql.DB }

func NewFailureRepository(db *sql.DB) *FailureRepository { return &FailureRepository{db: db} }

func (r *FailureRepository) Save(ctx context.Context, f *analysis.Failure) error {
	const q = `
INSERT INTO eco_analysis_failures
  (tenant_id, analysis_id, kind, phase, message, details_json, created_at)
VALUES (?,?,?,?,?,?,?)`
	msg := f.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	res, err := r.db.ExecContext(ctx, q,
		sqlutil.OrDash(f.TenantID), sqlutil.OrDash(f.AnalysisID),
		sqlutil.OrDash(string(f.Kind)), sqlutil.OrDash(string(f.Phase)),
		msg, sqlutil.Details(f.DetailsJSON), toMillis(f.CreatedAt))
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		f.ID = id
	}
	return nil
}

func (r *FailureRepository) ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*analysis.Failure, error) {
	const q = `
SELECT id, tenant_id, analysis_id, kind, phase, message, details_json, created_at
FROM eco_analysis_failures
WHERE tenant_id=? AND analysis_id=?
ORDER BY created_at DESC, id DESC
LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, tenant, analysisID, sqlutil.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*analysis.Failure
	for rows.Next() {
		var f analysis.Failure
		var kind, phase string
		var created int64
		if err := rows.Scan(&f.ID, &f.TenantID, &f.AnalysisID, &kind, &phase, &f.Message, &f.DetailsJSON, &created); err != nil {
			return nil, err
		}
		f.Kind = analysis.Kind(kind)
		f.Phase = analysis.Phase(phase)
		f.CreatedAt = fromMillis(created)
		out = append(out, &f)
	}
	return out, rows.Err()
}
