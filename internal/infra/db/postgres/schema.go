package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS eco_analyses (
  id             TEXT             PRIMARY KEY,
  tenant_id      TEXT             NOT NULL,
  kind           TEXT             NOT NULL,
  source         TEXT             NOT NULL,
  filename       TEXT             NOT NULL DEFAULT '',
  image_url      TEXT             NOT NULL DEFAULT '',
  location       TEXT             NOT NULL DEFAULT '',
  result_json    JSONB            NOT NULL,
  confidence     DOUBLE PRECISION NOT NULL DEFAULT 0,
  failure_reason TEXT             NOT NULL DEFAULT '',
  created_at     TIMESTAMPTZ      NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_eco_analyses_tenant_kind ON eco_analyses (tenant_id, kind, created_at DESC)`, `
CREATE TABLE IF NOT EXISTS eco_analysis_failures (
  id           BIGSERIAL   PRIMARY KEY,
  tenant_id    TEXT        NOT NULL,
  analysis_id  TEXT        NOT NULL,
  kind         TEXT        NOT NULL,
  phase        TEXT        NOT NULL,
  message      TEXT        NOT NULL,
  details_json JSONB       NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_eco_failures_analysis ON eco_analysis_failures (tenant_id, analysis_id, created_at DESC)`,
}

// EnsureSchema creates tables and indexes when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	return nil
}
