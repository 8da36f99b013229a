package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS eco_analyses (
  id             VARCHAR(64)   NOT NULL PRIMARY KEY,
  tenant_id      VARCHAR(64)   NOT NULL,
  kind           VARCHAR(32)   NOT NULL,
  source         VARCHAR(16)   NOT NULL,
  filename       VARCHAR(255)  NOT NULL DEFAULT '',
  image_url      VARCHAR(1024) NOT NULL DEFAULT '',
  location       VARCHAR(255)  NOT NULL DEFAULT '',
  result_json    LONGTEXT      NOT NULL,
  confidence     DOUBLE        NOT NULL DEFAULT 0,
  failure_reason VARCHAR(1024) NOT NULL DEFAULT '',
  created_at     DATETIME(3)   NOT NULL,
  INDEX idx_eco_analyses_tenant_kind (tenant_id, kind, created_at)
)`, `
CREATE TABLE IF NOT EXISTS eco_analysis_failures (
  id           BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  tenant_id    VARCHAR(64)  NOT NULL,
  analysis_id  VARCHAR(64)  NOT NULL,
  kind         VARCHAR(32)  NOT NULL,
  phase        VARCHAR(16)  NOT NULL,
  message      TEXT         NOT NULL,
  details_json LONGTEXT     NOT NULL,
  created_at   DATETIME(3)  NOT NULL,
  INDEX idx_eco_failures_analysis (tenant_id, analysis_id, created_at)
)`}

// EnsureSchema creates the tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysql schema: %w", err)
		}
	}
	return nil
}
