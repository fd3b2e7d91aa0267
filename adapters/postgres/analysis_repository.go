package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"scifig/adapters/api"
	"scifig/domain/core"
	"scifig/internal/errors"
)

// analysisRepository implements the AnalysisArchive interface on
// Postgres. The workflow trace is stored as a JSONB column so schema
// changes in the trace never require a migration.
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis archive repository
func NewAnalysisRepository(db *sqlx.DB) api.AnalysisArchive {
	return &analysisRepository{db: db}
}

// Schema is the DDL for the analyses table
const Schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	workflow   JSONB NOT NULL
);`

// EnsureSchema creates the analyses table if it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return errors.DatabaseError("failed to ensure analyses schema", err)
	}
	return nil
}

// Save inserts an archived analysis
func (r *analysisRepository) Save(ctx context.Context, record *api.ArchivedAnalysis) error {
	workflowJSON, err := json.Marshal(record.Workflow)
	if err != nil {
		return errors.DatabaseError("failed to marshal workflow", err)
	}

	query := `INSERT INTO analyses (id, created_at, workflow) VALUES ($1, $2, $3)`
	_, err = r.db.ExecContext(ctx, query, record.ID, time.Time(record.CreatedAt), workflowJSON)
	if err != nil {
		return errors.DatabaseError("failed to save analysis", err)
	}
	return nil
}

// GetByID retrieves an archived analysis by its ID
func (r *analysisRepository) GetByID(ctx context.Context, id core.ID) (*api.ArchivedAnalysis, error) {
	query := `SELECT id, created_at, workflow FROM analyses WHERE id = $1`

	var record api.ArchivedAnalysis
	var createdAt time.Time
	var workflowJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(&record.ID, &createdAt, &workflowJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis not found: %s", id)
		}
		return nil, errors.DatabaseError("failed to get analysis", err)
	}

	record.CreatedAt = core.Timestamp(createdAt)
	if err := json.Unmarshal(workflowJSON, &record.Workflow); err != nil {
		return nil, errors.DatabaseError("failed to unmarshal workflow", err)
	}
	return &record, nil
}
