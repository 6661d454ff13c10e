package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datalens/domain/analysis"
	"datalens/domain/core"
	"datalens/internal/errors"
	"datalens/ports"
)

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Save inserts a finished analysis snapshot
func (r *analysisRepository) Save(ctx context.Context, stored *analysis.StoredAnalysis) error {
	resultJSON, err := json.Marshal(stored.Result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal analysis result")
	}

	query := `INSERT INTO analyses (
		id, file_name, row_count, column_count, result, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		stored.ID, stored.FileName, stored.RowCount, stored.ColumnCount, resultJSON, stored.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to save analysis")
	}
	return nil
}

// GetByID retrieves a stored analysis by its ID
func (r *analysisRepository) GetByID(ctx context.Context, id core.AnalysisID) (*analysis.StoredAnalysis, error) {
	query := `SELECT id, file_name, row_count, column_count, result, created_at
		FROM analyses WHERE id = $1`

	var stored analysis.StoredAnalysis
	var resultJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stored.ID, &stored.FileName, &stored.RowCount, &stored.ColumnCount, &resultJSON, &stored.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(fmt.Sprintf("analysis %s", id))
		}
		return nil, errors.Wrap(err, "failed to get analysis")
	}

	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &stored.Result); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal analysis result")
		}
	}
	return &stored, nil
}

// List retrieves stored analyses newest first, without the full result
// payload (RawData can be large; use GetByID for the complete snapshot).
func (r *analysisRepository) List(ctx context.Context, limit, offset int) ([]*analysis.StoredAnalysis, error) {
	query := `SELECT id, file_name, row_count, column_count, created_at
		FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list analyses")
	}
	defer rows.Close()

	var analyses []*analysis.StoredAnalysis
	for rows.Next() {
		var stored analysis.StoredAnalysis
		if err := rows.Scan(&stored.ID, &stored.FileName, &stored.RowCount, &stored.ColumnCount, &stored.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan analysis row")
		}
		analyses = append(analyses, &stored)
	}
	return analyses, rows.Err()
}

// Delete removes a stored analysis
func (r *analysisRepository) Delete(ctx context.Context, id core.AnalysisID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete analysis")
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return errors.NotFound(fmt.Sprintf("analysis %s", id))
	}
	return nil
}
