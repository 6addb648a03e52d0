package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lulc_service/internal/domain/model"
)

// AnalysisRecorder persists completed analysis runs and serves them back
// to the API.
type AnalysisRecorder interface {
	SaveReport(ctx context.Context, report *model.AnalysisReport) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
}

// RunRecord is one stored analysis run header.
type RunRecord struct {
	RunID      string    `db:"run_id" json:"run_id"`
	BBox       string    `db:"bbox" json:"bbox"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

type PostgresAnalysisRecorder struct {
	db *sqlx.DB
}

func NewPostgresAnalysisRecorder(db *sqlx.DB) *PostgresAnalysisRecorder {
	return &PostgresAnalysisRecorder{db: db}
}

func (r *PostgresAnalysisRecorder) SaveReport(ctx context.Context, report *model.AnalysisReport) error {
	const runQuery = `
		INSERT INTO analysis_runs (
			run_id, bbox, epochs, transitions, net_change, growth, recorded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)`

	epochsJSON, err := json.Marshal(report.Epochs)
	if err != nil {
		return fmt.Errorf("failed to marshal epoch statistics: %w", err)
	}
	transitionsJSON, err := json.Marshal(report.Transitions)
	if err != nil {
		return fmt.Errorf("failed to marshal transitions: %w", err)
	}
	netJSON, err := json.Marshal(report.NetChange)
	if err != nil {
		return fmt.Errorf("failed to marshal net change: %w", err)
	}
	growthJSON, err := json.Marshal(report.Growth)
	if err != nil {
		return fmt.Errorf("failed to marshal growth metrics: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, runQuery,
		report.RunID, report.BBox,
		epochsJSON, transitionsJSON, netJSON, growthJSON,
	); err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}

	// Built-area numbers are also flattened into columns so growth can
	// be queried without unpacking JSON.
	const epochQuery = `
		INSERT INTO epoch_statistics (
			run_id, epoch, valid_pixels, built_pixels, built_area, built_share
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)`

	for _, e := range report.Epochs {
		if _, err := r.db.ExecContext(ctx, epochQuery,
			report.RunID, e.Epoch, e.ValidPixels,
			e.PixelCounts[model.ClassBuilt],
			e.Areas[model.ClassBuilt],
			e.Share(model.ClassBuilt),
		); err != nil {
			return fmt.Errorf("failed to save statistics for epoch %d: %w", e.Epoch, err)
		}
	}

	return nil
}

func (r *PostgresAnalysisRecorder) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	const query = `
		SELECT run_id, bbox, recorded_at
		FROM analysis_runs
		ORDER BY recorded_at DESC
		LIMIT $1`

	var runs []RunRecord
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	return runs, nil
}
