package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/model"
)

// SaveAnalysisRecord upserts the dashboard snapshot for a session. Each
// session keeps exactly one snapshot; re-analysis replaces it.
func (s *SQLiteStorage) SaveAnalysisRecord(ctx context.Context, record *model.AnalysisRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(record.SessionID, "sessionID"); err != nil {
		return err
	}
	if record.Dashboard == nil {
		return fmt.Errorf("%w: dashboard", ErrNilParameter)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.AnalyzedAt.IsZero() {
		record.AnalyzedAt = time.Now().UTC()
	}
	record.TotalRecords = record.Dashboard.TotalRecords
	record.HealthScore = record.Dashboard.HealthScore

	dashboard, err := json.Marshal(record.Dashboard)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_records (id, session_id, dashboard, total_records, health_score, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			dashboard = excluded.dashboard,
			total_records = excluded.total_records,
			health_score = excluded.health_score,
			analyzed_at = excluded.analyzed_at
	`, record.ID, record.SessionID, string(dashboard), record.TotalRecords,
		record.HealthScore, record.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}

	return nil
}

// GetAnalysisRecord returns the stored snapshot for a session.
func (s *SQLiteStorage) GetAnalysisRecord(ctx context.Context, sessionID string) (*model.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return nil, err
	}

	var record model.AnalysisRecord
	var dashboard string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, dashboard, total_records, health_score, analyzed_at
		FROM analysis_records
		WHERE session_id = ?
	`, sessionID).Scan(&record.ID, &record.SessionID, &dashboard,
		&record.TotalRecords, &record.HealthScore, &record.AnalyzedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: analysis for session %s", common.ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis record: %w", err)
	}

	record.Dashboard = &model.DashboardData{}
	if err := json.Unmarshal([]byte(dashboard), record.Dashboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard: %w", err)
	}

	return &record, nil
}

// ListAnalysisRecords returns summary rows for every stored analysis, newest
// first. Dashboards are left unloaded; use GetAnalysisRecord for the snapshot.
func (s *SQLiteStorage) ListAnalysisRecords(ctx context.Context) ([]model.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, total_records, health_score, analyzed_at
		FROM analysis_records
		ORDER BY analyzed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.AnalysisRecord
	for rows.Next() {
		var record model.AnalysisRecord
		if err := rows.Scan(&record.ID, &record.SessionID, &record.TotalRecords,
			&record.HealthScore, &record.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteAnalysisRecord removes the stored snapshot for a session.
func (s *SQLiteStorage) DeleteAnalysisRecord(ctx context.Context, sessionID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM analysis_records WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: analysis for session %s", common.ErrNotFound, sessionID)
	}

	return nil
}
