package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/procurelens/procurelens/internal/model"
)

// SaveAssessmentRecord stores one file assessment under its session.
func (s *SQLiteStorage) SaveAssessmentRecord(ctx context.Context, record *model.AssessmentRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(record.SessionID, "sessionID"); err != nil {
		return err
	}
	if err := validateString(record.FileID, "fileID"); err != nil {
		return err
	}
	if record.Assessment == nil {
		return fmt.Errorf("%w: assessment", ErrNilParameter)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.AnalyzedAt.IsZero() {
		record.AnalyzedAt = time.Now().UTC()
	}

	assessment, err := json.Marshal(record.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessment_records (id, session_id, file_id, assessment, analyzed_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.SessionID, record.FileID, string(assessment), record.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("failed to save assessment record: %w", err)
	}

	return nil
}

// GetAssessmentRecords returns every stored assessment for a session, oldest
// first.
func (s *SQLiteStorage) GetAssessmentRecords(ctx context.Context, sessionID string) ([]model.AssessmentRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, file_id, assessment, analyzed_at
		FROM assessment_records
		WHERE session_id = ?
		ORDER BY analyzed_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.AssessmentRecord
	for rows.Next() {
		var record model.AssessmentRecord
		var assessment string
		if err := rows.Scan(&record.ID, &record.SessionID, &record.FileID,
			&assessment, &record.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment record: %w", err)
		}

		record.Assessment = &model.FileAssessment{}
		if err := json.Unmarshal([]byte(assessment), record.Assessment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}
