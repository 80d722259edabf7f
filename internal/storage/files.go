package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/model"
)

// SaveUploadedFile stores one uploaded file under its session. A missing ID
// is assigned on save.
func (s *SQLiteStorage) SaveUploadedFile(ctx context.Context, file *model.UploadedFile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if file == nil {
		return fmt.Errorf("%w: file", ErrNilParameter)
	}
	if err := validateString(file.SessionID, "sessionID"); err != nil {
		return err
	}
	if err := validateString(file.Filename, "filename"); err != nil {
		return err
	}

	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO uploaded_files (
			id, session_id, filename, original_name, file_type, file_size, content, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, file.ID, file.SessionID, file.Filename, file.OriginalName, file.FileType,
		file.FileSize, file.Content, file.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to save uploaded file: %w", err)
	}

	return nil
}

// GetUploadedFiles returns all files stored for a session, oldest first.
func (s *SQLiteStorage) GetUploadedFiles(ctx context.Context, sessionID string) ([]model.UploadedFile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, filename, original_name, file_type, file_size, content, uploaded_at
		FROM uploaded_files
		WHERE session_id = ?
		ORDER BY uploaded_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploaded files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []model.UploadedFile
	for rows.Next() {
		var file model.UploadedFile
		if err := rows.Scan(&file.ID, &file.SessionID, &file.Filename, &file.OriginalName,
			&file.FileType, &file.FileSize, &file.Content, &file.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan uploaded file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// DeleteUploadedFile removes one stored file by ID.
func (s *SQLiteStorage) DeleteUploadedFile(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM uploaded_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete uploaded file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: uploaded file %s", common.ErrNotFound, id)
	}

	return nil
}

// DeleteSessionFiles removes every file stored for a session, together with
// their assessments.
func (s *SQLiteStorage) DeleteSessionFiles(ctx context.Context, sessionID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assessment_records WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session assessments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM uploaded_files WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session files: %w", err)
	}

	return tx.Commit()
}
