// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/procurelens/procurelens/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Uploaded file operations
	SaveUploadedFile(ctx context.Context, file *model.UploadedFile) error
	GetUploadedFiles(ctx context.Context, sessionID string) ([]model.UploadedFile, error)
	DeleteUploadedFile(ctx context.Context, id string) error
	DeleteSessionFiles(ctx context.Context, sessionID string) error

	// Analysis snapshot operations
	SaveAnalysisRecord(ctx context.Context, record *model.AnalysisRecord) error
	GetAnalysisRecord(ctx context.Context, sessionID string) (*model.AnalysisRecord, error)
	ListAnalysisRecords(ctx context.Context) ([]model.AnalysisRecord, error)
	DeleteAnalysisRecord(ctx context.Context, sessionID string) error

	// File assessment operations
	SaveAssessmentRecord(ctx context.Context, record *model.AssessmentRecord) error
	GetAssessmentRecords(ctx context.Context, sessionID string) ([]model.AssessmentRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ColumnAnalyzer assesses one uploaded file: column mapping, data quality and
// the sufficiency/UI decisions. Implementations must always return a
// structurally valid assessment or an error, never both.
type ColumnAnalyzer interface {
	AnalyzeFile(ctx context.Context, req AnalyzeRequest) (*model.FileAssessment, error)
}

// AnalyzeRequest carries one parsed file into a ColumnAnalyzer.
type AnalyzeRequest struct {
	Filename string
	Headers  []string
	Rows     []model.RawRow
}

// RetryOptions configures retry behavior for operations that may fail
// transiently.
type RetryOptions struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	MaxAttempts  int
}
