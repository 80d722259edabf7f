package model

import "time"

// UploadedFile is one stored upload inside a session.
type UploadedFile struct {
	UploadedAt   time.Time
	ID           string
	SessionID    string
	Filename     string
	OriginalName string
	FileType     string
	Content      []byte
	FileSize     int64
}

// AnalysisRecord is a persisted DashboardData snapshot for a session. The
// snapshot is stored whole; summary columns exist only for listing.
type AnalysisRecord struct {
	AnalyzedAt   time.Time
	ID           string
	SessionID    string
	Dashboard    *DashboardData
	TotalRecords int
	HealthScore  int
}

// AssessmentRecord is a persisted FileAssessment for one uploaded file.
type AssessmentRecord struct {
	AnalyzedAt time.Time
	ID         string
	SessionID  string
	FileID     string
	Assessment *FileAssessment
}
