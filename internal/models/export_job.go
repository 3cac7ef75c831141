package models

import "time"

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "CSV"
	ExportFormatPDF ExportFormat = "PDF"
)

// ExportKind selects what gets exported.
type ExportKind string

const (
	ExportKindTransports ExportKind = "TRANSPORTS"
	ExportKindCalendar   ExportKind = "CALENDAR"
)

// ExportJobStatus tracks the async export lifecycle.
type ExportJobStatus string

const (
	ExportJobQueued    ExportJobStatus = "QUEUED"
	ExportJobRunning   ExportJobStatus = "RUNNING"
	ExportJobCompleted ExportJobStatus = "COMPLETED"
	ExportJobFailed    ExportJobStatus = "FAILED"
)

// ExportJob describes one requested export and its progress.
type ExportJob struct {
	ID          string          `json:"id"`
	TripID      string          `json:"trip_id"`
	Kind        ExportKind      `json:"kind"`
	Format      ExportFormat    `json:"format"`
	Month       string          `json:"month,omitempty"`
	Status      ExportJobStatus `json:"status"`
	FilePath    string          `json:"-"`
	DownloadURL string          `json:"download_url,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
