package models

import (
	"time"

	"github.com/google/uuid"
)

// Report file sections.
const (
	SectionActiveCase = "Active Case Data"
	SectionClosedCase = "Closed Case Data"
	SectionAggregate  = "Aggregate Data"
	SectionStratum    = "Stratum Data"
)

// ReportFile is the metadata of an uploaded report.
type ReportFile struct {
	ID               uuid.UUID `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	Slug             string    `json:"slug"`
	Extension        string    `json:"extension"`
	Section          string    `json:"section"`
	Quarter          string    `json:"quarter"`
	Year             int       `json:"year"`
	STT              int       `json:"stt"`
	User             uuid.UUID `json:"user"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReportFileResponse is returned after a report file record is created.
type ReportFileResponse struct {
	ReportFile
	UploadURL string `json:"upload_url,omitempty"`
}

// DownloadResponse carries a presigned download location.
type DownloadResponse struct {
	URL string `json:"url"`
}

// ReportFileEvent is published when a report file record is created.
type ReportFileEvent struct {
	Type       string    `json:"type"`
	ReportFile uuid.UUID `json:"report_file"`
	STT        int       `json:"stt"`
	Year       int       `json:"year"`
	Quarter    string    `json:"quarter"`
	Section    string    `json:"section"`
	Version    int       `json:"version"`
	User       uuid.UUID `json:"user"`
	Timestamp  int64     `json:"timestamp"`
}
