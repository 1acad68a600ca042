package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/tdp-hub/tdp-report-services/internal/appconfig"
	"github.com/tdp-hub/tdp-report-services/internal/events"
	"github.com/tdp-hub/tdp-report-services/models"
)

// ReportStore persists report file records.
type ReportStore interface {
	GetReportYears(ctx context.Context, sttID int) ([]int, error)
	CreateReportFile(ctx context.Context, rf *models.ReportFile) (*models.ReportFile, error)
	GetLatestReportFile(ctx context.Context, sttID, year int, quarter, section string) (*models.ReportFile, error)
}

// UserStore reads and updates users, groups and STTs.
type UserStore interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]models.Role, error)
	GetRoles(ctx context.Context) ([]models.Role, error)
	GetSTT(ctx context.Context, id int) (*models.STT, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string, sttID int) error
}

// FileStore issues presigned URLs for report file contents.
type FileStore interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config   *appconfig.Config
	Reports  ReportStore
	Users    UserStore
	Files    FileStore
	Notifier events.Notifier
}
