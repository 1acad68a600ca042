package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tdp-hub/tdp-report-services/models"
)

type MockReportStore struct {
	mock.Mock
}

type MockUserStore struct {
	mock.Mock
}

type MockFileStore struct {
	mock.Mock
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockReportStore) GetReportYears(ctx context.Context, sttID int) ([]int, error) {
	args := m.Called(sttID)
	years, _ := args.Get(0).([]int)
	return years, args.Error(1)
}

func (m *MockReportStore) CreateReportFile(ctx context.Context, rf *models.ReportFile) (*models.ReportFile, error) {
	args := m.Called(rf)
	created, _ := args.Get(0).(*models.ReportFile)
	return created, args.Error(1)
}

func (m *MockReportStore) GetLatestReportFile(ctx context.Context, sttID, year int, quarter, section string) (*models.ReportFile, error) {
	args := m.Called(sttID, year, quarter, section)
	rf, _ := args.Get(0).(*models.ReportFile)
	return rf, args.Error(1)
}

func (m *MockUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserStore) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]models.Role, error) {
	args := m.Called(userID)
	roles, _ := args.Get(0).([]models.Role)
	return roles, args.Error(1)
}

func (m *MockUserStore) GetRoles(ctx context.Context) ([]models.Role, error) {
	args := m.Called()
	roles, _ := args.Get(0).([]models.Role)
	return roles, args.Error(1)
}

func (m *MockUserStore) GetSTT(ctx context.Context, id int) (*models.STT, error) {
	args := m.Called(id)
	stt, _ := args.Get(0).(*models.STT)
	return stt, args.Error(1)
}

func (m *MockUserStore) UpdateUserProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string, sttID int) error {
	args := m.Called(userID, firstName, lastName, sttID)
	return args.Error(0)
}

func (m *MockFileStore) PresignUpload(ctx context.Context, key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockNotifier) Notify(ctx context.Context, event models.ReportFileEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockNotifier) Close() {
	m.Called()
}
