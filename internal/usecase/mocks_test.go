package usecase_test

import (
	"context"
	"time"

	"internmatch-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) List(ctx context.Context, filters domain.JobFilters, cursor string, limit int) (*domain.JobPage, error) {
	args := m.Called(ctx, filters, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPage), args.Error(1)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Job, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdatePreferences(ctx context.Context, userID string, prefs domain.UserPreferences) error {
	return m.Called(ctx, userID, prefs).Error(0)
}

func (m *MockUserRepo) ListNotifiable(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockSavedJobRepo struct {
	mock.Mock
}

func (m *MockSavedJobRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	return m.Called(ctx, saved).Error(0)
}

func (m *MockSavedJobRepo) GetByUserAndJob(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	args := m.Called(ctx, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedJob), args.Error(1)
}

func (m *MockSavedJobRepo) DeleteByUserAndJob(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *MockSavedJobRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedJob), args.Error(1)
}

func (m *MockSavedJobRepo) ListJobIDsByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockSavedJobUC mocks the saved-job usecase for feed tests.
type MockSavedJobUC struct {
	mock.Mock
}

func (m *MockSavedJobUC) Save(ctx context.Context, userID, jobID, notes string) (string, error) {
	args := m.Called(ctx, userID, jobID, notes)
	return args.String(0), args.Error(1)
}

func (m *MockSavedJobUC) Unsave(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *MockSavedJobUC) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedJob), args.Error(1)
}

func (m *MockSavedJobUC) ListJobIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyJobMatch(ctx context.Context, user domain.User, job domain.Job, score int) error {
	return m.Called(ctx, user, job, score).Error(0)
}

func boolP(b bool) *bool { return &b }
