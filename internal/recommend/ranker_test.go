package recommend_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

type MockSavedRepo struct {
	mock.Mock
}

func (m *MockSavedRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	return m.Called(ctx, saved).Error(0)
}

func (m *MockSavedRepo) GetByUserAndJob(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	args := m.Called(ctx, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedJob), args.Error(1)
}

func (m *MockSavedRepo) DeleteByUserAndJob(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *MockSavedRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedJob), args.Error(1)
}

func (m *MockSavedRepo) ListJobIDsByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAppRepo struct {
	mock.Mock
}

func (m *MockAppRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockAppRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockAppRepo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockAppRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func catalogPage(jobs ...domain.Job) *domain.JobPage {
	return &domain.JobPage{Jobs: jobs}
}

func TestRecommendRanksByHistorySimilarity(t *testing.T) {
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	savedRepo := new(MockSavedRepo)
	appRepo := new(MockAppRepo)

	saved := domain.Job{ID: "saved", Company: "Stripe", Location: "San Francisco", JobType: "Internship"}
	similar := domain.Job{ID: "similar", Company: "Stripe", Location: "San Francisco", JobType: "Internship"}
	unrelated := domain.Job{ID: "unrelated", Company: "MegaCorp", Location: "Dallas", JobType: "Full-time"}

	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", mock.Anything).
		Return(catalogPage(unrelated, saved, similar), nil)
	userRepo.On("GetByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1"}, nil)
	savedRepo.On("ListJobIDsByUser", mock.Anything, "u1").
		Return([]string{"saved"}, nil)
	appRepo.On("ListByUser", mock.Anything, "u1").
		Return([]domain.Application{}, nil)

	ranker := recommend.NewRanker(jobRepo, userRepo, savedRepo, appRepo)
	jobs, err := ranker.Recommend(context.Background(), "u1", 10)

	assert.NoError(t, err)
	assert.Len(t, jobs, 3)
	// Both Stripe internships hit the similarity cap; catalog order breaks
	// the tie, and the unrelated job sinks to the bottom.
	assert.Equal(t, "saved", jobs[0].ID)
	assert.Equal(t, "similar", jobs[1].ID)
	assert.Equal(t, "unrelated", jobs[2].ID)
}

func TestRecommendSimilarityCapLimitsHistoryBoost(t *testing.T) {
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	savedRepo := new(MockSavedRepo)
	appRepo := new(MockAppRepo)

	remote, visa := true, true
	low, high := 100000, 150000
	expNone := domain.ExperienceNone
	prefs := domain.UserPreferences{
		RemoteOnly:              &remote,
		VisaSponsorshipRequired: &visa,
		PreferredLocations:      []string{"San Francisco"},
		SalaryRange:             &domain.SalaryRange{Min: &low, Max: &high},
		JobTypes:                []string{"Internship"},
		Skills:                  []string{"Go", "React"},
		ExperienceLevel:         &expNone,
		OtherRelevance:          []string{"startup"},
	}

	history := domain.Job{ID: "history", Company: "Stripe", Location: "Austin", JobType: "Full-time"}
	// Mirrors the saved job on every similarity signal (company, location,
	// job type: 45 raw) but fits the stated preferences poorly (scores 83).
	lookalike := domain.Job{
		ID:       "lookalike",
		Title:    "Operations Coordinator",
		Company:  "Stripe",
		Location: "Austin",
		JobType:  "Full-time",
		Salary:   "40000",
		Requirements: strings.Repeat(
			"Coordinate vendor schedules and maintain facilities documentation. ", 3),
	}
	// Fits every stated preference (scores 100) but shares only the company
	// with the saved history (+20).
	ideal := domain.Job{
		ID:           "ideal",
		Title:        "Software Engineering Intern",
		Company:      "Stripe",
		Location:     "San Francisco, CA",
		Description:  "Build backend services",
		Requirements: "Go and React",
		Salary:       "120000",
		JobType:      "Internship",
		Remote:       true,
		SponsorsVisa: true,
		Source:       "startup",
	}

	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", mock.Anything).
		Return(catalogPage(history, lookalike, ideal), nil)
	userRepo.On("GetByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Preferences: prefs}, nil)
	savedRepo.On("ListJobIDsByUser", mock.Anything, "u1").
		Return([]string{"history"}, nil)
	appRepo.On("ListByUser", mock.Anything, "u1").
		Return([]domain.Application{}, nil)

	ranker := recommend.NewRanker(jobRepo, userRepo, savedRepo, appRepo)
	jobs, err := ranker.Recommend(context.Background(), "u1", 10)

	assert.NoError(t, err)
	assert.Len(t, jobs, 3)
	// The lookalike's 45 raw similarity points are held to 30, landing it at
	// 113; the ideal job's 100 preference score plus the company bonus alone
	// is 120. Without the cap the lookalike would total 128 and win.
	assert.Equal(t, "ideal", jobs[0].ID)
}

func TestRecommendDegradesWithoutHistory(t *testing.T) {
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	savedRepo := new(MockSavedRepo)
	appRepo := new(MockAppRepo)

	a := domain.Job{ID: "a", Company: "One"}
	b := domain.Job{ID: "b", Company: "Two"}

	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", mock.Anything).
		Return(catalogPage(a, b), nil)
	userRepo.On("GetByID", mock.Anything, "u1").
		Return(nil, errors.New("store down"))
	savedRepo.On("ListJobIDsByUser", mock.Anything, "u1").
		Return(nil, errors.New("store down"))
	appRepo.On("ListByUser", mock.Anything, "u1").
		Return(nil, errors.New("store down"))

	ranker := recommend.NewRanker(jobRepo, userRepo, savedRepo, appRepo)
	jobs, err := ranker.Recommend(context.Background(), "u1", 10)

	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	// Neutral scores everywhere: the stable sort keeps catalog order
	assert.Equal(t, "a", jobs[0].ID)
	assert.Equal(t, "b", jobs[1].ID)
}

func TestRecommendAnonymousSkipsHistory(t *testing.T) {
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	savedRepo := new(MockSavedRepo)
	appRepo := new(MockAppRepo)

	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", mock.Anything).
		Return(catalogPage(domain.Job{ID: "a"}), nil)

	ranker := recommend.NewRanker(jobRepo, userRepo, savedRepo, appRepo)
	jobs, err := ranker.Recommend(context.Background(), "", 10)

	assert.NoError(t, err)
	assert.Len(t, jobs, 1)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	savedRepo.AssertNotCalled(t, "ListJobIDsByUser", mock.Anything, mock.Anything)
}

func TestRecommendHonorsLimit(t *testing.T) {
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	savedRepo := new(MockSavedRepo)
	appRepo := new(MockAppRepo)

	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", mock.Anything).
		Return(catalogPage(domain.Job{ID: "a"}, domain.Job{ID: "b"}, domain.Job{ID: "c"}), nil)

	ranker := recommend.NewRanker(jobRepo, userRepo, savedRepo, appRepo)
	jobs, err := ranker.Recommend(context.Background(), "", 2)

	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestRecommendPropagatesCatalogFailure(t *testing.T) {
	jobRepo := new(MockJobRepo)
	jobRepo.On("List", mock.Anything, domain.JobFilters{}, "", mock.Anything).
		Return(nil, errors.New("store down"))

	ranker := recommend.NewRanker(jobRepo, new(MockUserRepo), new(MockSavedRepo), new(MockAppRepo))
	_, err := ranker.Recommend(context.Background(), "u1", 10)

	assert.Error(t, err)
}
