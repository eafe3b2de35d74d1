package usecase

import (
	"context"
	"errors"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/match"
	"internmatch-backend/internal/repository/postgres"
	"internmatch-backend/pkg/apperror"
	"internmatch-backend/pkg/logger"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	pageSize int
}

func NewJobUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository, pageSize int) domain.JobUsecase {
	if pageSize < 1 {
		pageSize = 10
	}
	return &jobUsecase{jobRepo: jobRepo, userRepo: userRepo, pageSize: pageSize}
}

// ListJobs returns one page of the catalog annotated with the subject's
// match scores and insights. An empty subjectID yields neutral scores.
func (u *jobUsecase) ListJobs(ctx context.Context, subjectID string, filters domain.JobFilters, cursor string) (*domain.ScoredJobPage, error) {
	jp, err := u.jobRepo.List(ctx, filters, cursor, u.pageSize)
	if errors.Is(err, postgres.ErrInvalidCursor) {
		return nil, apperror.BadRequest("Filter criteria changed; restart paging from the beginning")
	}
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	prefs := u.preferencesFor(ctx, subjectID)

	scored := make([]domain.ScoredJob, len(jp.Jobs))
	for i, job := range jp.Jobs {
		scored[i] = domain.ScoredJob{
			Job:        job,
			MatchScore: match.Score(job, prefs),
			Insights:   match.Insights(job, prefs),
		}
	}
	return &domain.ScoredJobPage{Jobs: scored, Cursor: jp.Cursor}, nil
}

// GetJobDetails returns (nil, nil) when the job does not exist. A saved job
// whose posting was deleted is a normal outcome, not an error.
func (u *jobUsecase) GetJobDetails(ctx context.Context, subjectID, id string) (*domain.ScoredJob, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	prefs := u.preferencesFor(ctx, subjectID)
	return &domain.ScoredJob{
		Job:        *job,
		MatchScore: match.Score(*job, prefs),
		Insights:   match.Insights(*job, prefs),
	}, nil
}

func (u *jobUsecase) preferencesFor(ctx context.Context, subjectID string) *domain.UserPreferences {
	if subjectID == "" {
		return nil
	}
	user, err := u.userRepo.GetByID(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("jobs: preferences unavailable, using neutral scores", "error", err)
		}
		return nil
	}
	return &user.Preferences
}
