package usecase

import (
	"context"
	"errors"

	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"
	"internmatch-backend/pkg/logger"
)

type savedJobUsecase struct {
	savedRepo domain.SavedJobRepository
}

func NewSavedJobUsecase(savedRepo domain.SavedJobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{savedRepo: savedRepo}
}

// Save is idempotent: when the (user, job) pair already exists the existing
// record ID is returned and no second row is written. Saved jobs have
// cross-device significance, so a missing identity is a distinct error
// rather than a silent device-scope fallback.
func (u *savedJobUsecase) Save(ctx context.Context, userID, jobID, notes string) (string, error) {
	if userID == "" {
		return "", apperror.Unauthorized("Please sign in to save jobs")
	}

	existing, err := u.savedRepo.GetByUserAndJob(ctx, userID, jobID)
	if err == nil {
		logger.Log.Debug("job already saved", "user_id", userID, "job_id", jobID)
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", apperror.Unavailable(err)
	}

	saved := &domain.SavedJob{
		UserID: userID,
		JobID:  jobID,
		Notes:  notes,
	}
	if err := u.savedRepo.Create(ctx, saved); err != nil {
		return "", apperror.Unavailable(err)
	}
	return saved.ID, nil
}

// Unsave removes every record for the pair.
func (u *savedJobUsecase) Unsave(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return apperror.Unauthorized("Please sign in to manage saved jobs")
	}
	if err := u.savedRepo.DeleteByUserAndJob(ctx, userID, jobID); err != nil {
		return apperror.Unavailable(err)
	}
	return nil
}

func (u *savedJobUsecase) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Please sign in to view saved jobs")
	}
	saved, err := u.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	return saved, nil
}

func (u *savedJobUsecase) ListJobIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Please sign in to view saved jobs")
	}
	ids, err := u.savedRepo.ListJobIDsByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	return ids, nil
}
