package usecase

import (
	"context"
	"errors"

	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/apperror"
	"internmatch-backend/pkg/logger"
)

type applicationUsecase struct {
	appRepo domain.ApplicationRepository
	jobRepo domain.JobRepository
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply records a self-reported application. One per (user, job); applying
// twice is rejected rather than duplicated.
func (u *applicationUsecase) Apply(ctx context.Context, userID, jobID, notes string) (*domain.Application, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Please sign in to track applications")
	}

	// The posting may have been deleted since the user saved it; that is a
	// NotFound to them, not a store fault.
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job posting no longer exists")
		}
		return nil, apperror.Unavailable(err)
	}

	exists, err := u.appRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already tracked an application for this job")
	}

	app := &domain.Application{
		UserID: userID,
		JobID:  jobID,
		Status: domain.ApplicationStatusApplied,
		Notes:  notes,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, apperror.Unavailable(err)
	}
	return app, nil
}

// UpdateStatus applies any status the user picks. The canonical graph is
// advisory: the tracker allows manual overrides, so departures are logged
// and applied rather than rejected.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, userID, id string, status domain.ApplicationStatus) error {
	if userID == "" {
		return apperror.Unauthorized("Please sign in to track applications")
	}

	app, err := u.appRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Application not found")
	}
	if err != nil {
		return apperror.Unavailable(err)
	}
	if app.UserID != userID {
		return apperror.Forbidden("You can only update your own applications")
	}

	if !domain.IsCanonicalTransition(app.Status, status) {
		logger.Log.Info("application status override",
			"application_id", id, "from", app.Status, "to", status)
	}

	if err := u.appRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Unavailable(err)
	}
	return nil
}

func (u *applicationUsecase) List(ctx context.Context, userID string) ([]domain.Application, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Please sign in to track applications")
	}
	apps, err := u.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	return apps, nil
}
