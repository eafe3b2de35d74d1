package usecase

import (
	"context"
	"time"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/match"
	"internmatch-backend/pkg/logger"
)

// DigestUsecase selects (job, user) pairs for the daily alert. Targeting is
// derived from the same Score used everywhere else: a user is notified about
// a job only when their score clears the configured threshold.
type DigestUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	notifier domain.Notifier
	minScore int
	window   time.Duration
}

func NewDigestUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository, notifier domain.Notifier, minScore int) *DigestUsecase {
	return &DigestUsecase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		notifier: notifier,
		minScore: minScore,
		window:   24 * time.Hour,
	}
}

// Run walks jobs created inside the window and notifies every opted-in user
// whose match score clears the threshold. Per-user delivery failures are
// logged and skipped; one bad token must not starve the rest of the batch.
func (u *DigestUsecase) Run(ctx context.Context) error {
	since := time.Now().Add(-u.window)

	jobs, err := u.jobRepo.ListCreatedSince(ctx, since)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		logger.Log.Info("digest: no new jobs in window")
		return nil
	}

	users, err := u.userRepo.ListNotifiable(ctx)
	if err != nil {
		return err
	}

	notified := 0
	for _, job := range jobs {
		for _, user := range users {
			score := match.Score(job, &user.Preferences)
			if score < u.minScore {
				continue
			}
			if err := u.notifier.NotifyJobMatch(ctx, user, job, score); err != nil {
				logger.Log.Warn("digest: notify failed",
					"user_id", user.ID, "job_id", job.ID, "error", err)
				continue
			}
			notified++
		}
	}

	logger.Log.Info("digest: run complete",
		"jobs", len(jobs), "users", len(users), "notifications", notified)
	return nil
}

// LogNotifier is the default Notifier: it records the selection instead of
// pushing, leaving transport to the out-of-process dispatcher.
type LogNotifier struct{}

func (LogNotifier) NotifyJobMatch(_ context.Context, user domain.User, job domain.Job, score int) error {
	logger.Log.Info("digest: job match",
		"user_id", user.ID, "job_id", job.ID, "job_title", job.Title, "score", score)
	return nil
}
