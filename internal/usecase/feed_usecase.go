package usecase

import (
	"context"
	"errors"

	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/ledger"
	"internmatch-backend/internal/match"
	"internmatch-backend/internal/repository/postgres"
	"internmatch-backend/pkg/apperror"
	"internmatch-backend/pkg/logger"
)

// Bounds how many store pages one NextBatch call will walk before giving the
// caller its partial cursor back.
const maxFeedPages = 20

type feedUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	savedUC  domain.SavedJobUsecase
	seen     *ledger.Ledger
	pageSize int
}

func NewFeedUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository, savedUC domain.SavedJobUsecase, seen *ledger.Ledger, pageSize int) domain.FeedUsecase {
	if pageSize < 1 {
		pageSize = 10
	}
	return &feedUsecase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		savedUC:  savedUC,
		seen:     seen,
		pageSize: pageSize,
	}
}

// NextBatch produces the next unseen, unsaved jobs for swiping. It keeps
// fetching pages until at least one qualifying job turns up or the store
// runs out, in which case Exhausted is reported explicitly.
func (u *feedUsecase) NextBatch(ctx context.Context, subject domain.Subject, filters domain.JobFilters, cursor string) (*domain.FeedBatch, error) {
	exclude, err := u.exclusionSet(ctx, subject)
	if err != nil {
		return nil, err
	}

	prefs := u.loadPreferences(ctx, subject)

	for page := 0; page < maxFeedPages; page++ {
		jp, err := u.jobRepo.List(ctx, filters, cursor, u.pageSize)
		if errors.Is(err, postgres.ErrInvalidCursor) {
			return nil, apperror.BadRequest("Filter criteria changed; restart paging from the beginning")
		}
		if err != nil {
			return nil, apperror.Unavailable(err)
		}

		var qualifying []domain.ScoredJob
		for _, job := range jp.Jobs {
			if exclude[job.ID] {
				continue
			}
			qualifying = append(qualifying, domain.ScoredJob{
				Job:        job,
				MatchScore: match.Score(job, prefs),
				Insights:   match.Insights(job, prefs),
			})
		}

		if len(qualifying) > 0 {
			return &domain.FeedBatch{Jobs: qualifying, Cursor: jp.Cursor}, nil
		}

		if jp.Cursor == "" {
			return &domain.FeedBatch{Exhausted: true}, nil
		}
		cursor = jp.Cursor
	}

	// Page budget hit without a qualifying job; hand the cursor back so the
	// caller can continue rather than declaring exhaustion early.
	return &domain.FeedBatch{Cursor: cursor}, nil
}

// SwipeLeft marks the job seen.
func (u *feedUsecase) SwipeLeft(ctx context.Context, subject domain.Subject, jobID string) error {
	if err := u.seen.MarkSeen(ctx, subject.ID(), jobID); err != nil {
		return apperror.Unavailable(err)
	}
	return nil
}

// SwipeRight marks the job seen, then saves it. The seen-mark happens first
// and is never rolled back: a decided job must not resurface even when its
// save fails.
func (u *feedUsecase) SwipeRight(ctx context.Context, subject domain.Subject, jobID string) error {
	if !subject.Authenticated() {
		return apperror.Unauthorized("Please sign in to save jobs")
	}

	if err := u.seen.MarkSeen(ctx, subject.ID(), jobID); err != nil {
		return apperror.Unavailable(err)
	}

	if _, err := u.savedUC.Save(ctx, subject.UserID, jobID, ""); err != nil {
		return err
	}
	return nil
}

// exclusionSet unions the seen-set with the saved-set. The saved-set needs
// an authenticated identity; seen-state always resolves against the
// subject's scope.
func (u *feedUsecase) exclusionSet(ctx context.Context, subject domain.Subject) (map[string]bool, error) {
	exclude := make(map[string]bool)

	seen, err := u.seen.GetSeen(ctx, subject.ID())
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	for _, id := range seen {
		exclude[id] = true
	}

	if subject.Authenticated() {
		savedIDs, err := u.savedUC.ListJobIDs(ctx, subject.UserID)
		if err != nil {
			// Saved-set exclusion is best effort here; a failure must not
			// take down the whole feed.
			logger.Log.Warn("feed: saved-job exclusion unavailable", "error", err)
		} else {
			for _, id := range savedIDs {
				exclude[id] = true
			}
		}
	}

	return exclude, nil
}

func (u *feedUsecase) loadPreferences(ctx context.Context, subject domain.Subject) *domain.UserPreferences {
	if !subject.Authenticated() {
		return nil
	}
	user, err := u.userRepo.GetByID(ctx, subject.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("feed: preferences unavailable, using neutral scores", "error", err)
		}
		return nil
	}
	return &user.Preferences
}
