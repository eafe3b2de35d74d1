package domain

import (
	"context"
	"time"
)

// SavedJob records a right-swipe. At most one row exists per (userID, jobID)
// pair; the save operation is idempotent.
type SavedJob struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	JobID   string    `json:"job_id"`
	SavedAt time.Time `json:"saved_at"`
	Notes   string    `json:"notes"`
}

type SavedJobRepository interface {
	Create(ctx context.Context, saved *SavedJob) error
	// GetByUserAndJob returns ErrNotFound when the pair is absent.
	GetByUserAndJob(ctx context.Context, userID, jobID string) (*SavedJob, error)
	// DeleteByUserAndJob removes every row for the pair (defensive against
	// historical duplicates).
	DeleteByUserAndJob(ctx context.Context, userID, jobID string) error
	ListByUser(ctx context.Context, userID string) ([]SavedJob, error)
	ListJobIDsByUser(ctx context.Context, userID string) ([]string, error)
}

type SavedJobUsecase interface {
	// Save is idempotent: saving an already-saved job returns the existing
	// record ID. Requires an authenticated user.
	Save(ctx context.Context, userID, jobID, notes string) (string, error)
	Unsave(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) ([]SavedJob, error)
	ListJobIDs(ctx context.Context, userID string) ([]string, error)
}
