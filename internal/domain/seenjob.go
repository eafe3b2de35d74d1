package domain

import (
	"context"
	"time"
)

// SeenStore persists the per-subject seen-job set and its reset stamp.
// The subject is an authenticated user ID or an anonymous device scope -
// callers pass it explicitly, there is no ambient identity.
//
// Writes are last-writer-wins: the seen-set is a discovery optimization, not
// correctness-critical state, and cross-device races are an accepted gap.
type SeenStore interface {
	GetSeen(ctx context.Context, subjectID string) ([]string, error)
	PutSeen(ctx context.Context, subjectID string, jobIDs []string) error
	// GetResetStamp returns the zero time when no reset has been recorded.
	GetResetStamp(ctx context.Context, subjectID string) (time.Time, error)
	PutResetStamp(ctx context.Context, subjectID string, at time.Time) error
}
