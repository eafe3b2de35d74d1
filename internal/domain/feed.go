package domain

import "context"

// Subject is the explicit identity every per-user operation receives: an
// authenticated user ID when available, otherwise an anonymous device scope.
type Subject struct {
	UserID   string
	DeviceID string
}

// Authenticated reports whether a stable user identity is present.
func (s Subject) Authenticated() bool {
	return s.UserID != ""
}

// ID returns the ledger scope: the user ID when authenticated, else the
// device ID.
func (s Subject) ID() string {
	if s.UserID != "" {
		return s.UserID
	}
	return s.DeviceID
}

// FeedBatch is one swipe-deck refill. Exhausted is set when the store ran
// out of pages before any unseen, unsaved job was found - callers show the
// "all caught up" state instead of an empty deck.
type FeedBatch struct {
	Jobs      []ScoredJob `json:"jobs"`
	Cursor    string      `json:"cursor,omitempty"`
	Exhausted bool        `json:"exhausted"`
}

type FeedUsecase interface {
	// NextBatch pages the store until at least one qualifying job is found
	// or the cursor is exhausted.
	NextBatch(ctx context.Context, subject Subject, filters JobFilters, cursor string) (*FeedBatch, error)
	// SwipeLeft marks the job seen.
	SwipeLeft(ctx context.Context, subject Subject, jobID string) error
	// SwipeRight marks the job seen and saves it. The seen-mark is never
	// rolled back: a decided job must not resurface even when its save
	// fails.
	SwipeRight(ctx context.Context, subject Subject, jobID string) error
}
