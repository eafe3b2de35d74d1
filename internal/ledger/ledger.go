// Package ledger tracks which jobs a subject has already been shown. The
// seen-set resets daily so the discovery deck refills; the reset check and
// the read happen under one lock so yesterday's entries are never visible
// after rollover.
package ledger

import (
	"context"
	"sync"
	"time"

	"internmatch-backend/internal/domain"
)

type Ledger struct {
	store domain.SeenStore
	now   func() time.Time
	mu    sync.Mutex
}

func New(store domain.SeenStore) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// NewWithClock injects the clock; used by tests to drive the daily reset.
func NewWithClock(store domain.SeenStore, now func() time.Time) *Ledger {
	return &Ledger{store: store, now: now}
}

// GetSeen returns the subject's current seen-set, clearing it first when the
// daily reset condition has fired since the last access.
func (l *Ledger) GetSeen(ctx context.Context, subjectID string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getSeenLocked(ctx, subjectID)
}

// MarkSeen adds a job to the subject's seen-set. Idempotent: marking an
// already-seen job is a no-op.
func (l *Ledger) MarkSeen(ctx context.Context, subjectID, jobID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen, err := l.getSeenLocked(ctx, subjectID)
	if err != nil {
		return err
	}
	for _, id := range seen {
		if id == jobID {
			return nil
		}
	}
	return l.store.PutSeen(ctx, subjectID, append(seen, jobID))
}

// Reset clears the subject's seen-set and restamps, regardless of the daily
// reset condition.
func (l *Ledger) Reset(ctx context.Context, subjectID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.PutSeen(ctx, subjectID, nil); err != nil {
		return err
	}
	return l.store.PutResetStamp(ctx, subjectID, l.now())
}

func (l *Ledger) getSeenLocked(ctx context.Context, subjectID string) ([]string, error) {
	stamp, err := l.store.GetResetStamp(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if l.shouldReset(stamp) {
		if err := l.store.PutSeen(ctx, subjectID, nil); err != nil {
			return nil, err
		}
		if err := l.store.PutResetStamp(ctx, subjectID, l.now()); err != nil {
			return nil, err
		}
		return []string{}, nil
	}

	return l.store.GetSeen(ctx, subjectID)
}

// shouldReset fires on the first access after the local calendar date has
// changed, or after 24 hours have elapsed (covers timezone travel), whichever
// comes first. A zero stamp means no reset was ever recorded.
func (l *Ledger) shouldReset(stamp time.Time) bool {
	if stamp.IsZero() {
		return true
	}

	now := l.now()
	ny, nm, nd := now.Local().Date()
	sy, sm, sd := stamp.Local().Date()
	if ny != sy || nm != sm || nd != sd {
		return true
	}

	return now.Sub(stamp) >= 24*time.Hour
}
