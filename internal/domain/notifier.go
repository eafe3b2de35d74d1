package domain

import "context"

// Notifier delivers a job alert to one user. The push transport lives
// outside this service; implementations may log, enqueue, or fan out.
type Notifier interface {
	NotifyJobMatch(ctx context.Context, user User, job Job, score int) error
}
