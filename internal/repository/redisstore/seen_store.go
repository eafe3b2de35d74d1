// Package redisstore persists the per-subject seen-job ledger. The Redis
// store backs authenticated subjects; the in-memory store is the
// device-scope fallback when Redis is unavailable.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"internmatch-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Seen-sets are an optimization, not durable state; keys expire well after
// the 24h reset window so stale subjects clean themselves up.
const seenTTL = 48 * time.Hour

type seenStore struct {
	client *redis.Client
}

func NewSeenStore(client *redis.Client) domain.SeenStore {
	return &seenStore{client: client}
}

func seenKey(subjectID string) string {
	return fmt.Sprintf("seen:%s", subjectID)
}

func resetKey(subjectID string) string {
	return fmt.Sprintf("seen:%s:reset", subjectID)
}

func (s *seenStore) GetSeen(ctx context.Context, subjectID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, seenKey(subjectID)).Result()
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *seenStore) PutSeen(ctx context.Context, subjectID string, jobIDs []string) error {
	key := seenKey(subjectID)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(jobIDs) > 0 {
		members := make([]interface{}, len(jobIDs))
		for i, id := range jobIDs {
			members[i] = id
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, seenTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *seenStore) GetResetStamp(ctx context.Context, subjectID string) (time.Time, error) {
	val, err := s.client.Get(ctx, resetKey(subjectID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	stamp, err := time.Parse(time.RFC3339, val)
	if err != nil {
		// A corrupt stamp just forces the next reset
		return time.Time{}, nil
	}
	return stamp, nil
}

func (s *seenStore) PutResetStamp(ctx context.Context, subjectID string, at time.Time) error {
	return s.client.Set(ctx, resetKey(subjectID), at.Format(time.RFC3339), seenTTL).Err()
}
