package sortedstorage

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	drainLockSuffix = ":drain_lock"
	drainLockExpiry = 10 * time.Second
)

// RedisSortedQueue is a score ordered job queue in a Redis sorted set. Pops are
// serialized across workers with a redsync mutex so a job is handed out once.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.SortedQueue = &RedisSortedQueue{}

// NewRedisSortedQueue creates a queue on client. Queue keys expire ttlSeconds after
// they are first written; a non-positive ttlSeconds keeps them forever.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) (*RedisSortedQueue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisSortedQueue{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Enqueue adds a member with the given score.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return err
	}
	if rsq.ttl <= 0 {
		return nil
	}

	// -1 means the key has no expiry yet.
	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}
	return nil
}

// DequeTops removes and returns up to amount members with the lowest scores.
func (rsq *RedisSortedQueue) DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	mutex := rsq.locker.NewMutex(queueKey+drainLockSuffix, redsync.WithExpiry(drainLockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	popped, err := rsq.client.ZPopMin(ctx, queueKey, amount).Result()
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(popped))
	for _, z := range popped {
		if m, ok := z.Member.(string); ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// Count returns the number of queued members.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
