package i

import (
	"context"

	"github.com/google/uuid"
)

// JobQueue defers layout generation to a background worker.
type JobQueue interface {
	// Enqueue schedules a generation for the owner and returns the ID the layout will be saved under.
	Enqueue(ctx context.Context, ownerID uuid.UUID, req GenerateRequest) (uuid.UUID, error)
}

// SortedQueue is a score ordered queue shared between workers.
type SortedQueue interface {
	// Enqueue adds a member with the given score.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// DequeTops removes and returns up to amount members with the lowest scores.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of members in the queue.
	Count(ctx context.Context, queueKey string) int64
}
