package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/google/uuid"
)

const (
	defaultQueuePrefix    = "backrooms"
	defaultBatchSize      = 4
	defaultJobTimeout     = 30 * time.Second
	queueGenerationKeyFmt = "%s:queue:generation"
)

var (
	ErrNilOwnerJob = errors.New("job owner is required")
)

type jobHandlerFunc func(jobID uuid.UUID, layout *dmn.Layout, err error)

// job is the queued form of a generation request.
type job struct {
	ID      uuid.UUID         `json:"id"`
	OwnerID uuid.UUID         `json:"owner_id"`
	Request i.GenerateRequest `json:"request"`
}

// QueueOptions configure a GenerationQueue.
type QueueOptions struct {
	Prefix     string
	Handler    jobHandlerFunc
	Events     *Broker // Receives an EventFailed for every job that fails
	BatchSize  int64
	JobTimeout time.Duration
}

// GenerationQueue pushes generation jobs to a shared sorted queue and drains them in
// submission order.
type GenerationQueue struct {
	sortedQueue i.SortedQueue
	generator   i.LayoutGenerator
	logger      i.Logger
	opts        *QueueOptions
}

var _ i.JobQueue = &GenerationQueue{}

// NewGenerationQueue creates a queue backed by sortedQueue that generates with generator.
func NewGenerationQueue(sortedQueue i.SortedQueue, generator i.LayoutGenerator, logger i.Logger, opts *QueueOptions) (*GenerationQueue, error) {
	if opts == nil {
		opts = &QueueOptions{
			Prefix:    defaultQueuePrefix,
			BatchSize: defaultBatchSize,
		}
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	if opts.Prefix == "" {
		opts.Prefix = defaultQueuePrefix
	}

	if opts.JobTimeout <= 0 {
		opts.JobTimeout = defaultJobTimeout
	}

	return &GenerationQueue{
		opts:        opts,
		sortedQueue: sortedQueue,
		generator:   generator,
		logger:      logger,
	}, nil
}

// Enqueue pushes a job and starts draining the queue in the background.
// The returned ID is the ID the layout is saved under once generated. When the generator
// can validate requests, a request it would reject is returned as an error and never queued.
func (q *GenerationQueue) Enqueue(ctx context.Context, ownerID uuid.UUID, req i.GenerateRequest) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, ErrNilOwnerJob
	}

	if v, ok := q.generator.(i.RequestValidator); ok {
		if err := v.Validate(req); err != nil {
			q.logger.Warning(fmt.Sprintf("Rejected generation job for %s: %s", ownerID, err))
			return uuid.Nil, err
		}
	}

	j := &job{ID: uuid.New(), OwnerID: ownerID, Request: req}
	j.Request.ID = j.ID
	q.logger.Info(fmt.Sprintf("Adding generation job to queue: ID=%s Owner=%s", j.ID, ownerID))

	if err := q.pushJob(ctx, j); err != nil {
		return uuid.Nil, err
	}

	go q.drain(context.WithoutCancel(ctx))
	return j.ID, nil
}

func (q *GenerationQueue) pushJob(ctx context.Context, j *job) error {
	payload, err := json.Marshal(j)
	if err != nil {
		return err
	}

	score := float64(time.Now().UnixNano())
	if err := q.sortedQueue.Enqueue(ctx, q.queueKey(), score, string(payload)); err != nil {
		q.logger.Error(fmt.Sprintf("Failed to enqueue job: %s", err))
		return err
	}

	q.logger.Info(fmt.Sprintf("Job enqueued successfully: ID=%s", j.ID))
	return nil
}

// drain pops up to BatchSize jobs and generates each of them.
func (q *GenerationQueue) drain(ctx context.Context) {
	queueKey := q.queueKey()
	amount := min(q.sortedQueue.Count(ctx, queueKey), q.opts.BatchSize)
	if amount <= 0 {
		return
	}

	rawJobs, err := q.sortedQueue.DequeTops(ctx, queueKey, amount)
	if err != nil {
		q.logger.Error(fmt.Sprintf("obtaining queue lock: %s", err))
		return
	}

	for _, raw := range rawJobs {
		var j job
		if err := json.Unmarshal([]byte(raw), &j); err != nil {
			q.logger.Warning(fmt.Sprintf("Malformed job in queue: %s", raw))
			continue
		}
		q.run(ctx, &j)
	}
}

func (q *GenerationQueue) run(ctx context.Context, j *job) {
	jobCtx, cancel := context.WithTimeout(ctx, q.opts.JobTimeout)
	defer cancel()

	layout, err := q.generator.Generate(jobCtx, j.OwnerID, j.Request)
	if err != nil {
		q.logger.Error(fmt.Sprintf("Job %s failed: %s", j.ID, err))
		if q.opts.Events != nil {
			q.opts.Events.Publish(Event{Type: EventFailed, LayoutID: j.ID, OwnerID: j.OwnerID, Error: err.Error()})
		}
	} else {
		q.logger.Info(fmt.Sprintf("Job %s finished: layout %s", j.ID, layout.ID))
	}

	if q.opts.Handler != nil {
		q.opts.Handler(j.ID, layout, err)
	}
}

// SetJobHandler sets the function called after every job.
func (q *GenerationQueue) SetJobHandler(f func(uuid.UUID, *dmn.Layout, error)) {
	q.opts.Handler = f
}

func (q *GenerationQueue) queueKey() string {
	return fmt.Sprintf(queueGenerationKeyFmt, q.opts.Prefix)
}
