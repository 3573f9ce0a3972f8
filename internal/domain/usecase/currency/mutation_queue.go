package currency

import (
	"context"
	"errors"
	"sync"
	"time"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// ErrQueueClosed is returned for mutations submitted after Shutdown
var ErrQueueClosed = errors.New("mutation queue is shut down")

// MutationProcessorFunc applies one mutation
type MutationProcessorFunc func(ctx context.Context, req usecase.MutationRequest) (*usecase.MutationResult, error)

// MutationQueue runs the mutations of each user one at a time, in arrival order.
// A worker with nothing to do for idleTimeout is retired; the next mutation of
// that user starts a fresh one.
type MutationQueue struct {
	logger      coreport.Logger
	metrics     coreport.MetricsRecorder
	queueSize   int
	idleTimeout time.Duration
	processor   MutationProcessorFunc

	mu      sync.RWMutex
	closed  bool
	queues  map[uint64]chan *mutationJob
	workers sync.WaitGroup
}

type mutationJob struct {
	ctx        context.Context
	req        usecase.MutationRequest
	resultChan chan mutationOutcome
}

type mutationOutcome struct {
	result *usecase.MutationResult
	err    error
}

// NewMutationQueue creates a queue; processor must not be nil.
// A non-positive idleTimeout keeps workers until Shutdown.
func NewMutationQueue(
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	queueSize int,
	idleTimeout time.Duration,
	processor MutationProcessorFunc,
) *MutationQueue {
	if processor == nil {
		panic("mutation processor function cannot be nil")
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	return &MutationQueue{
		logger:      logger,
		metrics:     metrics,
		queueSize:   queueSize,
		idleTimeout: idleTimeout,
		processor:   processor,
		queues:      make(map[uint64]chan *mutationJob),
	}
}

// Enqueue hands the mutation to the user's worker and waits for its result.
// A cancelled context returns ctx.Err(); a job still queued is then skipped by the worker.
func (q *MutationQueue) Enqueue(ctx context.Context, req usecase.MutationRequest) (*usecase.MutationResult, error) {
	job := &mutationJob{
		ctx:        ctx,
		req:        req,
		resultChan: make(chan mutationOutcome, 1),
	}

	if err := q.submit(ctx, job); err != nil {
		return nil, err
	}

	select {
	case outcome := <-job.resultChan:
		return outcome.result, outcome.err
	case <-ctx.Done():
		q.logger.Warn("Context canceled while waiting for mutation result", map[string]any{
			"user_id": req.UserID,
			"type":    string(req.Type),
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

// submit looks the queue up and sends under the same read lock, so a worker
// retiring under the write lock never leaves a job in an orphaned channel
func (q *MutationQueue) submit(ctx context.Context, job *mutationJob) error {
	for {
		q.mu.RLock()
		if q.closed {
			q.mu.RUnlock()
			return ErrQueueClosed
		}
		queue, ok := q.queues[job.req.UserID]
		if !ok {
			q.mu.RUnlock()
			if _, err := q.startWorker(job.req.UserID); err != nil {
				return err
			}
			continue
		}

		select {
		case queue <- job:
			q.mu.RUnlock()
			q.logger.Debug("Mutation enqueued", map[string]any{
				"user_id": job.req.UserID,
				"type":    string(job.req.Type),
			})
			return nil
		case <-ctx.Done():
			q.mu.RUnlock()
			q.logger.Warn("Context canceled while enqueueing mutation", map[string]any{
				"user_id": job.req.UserID,
				"error":   ctx.Err().Error(),
			})
			return ctx.Err()
		}
	}
}

func (q *MutationQueue) startWorker(userID uint64) (chan *mutationJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}
	if queue, ok := q.queues[userID]; ok {
		return queue, nil
	}

	queue := make(chan *mutationJob, q.queueSize)
	q.queues[userID] = queue
	q.workers.Add(1)
	go q.run(userID, queue)

	q.metrics.SetQueueWorkers(len(q.queues))
	q.logger.Debug("Started mutation worker", map[string]any{"user_id": userID})
	return queue, nil
}

func (q *MutationQueue) run(userID uint64, queue chan *mutationJob) {
	defer q.workers.Done()

	var idle <-chan time.Time
	var timer *time.Timer
	if q.idleTimeout > 0 {
		timer = time.NewTimer(q.idleTimeout)
		defer timer.Stop()
		idle = timer.C
	}

	for {
		select {
		case job, ok := <-queue:
			if !ok {
				q.logger.Debug("Mutation worker stopped", map[string]any{"user_id": userID})
				return
			}
			q.handle(userID, job)
		case <-idle:
			if q.retire(userID, queue) {
				return
			}
		}
		if timer != nil {
			timer.Reset(q.idleTimeout)
		}
	}
}

func (q *MutationQueue) handle(userID uint64, job *mutationJob) {
	if err := job.ctx.Err(); err != nil {
		q.logger.Debug("Skipping canceled mutation", map[string]any{"user_id": userID})
		job.resultChan <- mutationOutcome{err: err}
		return
	}

	result, err := q.safeProcess(job)
	job.resultChan <- mutationOutcome{result: result, err: err}
}

// retire removes an idle worker's queue. It only tries the write lock: a
// sender may be blocked on a full buffer while holding the read lock, and
// this worker is the one that would drain it.
func (q *MutationQueue) retire(userID uint64, queue chan *mutationJob) bool {
	if !q.mu.TryLock() {
		return false
	}
	defer q.mu.Unlock()

	if q.closed || len(queue) > 0 || q.queues[userID] != queue {
		return false
	}
	delete(q.queues, userID)

	q.metrics.SetQueueWorkers(len(q.queues))
	q.logger.Debug("Retired idle mutation worker", map[string]any{"user_id": userID})
	return true
}

func (q *MutationQueue) safeProcess(job *mutationJob) (result *usecase.MutationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Mutation processor panicked", map[string]any{
				"user_id": job.req.UserID,
				"panic":   r,
			})
			result, err = nil, errs.ErrInternalServer
		}
	}()
	return q.processor(job.ctx, job.req)
}

// Workers returns the number of live per-user workers
func (q *MutationQueue) Workers() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.queues)
}

// Shutdown stops accepting work, lets workers drain what is queued and waits for them
func (q *MutationQueue) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for userID, queue := range q.queues {
		close(queue)
		delete(q.queues, userID)
	}
	q.mu.Unlock()

	q.workers.Wait()
	q.metrics.SetQueueWorkers(0)
	q.logger.Info("Mutation queue shut down", nil)
}
