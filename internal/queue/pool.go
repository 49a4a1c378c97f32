package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

const defaultPollInterval = time.Second

// Pool runs claimed jobs with a fixed concurrency bound. Workers claim the
// oldest waiting job, mark it active, run the processor and record the
// terminal state. A failed job is terminal: there is no retry, and a
// running job is never cancelled or timed out.
type Pool struct {
	store       storage.JobStore
	processor   core.Processor
	concurrency int
	wake        <-chan struct{}
	stop        chan struct{}
	wg          sync.WaitGroup
	logger      *slog.Logger
}

// NewPool creates a Pool draining the given store. If concurrency is 0 or
// negative, it defaults to 2.
func NewPool(store storage.JobStore, processor core.Processor, concurrency int, wake <-chan struct{}, logger *slog.Logger) *Pool {
	if concurrency <= 0 {
		concurrency = 2
	}
	return &Pool{
		store:       store,
		processor:   processor,
		concurrency: concurrency,
		wake:        wake,
		stop:        make(chan struct{}),
		logger:      logger,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := range p.concurrency {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker claims and runs jobs until Stop is called. A worker that finishes
// a job immediately tries to claim the next one; an idle worker waits for
// a wake signal or the poll tick, which also picks up jobs enqueued by
// other processes sharing the store.
func (p *Pool) worker(workerID int) {
	defer p.wg.Done()
	p.logger.Info("starting worker", "id", workerID)

	ticker := time.NewTicker(defaultPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			p.logger.Info("shutting down worker", "id", workerID)
			return
		default:
		}

		job, err := p.store.ClaimJob(context.Background())
		switch {
		case err == nil:
			p.run(workerID, job)
			continue
		case errors.Is(err, storage.ErrNoWaitingJobs):
		default:
			p.logger.Error("failed to claim job", "worker_id", workerID, "error", err)
		}

		select {
		case <-p.stop:
			p.logger.Info("shutting down worker", "id", workerID)
			return
		case <-p.wake:
		case <-ticker.C:
		}
	}
}

func (p *Pool) run(workerID int, job *core.Job) {
	logger := p.logger.With("worker_id", workerID, "job_id", job.ID)
	logger.Info("worker processing job", "kind", job.Input.Kind)

	result, err := p.processor.Process(context.Background(), job)
	if err != nil {
		logger.Error("job failed", "error", err)
		if failErr := p.store.FailJob(context.Background(), job.ID, err.Error()); failErr != nil {
			logger.Error("failed to record job failure", "error", failErr)
		}
		return
	}

	if err := p.store.CompleteJob(context.Background(), job.ID, result); err != nil {
		logger.Error("failed to record job completion", "error", err)
		return
	}
	logger.Info("job completed")
}

// Stop waits for in-flight jobs to finish, then returns. Waiting jobs stay
// in the store and are picked up on the next start.
func (p *Pool) Stop() {
	p.logger.Info("stopping worker pool and waiting for jobs to finish")
	close(p.stop)
	p.wg.Wait()
	p.logger.Info("all workers have finished")
}
