package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Deepak7704/100xSWE/internal/core"
)

const (
	jobKeyPrefix     = "swe:job:"
	sessionKeyPrefix = "swe:session:"
	waitingListKey   = "swe:jobs:waiting"
)

// redisStore keeps each job as a JSON value and maintains FIFO admission
// order with a list. Only the worker that claimed a job writes to it, so
// read-modify-write on a single job key needs no cross-process locking.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) CreateJob(ctx context.Context, job *core.Job) error {
	if err := s.saveJob(ctx, job); err != nil {
		return err
	}
	return s.client.RPush(ctx, waitingListKey, job.ID).Err()
}

func (s *redisStore) GetJob(ctx context.Context, id string) (*core.Job, error) {
	raw, err := s.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var job core.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

// ClaimJob pops ids off the waiting list until it finds one still in state
// waiting. LPop is atomic, so two workers never receive the same id.
func (s *redisStore) ClaimJob(ctx context.Context) (*core.Job, error) {
	for {
		id, err := s.client.LPop(ctx, waitingListKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, ErrNoWaitingJobs
			}
			return nil, err
		}
		job, err := s.GetJob(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		if job.State != core.JobStateWaiting {
			continue
		}
		job.State = core.JobStateActive
		job.UpdatedAt = time.Now().UTC()
		if err := s.saveJob(ctx, job); err != nil {
			return nil, err
		}
		return job, nil
	}
}

func (s *redisStore) UpdateJobProgress(ctx context.Context, id string, progress int) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job.State.Terminal() || progress <= job.Progress {
		return nil
	}
	job.Progress = progress
	job.UpdatedAt = time.Now().UTC()
	return s.saveJob(ctx, job)
}

func (s *redisStore) CompleteJob(ctx context.Context, id string, result *core.Result) error {
	return s.finish(ctx, id, core.JobStateCompleted, func(job *core.Job) {
		job.Result = result
	})
}

func (s *redisStore) FailJob(ctx context.Context, id string, reason string) error {
	return s.finish(ctx, id, core.JobStateFailed, func(job *core.Job) {
		job.FailureReason = reason
	})
}

func (s *redisStore) finish(ctx context.Context, id string, state core.JobState, apply func(*core.Job)) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if !job.State.CanTransitionTo(state) {
		return fmt.Errorf("job %s: illegal transition %s -> %s", id, job.State, state)
	}
	job.State = state
	job.UpdatedAt = time.Now().UTC()
	apply(job)
	return s.saveJob(ctx, job)
}

func (s *redisStore) saveJob(ctx context.Context, job *core.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}
	return s.client.Set(ctx, jobKeyPrefix+job.ID, raw, 0).Err()
}

func (s *redisStore) SaveSession(ctx context.Context, session *core.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ttl := time.Until(session.ExpiredAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, ttl).Err()
}

func (s *redisStore) GetSession(ctx context.Context, id string) (*core.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var session core.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

func (s *redisStore) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
