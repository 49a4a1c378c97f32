package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/Deepak7704/100xSWE/internal/core"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Store backed by the given connection pool.
// The schema is managed by the embedded migrations in internal/db.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) CreateJob(ctx context.Context, job *core.Job) error {
	input, err := json.Marshal(job.Input)
	if err != nil {
		return fmt.Errorf("failed to encode job input: %w", err)
	}
	query := `INSERT INTO jobs (id, input, state, progress, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.db.ExecContext(ctx, query, job.ID, string(input), job.State, job.Progress, job.CreatedAt, job.UpdatedAt)
	return err
}

func (s *postgresStore) GetJob(ctx context.Context, id string) (*core.Job, error) {
	query := `
		SELECT id, input, state, progress, result, failure_reason, created_at, updated_at
		FROM jobs
		WHERE id = $1`
	return scanJob(s.db.QueryRowContext(ctx, query, id))
}

// ClaimJob selects the oldest waiting job, skipping rows another worker is
// claiming at the same instant, and flips it to active in one statement.
func (s *postgresStore) ClaimJob(ctx context.Context) (*core.Job, error) {
	query := `
		UPDATE jobs SET state = 'active', updated_at = $1
		WHERE id = (
			SELECT id FROM jobs
			WHERE state = 'waiting'
			ORDER BY seq ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, input, state, progress, result, failure_reason, created_at, updated_at`
	job, err := scanJob(s.db.QueryRowContext(ctx, query, time.Now().UTC()))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoWaitingJobs
	}
	return job, err
}

func (s *postgresStore) UpdateJobProgress(ctx context.Context, id string, progress int) error {
	query := `
		UPDATE jobs SET progress = GREATEST(progress, $2), updated_at = $3
		WHERE id = $1 AND state IN ('waiting', 'active')`
	res, err := s.db.ExecContext(ctx, query, id, progress, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return s.checkExists(ctx, id)
	}
	return nil
}

func (s *postgresStore) CompleteJob(ctx context.Context, id string, result *core.Result) error {
	// A nil result (webhook ingest jobs) is stored as SQL NULL, not the
	// jsonb literal null.
	var encoded any
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode job result: %w", err)
		}
		encoded = string(data)
	}
	query := `UPDATE jobs SET state = 'completed', result = $2, updated_at = $3 WHERE id = $1 AND state = 'active'`
	return s.finish(ctx, id, core.JobStateCompleted, query, encoded)
}

func (s *postgresStore) FailJob(ctx context.Context, id string, reason string) error {
	query := `UPDATE jobs SET state = 'failed', failure_reason = $2, updated_at = $3 WHERE id = $1 AND state = 'active'`
	return s.finish(ctx, id, core.JobStateFailed, query, reason)
}

func (s *postgresStore) finish(ctx context.Context, id string, state core.JobState, query string, arg any) error {
	res, err := s.db.ExecContext(ctx, query, id, arg, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if err := s.checkExists(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("job %s: illegal transition to %s", id, state)
	}
	return nil
}

// checkExists distinguishes a missing job from a frozen or terminal one.
func (s *postgresStore) checkExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM jobs WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *postgresStore) SaveSession(ctx context.Context, session *core.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, username, email, name, avatar, profile_url, github_access_token, created_at, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET expired_at = EXCLUDED.expired_at`
	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.Username, session.Email, session.Name,
		session.Avatar, session.ProfileURL, session.GitHubAccessToken, session.CreatedAt, session.ExpiredAt)
	return err
}

func (s *postgresStore) GetSession(ctx context.Context, id string) (*core.Session, error) {
	query := `
		SELECT id, user_id, username, email, name, avatar, profile_url, github_access_token, created_at, expired_at
		FROM sessions
		WHERE id = $1`

	var session core.Session
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.Username, &session.Email, &session.Name,
		&session.Avatar, &session.ProfileURL, &session.GitHubAccessToken, &session.CreatedAt, &session.ExpiredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *postgresStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*core.Job, error) {
	var (
		job       core.Job
		inputRaw  []byte
		resultRaw []byte
		failure   sql.NullString
	)
	err := row.Scan(&job.ID, &inputRaw, &job.State, &job.Progress, &resultRaw, &failure, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(inputRaw, &job.Input); err != nil {
		return nil, fmt.Errorf("failed to decode job input: %w", err)
	}
	if len(resultRaw) > 0 && string(resultRaw) != "null" {
		job.Result = &core.Result{}
		if err := json.Unmarshal(resultRaw, job.Result); err != nil {
			return nil, fmt.Errorf("failed to decode job result: %w", err)
		}
	}
	job.FailureReason = failure.String
	return &job, nil
}
