package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const jobColumns = `
	id, job_type, payload, status, priority, attempts, max_attempts,
	scheduled_at, started_at, completed_at, error_message, created_at, updated_at
`

func scanJob(row interface{ Scan(...interface{}) error }) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID,
		&j.JobType,
		&j.Payload,
		&j.Status,
		&j.Priority,
		&j.Attempts,
		&j.MaxAttempts,
		&j.ScheduledAt,
		&j.StartedAt,
		&j.CompletedAt,
		&j.ErrorMessage,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}

const enqueueJob = `
INSERT INTO jobs (job_type, payload, status, priority, max_attempts, scheduled_at)
VALUES ($1, $2, 'pending', $3, $4, $5)
RETURNING` + jobColumns

// EnqueueJobParams holds the inputs for EnqueueJob.
type EnqueueJobParams struct {
	JobType     string
	Payload     json.RawMessage
	Priority    int32
	MaxAttempts int32
	ScheduledAt time.Time
}

// EnqueueJob inserts a new pending job.
func (q *Queries) EnqueueJob(ctx context.Context, arg EnqueueJobParams) (Job, error) {
	row := q.db.QueryRowContext(ctx, enqueueJob,
		arg.JobType,
		arg.Payload,
		arg.Priority,
		arg.MaxAttempts,
		arg.ScheduledAt,
	)
	return scanJob(row)
}

const dequeueJob = `
SELECT` + jobColumns + `
FROM jobs
WHERE status = 'pending' AND scheduled_at <= NOW()
ORDER BY priority DESC, scheduled_at ASC
LIMIT 1
FOR UPDATE SKIP LOCKED
`

// DequeueJob selects the next runnable job, locking the row. Must run
// inside a transaction; returns sql.ErrNoRows when the queue is empty.
func (q *Queries) DequeueJob(ctx context.Context) (Job, error) {
	return scanJob(q.db.QueryRowContext(ctx, dequeueJob))
}

const updateJobStarted = `
UPDATE jobs
SET status = 'running',
	attempts = attempts + 1,
	started_at = NOW(),
	updated_at = NOW()
WHERE id = $1
`

// UpdateJobStarted marks a job as running and counts the attempt.
func (q *Queries) UpdateJobStarted(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, updateJobStarted, id)
	return err
}

const updateJobCompleted = `
UPDATE jobs
SET status = 'completed',
	completed_at = NOW(),
	updated_at = NOW()
WHERE id = $1
`

// UpdateJobCompleted marks a job as successfully completed.
func (q *Queries) UpdateJobCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, updateJobCompleted, id)
	return err
}

const updateJobFailed = `
UPDATE jobs
SET status = CASE
		WHEN $3 OR attempts >= max_attempts THEN 'failed'
		ELSE 'pending'
	END,
	scheduled_at = CASE
		WHEN $3 OR attempts >= max_attempts THEN scheduled_at
		ELSE NOW() + (INTERVAL '1 minute' * POWER(2, attempts))
	END,
	error_message = $2,
	updated_at = NOW()
WHERE id = $1
`

// UpdateJobFailedParams holds the inputs for UpdateJobFailed.
type UpdateJobFailedParams struct {
	ID           uuid.UUID
	ErrorMessage sql.NullString
	Permanent    bool
}

// UpdateJobFailed records a failure. Retryable failures go back to
// pending with exponential backoff; permanent or exhausted jobs are
// marked failed.
func (q *Queries) UpdateJobFailed(ctx context.Context, arg UpdateJobFailedParams) error {
	_, err := q.db.ExecContext(ctx, updateJobFailed, arg.ID, arg.ErrorMessage, arg.Permanent)
	return err
}

const recoverStaleJobs = `
UPDATE jobs
SET status = 'pending',
	started_at = NULL,
	updated_at = NOW()
WHERE status = 'running'
	AND started_at < NOW() - ($1 * INTERVAL '1 second')
`

// RecoverStaleJobs resets jobs stuck in running longer than the threshold
// and returns the number recovered.
func (q *Queries) RecoverStaleJobs(ctx context.Context, thresholdSeconds float64) (int64, error) {
	res, err := q.db.ExecContext(ctx, recoverStaleJobs, thresholdSeconds)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
