package worker

import (
	"context"
	"errors"
)

// JobHandler executes one kind of background job. Handlers are registered
// with the Worker before Start and looked up by job type at dequeue time.
type JobHandler interface {
	// Type returns the job type identifier this handler processes.
	// It must match the job_type column written at enqueue time.
	Type() string

	// Handle executes the job. The payload is the raw JSON stored with the
	// job row. Returning a PermanentError marks the job failed without
	// further retries; any other error reschedules it with backoff until
	// max_attempts is reached.
	Handle(ctx context.Context, payload []byte) error
}

// PermanentError marks a failure that retrying cannot fix, such as a
// malformed payload or an image that will not decode.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// NewPermanentError wraps err so the worker fails the job immediately
// instead of rescheduling it.
func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err, or anything it wraps, is a PermanentError.
func IsPermanent(err error) bool {
	var permErr *PermanentError
	return errors.As(err, &permErr)
}
