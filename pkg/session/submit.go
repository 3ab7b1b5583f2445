package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/validation"
)

// ErrInvalid is matched by errors returned from Submit when the document
// fails validation.
var ErrInvalid = errors.New("session: document has validation errors")

// Submission is the payload handed to the submission layer.
type Submission struct {
	Project schema.Record
	Samples []schema.Record
}

// Submitter delivers a validated document. Implementations own transport and
// retries; the session performs no network I/O.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, submission Submission) error

// Submit delegates to the underlying function.
func (fn SubmitterFunc) Submit(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// ValidationError carries the result that blocked a submission.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("session: %d validation error(s)", e.Result.ErrorCount)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Submit validates the document and, when valid, hands a snapshot to
// submitter.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (validation.Result, error) {
	if ctx == nil {
		return validation.Result{}, errors.New("session: context is required")
	}
	if submitter == nil {
		return validation.Result{}, errors.New("session: submitter is required")
	}
	if err := ctx.Err(); err != nil {
		return validation.Result{}, err
	}

	result := s.Validate()
	if !result.IsValid {
		return result, &ValidationError{Result: result}
	}

	submission := Submission{Project: s.Project(), Samples: s.Samples()}
	if err := submitter.Submit(ctx, submission); err != nil {
		s.logger.Error("submission failed", "samples", len(submission.Samples), "error", err)
		return result, fmt.Errorf("session: submit: %w", err)
	}
	s.logger.Info("document submitted", "samples", len(submission.Samples))
	return result, nil
}
