package form

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/types"
	"github.com/trailblazer/trailblazer/internal/validation"
)

// Submitter sends a collected record to the submission endpoint.
type Submitter interface {
	Submit(ctx context.Context, rec types.SubmissionRecord) (*types.Ack, error)
}

// OutcomeKind distinguishes what the user has to do next.
type OutcomeKind string

const (
	// OutcomeInvalid means the input must be fixed; nothing was sent.
	OutcomeInvalid OutcomeKind = "invalid"
	// OutcomeFailed means the submission did not go through; try again.
	OutcomeFailed OutcomeKind = "failed"
	// OutcomeSubmitted means the row was accepted and the form was reset.
	OutcomeSubmitted OutcomeKind = "submitted"
)

// User-facing messages.
const (
	MessageInvalid   = "Please fix the highlighted fields and submit again."
	MessageFailed    = "Form submission failed. Please try again."
	MessageSubmitted = "Form submitted successfully!"
)

// Outcome is the result of one submit attempt.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Errors  []validation.ValidationError
	Ack     *types.Ack
	Err     error
}

// Form binds a state to a schema and a submitter.
type Form struct {
	schema    *schema.Schema
	submitter Submitter
	state     *State
}

// New creates a Form over state.
func New(sc *schema.Schema, submitter Submitter, state *State) *Form {
	if state == nil {
		state = &State{}
	}
	return &Form{schema: sc, submitter: submitter, state: state}
}

// State returns the live form state.
func (f *Form) State() *State {
	return f.state
}

// Submit validates, collects and sends the form once. The state is reset
// only after the endpoint acknowledges the submission; on any failure it is
// left untouched so the user can retry.
func (f *Form) Submit(ctx context.Context) Outcome {
	// The id is stamped into the state, so a retry after a failed attempt
	// reuses it and duplicate rows can be told apart later. The user cannot
	// edit it, so a malformed one is replaced rather than reported.
	if name, ok := f.schema.SubmissionIDField(); ok {
		ctrl, found := f.state.Control(name)
		if !found || ctrl.Value == "" || validation.ValidateULID(name, ctrl.Value) != nil {
			if found && ctrl.Value != "" {
				slog.Debug("replacing malformed submission id")
			}
			f.state.Set(name, ulid.Make().String())
		}
	}

	if errs := Validate(f.schema, f.state); len(errs) > 0 {
		return Outcome{Kind: OutcomeInvalid, Message: MessageInvalid, Errors: errs}
	}

	rec := Collect(f.state)
	id := ""
	if name, ok := f.schema.SubmissionIDField(); ok {
		id = rec.String(name)
	}

	ack, err := f.submitter.Submit(ctx, rec)
	if err != nil {
		slog.Warn("submission failed", "submission_id", id, "error", err)
		return Outcome{Kind: OutcomeFailed, Message: MessageFailed, Err: err}
	}

	slog.Info("submission accepted", "submission_id", id)
	f.state.Reset()
	return Outcome{Kind: OutcomeSubmitted, Message: MessageSubmitted, Ack: ack}
}
