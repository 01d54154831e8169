// Package sheet appends submission rows to the backing spreadsheet.
//
// The spreadsheet is append-only and is the system of record. Each append
// writes exactly one row after existing content; concurrent appends never
// overwrite each other, so no locking happens here. An append that succeeds
// while the caller never sees the response yields a row the client may
// resubmit; the submission id column is what lets those duplicates be
// identified afterwards.
package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/trailblazer/trailblazer/internal/types"
)

// Appender writes one row per call.
type Appender interface {
	Append(ctx context.Context, row types.Row) (*types.AppendReceipt, error)
}

// Connector acquires an authenticated Appender. Connect is called once per
// request so no token outlives the request that fetched it.
type Connector interface {
	Connect(ctx context.Context) (Appender, error)
	Name() string
}

var (
	// ErrAuth is matched by every credential or token failure.
	ErrAuth = errors.New("spreadsheet authentication failed")
	// ErrAppend is matched by every failed append.
	ErrAppend = errors.New("spreadsheet append failed")
	// ErrMissingCredentials is returned when neither a key pair nor a credentials file is set.
	ErrMissingCredentials = errors.New("service account credentials not configured")
)

// AuthError wraps a credential or token acquisition failure.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAuth, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// AppendError wraps a failed append. Status is the HTTP status reported by
// the spreadsheet service, or 0 when no response was received.
type AppendError struct {
	Status int
	Err    error
}

func (e *AppendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %v", ErrAppend, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrAppend, e.Err)
}

func (e *AppendError) Unwrap() error { return e.Err }

func (e *AppendError) Is(target error) bool { return target == ErrAppend }

// ColumnName converts a 1-based column index to A1 notation letters.
func ColumnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
