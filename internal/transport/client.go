// Package transport sends collected submissions to the submission endpoint.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/types"
)

// SubmitPath is the endpoint path appended to the base URL.
const SubmitPath = "/submit"

// maxAckBody bounds how much of a response body is read.
const maxAckBody = 64 << 10

// TransportError is a client-observed failure: either the endpoint answered
// with a non-success status, or no response arrived at all.
type TransportError struct {
	Status      int
	Unreachable bool
	Err         error
}

func (e *TransportError) Error() string {
	if e.Unreachable {
		return fmt.Sprintf("submission endpoint unreachable: %v", e.Err)
	}
	return fmt.Sprintf("submission rejected: status %d", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Client posts submission records to the endpoint. It never retries.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client for baseURL. A zero timeout means 30s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + SubmitPath,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the full submission URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends rec as a single JSON POST and interprets the response.
func (c *Client) Submit(ctx context.Context, rec types.SubmissionRecord) (*types.Ack, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := rec.String(schema.FieldSubmissionID); id != "" {
		req.Header.Set("Idempotency-Key", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Unreachable: true, Err: err}
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxAckBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ea types.ErrorAck
		_ = json.Unmarshal(data, &ea)
		var cause error
		if ea.Error != "" {
			cause = errors.New(ea.Error)
		}
		return nil, &TransportError{Status: resp.StatusCode, Err: cause}
	}

	var ack types.Ack
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode acknowledgment: %w", err)}
	}
	return &ack, nil
}
