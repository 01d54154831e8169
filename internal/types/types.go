package types

import (
	"encoding/json"
	"time"
)

// SubmissionRecord maps a form field name to the value the user entered.
// Text controls carry strings, checkboxes carry booleans. A record lives for
// the duration of one submission only.
type SubmissionRecord map[string]any

// String returns the value for name as a string, or "" when absent or not a string.
func (r SubmissionRecord) String(name string) string {
	s, _ := r[name].(string)
	return s
}

// Bool returns the value for name as a bool, or false when absent or not a bool.
func (r SubmissionRecord) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

// Len returns the number of keys in the record.
func (r SubmissionRecord) Len() int {
	return len(r)
}

// Row is an ordered sequence of cell values, one per schema field.
type Row []string

// Values converts the row to the [][]any shape expected by spreadsheet APIs.
func (r Row) Values() []any {
	out := make([]any, len(r))
	for i, v := range r {
		out[i] = v
	}
	return out
}

// MarshalCells encodes the row as a JSON array of strings.
func (r Row) MarshalCells() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(r))
}

// AppendReceipt describes a successful append.
type AppendReceipt struct {
	Spreadsheet  string    `json:"spreadsheet"`
	UpdatedRange string    `json:"updated_range,omitempty"`
	UpdatedCells int64     `json:"updated_cells"`
	AppendedAt   time.Time `json:"appended_at"`
}

// Ack is the success acknowledgment returned by the submission endpoint.
type Ack struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId,omitempty"`
}

// ErrorAck is the failure acknowledgment returned by the submission endpoint.
type ErrorAck struct {
	Error    string `json:"error"`
	Instance string `json:"instance,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Backend string `json:"backend"`
	Fields  int    `json:"fields"`
}
