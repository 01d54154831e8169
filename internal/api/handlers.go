package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/sheet"
	"github.com/trailblazer/trailblazer/internal/types"
)

// MaxBodyBytes bounds the size of a submission body.
const MaxBodyBytes = 1 << 20

// MsgSubmitted is the success acknowledgment message.
const MsgSubmitted = "Form submission successful!"

// Options configure a Handler.
type Options struct {
	// IncludeLabels renders each cell as "<label>: <value>".
	IncludeLabels bool
	// Timeout bounds authentication and the append separately.
	Timeout time.Duration
	Version string
}

// Handler implements the API handlers
type Handler struct {
	connector sheet.Connector
	schema    *schema.Schema
	rowOpts   schema.RowOptions
	timeout   time.Duration
	version   string
}

// NewHandler creates a new Handler writing sc-shaped rows through connector.
func NewHandler(connector sheet.Connector, sc *schema.Schema, opts Options) *Handler {
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Handler{
		connector: connector,
		schema:    sc,
		rowOpts:   schema.RowOptions{IncludeLabels: opts.IncludeLabels},
		timeout:   opts.Timeout,
		version:   opts.Version,
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Backend: h.connector.Name(),
		Fields:  h.schema.Len(),
	})
}

// Submit handles POST /submit. Each request runs one pass of
// method check → parse → map → authenticate → append → respond.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, r, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	logger := slog.With("request_id", middleware.GetReqID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	rec, err := decodeRecord(r.Body)
	if err != nil {
		logger.Warn("malformed submission body", "error", err)
		WriteError(w, r, http.StatusBadRequest, MsgBadRequest)
		return
	}

	row := h.schema.Row(rec, h.rowOpts)

	var submissionID string
	if name, ok := h.schema.SubmissionIDField(); ok {
		submissionID = rec.String(name)
	}
	logger = logger.With("submission_id", submissionID)
	// Field names only: answers are free text and stay out of logs.
	logger.Debug("submission received", "answered", rec.Len(), "fields", recordKeys(rec), "columns", len(row))

	appender, err := h.connect(r.Context())
	if err != nil {
		logger.Error("submission failed", "stage", "authenticate", "kind", errorKind(err), "error", err)
		WriteError(w, r, http.StatusInternalServerError, MsgSubmitFailed)
		return
	}

	receipt, err := h.append(r.Context(), appender, row)
	if err != nil {
		logger.Error("submission failed", "stage", "append", "kind", errorKind(err), "error", err)
		WriteError(w, r, http.StatusInternalServerError, MsgSubmitFailed)
		return
	}

	logger.Info("submission appended",
		"backend", h.connector.Name(),
		"updated_range", receipt.UpdatedRange,
		"updated_cells", receipt.UpdatedCells,
	)
	writeJSON(w, types.Ack{Message: MsgSubmitted, SubmissionID: submissionID})
}

func (h *Handler) connect(ctx context.Context) (sheet.Appender, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.connector.Connect(ctx)
}

func (h *Handler) append(ctx context.Context, appender sheet.Appender, row types.Row) (*types.AppendReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return appender.Append(ctx, row)
}

// errNotObject rejects bodies that are valid JSON but not an object.
var errNotObject = errors.New("body is not a JSON object")

// decodeRecord reads exactly one JSON object from body. Trailing bytes
// after the object, other than whitespace, make the body malformed.
func decodeRecord(body io.Reader) (types.SubmissionRecord, error) {
	dec := json.NewDecoder(body)
	var rec types.SubmissionRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errNotObject
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after JSON object")
		}
		return nil, err
	}
	return rec, nil
}

func recordKeys(rec types.SubmissionRecord) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
