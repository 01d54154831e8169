package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/trailblazer/trailblazer/internal/sheet"
	"github.com/trailblazer/trailblazer/internal/types"
)

// Client-facing failure messages. Underlying causes are logged, never sent.
const (
	MsgSubmitFailed     = "Failed to submit form"
	MsgBadRequest       = "Request body must be a JSON object"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgInternal         = "Internal Server Error"
)

// WriteError writes an error acknowledgment with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(types.ErrorAck{Error: message, Instance: r.URL.Path}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// writeJSON writes v with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// errorKind names the failure class for logs.
func errorKind(err error) string {
	switch {
	case errors.Is(err, sheet.ErrAuth):
		return "auth"
	case errors.Is(err, sheet.ErrAppend):
		return "append"
	default:
		return "internal"
	}
}
