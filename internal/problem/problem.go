// Package problem renders RFC 7807 problem details responses. Every error
// the API returns carries a fresh correlation_id so a client report can be
// matched against the server logs.
package problem

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const ContentType = "application/problem+json; charset=utf-8"

// Details is the RFC 7807 body.
type Details struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Status        int    `json:"status"`
	Detail        string `json:"detail"`
	CorrelationID string `json:"correlation_id"`
}

// Titles for the statuses the API produces.
func titleFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusUnprocessableEntity:
		return "Validation Error"
	case http.StatusTooManyRequests:
		return "Rate Limit Exceeded"
	default:
		return http.StatusText(status)
	}
}

// New builds a problem body for the given status with a fresh correlation id.
func New(status int, detail string) Details {
	return Details{
		Type:          "about:blank",
		Title:         titleFor(status),
		Status:        status,
		Detail:        detail,
		CorrelationID: uuid.NewString(),
	}
}

// Write renders a problem response and logs its correlation id.
func Write(w http.ResponseWriter, status int, detail string) {
	p := New(status, detail)

	slog.Debug("problem response",
		slog.Int("status", p.Status),
		slog.String("title", p.Title),
		slog.String("detail", p.Detail),
		slog.String("correlation_id", p.CorrelationID))

	body, err := json.Marshal(p)
	if err != nil {
		slog.Error("failed to marshal problem response", "error", err)
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"about:blank","title":"Internal Server Error","status":500,"detail":"error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
