package gateway

import (
	"context"
	"time"
)

// AuditEvent records one tool call attempt that reached the upstream.
// Args and Result hold masked JSON; Result is cut to the configured budget.
type AuditEvent struct {
	ID         string    `json:"id,omitempty"`
	Tool       string    `json:"tool"`
	Args       string    `json:"args"`
	Result     string    `json:"result"`
	Status     string    `json:"status"`
	RequestID  string    `json:"request_id,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

// AuditSink is an append-only, bounded audit trail shared by every caller.
// Implementations must be safe for concurrent use.
type AuditSink interface {
	Append(ctx context.Context, event AuditEvent) error
	Recent(ctx context.Context, limit int) ([]AuditEvent, error)
}
