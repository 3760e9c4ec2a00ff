// Package auditlog records user actions against the assistant.
package auditlog

import (
	"context"
	"time"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

// Entry is one audit row.
type Entry struct {
	ID          int64
	ActorUserID string
	Action      string
	Resource    string
	Request     toolvalue.Value
	Response    toolvalue.Value
	CreatedAt   time.Time
}

// Repository appends audit rows.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
}
