// Package artifact stores the payload snapshots produced for a deal.
package artifact

import (
	"context"
	"time"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

// Type classifies an artifact.
type Type string

const (
	TypeBriefing     Type = "briefing"
	TypeCompareSheet Type = "compare_sheet"
	TypeFollowUp     Type = "follow_up"
	TypeScript       Type = "script"
)

// DefaultListLimit caps artifacts returned for one deal.
const DefaultListLimit = 50

// Artifact is a persisted response snapshot.
type Artifact struct {
	ID          int64
	DealID      int64
	OwnerUserID string
	Type        Type
	Title       string
	Content     toolvalue.Value
	CreatedAt   time.Time
}

// Repository persists artifacts.
type Repository interface {
	Create(ctx context.Context, a *Artifact) error
	ListByDeal(ctx context.Context, dealID int64, ownerUserID string, limit int) ([]*Artifact, error)
}
