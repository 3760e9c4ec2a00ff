package deal

import (
	"time"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

// Status is the pipeline stage of a deal.
type Status string

const (
	StatusNew          Status = "new"
	StatusQualifying   Status = "qualifying"
	StatusRecommending Status = "recommending"
	StatusNegotiating  Status = "negotiating"
	StatusFollowUp     Status = "follow_up"
	StatusContracted   Status = "contracted"
	StatusLost         Status = "lost"
)

// Deal is one customer conversation owned by a dealer.
type Deal struct {
	ID            int64
	OwnerUserID   string
	CustomerToken string
	Status        Status
	Notes         *string
	Preference    toolvalue.Value
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Persisted reports whether the deal has a surrogate id.
func (d *Deal) Persisted() bool {
	return d != nil && d.ID > 0
}
