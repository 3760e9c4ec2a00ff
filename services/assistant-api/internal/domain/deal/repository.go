package deal

import "context"

// Repository persists deals. GetOwned returns a NOT_FOUND platform error when
// the deal is missing or belongs to someone else.
type Repository interface {
	Create(ctx context.Context, d *Deal) error
	GetOwned(ctx context.Context, id int64, ownerUserID string) (*Deal, error)
	ListRecent(ctx context.Context, ownerUserID string, limit int) ([]*Deal, error)
}
