package artifact

import (
	"context"

	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
)

// Service lists artifacts for deals the caller owns.
type Service interface {
	ListByDeal(ctx context.Context, p principal.Principal, dealID int64) ([]*Artifact, error)
}

type service struct {
	repo  Repository
	deals deal.Service
}

// NewService wires the artifact service.
func NewService(repo Repository, deals deal.Service) Service {
	return &service{repo: repo, deals: deals}
}

// ListByDeal returns the newest artifacts first. A missing or foreign deal
// is NOT_FOUND.
func (s *service) ListByDeal(ctx context.Context, p principal.Principal, dealID int64) ([]*Artifact, error) {
	if _, err := s.deals.Get(ctx, p, dealID); err != nil {
		return nil, err
	}
	return s.repo.ListByDeal(ctx, dealID, p.UserID, DefaultListLimit)
}
