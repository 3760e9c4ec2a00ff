// Package filters exposes listing filter options and filtered search on
// behalf of the signed-in dealer.
package filters

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/tools"
)

const (
	DefaultTopK = 50
	MaxTopK     = 200
)

// SearchRequest is a filtered listing search. A nil TopK means DefaultTopK.
type SearchRequest struct {
	Query   string
	Filters toolvalue.Value
	TopK    *int
}

// Service describes filter operations.
type Service interface {
	Options(ctx context.Context, p principal.Principal) (toolvalue.Value, error)
	Search(ctx context.Context, p principal.Principal, req SearchRequest) (toolvalue.Value, error)
}

type service struct {
	tools tools.Caller
	log   zerolog.Logger
}

// NewService wires the filter service.
func NewService(caller tools.Caller, log zerolog.Logger) Service {
	return &service{
		tools: caller,
		log:   log.With().Str("component", "filters-service").Logger(),
	}
}

// Options returns the provider body carrying the filter facets for the
// dealer's branch.
func (s *service) Options(ctx context.Context, p principal.Principal) (toolvalue.Value, error) {
	body, err := s.tools.Call(ctx, tools.GetFilterOptions, toolvalue.Pairs(
		"branch_id", p.BranchID,
		"dealer_employee_id", p.EmployeeID,
	))
	if err != nil {
		return toolvalue.Null(), err
	}
	return body, nil
}

// Search runs a filtered listing search and returns the provider body.
func (s *service) Search(ctx context.Context, p principal.Principal, req SearchRequest) (toolvalue.Value, error) {
	filters := req.Filters
	switch {
	case filters.IsNull():
		filters = toolvalue.Object(nil)
	case filters.Kind() != toolvalue.KindMap:
		return toolvalue.Null(), platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"filters must be an object", nil, "filters-search-001")
	}

	topK := DefaultTopK
	if req.TopK != nil {
		topK = ClampTopK(*req.TopK)
	}
	body, err := s.tools.Call(ctx, tools.SearchListingsFiltered, toolvalue.Pairs(
		"query", req.Query,
		"top_k", topK,
		"branch_id", p.BranchID,
		"dealer_employee_id", p.EmployeeID,
		"filters", filters,
	))
	if err != nil {
		return toolvalue.Null(), err
	}
	s.log.Debug().Str("user_id", p.UserID).Int("top_k", topK).Msg("filtered search")
	return body, nil
}

// ClampTopK bounds a requested result count to 1..MaxTopK.
func ClampTopK(topK int) int {
	switch {
	case topK < 1:
		return 1
	case topK > MaxTopK:
		return MaxTopK
	default:
		return topK
	}
}
