package deal

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
)

const (
	DefaultListLimit = 50
	defaultCacheSize = 1024
)

// Service describes deal lifecycle operations.
type Service interface {
	// ResolveOrCreate reuses dealID when it exists and belongs to p, and
	// otherwise opens a new deal. When creation fails the returned deal is
	// unpersisted (ID 0) and the error is non-nil.
	ResolveOrCreate(ctx context.Context, p principal.Principal, dealID *int64, message string) (*Deal, error)
	Get(ctx context.Context, p principal.Principal, id int64) (*Deal, error)
	ListRecent(ctx context.Context, p principal.Principal, limit int) ([]*Deal, error)
}

type service struct {
	repo  Repository
	owned *lru.Cache
	log   zerolog.Logger
}

// NewService wires the deal service. cacheSize bounds the ownership cache.
func NewService(repo Repository, cacheSize int, log zerolog.Logger) (Service, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &service{
		repo:  repo,
		owned: cache,
		log:   log.With().Str("component", "deal-service").Logger(),
	}, nil
}

func (s *service) ResolveOrCreate(ctx context.Context, p principal.Principal, dealID *int64, message string) (*Deal, error) {
	if dealID != nil && *dealID > 0 {
		existing, err := s.Get(ctx, p, *dealID)
		if err == nil {
			return existing, nil
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			s.log.Warn().Err(err).Int64("deal_id", *dealID).Msg("deal lookup failed, opening a new deal")
		}
	}

	d := &Deal{
		OwnerUserID:   p.UserID,
		CustomerToken: CustomerToken(p.UserID, message),
		Status:        StatusNew,
		Preference:    toolvalue.Object(nil),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		d.ID = 0
		return d, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create deal")
	}
	s.remember(d)

	s.log.Debug().Int64("deal_id", d.ID).Str("user_id", p.UserID).Msg("deal created")
	return d, nil
}

func (s *service) Get(ctx context.Context, p principal.Principal, id int64) (*Deal, error) {
	if cached, ok := s.owned.Get(id); ok {
		d := cached.(Deal)
		if d.OwnerUserID == p.UserID {
			return &d, nil
		}
		return nil, notFound(ctx)
	}

	d, err := s.repo.GetOwned(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	s.remember(d)
	return d, nil
}

func (s *service) ListRecent(ctx context.Context, p principal.Principal, limit int) ([]*Deal, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return s.repo.ListRecent(ctx, p.UserID, limit)
}

func (s *service) remember(d *Deal) {
	s.owned.Add(d.ID, *d)
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"deal not found", nil, "deal-get-001")
}
