package quickquestion

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
)

// Service describes quick question operations.
type Service interface {
	List(ctx context.Context, p principal.Principal) ([]*QuickQuestion, error)
	Create(ctx context.Context, p principal.Principal, text string) (*QuickQuestion, error)
	Delete(ctx context.Context, p principal.Principal, id int64) error
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the quick question service.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "quickquestion-service").Logger(),
	}
}

// List returns the newest questions first. A user with none is seeded with
// the defaults.
func (s *service) List(ctx context.Context, p principal.Principal) ([]*QuickQuestion, error) {
	items, err := s.repo.ListByOwner(ctx, p.UserID, ListLimit)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	seed := make([]*QuickQuestion, 0, len(Defaults))
	for _, text := range Defaults {
		seed = append(seed, &QuickQuestion{OwnerUserID: p.UserID, Text: text})
	}
	if err := s.repo.CreateMany(ctx, seed); err != nil {
		return nil, err
	}
	s.log.Debug().Str("user_id", p.UserID).Int("count", len(seed)).Msg("seeded default quick questions")

	return s.repo.ListByOwner(ctx, p.UserID, ListLimit)
}

func (s *service) Create(ctx context.Context, p principal.Principal, text string) (*QuickQuestion, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"text is required", nil, "quickquestion-create-001")
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"text must be at most 240 characters", nil, "quickquestion-create-002")
	}

	q := &QuickQuestion{OwnerUserID: p.UserID, Text: trimmed}
	if err := s.repo.CreateMany(ctx, []*QuickQuestion{q}); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Delete(ctx context.Context, p principal.Principal, id int64) error {
	deleted, err := s.repo.DeleteOwned(ctx, id, p.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"Not found", nil, "quickquestion-delete-001")
	}
	return nil
}
