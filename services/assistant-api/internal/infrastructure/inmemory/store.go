// Package inmemory holds process-local repositories used when no database is
// configured, and as fixtures in tests.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/auditlog"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
)

// Store backs every in-memory repository with one lock, so a transaction
// can hold it across repository calls.
type Store struct {
	mu sync.Mutex

	deals          map[int64]deal.Deal
	artifacts      []artifact.Artifact
	audits         []auditlog.Entry
	quickQuestions map[int64]quickquestion.QuickQuestion

	nextDealID     int64
	nextArtifactID int64
	nextAuditID    int64
	nextQuestionID int64

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		deals:          map[int64]deal.Deal{},
		quickQuestions: map[int64]quickquestion.QuickQuestion{},
		now:            time.Now,
	}
}

type txKey struct{}

// lock acquires the store lock unless ctx belongs to a running transaction,
// which already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Transactor runs fn under the store lock. Writes made before fn fails are
// rolled back.
type Transactor struct {
	store *Store
}

// NewTransactor binds a transactor to store.
func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s := t.store
	if ctx.Value(txKey{}) == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	artifactCount, auditCount := len(s.artifacts), len(s.audits)
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.artifacts = s.artifacts[:artifactCount]
		s.audits = s.audits[:auditCount]
		return err
	}
	return nil
}

// Artifacts returns a copy of every stored artifact in insertion order.
func (s *Store) Artifacts() []artifact.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]artifact.Artifact(nil), s.artifacts...)
}

// AuditEntries returns a copy of every stored audit row in insertion order.
func (s *Store) AuditEntries() []auditlog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]auditlog.Entry(nil), s.audits...)
}

// DealCount reports how many deals exist.
func (s *Store) DealCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deals)
}

// DealRepository implements deal.Repository.
type DealRepository struct {
	store *Store
}

var _ deal.Repository = (*DealRepository)(nil)

func NewDealRepository(store *Store) deal.Repository {
	return &DealRepository{store: store}
}

func (r *DealRepository) Create(ctx context.Context, d *deal.Deal) error {
	s := r.store
	defer s.lock(ctx)()

	s.nextDealID++
	now := s.now()
	d.ID = s.nextDealID
	d.CreatedAt = now
	d.UpdatedAt = now
	s.deals[d.ID] = *d
	return nil
}

func (r *DealRepository) GetOwned(ctx context.Context, id int64, ownerUserID string) (*deal.Deal, error) {
	s := r.store
	defer s.lock(ctx)()

	d, ok := s.deals[id]
	if !ok || d.OwnerUserID != ownerUserID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"deal not found", nil, "inmemory-deal-get-001")
	}
	return &d, nil
}

func (r *DealRepository) ListRecent(ctx context.Context, ownerUserID string, limit int) ([]*deal.Deal, error) {
	s := r.store
	defer s.lock(ctx)()

	out := make([]*deal.Deal, 0)
	for _, d := range s.deals {
		if d.OwnerUserID == ownerUserID {
			cp := d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ArtifactRepository implements artifact.Repository.
type ArtifactRepository struct {
	store *Store
}

var _ artifact.Repository = (*ArtifactRepository)(nil)

func NewArtifactRepository(store *Store) artifact.Repository {
	return &ArtifactRepository{store: store}
}

func (r *ArtifactRepository) Create(ctx context.Context, a *artifact.Artifact) error {
	s := r.store
	defer s.lock(ctx)()

	s.nextArtifactID++
	a.ID = s.nextArtifactID
	a.CreatedAt = s.now()
	s.artifacts = append(s.artifacts, *a)
	return nil
}

func (r *ArtifactRepository) ListByDeal(ctx context.Context, dealID int64, ownerUserID string, limit int) ([]*artifact.Artifact, error) {
	s := r.store
	defer s.lock(ctx)()

	out := make([]*artifact.Artifact, 0)
	for i := len(s.artifacts) - 1; i >= 0; i-- {
		a := s.artifacts[i]
		if a.DealID != dealID || a.OwnerUserID != ownerUserID {
			continue
		}
		out = append(out, &a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// AuditRepository implements auditlog.Repository.
type AuditRepository struct {
	store *Store
}

var _ auditlog.Repository = (*AuditRepository)(nil)

func NewAuditRepository(store *Store) auditlog.Repository {
	return &AuditRepository{store: store}
}

func (r *AuditRepository) Create(ctx context.Context, e *auditlog.Entry) error {
	s := r.store
	defer s.lock(ctx)()

	s.nextAuditID++
	e.ID = s.nextAuditID
	e.CreatedAt = s.now()
	s.audits = append(s.audits, *e)
	return nil
}

// QuickQuestionRepository implements quickquestion.Repository.
type QuickQuestionRepository struct {
	store *Store
}

var _ quickquestion.Repository = (*QuickQuestionRepository)(nil)

func NewQuickQuestionRepository(store *Store) quickquestion.Repository {
	return &QuickQuestionRepository{store: store}
}

func (r *QuickQuestionRepository) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]*quickquestion.QuickQuestion, error) {
	s := r.store
	defer s.lock(ctx)()

	out := make([]*quickquestion.QuickQuestion, 0)
	for _, q := range s.quickQuestions {
		if q.OwnerUserID == ownerUserID {
			cp := q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *QuickQuestionRepository) CreateMany(ctx context.Context, questions []*quickquestion.QuickQuestion) error {
	s := r.store
	defer s.lock(ctx)()

	now := s.now()
	for _, q := range questions {
		s.nextQuestionID++
		q.ID = s.nextQuestionID
		q.CreatedAt = now
		s.quickQuestions[q.ID] = *q
	}
	return nil
}

func (r *QuickQuestionRepository) DeleteOwned(ctx context.Context, id int64, ownerUserID string) (bool, error) {
	s := r.store
	defer s.lock(ctx)()

	q, ok := s.quickQuestions[id]
	if !ok || q.OwnerUserID != ownerUserID {
		return false, nil
	}
	delete(s.quickQuestions, id)
	return true, nil
}
