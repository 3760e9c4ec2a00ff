package artifactrepo

import (
	"context"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/entities"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/transaction"
)

type ArtifactGormRepository struct {
	db *transaction.Database
}

var _ artifact.Repository = (*ArtifactGormRepository)(nil)

func NewArtifactGormRepository(db *transaction.Database) artifact.Repository {
	return &ArtifactGormRepository{db: db}
}

func (repo *ArtifactGormRepository) Create(ctx context.Context, a *artifact.Artifact) error {
	entity := entities.NewArtifact(a)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create artifact", err, "artifactrepo-create-001")
	}
	a.ID = entity.ID
	a.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *ArtifactGormRepository) ListByDeal(ctx context.Context, dealID int64, ownerUserID string, limit int) ([]*artifact.Artifact, error) {
	var rows []entities.Artifact
	err := repo.db.GetTx(ctx).
		Where("deal_id = ? AND owner_user_id = ?", dealID, ownerUserID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list artifacts", err, "artifactrepo-list-001")
	}

	out := make([]*artifact.Artifact, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}
