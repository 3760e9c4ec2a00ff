package dealrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/entities"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/transaction"
)

type DealGormRepository struct {
	db *transaction.Database
}

var _ deal.Repository = (*DealGormRepository)(nil)

func NewDealGormRepository(db *transaction.Database) deal.Repository {
	return &DealGormRepository{db: db}
}

func (repo *DealGormRepository) Create(ctx context.Context, d *deal.Deal) error {
	entity := entities.NewDeal(d)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create deal", err, "dealrepo-create-001")
	}
	*d = *entity.EtoD()
	return nil
}

func (repo *DealGormRepository) GetOwned(ctx context.Context, id int64, ownerUserID string) (*deal.Deal, error) {
	var entity entities.Deal
	err := repo.db.GetTx(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerUserID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"deal not found", nil, "dealrepo-get-001")
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find deal", err, "dealrepo-get-002")
	}
	return entity.EtoD(), nil
}

func (repo *DealGormRepository) ListRecent(ctx context.Context, ownerUserID string, limit int) ([]*deal.Deal, error) {
	var rows []entities.Deal
	err := repo.db.GetTx(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("updated_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list deals", err, "dealrepo-list-001")
	}

	out := make([]*deal.Deal, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}
