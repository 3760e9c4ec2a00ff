package auditrepo

import (
	"context"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/auditlog"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/entities"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/transaction"
)

type AuditGormRepository struct {
	db *transaction.Database
}

var _ auditlog.Repository = (*AuditGormRepository)(nil)

func NewAuditGormRepository(db *transaction.Database) auditlog.Repository {
	return &AuditGormRepository{db: db}
}

func (repo *AuditGormRepository) Create(ctx context.Context, e *auditlog.Entry) error {
	entity := entities.NewAuditLog(e)
	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create audit log", err, "auditrepo-create-001")
	}
	e.ID = entity.ID
	e.CreatedAt = entity.CreatedAt
	return nil
}
