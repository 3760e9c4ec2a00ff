package quickquestionrepo

import (
	"context"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/entities"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/transaction"
)

type QuickQuestionGormRepository struct {
	db *transaction.Database
}

var _ quickquestion.Repository = (*QuickQuestionGormRepository)(nil)

func NewQuickQuestionGormRepository(db *transaction.Database) quickquestion.Repository {
	return &QuickQuestionGormRepository{db: db}
}

func (repo *QuickQuestionGormRepository) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]*quickquestion.QuickQuestion, error) {
	var rows []entities.QuickQuestion
	err := repo.db.GetTx(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list quick questions", err, "quickquestionrepo-list-001")
	}

	out := make([]*quickquestion.QuickQuestion, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}

func (repo *QuickQuestionGormRepository) CreateMany(ctx context.Context, questions []*quickquestion.QuickQuestion) error {
	if len(questions) == 0 {
		return nil
	}

	rows := make([]*entities.QuickQuestion, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, entities.NewQuickQuestion(q))
	}
	if err := repo.db.GetTx(ctx).Create(&rows).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create quick questions", err, "quickquestionrepo-create-001")
	}

	for i, row := range rows {
		questions[i].ID = row.ID
		questions[i].CreatedAt = row.CreatedAt
	}
	return nil
}

func (repo *QuickQuestionGormRepository) DeleteOwned(ctx context.Context, id int64, ownerUserID string) (bool, error) {
	result := repo.db.GetTx(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerUserID).
		Delete(&entities.QuickQuestion{})
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete quick question", result.Error, "quickquestionrepo-delete-001")
	}
	return result.RowsAffected > 0, nil
}
