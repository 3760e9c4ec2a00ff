package repository

import (
	"github.com/google/wire"

	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/artifactrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/auditrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/dealrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/quickquestionrepo"
)

var RepositoryProvider = wire.NewSet(
	dealrepo.NewDealGormRepository,
	artifactrepo.NewArtifactGormRepository,
	auditrepo.NewAuditGormRepository,
	quickquestionrepo.NewQuickQuestionGormRepository,
)
