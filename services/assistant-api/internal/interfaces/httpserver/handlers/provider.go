package handlers

import (
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/assist"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/filters"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Assist        *AssistHandler
	Deal          *DealHandler
	QuickQuestion *QuickQuestionHandler
	Filter        *FilterHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	assistService assist.Service,
	dealService deal.Service,
	artifactService artifact.Service,
	quickQuestionService quickquestion.Service,
	filterService filters.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Assist:        NewAssistHandler(assistService, log),
		Deal:          NewDealHandler(dealService, artifactService, log),
		QuickQuestion: NewQuickQuestionHandler(quickQuestionService, log),
		Filter:        NewFilterHandler(filterService, log),
	}
}
