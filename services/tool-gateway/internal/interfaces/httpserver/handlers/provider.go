package handlers

import (
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Tool  *ToolHandler
	Audit *AuditHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(gatewayService gateway.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Tool:  NewToolHandler(gatewayService, log),
		Audit: NewAuditHandler(gatewayService, log),
	}
}
