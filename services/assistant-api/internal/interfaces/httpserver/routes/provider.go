package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/handlers"
	v1 "github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/routes/v1"
)

// Provider coordinates all route registrations.
type Provider struct {
	V1 *v1.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider, validator *auth.Validator) *Provider {
	return &Provider{
		V1: v1.NewRoutes(handlerProvider, validator),
	}
}

// Register attaches all available routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.V1.Register(engine)
}
