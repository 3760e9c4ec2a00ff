package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/handlers"
	v1 "github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/routes/v1"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers *handlers.Provider
	V1       *v1.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		handlers: handlerProvider,
		V1:       v1.NewRoutes(handlerProvider),
	}
}

// Register attaches all available routes to the gin engine. The unversioned
// paths are the ones existing tool clients already call.
func (p *Provider) Register(engine *gin.Engine) {
	engine.POST("/tool/call", p.handlers.Tool.Call)
	engine.GET("/tools", p.handlers.Tool.List)
	engine.GET("/health", p.handlers.Tool.Health)

	p.V1.Register(engine)
}
