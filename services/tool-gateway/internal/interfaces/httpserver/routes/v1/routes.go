package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerToolRoutes(group, r.handlers.Tool)
	registerAuditRoutes(group, r.handlers.Audit)
}

func registerToolRoutes(router gin.IRoutes, handler *handlers.ToolHandler) {
	router.POST("/tools/call", handler.Call)
	router.GET("/tools", handler.List)
}

func registerAuditRoutes(router gin.IRoutes, handler *handlers.AuditHandler) {
	router.GET("/audit", handler.Recent)
}
