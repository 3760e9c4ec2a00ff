package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/handlers"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers  *handlers.Provider
	validator *auth.Validator
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, validator *auth.Validator) *Routes {
	return &Routes{
		handlers:  handlerProvider,
		validator: validator,
	}
}

// Register attaches all v1 routes under /v1 prefix. Every route requires a
// principal.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1", middlewares.Authenticate(r.validator))
	registerAssistRoutes(group.Group("/assistant"), r.handlers.Assist)
	registerDealRoutes(group.Group("/deals"), r.handlers.Deal)
	registerQuickQuestionRoutes(group.Group("/quick-questions"), r.handlers.QuickQuestion)
	registerFilterRoutes(group.Group("/filters"), r.handlers.Filter)
}

func registerAssistRoutes(router gin.IRoutes, handler *handlers.AssistHandler) {
	router.POST("/assist", handler.Assist)
}

func registerDealRoutes(router gin.IRoutes, handler *handlers.DealHandler) {
	router.GET("", handler.List)
	router.GET("/:deal_id/artifacts", handler.Artifacts)
}

func registerQuickQuestionRoutes(router gin.IRoutes, handler *handlers.QuickQuestionHandler) {
	router.GET("", handler.List)
	router.POST("", handler.Create)
	router.DELETE("/:id", handler.Delete)
}

func registerFilterRoutes(router gin.IRoutes, handler *handlers.FilterHandler) {
	router.GET("/options", handler.Options)
	router.POST("/search", handler.Search)
}
