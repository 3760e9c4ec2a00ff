package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/assist"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/middlewares"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/requests"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/responses"
)

// AssistHandler exposes the dealer assistant.
type AssistHandler struct {
	service assist.Service
	log     zerolog.Logger
}

// NewAssistHandler constructs the handler.
func NewAssistHandler(service assist.Service, log zerolog.Logger) *AssistHandler {
	return &AssistHandler{
		service: service,
		log:     log.With().Str("handler", "assist").Logger(),
	}
}

// Assist handles POST /v1/assistant/assist
// @Summary Assist a dealer
// @Description Classifies the message, runs the matching tool plan and returns the composed result.
// @Tags Assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.AssistRequest true "Assist request"
// @Success 200 {object} assist.Result
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/assistant/assist [post]
func (h *AssistHandler) Assist(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	var req requests.AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid assist request", "assist-handler-001")
		return
	}

	result, err := h.service.Assist(c.Request.Context(), assist.Request{
		Principal: p,
		DealID:    req.DealID,
		Message:   req.Message,
		Filters:   req.Filters,
	})
	if err != nil {
		responses.HandleError(c, err, "assist failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
