package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/middlewares"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/requests"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/responses"
)

// QuickQuestionHandler manages saved prompt shortcuts.
type QuickQuestionHandler struct {
	service quickquestion.Service
	log     zerolog.Logger
}

// NewQuickQuestionHandler constructs the handler.
func NewQuickQuestionHandler(service quickquestion.Service, log zerolog.Logger) *QuickQuestionHandler {
	return &QuickQuestionHandler{
		service: service,
		log:     log.With().Str("handler", "quick-question").Logger(),
	}
}

// List handles GET /v1/quick-questions
// @Summary List quick questions
// @Description Returns the caller's quick questions, newest first. First-time callers receive the defaults.
// @Tags QuickQuestions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} responses.QuickQuestionResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/quick-questions [get]
func (h *QuickQuestionHandler) List(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		responses.HandleError(c, err, "failed to list quick questions")
		return
	}
	c.JSON(http.StatusOK, responses.MapQuickQuestions(items))
}

// Create handles POST /v1/quick-questions
// @Summary Create a quick question
// @Tags QuickQuestions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.CreateQuickQuestionRequest true "Quick question"
// @Success 200 {object} responses.QuickQuestionResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/quick-questions [post]
func (h *QuickQuestionHandler) Create(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	var req requests.CreateQuickQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid quick question request", "quick-question-handler-create-001")
		return
	}

	q, err := h.service.Create(c.Request.Context(), p, req.Text)
	if err != nil {
		responses.HandleError(c, err, "failed to create quick question")
		return
	}
	c.JSON(http.StatusOK, responses.MapQuickQuestion(q))
}

// Delete handles DELETE /v1/quick-questions/:id
// @Summary Delete a quick question
// @Tags QuickQuestions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quick question ID"
// @Success 200 {object} responses.OKResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/quick-questions/{id} [delete]
func (h *QuickQuestionHandler) Delete(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id", "quick-question-handler-delete-001")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		responses.HandleError(c, err, "failed to delete quick question")
		return
	}
	c.JSON(http.StatusOK, responses.OKResponse{OK: true})
}
