package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/filters"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/middlewares"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/requests"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/responses"
)

// FilterHandler exposes listing filters.
type FilterHandler struct {
	service filters.Service
	log     zerolog.Logger
}

// NewFilterHandler constructs the handler.
func NewFilterHandler(service filters.Service, log zerolog.Logger) *FilterHandler {
	return &FilterHandler{
		service: service,
		log:     log.With().Str("handler", "filter").Logger(),
	}
}

// Options handles GET /v1/filters/options
// @Summary Filter options
// @Description Returns the inventory provider's filter facets for the caller's branch.
// @Tags Filters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/filters/options [get]
func (h *FilterHandler) Options(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	body, err := h.service.Options(c.Request.Context(), p)
	if err != nil {
		responses.HandleError(c, err, "failed to load filter options")
		return
	}
	c.JSON(http.StatusOK, body)
}

// Search handles POST /v1/filters/search
// @Summary Filtered listing search
// @Description Searches listings with structured filters. top_k defaults to 50 and is clamped to 1..200.
// @Tags Filters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.FilterSearchRequest true "Search request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/filters/search [post]
func (h *FilterHandler) Search(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	var req requests.FilterSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid filter search request", "filter-handler-search-001")
		return
	}

	body, err := h.service.Search(c.Request.Context(), p, filters.SearchRequest{
		Query:   req.Query,
		Filters: req.Filters,
		TopK:    req.TopK,
	})
	if err != nil {
		responses.HandleError(c, err, "filter search failed")
		return
	}
	c.JSON(http.StatusOK, body)
}
