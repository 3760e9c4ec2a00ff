package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/middlewares"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/responses"
)

// DealHandler exposes the caller's deals and their artifacts.
type DealHandler struct {
	deals     deal.Service
	artifacts artifact.Service
	log       zerolog.Logger
}

// NewDealHandler constructs the handler.
func NewDealHandler(deals deal.Service, artifacts artifact.Service, log zerolog.Logger) *DealHandler {
	return &DealHandler{
		deals:     deals,
		artifacts: artifacts,
		log:       log.With().Str("handler", "deal").Logger(),
	}
}

// List handles GET /v1/deals
// @Summary List recent deals
// @Description Returns the caller's 50 most recently updated deals.
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} responses.DealResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/deals [get]
func (h *DealHandler) List(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	items, err := h.deals.ListRecent(c.Request.Context(), p, deal.DefaultListLimit)
	if err != nil {
		responses.HandleError(c, err, "failed to list deals")
		return
	}
	c.JSON(http.StatusOK, responses.MapDeals(items))
}

// Artifacts handles GET /v1/deals/:deal_id/artifacts
// @Summary List deal artifacts
// @Description Returns the newest artifacts recorded for one of the caller's deals.
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param deal_id path int true "Deal ID"
// @Success 200 {array} responses.ArtifactResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/deals/{deal_id}/artifacts [get]
func (h *DealHandler) Artifacts(c *gin.Context) {
	p, ok := middlewares.GetPrincipal(c)
	if !ok {
		return
	}

	dealID, ok := parseID(c, "deal_id", "deal-handler-artifacts-001")
	if !ok {
		return
	}

	items, err := h.artifacts.ListByDeal(c.Request.Context(), p, dealID)
	if err != nil {
		responses.HandleError(c, err, "failed to list artifacts")
		return
	}
	c.JSON(http.StatusOK, responses.MapArtifacts(items))
}

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, param, uuid string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, param+" must be a positive integer", uuid)
		return 0, false
	}
	return id, true
}
