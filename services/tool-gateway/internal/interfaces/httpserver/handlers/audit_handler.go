package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/responses"
)

// AuditHandler exposes the recent audit trail.
type AuditHandler struct {
	service gateway.Service
	log     zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service gateway.Service, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		log:     log.With().Str("handler", "audit").Logger(),
	}
}

// Recent handles GET /v1/audit
// @Summary Recent audit events
// @Description Returns the most recent masked audit events, newest first.
// @Tags Audit
// @Produce json
// @Param limit query int false "Maximum number of events" default(50)
// @Success 200 {object} responses.AuditListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/audit [get]
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "limit must be a non-negative integer", "audit-handler-recent-001")
			return
		}
		limit = parsed
	}

	events, err := h.service.RecentAudit(c.Request.Context(), limit)
	if err != nil {
		responses.HandleError(c, err, "failed to read audit trail")
		return
	}

	c.JSON(http.StatusOK, responses.MapAuditEvents(events, len(events)))
}
