package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/requests"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/responses"
)

// ToolHandler exposes the tool call proxy.
type ToolHandler struct {
	service gateway.Service
	log     zerolog.Logger
}

// NewToolHandler constructs the handler.
func NewToolHandler(service gateway.Service, log zerolog.Logger) *ToolHandler {
	return &ToolHandler{
		service: service,
		log:     log.With().Str("handler", "tool").Logger(),
	}
}

// Call handles POST /tool/call
// @Summary Call a tool
// @Description Resolves the tool, proxies the arguments to its provider and returns the masked body.
// @Tags Tools
// @Accept json
// @Produce json
// @Param request body requests.CallToolRequest true "Tool call"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /tool/call [post]
// @Router /v1/tools/call [post]
func (h *ToolHandler) Call(c *gin.Context) {
	var req requests.CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid tool call request", "tool-handler-call-001")
		return
	}

	result, err := h.service.Call(c.Request.Context(), gateway.CallRequest{
		Tool: req.Tool,
		Args: req.Args,
	})
	if err != nil {
		responses.HandleError(c, err, "tool call failed")
		return
	}

	c.JSON(http.StatusOK, result.Body)
}

// List handles GET /tools
// @Summary List tools
// @Description Returns the routing table sorted by name.
// @Tags Tools
// @Produce json
// @Success 200 {object} responses.ToolListResponse
// @Router /tools [get]
// @Router /v1/tools [get]
func (h *ToolHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, responses.MapTools(h.service.List()))
}

// Health handles GET /health
// @Summary Gateway health
// @Tags Health
// @Produce json
// @Success 200 {object} responses.HealthResponse
// @Router /health [get]
func (h *ToolHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{OK: true, RegistrySize: h.service.Size()})
}
