package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/registry"
)

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	Category      string `json:"category,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError maps platform errors to their HTTP status. The message is the
// platform error's own message, which never carries downstream text.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errResp := ErrorResponse{
			Code:          domainErr.GetUUID(),
			Error:         domainErr.Message,
			Message:       message,
			Category:      domainErr.Category(),
			ErrorInstance: domainErr,
			RequestID:     domainErr.GetRequestID(),
		}

		reqCtx.AbortWithStatusJSON(statusCode, errResp)
		return
	}
	errResp := ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     platformerrors.RequestIDFromContext(reqCtx.Request.Context()),
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)

	statusCode := platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType())

	errResp := ErrorResponse{
		Code:          err.GetUUID(),
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     err.GetRequestID(),
	}

	reqCtx.AbortWithStatusJSON(statusCode, errResp)
}

// ToolResponse describes one registry entry.
type ToolResponse struct {
	Name     string `json:"name" example:"inventory.search_listings"`
	Upstream string `json:"upstream" example:"http://mcp-inventory:8000"`
	Path     string `json:"path" example:"/tools/search_listings"`
}

// ToolListResponse wraps the routing table.
type ToolListResponse struct {
	Tools []ToolResponse `json:"tools"`
}

// HealthResponse reports liveness and the registry size.
type HealthResponse struct {
	OK           bool `json:"ok"`
	RegistrySize int  `json:"registry_size"`
}

// AuditEventResponse is one masked audit trail entry.
type AuditEventResponse struct {
	ID         string          `json:"id"`
	Tool       string          `json:"tool_name"`
	Status     string          `json:"status"`
	Args       toolvalue.Value `json:"args" swaggertype:"object"`
	Result     string          `json:"result"`
	RequestID  string          `json:"request_id,omitempty"`
	StartedAt  int64           `json:"started_at"`
	FinishedAt int64           `json:"finished_at"`
	DurationMS int64           `json:"duration_ms"`
}

// AuditListResponse wraps the most recent audit events.
type AuditListResponse struct {
	Data  []AuditEventResponse `json:"data"`
	Limit int                  `json:"limit"`
}

// MapTools maps registry entries to the response shape.
func MapTools(entries []registry.Entry) ToolListResponse {
	out := make([]ToolResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToolResponse{Name: e.Name, Upstream: e.Upstream, Path: e.Path})
	}
	return ToolListResponse{Tools: out}
}

// MapAuditEvents maps audit events to the response shape. Arguments are
// re-parsed so they render as JSON; the result stays a string because it
// may have been truncated.
func MapAuditEvents(events []gateway.AuditEvent, limit int) AuditListResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		args, err := toolvalue.Parse([]byte(e.Args))
		if err != nil {
			args = toolvalue.String(e.Args)
		}
		out = append(out, AuditEventResponse{
			ID:         e.ID,
			Tool:       e.Tool,
			Status:     e.Status,
			Args:       args,
			Result:     e.Result,
			RequestID:  e.RequestID,
			StartedAt:  e.StartedAt.Unix(),
			FinishedAt: e.FinishedAt.Unix(),
			DurationMS: e.DurationMS,
		})
	}
	return AuditListResponse{Data: out, Limit: limit}
}
