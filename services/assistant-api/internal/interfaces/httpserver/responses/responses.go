package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
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

// HandleError maps platform errors to their HTTP status. Errors of any other
// kind become a 500 carrying only message.
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

// OKResponse acknowledges a mutation without a body.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// DealResponse summarises one deal.
type DealResponse struct {
	ID            int64           `json:"id" example:"12"`
	CustomerToken string          `json:"customer_token" example:"CST-1-48213"`
	Status        string          `json:"status" example:"new"`
	Preference    toolvalue.Value `json:"preference" swaggertype:"object"`
	UpdatedAt     string          `json:"updated_at" example:"2024-05-01T09:30:00Z"`
}

// ArtifactResponse is one persisted assist snapshot.
type ArtifactResponse struct {
	ID        int64           `json:"id"`
	DealID    int64           `json:"deal_id"`
	Type      string          `json:"type" example:"briefing"`
	Title     string          `json:"title" example:"recommend response"`
	Content   toolvalue.Value `json:"content" swaggertype:"object"`
	CreatedAt string          `json:"created_at"`
}

// QuickQuestionResponse is one saved prompt shortcut.
type QuickQuestionResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func MapDeals(deals []*deal.Deal) []DealResponse {
	out := make([]DealResponse, 0, len(deals))
	for _, d := range deals {
		preference := d.Preference
		if preference.IsNull() {
			preference = toolvalue.Object(nil)
		}
		out = append(out, DealResponse{
			ID:            d.ID,
			CustomerToken: d.CustomerToken,
			Status:        string(d.Status),
			Preference:    preference,
			UpdatedAt:     formatTime(d.UpdatedAt),
		})
	}
	return out
}

func MapArtifacts(items []*artifact.Artifact) []ArtifactResponse {
	out := make([]ArtifactResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ArtifactResponse{
			ID:        a.ID,
			DealID:    a.DealID,
			Type:      string(a.Type),
			Title:     a.Title,
			Content:   a.Content,
			CreatedAt: formatTime(a.CreatedAt),
		})
	}
	return out
}

func MapQuickQuestion(q *quickquestion.QuickQuestion) QuickQuestionResponse {
	return QuickQuestionResponse{ID: q.ID, Text: q.Text, CreatedAt: formatTime(q.CreatedAt)}
}

func MapQuickQuestions(items []*quickquestion.QuickQuestion) []QuickQuestionResponse {
	out := make([]QuickQuestionResponse, 0, len(items))
	for _, q := range items {
		out = append(out, MapQuickQuestion(q))
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
