// Package gatewayclient calls the tool gateway on behalf of the assistant.
package gatewayclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/tools"
)

const (
	callPath        = "/tool/call"
	requestIDHeader = "X-Request-Id"

	categoryTimeout   = "timeout"
	categoryTransport = "transport"
	categoryMalformed = "malformed_response"
)

type callRequest struct {
	Tool string          `json:"tool"`
	Args toolvalue.Value `json:"args"`
}

// errorBody mirrors the gateway's error response.
type errorBody struct {
	Code     string `json:"code"`
	Error    string `json:"error"`
	Category string `json:"category"`
}

// Client implements tools.Caller over the gateway's HTTP surface.
type Client struct {
	http    *resty.Client
	baseURL string
	log     zerolog.Logger
}

var _ tools.Caller = (*Client)(nil)

// New returns a client for the gateway at baseURL. Each call is bounded by
// timeout and never retried.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		log:     log.With().Str("component", "gateway-client").Logger(),
	}
}

// Call invokes tool through the gateway. Gateway errors come back with the
// same error type the gateway reported: NOT_FOUND for unknown tools and
// EXTERNAL, with its category, for upstream failures.
func (c *Client) Call(ctx context.Context, tool string, args toolvalue.Value) (toolvalue.Value, error) {
	if args.IsNull() {
		args = toolvalue.Object(nil)
	}

	req := c.http.R().
		SetContext(ctx).
		SetBody(callRequest{Tool: tool, Args: args})
	if requestID := platformerrors.RequestIDFromContext(ctx); requestID != "" {
		req.SetHeader(requestIDHeader, requestID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	started := time.Now()
	resp, err := req.Post(callPath)
	if err != nil {
		category := classify(err)
		c.log.Warn().Err(err).Str("tool", tool).Str("category", category).Msg("gateway unreachable")
		return toolvalue.Null(), gatewayError(ctx, platformerrors.ErrorTypeExternal, "Tool gateway error: "+category, category, "", err)
	}

	status := resp.StatusCode()
	c.log.Debug().Str("tool", tool).Int("status", status).Dur("elapsed", time.Since(started)).Msg("gateway call")

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return toolvalue.Null(), rehydrate(ctx, status, resp.Body())
	}

	body, err := toolvalue.Parse(resp.Body())
	if err != nil {
		return toolvalue.Null(), gatewayError(ctx, platformerrors.ErrorTypeExternal,
			"Tool gateway error: "+categoryMalformed, categoryMalformed, "", err)
	}
	return body, nil
}

// rehydrate rebuilds the platform error the gateway reported.
func rehydrate(ctx context.Context, status int, raw []byte) error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body = errorBody{Error: fmt.Sprintf("Tool gateway error: status_%d", status)}
	}

	errorType := platformerrors.HTTPStatusToErrorType(status)
	if status >= http.StatusInternalServerError {
		errorType = platformerrors.ErrorTypeExternal
		if body.Category == "" {
			body.Category = fmt.Sprintf("status_%d", status)
		}
	}
	return gatewayError(ctx, errorType, body.Error, body.Category, body.Code,
		fmt.Errorf("gateway responded %d", status))
}

func gatewayError(ctx context.Context, errorType platformerrors.ErrorType, message, category, code string, cause error) *platformerrors.PlatformError {
	var fields map[string]any
	if category != "" {
		fields = map[string]any{platformerrors.ContextKeyCategory: category}
	}
	if code == "" {
		code = "gatewayclient-call-001"
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, errorType, message, cause, code, fields)
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return categoryTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return categoryTimeout
	}
	return categoryTransport
}
