// Package upstream proxies tool calls to the provider services.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dealermate/dealermate-server/pkg/observability"
	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/registry"
)

// Failure categories surfaced to callers instead of raw errors.
const (
	CategoryTimeout     = "timeout"
	CategoryCanceled    = "canceled"
	CategoryTransport   = "transport"
	CategoryMalformed   = "malformed_response"
	CategoryCircuitOpen = gateway.CategoryCircuitOpen
	CategoryEncode      = "encode_request"
)

const requestIDHeader = "X-Request-Id"

// BreakerConfig controls the optional per-upstream circuit breaker.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold uint32
	OpenTimeout      time.Duration
	OnStateChange    func(upstream, state string)
}

// Client posts JSON arguments to an upstream and decodes the JSON reply.
// No retries are attempted.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	breaker BreakerConfig
	log     zerolog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient builds a client with a fixed per-call timeout.
func NewClient(timeout time.Duration, breaker BreakerConfig, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		timeout:  timeout,
		breaker:  breaker,
		log:      log.With().Str("component", "upstream-client").Logger(),
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Invoke calls entry with args and returns the decoded body.
func (c *Client) Invoke(ctx context.Context, entry registry.Entry, args toolvalue.Value) (toolvalue.Value, error) {
	ctx, span := observability.StartToolSpan(ctx, entry.Name, entry.Upstream)
	defer span.End()

	payload, err := json.Marshal(args)
	if err != nil {
		return toolvalue.Null(), upstreamError(ctx, entry, CategoryEncode, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := func() (any, error) {
		return c.post(callCtx, entry, payload)
	}

	var out any
	if cb := c.breakerFor(entry.Upstream); cb != nil {
		out, err = cb.Execute(call)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = upstreamError(ctx, entry, CategoryCircuitOpen, err)
		}
	} else {
		out, err = call()
	}
	if err != nil {
		observability.RecordError(span, err)
		return toolvalue.Null(), err
	}

	return out.(toolvalue.Value), nil
}

func (c *Client) post(ctx context.Context, entry registry.Entry, payload []byte) (toolvalue.Value, error) {
	req := c.http.R().SetContext(ctx).SetBody(payload)
	if requestID := platformerrors.RequestIDFromContext(ctx); requestID != "" {
		req.SetHeader(requestIDHeader, requestID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.log.Debug().Str("tool", entry.Name).Str("url", entry.URL()).Msg("calling upstream")

	resp, err := req.Post(entry.URL())
	if err != nil {
		return toolvalue.Null(), upstreamError(ctx, entry, classify(err), err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return toolvalue.Null(), upstreamError(ctx, entry, fmt.Sprintf("status_%d", status),
			fmt.Errorf("upstream responded %d", status))
	}

	body, err := toolvalue.Parse(resp.Body())
	if err != nil {
		return toolvalue.Null(), upstreamError(ctx, entry, CategoryMalformed, err)
	}
	return body, nil
}

func (c *Client) breakerFor(upstream string) *gobreaker.CircuitBreaker {
	if !c.breaker.Enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[upstream]; ok {
		return cb
	}

	threshold := c.breaker.FailureThreshold
	if threshold == 0 {
		threshold = 15
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        upstream,
		MaxRequests: 1,
		Timeout:     c.breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("upstream", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			if c.breaker.OnStateChange != nil {
				c.breaker.OnStateChange(name, to.String())
			}
		},
	})
	c.breakers[upstream] = cb
	return cb
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return CategoryCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}
	return CategoryTransport
}

func upstreamError(ctx context.Context, entry registry.Entry, category string, err error) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		"Upstream error: "+category, err, "upstream-call-001",
		map[string]any{
			platformerrors.ContextKeyCategory: category,
			"tool":                            entry.Name,
		})
}
