// Package gateway resolves, proxies, masks and audits tool calls.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/masking"
	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/registry"
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	// CategoryCircuitOpen marks a call the upstream breaker rejected before any I/O.
	CategoryCircuitOpen = "circuit_open"

	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Upstream performs the network call for a resolved tool. Failures must be
// platform errors of type EXTERNAL carrying a category.
type Upstream interface {
	Invoke(ctx context.Context, entry registry.Entry, args toolvalue.Value) (toolvalue.Value, error)
}

// CallObserver is notified after every upstream attempt.
type CallObserver func(tool, upstream, status string, elapsed time.Duration)

// CallRequest is the inbound call.
type CallRequest struct {
	Tool string
	Args toolvalue.Value
}

// Result is the masked upstream body, returned verbatim.
type Result struct {
	Body toolvalue.Value
}

// OK reports the provider's ok flag.
func (r Result) OK() bool { return r.Body.Get("ok").Truthy() }

// Data returns the provider's data field.
func (r Result) Data() toolvalue.Value { return r.Body.Get("data") }

// Service describes the gateway surface.
type Service interface {
	Call(ctx context.Context, req CallRequest) (Result, error)
	List() []registry.Entry
	Size() int
	RecentAudit(ctx context.Context, limit int) ([]AuditEvent, error)
}

// Options tunes the gateway.
type Options struct {
	ResultMaxBytes int
	Observer       CallObserver
	OnAuditFailure func()
	Now            func() time.Time
}

type service struct {
	registry *registry.Registry
	upstream Upstream
	policy   *masking.Policy
	sink     AuditSink
	opts     Options
	log      zerolog.Logger
}

// NewService wires the gateway.
func NewService(reg *registry.Registry, upstream Upstream, policy *masking.Policy, sink AuditSink, opts Options, log zerolog.Logger) Service {
	if opts.ResultMaxBytes <= 0 {
		opts.ResultMaxBytes = 2000
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if policy == nil {
		policy = masking.NewPolicy()
	}
	return &service{
		registry: reg,
		upstream: upstream,
		policy:   policy,
		sink:     sink,
		opts:     opts,
		log:      log.With().Str("component", "tool-gateway").Logger(),
	}
}

func (s *service) Call(ctx context.Context, req CallRequest) (Result, error) {
	args, err := normalizeArgs(ctx, req)
	if err != nil {
		return Result{}, err
	}

	entry, err := s.registry.Resolve(ctx, req.Tool)
	if err != nil {
		return Result{}, err
	}

	maskedArgs := s.policy.Mask(args)
	started := s.opts.Now().UTC()
	body, callErr := s.upstream.Invoke(ctx, entry, args)
	finished := s.opts.Now().UTC()

	event := AuditEvent{
		Tool:       entry.Name,
		Args:       encode(maskedArgs),
		RequestID:  platformerrors.RequestIDFromContext(ctx),
		StartedAt:  started,
		FinishedAt: finished,
		DurationMS: finished.Sub(started).Milliseconds(),
	}

	var result Result
	skipAudit := false
	if callErr != nil {
		callErr = asUpstreamError(ctx, callErr)
		category := categoryOf(callErr)
		skipAudit = category == CategoryCircuitOpen
		event.Status = StatusError
		event.Result = encode(toolvalue.Pairs("error", category))
		s.log.Warn().
			Str("tool", entry.Name).
			Str("upstream", entry.Upstream).
			Str("category", category).
			Err(callErr).
			Msg("tool call failed")
	} else {
		result = Result{Body: s.policy.Mask(body)}
		event.Status = StatusOK
		event.Result = encode(result.Body)
	}
	event.Result = truncateUTF8(event.Result, s.opts.ResultMaxBytes)

	if !skipAudit {
		s.audit(ctx, event)
	}
	if s.opts.Observer != nil {
		s.opts.Observer(entry.Name, entry.Upstream, event.Status, finished.Sub(started))
	}

	if callErr != nil {
		return Result{}, callErr
	}
	return result, nil
}

func (s *service) List() []registry.Entry {
	return s.registry.List()
}

func (s *service) Size() int {
	return s.registry.Size()
}

func (s *service) RecentAudit(ctx context.Context, limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	events, err := s.sink.Recent(ctx, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "read audit trail")
	}
	return events, nil
}

// audit never fails the call.
func (s *service) audit(ctx context.Context, event AuditEvent) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Append(context.WithoutCancel(ctx), event); err != nil {
		s.log.Warn().Err(err).Str("tool", event.Tool).Msg("audit append failed")
		if s.opts.OnAuditFailure != nil {
			s.opts.OnAuditFailure()
		}
	}
}

func normalizeArgs(ctx context.Context, req CallRequest) (toolvalue.Value, error) {
	if strings.TrimSpace(req.Tool) == "" {
		return toolvalue.Null(), platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"tool is required", nil, "gateway-call-001")
	}
	switch req.Args.Kind() {
	case toolvalue.KindNull:
		return toolvalue.Object(nil), nil
	case toolvalue.KindMap:
		return req.Args, nil
	default:
		return toolvalue.Null(), platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"args must be an object", nil, "gateway-call-002")
	}
}

func categoryOf(err error) string {
	var perr *platformerrors.PlatformError
	if errors.As(err, &perr) && perr.Category() != "" {
		return perr.Category()
	}
	return "unknown"
}

// asUpstreamError guarantees callers only ever see an EXTERNAL error with a category.
func asUpstreamError(ctx context.Context, err error) error {
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		return err
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
		"Upstream error", err, "gateway-call-003", map[string]any{platformerrors.ContextKeyCategory: categoryOf(err)})
}

func encode(v toolvalue.Value) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
