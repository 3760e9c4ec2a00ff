// Package assist orchestrates one dealer request: classify the message, run
// the tool plan for its intent, compose the payload and record it.
package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dealermate/dealermate-server/pkg/masking"
	"github.com/dealermate/dealermate-server/pkg/observability"
	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/auditlog"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/intent"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/tools"
)

// Outcomes reported to the Observer.
const (
	OutcomeOK         = "ok"
	OutcomeOutOfScope = "out_of_scope"
	OutcomeError      = "error"
)

const (
	auditAction   = "assist"
	auditResource = "assistant"

	messagePreviewRunes = 120
)

// Request is one assist invocation.
type Request struct {
	Principal principal.Principal
	DealID    *int64
	Message   string
	Filters   toolvalue.Value
}

// Result is returned to the caller verbatim.
type Result struct {
	Intent    intent.Intent   `json:"intent"`
	UsedTools []string        `json:"used_tools"`
	Result    toolvalue.Value `json:"result" swaggertype:"object"`
}

// Transactor runs fn in one unit of work. Repositories called with the
// context passed to fn join that unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Observer is notified once per assist call.
type Observer func(intent intent.Intent, outcome string, elapsed time.Duration)

// Options tunes the orchestration.
type Options struct {
	// ParallelHistory runs the two history lookups of the risk plan
	// concurrently. Output is identical to the sequential plan.
	ParallelHistory bool
	Observer        Observer
	// Scrubber, when set, records the scrubbed message on the assist span.
	Scrubber *masking.Scrubber
}

// Service describes the assistant surface.
type Service interface {
	Assist(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	tools     tools.Caller
	deals     deal.Service
	artifacts artifact.Repository
	audit     auditlog.Repository
	tx        Transactor
	opts      Options
	log       zerolog.Logger
}

// NewService wires the orchestration service.
func NewService(
	caller tools.Caller,
	deals deal.Service,
	artifacts artifact.Repository,
	audit auditlog.Repository,
	tx Transactor,
	opts Options,
	log zerolog.Logger,
) Service {
	return &service{
		tools:     caller,
		deals:     deals,
		artifacts: artifacts,
		audit:     audit,
		tx:        tx,
		opts:      opts,
		log:       log.With().Str("component", "assist-service").Logger(),
	}
}

func (s *service) Assist(ctx context.Context, req Request) (result *Result, err error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message is required", nil, "assist-validate-001")
	}
	if !req.Filters.IsNull() && req.Filters.Kind() != toolvalue.KindMap {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"filters must be an object", nil, "assist-validate-002")
	}

	ctx, span := observability.StartAssistSpan(ctx, req.Principal.UserID)
	defer span.End()

	started := time.Now()
	classified := intent.Classify(req.Message)
	span.SetAttributes(attribute.String(observability.AttrIntent, string(classified)))
	if s.opts.Scrubber != nil {
		span.SetAttributes(attribute.String(observability.AttrMessage, s.opts.Scrubber.Preview(req.Message, messagePreviewRunes)))
	}

	defer func() {
		if s.opts.Observer == nil {
			return
		}
		outcome := OutcomeOK
		switch {
		case err != nil:
			outcome = OutcomeError
		case classified == intent.OutOfScope:
			outcome = OutcomeOutOfScope
		}
		s.opts.Observer(classified, outcome, time.Since(started))
	}()

	if classified == intent.OutOfScope {
		return &Result{
			Intent:    classified,
			UsedTools: []string{},
			Result:    toolvalue.Pairs("type", "out_of_scope", "text", OutOfScopeMessage),
		}, nil
	}

	d, dealErr := s.deals.ResolveOrCreate(ctx, req.Principal, req.DealID, req.Message)
	if dealErr != nil {
		s.log.Error().Err(dealErr).Str("user_id", req.Principal.UserID).Msg("deal could not be persisted")
	}

	payload := toolvalue.NewMap()
	if d.Persisted() {
		payload.Set("deal_id", toolvalue.Int(d.ID))
	} else {
		payload.Set("deal_id", toolvalue.Null())
	}
	payload.Set("customer_token", toolvalue.String(d.CustomerToken))

	run := &planRun{svc: s, req: req, payload: payload, used: []string{}}
	if err := run.execute(ctx, classified); err != nil {
		observability.RecordError(span, err)
		s.log.Warn().Err(err).Str("intent", string(classified)).Strs("used_tools", run.used).Msg("assist aborted")
		return nil, err
	}

	out := &Result{
		Intent:    classified,
		UsedTools: run.used,
		Result:    toolvalue.Object(payload),
	}
	s.record(ctx, req, d, out)
	return out, nil
}

// record persists the artifact and audit row as one unit. Failures are
// logged and never surface to the caller.
func (s *service) record(ctx context.Context, req Request, d *deal.Deal, out *Result) {
	usedTools := make([]toolvalue.Value, 0, len(out.UsedTools))
	for _, t := range out.UsedTools {
		usedTools = append(usedTools, toolvalue.String(t))
	}

	entry := &auditlog.Entry{
		ActorUserID: req.Principal.UserID,
		Action:      auditAction,
		Resource:    auditResource,
		Request: toolvalue.Pairs(
			"message", req.Message,
			"intent", string(out.Intent),
			"used_tools", toolvalue.List(usedTools...),
		),
		Response: out.Result,
	}

	err := s.tx.WithinTransaction(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		if d.Persisted() {
			a := &artifact.Artifact{
				DealID:      d.ID,
				OwnerUserID: req.Principal.UserID,
				Type:        artifact.TypeBriefing,
				Title:       fmt.Sprintf("%s response", out.Intent),
				Content:     out.Result,
			}
			if err := s.artifacts.Create(txCtx, a); err != nil {
				return err
			}
		}
		return s.audit.Create(txCtx, entry)
	})
	if err != nil {
		s.log.Error().Err(err).Int64("deal_id", d.ID).Str("intent", string(out.Intent)).Msg("persist assist result")
	}
}
