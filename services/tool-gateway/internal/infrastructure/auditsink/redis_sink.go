package auditsink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
)

// streamClient is the subset of redis.UniversalClient the sink needs.
type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XRevRangeN(ctx context.Context, stream, start, stop string, count int64) *redis.XMessageSliceCmd
}

// RedisSink appends audit events to a Redis stream trimmed with MAXLEN ~.
type RedisSink struct {
	client streamClient
	key    string
	maxLen int64
}

// NewRedisSink builds a sink over the given stream key.
func NewRedisSink(client streamClient, key string, maxLen int64) *RedisSink {
	return &RedisSink{client: client, key: key, maxLen: maxLen}
}

// Append adds one entry; Redis trims old entries approximately.
func (s *RedisSink) Append(ctx context.Context, event gateway.AuditEvent) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.key,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"tool":        event.Tool,
			"args":        event.Args,
			"result":      event.Result,
			"status":      event.Status,
			"request_id":  event.RequestID,
			"started_at":  event.StartedAt.Format(time.RFC3339Nano),
			"finished_at": event.FinishedAt.Format(time.RFC3339Nano),
			"duration_ms": event.DurationMS,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.key, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *RedisSink) Recent(ctx context.Context, limit int) ([]gateway.AuditEvent, error) {
	msgs, err := s.client.XRevRangeN(ctx, s.key, "+", "-", int64(limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("xrevrange %s: %w", s.key, err)
	}

	events := make([]gateway.AuditEvent, 0, len(msgs))
	for _, msg := range msgs {
		events = append(events, decodeMessage(msg))
	}
	return events, nil
}

func decodeMessage(msg redis.XMessage) gateway.AuditEvent {
	field := func(name string) string {
		v, _ := msg.Values[name].(string)
		return v
	}
	started, _ := time.Parse(time.RFC3339Nano, field("started_at"))
	finished, _ := time.Parse(time.RFC3339Nano, field("finished_at"))
	duration, _ := strconv.ParseInt(field("duration_ms"), 10, 64)

	return gateway.AuditEvent{
		ID:         msg.ID,
		Tool:       field("tool"),
		Args:       field("args"),
		Result:     field("result"),
		Status:     field("status"),
		RequestID:  field("request_id"),
		StartedAt:  started,
		FinishedAt: finished,
		DurationMS: duration,
	}
}
