package auditsink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
)

type fakeStream struct {
	added    []*redis.XAddArgs
	addErr   error
	messages []redis.XMessage
	lastN    int64
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.added = append(f.added, a)
	return redis.NewStringResult("1-0", f.addErr)
}

func (f *fakeStream) XRevRangeN(_ context.Context, _, _, _ string, count int64) *redis.XMessageSliceCmd {
	f.lastN = count
	return redis.NewXMessageSliceCmdResult(f.messages, nil)
}

func TestRedisSinkAppendUsesApproximateMaxLen(t *testing.T) {
	stream := &fakeStream{}
	sink := NewRedisSink(stream, "mcp:audit", 5000)
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := sink.Append(context.Background(), gateway.AuditEvent{
		Tool:       "pricing.get_market_price",
		Args:       `{"query":"쏘렌토"}`,
		Result:     `{"ok":true}`,
		Status:     gateway.StatusOK,
		StartedAt:  started,
		FinishedAt: started.Add(120 * time.Millisecond),
		DurationMS: 120,
	})
	require.NoError(t, err)

	require.Len(t, stream.added, 1)
	args := stream.added[0]
	assert.Equal(t, "mcp:audit", args.Stream)
	assert.Equal(t, int64(5000), args.MaxLen)
	assert.True(t, args.Approx)

	values, ok := args.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pricing.get_market_price", values["tool"])
	assert.Equal(t, `{"query":"쏘렌토"}`, values["args"])
	assert.Equal(t, "2026-01-02T03:04:05Z", values["started_at"])
}

func TestRedisSinkAppendError(t *testing.T) {
	stream := &fakeStream{addErr: errors.New("connection refused")}
	sink := NewRedisSink(stream, "mcp:audit", 10)

	err := sink.Append(context.Background(), gateway.AuditEvent{Tool: "x"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisSinkRecentDecodes(t *testing.T) {
	stream := &fakeStream{messages: []redis.XMessage{{
		ID: "1700000000000-0",
		Values: map[string]interface{}{
			"tool":        "inventory.search_listings",
			"args":        `{"top_k":3}`,
			"result":      `{"ok":true}`,
			"status":      "ok",
			"started_at":  "2026-01-02T03:04:05Z",
			"finished_at": "2026-01-02T03:04:06Z",
			"duration_ms": "1000",
		},
	}}}
	sink := NewRedisSink(stream, "mcp:audit", 10)

	events, err := sink.Recent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(20), stream.lastN)
	assert.Equal(t, "1700000000000-0", events[0].ID)
	assert.Equal(t, "inventory.search_listings", events[0].Tool)
	assert.Equal(t, int64(1000), events[0].DurationMS)
	assert.Equal(t, time.Second, events[0].FinishedAt.Sub(events[0].StartedAt))
}

func TestBuildUniversalOptions(t *testing.T) {
	opts, err := buildUniversalOptions("redis://:secret@redis:6379/2")
	require.NoError(t, err)
	assert.Equal(t, []string{"redis:6379"}, opts.Addrs)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildUniversalOptions("node-a:7000, node-b:7001")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-a:7000", "node-b:7001"}, opts.Addrs)

	_, err = buildUniversalOptions(" , ")
	assert.Error(t, err)
}
