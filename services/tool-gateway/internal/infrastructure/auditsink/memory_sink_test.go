package auditsink

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
)

func TestMemorySinkNeverExceedsCapacity(t *testing.T) {
	sink := NewMemorySink(5)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		require.NoError(t, sink.Append(ctx, gateway.AuditEvent{Tool: fmt.Sprintf("tool-%d", i)}))
		assert.LessOrEqual(t, sink.Len(), 5)
	}

	events, err := sink.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, "tool-22", events[0].Tool)
	assert.Equal(t, "tool-18", events[4].Tool)
	assert.Equal(t, "23", events[0].ID)
}

func TestMemorySinkRecentBeforeFull(t *testing.T) {
	sink := NewMemorySink(10)
	ctx := context.Background()

	require.NoError(t, sink.Append(ctx, gateway.AuditEvent{Tool: "a"}))
	require.NoError(t, sink.Append(ctx, gateway.AuditEvent{Tool: "b"}))

	events, err := sink.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].Tool)
	assert.Equal(t, "a", events[1].Tool)

	events, err = sink.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "b", events[0].Tool)
}

func TestMemorySinkConcurrentWriters(t *testing.T) {
	sink := NewMemorySink(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = sink.Append(ctx, gateway.AuditEvent{Tool: "t"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, sink.Len())
	events, err := sink.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "400", events[0].ID)
}
