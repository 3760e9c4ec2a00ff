package auditsink

import (
	"context"
	"strconv"
	"sync"

	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
)

// MemorySink is a fixed-capacity ring buffer; the oldest entry is dropped
// once the buffer is full.
type MemorySink struct {
	mu     sync.RWMutex
	buf    []gateway.AuditEvent
	next   int
	filled bool
	seq    uint64
}

// NewMemorySink allocates a ring of the given capacity (minimum 1).
func NewMemorySink(capacity int64) *MemorySink {
	if capacity < 1 {
		capacity = 1
	}
	return &MemorySink{buf: make([]gateway.AuditEvent, capacity)}
}

func (s *MemorySink) Append(_ context.Context, event gateway.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	event.ID = strconv.FormatUint(s.seq, 10)
	s.buf[s.next] = event
	s.next = (s.next + 1) % len(s.buf)
	if s.next == 0 {
		s.filled = true
	}
	return nil
}

func (s *MemorySink) Recent(_ context.Context, limit int) ([]gateway.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.lenLocked()
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]gateway.AuditEvent, 0, limit)
	idx := s.next
	for i := 0; i < limit; i++ {
		idx = (idx - 1 + len(s.buf)) % len(s.buf)
		out = append(out, s.buf[idx])
	}
	return out, nil
}

// Len returns the number of retained events.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lenLocked()
}

func (s *MemorySink) lenLocked() int {
	if s.filled {
		return len(s.buf)
	}
	return s.next
}
