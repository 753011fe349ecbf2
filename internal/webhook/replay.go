package webhook

import (
	"sync"
	"time"
)

// ReplayLog remembers delivery ids seen inside the freshness window so a
// redelivered event can be acked without re-dispatching. The ledger is
// idempotent anyway; this keeps duplicate deliveries out of the handlers
// entirely. Entries older than the window are pruned on each lookup, which
// bounds memory because the verifier rejects anything older than the window
// before this log is consulted.
type ReplayLog struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
}

func NewReplayLog(ttl time.Duration) *ReplayLog {
	if ttl <= 0 {
		ttl = DefaultTolerance
	}
	return &ReplayLog{seen: make(map[string]time.Time), ttl: ttl}
}

// Seen records the delivery id and reports whether it was already present.
func (l *ReplayLog) Seen(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, at := range l.seen {
		if now.Sub(at) > l.ttl {
			delete(l.seen, k)
		}
	}

	if _, ok := l.seen[id]; ok {
		return true
	}
	l.seen[id] = now
	return false
}
