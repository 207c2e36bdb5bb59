package glide

import (
	"sync"
	"time"
)

// DropRecord describes one animation the engine abandoned without
// converging: the handle, the terminal state that removed it, and when.
// Desyncs and commit conflicts are resolved silently by design, so the
// drop history is the only synchronous place they can be inspected.
type DropRecord struct {
	Handle Handle
	Cause  HandleState
	At     time.Time
}

// dropRing is a thread-safe ring buffer of recent drops.
type dropRing struct {
	mu    sync.RWMutex
	drops []DropRecord
	size  int
	head  int
	count int
}

// newDropRing creates a drop ring with the given capacity.
// If size is 0, the ring is disabled.
func newDropRing(size int) *dropRing {
	if size <= 0 {
		return nil
	}
	return &dropRing{
		drops: make([]DropRecord, size),
		size:  size,
	}
}

// push records a drop, evicting the oldest when full.
func (r *dropRing) push(rec DropRecord) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drops[r.head] = rec
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns the recorded drops, oldest first.
func (r *dropRing) all() []DropRecord {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]DropRecord, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.drops[(start+i)%r.size]
	}
	return result
}
