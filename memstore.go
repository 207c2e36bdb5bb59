package glide

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync"
)

// MemStore is the reference Store implementation: typed cells held in
// process memory with scope-based capture and single-transaction commits.
//
// Capture isolation is goroutine-scoped: while a Record scope is open, only
// the goroutine running the block sees the scope overlay. Every other
// goroutine reads committed values, and its writes land directly, where the
// engine's desync check picks them up. A capturing block must touch cells
// from its own goroutine only.
type MemStore struct {
	mu    sync.Mutex
	scope map[Handle]any // open capture overlay, nil when no scope is open
	owner int64          // id of the goroutine running the capturing block

	// recording serializes Record calls; cell access uses mu only.
	recording sync.Mutex
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Record implements Store.
func (s *MemStore) Record(block func() error) (map[Handle]any, error) {
	s.recording.Lock()
	defer s.recording.Unlock()

	s.mu.Lock()
	s.scope = make(map[Handle]any)
	s.owner = gid()
	s.mu.Unlock()

	// The scope must come down even when block panics, or every later Set
	// would land in the orphaned overlay and vanish.
	defer func() {
		s.mu.Lock()
		s.scope = nil
		s.owner = 0
		s.mu.Unlock()
	}()

	if err := block(); err != nil {
		return nil, fmt.Errorf("transition block failed: %w", err)
	}

	s.mu.Lock()
	targets := s.scope
	s.mu.Unlock()
	return targets, nil
}

// Commit implements Store. The whole batch is checked before anything is
// applied and all writes land under one lock acquisition, so a concurrent
// reader never observes part of a frame and a rejected batch changes
// nothing.
func (s *MemStore) Commit(writes []Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]memCell, len(writes))
	for i, w := range writes {
		c, ok := w.Handle.(memCell)
		if !ok {
			return fmt.Errorf("%w: handle %T is not a MemStore cell", ErrCommitConflict, w.Handle)
		}
		if err := c.checkDirect(w.Value); err != nil {
			return fmt.Errorf("%w: %v", ErrCommitConflict, err)
		}
		cells[i] = c
	}
	for i, w := range writes {
		cells[i].setDirect(w.Value)
	}
	return nil
}

// inScopeLocked reports whether the caller is the goroutine running an open
// capturing block. Callers hold mu.
func (s *MemStore) inScopeLocked() bool {
	return s.scope != nil && s.owner == gid()
}

// gid parses the current goroutine's id out of its stack header. Only
// consulted while a capture scope is open, so the cost stays off the
// steady-state read path.
func gid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	i := bytes.IndexByte(header, ' ')
	if i <= 0 {
		return 0
	}
	id, err := strconv.ParseInt(string(header[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// memCell is the untyped access path Commit uses to bypass capture overlays.
type memCell interface {
	checkDirect(v any) error
	setDirect(v any)
}

// Cell is a mutable observed value owned by a MemStore. The *Cell pointer is
// its Handle.
type Cell[T any] struct {
	store *MemStore
	value T
}

// NewCell creates a cell holding v.
func NewCell[T any](s *MemStore, v T) *Cell[T] {
	return &Cell[T]{store: s, value: v}
}

// Get returns the cell's current value. Inside the goroutine running an
// open capture scope it returns the scope's pending write, if any, so a
// transition block reads back its own mutations. Every other reader sees
// the committed value.
func (c *Cell[T]) Get() T {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.inScopeLocked() {
		if v, ok := c.store.scope[c]; ok {
			return v.(T)
		}
	}
	return c.value
}

// Set writes the cell. Inside the goroutine running an open capture scope
// the write is recorded as a transition target instead of being applied;
// from any other goroutine it applies directly.
func (c *Cell[T]) Set(v T) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.inScopeLocked() {
		c.store.scope[c] = v
		return
	}
	c.value = v
}

func (c *Cell[T]) checkDirect(v any) error {
	if _, ok := v.(T); !ok {
		return fmt.Errorf("cell holds %T, write carries %T", c.value, v)
	}
	return nil
}

func (c *Cell[T]) setDirect(v any) {
	c.value = v.(T)
}
