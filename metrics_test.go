package glide

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	// These should not panic
	m.OnTransitionBegin(2)
	m.OnFrameCommit(3, 100*time.Microsecond)
	m.OnHandleFinished(time.Second)
	m.OnHandleDropped(StateDesynced)
}

// recordingMetrics captures every engine callback for assertion.
type recordingMetrics struct {
	mu          sync.Mutex
	transitions []int
	commits     []int
	finished    []time.Duration
	dropped     []HandleState
}

func (m *recordingMetrics) OnTransitionBegin(handles int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, handles)
}

func (m *recordingMetrics) OnFrameCommit(writes int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits = append(m.commits, writes)
}

func (m *recordingMetrics) OnHandleFinished(animated time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, animated)
}

func (m *recordingMetrics) OnHandleDropped(cause HandleState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped = append(m.dropped, cause)
}

func TestEngine_MetricsLifecycle(t *testing.T) {
	metrics := &recordingMetrics{}
	store := NewMemStore()
	engine := NewEngine(store, WithSyncMode(), WithMetrics(metrics))

	x := NewCell(store, 0.0)
	y := NewCell(store, 0.0)

	run, err := engine.Begin(context.Background(), func() error {
		x.Set(100)
		y.Set(50)
		return nil
	}, WithSpec(linear1s))
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if len(metrics.transitions) != 1 || metrics.transitions[0] != 2 {
		t.Errorf("OnTransitionBegin calls: %v, want [2]", metrics.transitions)
	}

	base := time.Unix(100, 0)
	stepUntil(t, engine, run, base, 100*time.Millisecond, 30)

	if len(metrics.commits) == 0 {
		t.Fatal("no OnFrameCommit calls")
	}
	if metrics.commits[0] != 2 {
		t.Errorf("first frame committed %d writes, want 2", metrics.commits[0])
	}
	if len(metrics.finished) != 2 {
		t.Errorf("OnHandleFinished calls: %d, want 2", len(metrics.finished))
	}
	for _, animated := range metrics.finished {
		if animated < time.Second {
			t.Errorf("handle reported finished after %v, spec runs 1s", animated)
		}
	}
	if len(metrics.dropped) != 0 {
		t.Errorf("unexpected drops: %v", metrics.dropped)
	}
}

func TestEngine_MetricsDroppedOnDesync(t *testing.T) {
	metrics := &recordingMetrics{}
	store := NewMemStore()
	engine := NewEngine(store, WithSyncMode(), WithMetrics(metrics))

	x := NewCell(store, 0.0)

	_, err := engine.Begin(context.Background(), func() error {
		x.Set(100)
		return nil
	}, WithSpec(linear1s))
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	base := time.Unix(100, 0)
	engine.Step(base)
	engine.Step(base.Add(250 * time.Millisecond))

	// External write between frames.
	x.Set(-1)
	engine.Step(base.Add(500 * time.Millisecond))

	if len(metrics.dropped) != 1 || metrics.dropped[0] != StateDesynced {
		t.Errorf("OnHandleDropped calls: %v, want [desynced]", metrics.dropped)
	}
	if len(metrics.finished) != 0 {
		t.Errorf("desynced handle reported finished: %v", metrics.finished)
	}
}
