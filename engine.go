package glide

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Engine drives animations over a Store. It owns the live animation table:
// per handle, at most one trajectory exists engine-wide, and a transition
// that targets an already-animating handle merges into that entry rather
// than duplicating it.
//
// Engines are explicit instances, not package state. Hosts normally keep
// one per animation domain; tests construct isolated ones freely.
type Engine struct {
	store    Store
	clock    clockz.Clock
	interval time.Duration
	syncMode bool
	metrics  MetricsProvider
	drops    *dropRing

	mu          sync.Mutex
	registry    *Registry
	defaultSpec Spec
	table       map[Handle]*entry
	runs        []*Run
	looping     bool
}

// entry is the live animation record for one handle.
type entry struct {
	adapter Adapter
	conv    Converter
	traj    *Trajectory

	// start is the baseline frame time; zero until the first frame runs.
	start time.Time
	// last is the most recent frame that advanced this entry.
	last time.Time
	// expect is the domain value the engine believes the handle holds
	// because the engine itself wrote it. It is the desync sentinel: a
	// live read that differs means someone else wrote the handle.
	expect any

	run *Run
}

// Run is one in-flight transition: the set of handles it is animating and
// the trajectories it installed for them. A run completes when every
// handle has finished, been superseded, desynced, or been canceled.
type Run struct {
	ctx    context.Context
	engine *Engine
	active map[Handle]*Trajectory
	done   chan struct{}
	closed bool
	err    error
}

// Done returns a channel closed when the run has released every handle.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Err returns the context error if the run was canceled, nil otherwise.
// Only meaningful after Done is closed.
func (r *Run) Err() error {
	r.engine.mu.Lock()
	defer r.engine.mu.Unlock()
	return r.err
}

// NewEngine creates an Engine over the given store.
func NewEngine(store Store, opts ...Option) *Engine {
	cfg := &config{
		clock:       clockz.RealClock,
		interval:    DefaultFrameInterval,
		defaultSpec: DefaultSpec,
		metrics:     NoOpMetricsProvider{},
		dropHistory: DefaultDropHistory,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	return &Engine{
		store:       store,
		clock:       cfg.clock,
		interval:    cfg.interval,
		syncMode:    cfg.syncMode,
		metrics:     cfg.metrics,
		drops:       newDropRing(cfg.dropHistory),
		registry:    cfg.registry,
		defaultSpec: cfg.defaultSpec,
		table:       make(map[Handle]*entry),
	}
}

// RegisterAdapter adds an adapter with precedence over existing ones.
func (e *Engine) RegisterAdapter(a Adapter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry.RegisterAdapter(a)
}

// RegisterFinder adds an adapter sub-registry with precedence over
// existing ones.
func (e *Engine) RegisterFinder(f Finder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry.Register(f)
}

// SetDefaultSpec replaces the spec used by transitions that do not name
// one. In-flight animations keep the spec they started with.
func (e *Engine) SetDefaultSpec(s Spec) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defaultSpec = s
}

// Animating returns the number of handles with live animations.
func (e *Engine) Animating() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.table)
}

// State returns the lifecycle state of a handle: StatePending before its
// baseline frame, StateStepping while advancing, StateUntracked otherwise.
// Terminal states are observable through signals and RecentDrops, not
// here; they return the handle to untracked immediately.
func (e *Engine) State(h Handle) HandleState {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.table[h]
	switch {
	case !ok:
		return StateUntracked
	case ent.start.IsZero():
		return StatePending
	default:
		return StateStepping
	}
}

// RecentDrops returns recently abandoned animations, oldest first.
func (e *Engine) RecentDrops() []DropRecord {
	return e.drops.all()
}

// Animate captures block's mutations and blocks until every touched handle
// converges, is taken over by a newer transition, or the context ends.
// Adapter and capture errors surface immediately; desyncs and commit
// conflicts resolve silently per handle.
func (e *Engine) Animate(ctx context.Context, block func() error, opts ...TransitionOption) error {
	if e.syncMode {
		return ErrSyncEngine
	}

	run, err := e.Begin(ctx, block, opts...)
	if err != nil {
		return err
	}

	select {
	case <-run.Done():
		return run.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Begin captures block's mutations in an isolated scope and reconciles the
// resulting targets into the live animation table: handles already
// animating are redirected with their velocity carried forward, fresh
// handles enter baseline-pending. Begin never commits a value itself; the
// first visible effect is the next frame.
//
// Every target is resolved before the table is touched, so an unsupported
// handle fails the whole batch with no partial animation.
func (e *Engine) Begin(ctx context.Context, block func() error, opts ...TransitionOption) (*Run, error) {
	tc := &transitionConfig{}
	for _, opt := range opts {
		opt(tc)
	}

	targets, err := e.store.Record(block)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()

	spec := tc.spec
	if spec == nil {
		spec = e.defaultSpec
	}

	type resolved struct {
		adapter   Adapter
		conv      Converter
		current   any
		target    any
		currVec   []float64
		targetVec []float64
	}
	res := make(map[Handle]resolved, len(targets))
	for h, target := range targets {
		a := e.registry.Find(h)
		if a == nil {
			e.mu.Unlock()
			return nil, &UnsupportedValueTypeError{Handle: h}
		}
		current, err := a.Read(h)
		if err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("reading handle: %w", err)
		}
		conv, err := a.Converter(current)
		if err != nil {
			e.mu.Unlock()
			return nil, err
		}
		currVec, err := conv.ToVector(current)
		if err != nil {
			e.mu.Unlock()
			return nil, err
		}
		targetVec, err := conv.ToVector(target)
		if err != nil {
			e.mu.Unlock()
			return nil, err
		}
		res[h] = resolved{a, conv, current, target, currVec, targetVec}
	}

	run := &Run{
		ctx:    ctx,
		engine: e,
		active: make(map[Handle]*Trajectory, len(res)),
		done:   make(chan struct{}),
	}

	superseded := 0
	for h, r := range res {
		if ent, ok := e.table[h]; ok {
			// Redirection: seed the new trajectory with the old one's
			// instantaneous velocity and keep the old frame baseline, so
			// the next frame advances immediately instead of re-running a
			// baseline frame.
			var elapsed time.Duration
			if !ent.start.IsZero() {
				elapsed = ent.last.Sub(ent.start)
			}
			v0 := ent.traj.VelocityAt(elapsed)
			if len(v0) != len(r.currVec) {
				v0 = zeroVector(len(r.currVec))
			}
			ent.traj = newTrajectory(r.currVec, r.targetVec, v0, spec, r.target)
			ent.adapter = r.adapter
			ent.conv = r.conv
			ent.expect = r.current
			if !ent.start.IsZero() {
				ent.start = ent.last
			}
			ent.run = run
			run.active[h] = ent.traj
			superseded++
			continue
		}

		traj := newTrajectory(r.currVec, r.targetVec, zeroVector(len(r.currVec)), spec, r.target)
		e.table[h] = &entry{
			adapter: r.adapter,
			conv:    r.conv,
			traj:    traj,
			expect:  r.current,
			run:     run,
		}
		run.active[h] = traj
	}

	if len(run.active) == 0 {
		// Nothing to animate; the run is complete before its first frame.
		run.closed = true
		close(run.done)
		e.mu.Unlock()
		return run, nil
	}

	e.runs = append(e.runs, run)
	if !e.syncMode {
		e.ensureLoopLocked()
	}
	e.mu.Unlock()

	e.metrics.OnTransitionBegin(len(run.active))
	capitan.Emit(ctx, TransitionStarted, KeyHandles.Field(len(run.active)))
	for i := 0; i < superseded; i++ {
		capitan.Emit(ctx, HandleSuperseded)
	}
	return run, nil
}

// Step advances every live run by one frame at the given timestamp and
// commits the frame's writes as one transaction. The async loop calls it
// on each tick; in sync mode the caller drives it directly.
func (e *Engine) Step(now time.Time) {
	frameStart := e.clock.Now()

	e.mu.Lock()

	var staged []Write
	var after []func() // signal and metric emission deferred past the lock

	for _, run := range append([]*Run(nil), e.runs...) {
		if run.ctx != nil && run.ctx.Err() != nil {
			e.cancelLocked(run, now, &after)
			continue
		}
		e.stepRunLocked(run, now, &staged, &after)
	}

	if len(staged) > 0 {
		if err := e.store.Commit(staged); err != nil {
			e.conflictLocked(staged, now, err, &after)
		} else {
			writes := len(staged)
			took := e.clock.Since(frameStart)
			after = append(after, func() {
				e.metrics.OnFrameCommit(writes, took)
				capitan.Emit(context.Background(), FrameCommitted, KeyWrites.Field(writes))
			})
		}
	}

	remaining := e.runs[:0]
	for _, run := range e.runs {
		if len(run.active) == 0 {
			if !run.closed {
				run.closed = true
				close(run.done)
				if run.err == nil {
					after = append(after, func() {
						capitan.Emit(context.Background(), TransitionCompleted)
					})
				}
			}
			continue
		}
		remaining = append(remaining, run)
	}
	e.runs = remaining

	e.mu.Unlock()

	for _, fn := range after {
		fn()
	}
}

// stepRunLocked advances one run's handles for the frame at now.
func (e *Engine) stepRunLocked(run *Run, now time.Time, staged *[]Write, after *[]func()) {
	for h, traj := range run.active {
		ent, ok := e.table[h]
		if !ok || ent.traj != traj {
			// Another run took this handle over; it is no longer ours to
			// drive. No write.
			delete(run.active, h)
			continue
		}

		if e.desyncedLocked(h, ent) {
			delete(e.table, h)
			delete(run.active, h)
			e.dropLocked(h, StateDesynced, now, after)
			*after = append(*after, func() {
				capitan.Emit(context.Background(), HandleDesynced,
					KeyCause.Field(StateDesynced.String()),
				)
			})
			continue
		}

		if ent.start.IsZero() {
			// Baseline frame: establish the elapsed-time zero point. The
			// staged write re-commits the current value, changing nothing
			// visibly.
			ent.start = now
			ent.last = now
			*staged = append(*staged, Write{Handle: h, Adapter: ent.adapter, Value: ent.expect})
			continue
		}

		elapsed := now.Sub(ent.start)
		if ent.traj.Done(elapsed) {
			// Commit the captured target exactly, not the numerically
			// converged value.
			*staged = append(*staged, Write{Handle: h, Adapter: ent.adapter, Value: ent.traj.targetValue})
			ent.expect = ent.traj.targetValue
			delete(e.table, h)
			delete(run.active, h)
			*after = append(*after, func() {
				e.metrics.OnHandleFinished(elapsed)
				capitan.Emit(context.Background(), HandleFinished, KeyElapsed.Field(elapsed))
			})
			continue
		}

		vec := ent.traj.ValueAt(elapsed)
		v, err := ent.conv.FromVector(vec)
		if err != nil {
			// Unreachable with a well-formed converter; back off the same
			// way a desync does.
			delete(e.table, h)
			delete(run.active, h)
			e.dropLocked(h, StateDesynced, now, after)
			continue
		}
		ent.last = now
		// The expected value must be recorded ahead of the commit so the
		// next frame's desync check compares against what this frame is
		// about to write.
		ent.expect = v
		*staged = append(*staged, Write{Handle: h, Adapter: ent.adapter, Value: v})
	}
}

// desyncedLocked reports whether the handle's live value no longer matches
// the engine's last committed value. Comparison happens in vector space so
// domain round-trips (int rounding, color gamut clamping) never register
// as external writes.
func (e *Engine) desyncedLocked(h Handle, ent *entry) bool {
	cur, err := ent.adapter.Read(h)
	if err != nil {
		return true
	}
	curVec, err := ent.conv.ToVector(cur)
	if err != nil {
		return true
	}
	expVec, err := ent.conv.ToVector(ent.expect)
	if err != nil {
		return true
	}
	return !vectorsEqual(curVec, expVec)
}

// cancelLocked releases every entry the run still owns. Values are never
// rewritten on cancellation; they freeze where the last frame left them.
func (e *Engine) cancelLocked(run *Run, now time.Time, after *[]func()) {
	for h, traj := range run.active {
		if ent, ok := e.table[h]; ok && ent.traj == traj {
			delete(e.table, h)
			e.dropLocked(h, StateCanceled, now, after)
		}
		delete(run.active, h)
	}
	run.err = run.ctx.Err()
	*after = append(*after, func() {
		capitan.Emit(context.Background(), TransitionCanceled)
	})
}

// conflictLocked abandons every animation staged in a rejected frame.
// A conflict means something outside the engine is writing the same
// target, which is the desync situation by another route.
func (e *Engine) conflictLocked(staged []Write, now time.Time, err error, after *[]func()) {
	for _, w := range staged {
		if ent, ok := e.table[w.Handle]; ok {
			delete(e.table, w.Handle)
			delete(ent.run.active, w.Handle)
			e.dropLocked(w.Handle, StateDesynced, now, after)
		}
	}
	msg := err.Error()
	*after = append(*after, func() {
		capitan.Emit(context.Background(), FrameConflicted, KeyError.Field(msg))
	})
}

// dropLocked records an abandoned animation.
func (e *Engine) dropLocked(h Handle, cause HandleState, now time.Time, after *[]func()) {
	e.drops.push(DropRecord{Handle: h, Cause: cause, At: now})
	*after = append(*after, func() {
		e.metrics.OnHandleDropped(cause)
	})
}

// ensureLoopLocked starts the frame loop if it is not already running.
func (e *Engine) ensureLoopLocked() {
	if e.looping {
		return
	}
	e.looping = true
	go e.loop()
}

// loop fires Step once per frame interval until no runs remain.
func (e *Engine) loop() {
	timer := e.clock.NewTimer(e.interval)
	defer func() { timer.Stop() }()

	for {
		<-timer.C()
		e.Step(e.clock.Now())

		e.mu.Lock()
		if len(e.runs) == 0 {
			e.looping = false
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()

		// Re-arm with a fresh timer each frame: clockz's FakeClock drops a
		// fired one-shot timer from its waiter list, so Reset on a fired
		// timer never fires again (REVIEW_FINDINGS.md F4).
		timer.Stop()
		timer = e.clock.NewTimer(e.interval)
	}
}

// vectorsEqual reports exact component equality. Exactness is deliberate:
// the engine compares values it wrote itself, so any difference at all
// means an external write.
func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
