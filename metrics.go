package glide

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key engine events.
type MetricsProvider interface {
	// OnTransitionBegin is called when a transition is captured, with the
	// number of handles it touched.
	OnTransitionBegin(handles int)

	// OnFrameCommit is called after a frame's writes commit. Duration is
	// the time spent stepping and committing the frame.
	OnFrameCommit(writes int, duration time.Duration)

	// OnHandleFinished is called when a handle converges on its target.
	// Animated is the elapsed time from baseline to convergence.
	OnHandleFinished(animated time.Duration)

	// OnHandleDropped is called when a handle leaves the table without
	// converging. Cause is StateSuperseded, StateDesynced, or StateCanceled.
	OnHandleDropped(cause HandleState)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnTransitionBegin(_ int)                  {}
func (NoOpMetricsProvider) OnFrameCommit(_ int, _ time.Duration)     {}
func (NoOpMetricsProvider) OnHandleFinished(_ time.Duration)         {}
func (NoOpMetricsProvider) OnHandleDropped(_ HandleState)            {}
