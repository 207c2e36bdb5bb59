package glide

import "github.com/zoobzio/capitan"

// Transition lifecycle signals.
var (
	// TransitionStarted is emitted when a transition's targets have been
	// captured and reconciled into the live animation table.
	TransitionStarted = capitan.NewSignal(
		"glide.transition.started",
		"Transition captured and animating",
	)

	// TransitionCompleted is emitted when every handle a transition
	// touched has left its active set.
	TransitionCompleted = capitan.NewSignal(
		"glide.transition.completed",
		"Transition drained",
	)

	// TransitionCanceled is emitted when a run's context ends before its
	// animations converge.
	TransitionCanceled = capitan.NewSignal(
		"glide.transition.canceled",
		"Transition canceled before convergence",
	)
)

// Frame signals.
var (
	// FrameCommitted is emitted after a frame's staged writes commit.
	FrameCommitted = capitan.NewSignal(
		"glide.frame.committed",
		"Frame writes committed atomically",
	)

	// FrameConflicted is emitted when the store rejects a frame commit and
	// the staged animations are abandoned.
	FrameConflicted = capitan.NewSignal(
		"glide.frame.conflicted",
		"Frame commit rejected by store",
	)
)

// Per-handle signals.
var (
	// HandleFinished is emitted when a handle's trajectory converges and
	// its exact target value is committed.
	HandleFinished = capitan.NewSignal(
		"glide.handle.finished",
		"Handle converged on its target",
	)

	// HandleSuperseded is emitted when a newer transition takes over an
	// animating handle, carrying its velocity forward.
	HandleSuperseded = capitan.NewSignal(
		"glide.handle.superseded",
		"Handle redirected by a newer transition",
	)

	// HandleDesynced is emitted when an external write is detected on an
	// animating handle and the engine stops driving it.
	HandleDesynced = capitan.NewSignal(
		"glide.handle.desynced",
		"Handle changed outside the engine",
	)
)

// Preset lifecycle signals.
var (
	// PresetsStarted is emitted when a Presets begins watching.
	PresetsStarted = capitan.NewSignal(
		"glide.presets.started",
		"Preset watching started",
	)

	// PresetsStopped is emitted when a Presets stops watching.
	PresetsStopped = capitan.NewSignal(
		"glide.presets.stopped",
		"Preset watching stopped",
	)

	// PresetsChangeReceived is emitted when raw data arrives from the
	// preset watcher.
	PresetsChangeReceived = capitan.NewSignal(
		"glide.presets.change.received",
		"Raw preset change received from watcher",
	)

	// PresetsRejected is emitted when a preset document fails decoding or
	// validation and the previous set is retained.
	PresetsRejected = capitan.NewSignal(
		"glide.presets.rejected",
		"Preset document rejected",
	)

	// PresetsApplied is emitted when a preset document is applied.
	PresetsApplied = capitan.NewSignal(
		"glide.presets.applied",
		"Preset set applied",
	)

	// PresetsStateChanged is emitted when a Presets transitions between
	// states.
	PresetsStateChanged = capitan.NewSignal(
		"glide.presets.state.changed",
		"Preset state transition",
	)
)
