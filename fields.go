package glide

import "github.com/zoobzio/capitan"

// Field keys for engine and preset events.
var (
	// KeyHandles is the number of handles a transition touched.
	KeyHandles = capitan.NewIntKey("handles")

	// KeyWrites is the number of writes committed in a frame.
	KeyWrites = capitan.NewIntKey("writes")

	// KeyCause is the terminal state that removed a handle from the table.
	KeyCause = capitan.NewStringKey("cause")

	// KeyElapsed is the animated duration of a handle at a lifecycle event.
	KeyElapsed = capitan.NewDurationKey("elapsed")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyOldState is the previous preset state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new preset state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeySpecs is the number of spec definitions in an applied preset set.
	KeySpecs = capitan.NewIntKey("specs")

	// KeyDebounce is the configured preset debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
