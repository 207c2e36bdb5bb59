package glide

// HandleState is the lifecycle position of one animated handle.
//
// An untracked handle enters Pending when a transition first targets it and
// Stepping once its baseline frame has run. Stepping exits to one of four
// terminal states: Finished (converged), Superseded (a newer transition
// took the handle over, carrying velocity into a fresh trajectory),
// Desynced (an external write was detected and the engine backed off), or
// Canceled (the owning run's context ended). Every terminal state returns
// the handle to untracked.
type HandleState int32

const (
	// StateUntracked indicates no live animation exists for the handle.
	StateUntracked HandleState = iota

	// StatePending indicates the handle is animating but its baseline
	// frame has not run yet, so elapsed time has no zero point.
	StatePending

	// StateStepping indicates the handle is animating and advancing each
	// frame.
	StateStepping

	// StateFinished indicates the trajectory converged and the captured
	// target value was committed exactly.
	StateFinished

	// StateSuperseded indicates a newer transition replaced the handle's
	// trajectory.
	StateSuperseded

	// StateDesynced indicates the handle's live value diverged from the
	// engine's last committed value and the engine stopped driving it.
	StateDesynced

	// StateCanceled indicates the owning run was canceled before the
	// trajectory converged. The last committed value stands.
	StateCanceled
)

// String returns the string representation of the state.
func (s HandleState) String() string {
	switch s {
	case StateUntracked:
		return "untracked"
	case StatePending:
		return "pending"
	case StateStepping:
		return "stepping"
	case StateFinished:
		return "finished"
	case StateSuperseded:
		return "superseded"
	case StateDesynced:
		return "desynced"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
