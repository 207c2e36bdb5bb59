package glide

import "time"

// Spec shapes one animated component's path from a start value to a target.
// Implementations must be pure: At and Done depend only on their arguments,
// and velocity must be defined and continuous for all elapsed times,
// including zero, because it seeds the next trajectory on interruption.
type Spec interface {
	// At returns the component's position and velocity (units per second)
	// at the given elapsed time. v0 is the component's velocity at elapsed
	// zero, carried over from an interrupted trajectory.
	At(start, v0, target float64, elapsed time.Duration) (pos, vel float64)

	// Done reports whether the component has converged at the given
	// elapsed time.
	Done(start, v0, target float64, elapsed time.Duration) bool
}

// Trajectory is an immutable description of one animation run in vector
// space: where it started, where it is going, how fast it was moving when
// it started, and the Spec that shapes the path between. All methods are
// pure functions of elapsed time.
type Trajectory struct {
	start  []float64
	target []float64
	v0     []float64
	spec   Spec

	// targetValue is the captured domain target, committed verbatim when
	// the trajectory finishes so numeric convergence error never leaks
	// into the final value.
	targetValue any
}

// newTrajectory builds a trajectory over parallel start/target/v0 vectors.
func newTrajectory(start, target, v0 []float64, spec Spec, targetValue any) *Trajectory {
	return &Trajectory{
		start:       start,
		target:      target,
		v0:          v0,
		spec:        spec,
		targetValue: targetValue,
	}
}

// zeroVector returns an all-zero vector of length n.
func zeroVector(n int) []float64 {
	return make([]float64, n)
}

// ValueAt returns the trajectory's position at elapsed.
func (t *Trajectory) ValueAt(elapsed time.Duration) []float64 {
	out := make([]float64, len(t.start))
	for i := range t.start {
		out[i], _ = t.spec.At(t.start[i], t.v0[i], t.target[i], elapsed)
	}
	return out
}

// VelocityAt returns the trajectory's velocity at elapsed, in units per
// second per component.
func (t *Trajectory) VelocityAt(elapsed time.Duration) []float64 {
	out := make([]float64, len(t.start))
	for i := range t.start {
		_, out[i] = t.spec.At(t.start[i], t.v0[i], t.target[i], elapsed)
	}
	return out
}

// Done reports whether every component has converged at elapsed.
func (t *Trajectory) Done(elapsed time.Duration) bool {
	for i := range t.start {
		if !t.spec.Done(t.start[i], t.v0[i], t.target[i], elapsed) {
			return false
		}
	}
	return true
}
