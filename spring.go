package glide

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Spring completion thresholds. The displacement and velocity of every
// component must both fall inside springEpsilon of rest, in vector units,
// before a spring reports done; springCutoff bounds runaway specs that
// never settle numerically.
const (
	springEpsilon = 1e-3
	springCutoff  = 10 * time.Second
)

// springStep is the fixed integration step. At(elapsed) integrates from
// zero in springStep increments, so the result is a pure function of
// elapsed regardless of the host's frame cadence.
const springStep = time.Second / 120

// SpringSpec animates with a damped harmonic oscillator. Frequency is the
// angular frequency in radians per second; Damping is the damping ratio,
// where 1 is critical damping and values below 1 overshoot.
type SpringSpec struct {
	Frequency float64
	Damping   float64
}

// At implements Spec.
func (s SpringSpec) At(start, v0, target float64, elapsed time.Duration) (pos, vel float64) {
	if elapsed >= springCutoff {
		return target, 0
	}
	return s.integrate(start, v0, target, elapsed)
}

// Done implements Spec: done when position and velocity are both within
// springEpsilon of rest at the target, or the cutoff has been reached.
func (s SpringSpec) Done(start, v0, target float64, elapsed time.Duration) bool {
	if elapsed >= springCutoff {
		return true
	}
	pos, vel := s.integrate(start, v0, target, elapsed)
	return math.Abs(pos-target) < springEpsilon && math.Abs(vel) < springEpsilon
}

func (s SpringSpec) integrate(start, v0, target float64, elapsed time.Duration) (pos, vel float64) {
	spring := harmonica.NewSpring(springStep.Seconds(), s.Frequency, s.Damping)

	pos, vel = start, v0
	steps := int(elapsed / springStep)
	for i := 0; i < steps; i++ {
		pos, vel = spring.Update(pos, vel, target)
	}
	return pos, vel
}

var _ Spec = SpringSpec{}
