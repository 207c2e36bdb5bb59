package glide

import (
	"time"

	"github.com/fogleman/ease"
)

// Curve maps normalized progress in [0,1] to eased progress. The functions
// in fogleman/ease all satisfy this shape.
type Curve func(float64) float64

// DefaultSpec is the spec used when neither the engine nor the transition
// names one.
var DefaultSpec Spec = TweenSpec{Duration: 300 * time.Millisecond, Curve: ease.InOutQuad}

// TweenSpec animates over a fixed duration along an easing curve. A nil
// Curve is linear. The carried-over velocity seed is ignored; tweens start
// from rest in curve terms, which is what a fixed-duration redirect means.
type TweenSpec struct {
	Duration time.Duration
	Curve    Curve
}

// curveVelocityStep is the half-width, in normalized progress, of the
// central difference used for velocity.
const curveVelocityStep = 1e-4

// At implements Spec.
func (s TweenSpec) At(start, _, target float64, elapsed time.Duration) (pos, vel float64) {
	curve := s.Curve
	if curve == nil {
		curve = ease.Linear
	}
	if s.Duration <= 0 || elapsed >= s.Duration {
		return target, 0
	}

	u := clamp01(elapsed.Seconds() / s.Duration.Seconds())
	pos = start + curve(u)*(target-start)

	// Central difference, one-sided at the boundaries, keeps velocity
	// defined and continuous across the whole span including u=0.
	lo := clamp01(u - curveVelocityStep)
	hi := clamp01(u + curveVelocityStep)
	slope := (curve(hi) - curve(lo)) / (hi - lo)
	vel = slope * (target - start) / s.Duration.Seconds()
	return pos, vel
}

// Done implements Spec: a tween is finished once the duration has elapsed.
func (s TweenSpec) Done(_, _, _ float64, elapsed time.Duration) bool {
	return elapsed >= s.Duration
}

var _ Spec = TweenSpec{}

func clamp01(u float64) float64 {
	switch {
	case u < 0:
		return 0
	case u > 1:
		return 1
	}
	return u
}

// Curves names the easing curves available to declarative spec definitions.
var Curves = map[string]Curve{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
}
