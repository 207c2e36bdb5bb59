package glide

import (
	"math"
	"testing"
	"time"

	"github.com/fogleman/ease"
)

func TestTweenSpec_LinearMidpoint(t *testing.T) {
	spec := TweenSpec{Duration: time.Second, Curve: ease.Linear}

	pos, vel := spec.At(0, 0, 100, 500*time.Millisecond)
	if pos != 50.0 {
		t.Errorf("midpoint %v, want 50", pos)
	}
	if math.Abs(vel-100) > 1e-6 {
		t.Errorf("midpoint velocity %v, want 100 units/s", vel)
	}
}

func TestTweenSpec_NilCurveIsLinear(t *testing.T) {
	spec := TweenSpec{Duration: time.Second}

	pos, _ := spec.At(0, 0, 100, 250*time.Millisecond)
	if pos != 25.0 {
		t.Errorf("got %v, want 25", pos)
	}
}

func TestTweenSpec_VelocityDefinedAtZero(t *testing.T) {
	spec := TweenSpec{Duration: time.Second, Curve: ease.InOutQuad}

	_, vel := spec.At(0, 0, 100, 0)
	if math.IsNaN(vel) || math.IsInf(vel, 0) {
		t.Fatalf("velocity at t=0 is %v", vel)
	}
	// InOutQuad starts from rest.
	if math.Abs(vel) > 0.1 {
		t.Errorf("InOutQuad velocity at t=0 is %v, want ~0", vel)
	}
}

func TestTweenSpec_DoneAtDuration(t *testing.T) {
	spec := TweenSpec{Duration: time.Second, Curve: ease.Linear}

	if spec.Done(0, 0, 100, 999*time.Millisecond) {
		t.Error("done before duration elapsed")
	}
	if !spec.Done(0, 0, 100, time.Second) {
		t.Error("not done at duration")
	}

	pos, vel := spec.At(0, 0, 100, 2*time.Second)
	if pos != 100.0 || vel != 0.0 {
		t.Errorf("past duration: pos %v vel %v, want 100 and 0", pos, vel)
	}
}

func TestTweenSpec_ZeroDuration(t *testing.T) {
	spec := TweenSpec{}

	pos, _ := spec.At(0, 0, 100, 0)
	if pos != 100.0 {
		t.Errorf("zero-duration tween at target: got %v", pos)
	}
	if !spec.Done(0, 0, 100, 0) {
		t.Error("zero-duration tween not immediately done")
	}
}

func TestTweenSpec_IgnoresVelocitySeed(t *testing.T) {
	spec := TweenSpec{Duration: time.Second, Curve: ease.Linear}

	seeded, _ := spec.At(0, 500, 100, 250*time.Millisecond)
	unseeded, _ := spec.At(0, 0, 100, 250*time.Millisecond)
	if seeded != unseeded {
		t.Errorf("tween position depends on velocity seed: %v vs %v", seeded, unseeded)
	}
}

func TestSpringSpec_ConvergesToTarget(t *testing.T) {
	spec := SpringSpec{Frequency: 6, Damping: 1}

	pos, vel := spec.At(0, 0, 1, 3*time.Second)
	if math.Abs(pos-1) > springEpsilon {
		t.Errorf("position %v has not settled on 1", pos)
	}
	if math.Abs(vel) > springEpsilon {
		t.Errorf("velocity %v has not settled", vel)
	}
	if !spec.Done(0, 0, 1, 3*time.Second) {
		t.Error("critically damped spring not done after 3s")
	}
}

func TestSpringSpec_NotDoneEarly(t *testing.T) {
	spec := SpringSpec{Frequency: 6, Damping: 1}

	if spec.Done(0, 0, 1, 50*time.Millisecond) {
		t.Error("spring done after 50ms")
	}
}

func TestSpringSpec_CutoffForcesCompletion(t *testing.T) {
	// Undamped: oscillates forever numerically, so only the cutoff ends it.
	spec := SpringSpec{Frequency: 6, Damping: 0}

	if !spec.Done(0, 0, 1, springCutoff) {
		t.Error("cutoff did not force completion")
	}
	pos, vel := spec.At(0, 0, 1, springCutoff)
	if pos != 1.0 || vel != 0.0 {
		t.Errorf("at cutoff: pos %v vel %v, want target and rest", pos, vel)
	}
}

func TestSpringSpec_PureInElapsed(t *testing.T) {
	spec := SpringSpec{Frequency: 6, Damping: 0.7}

	p1, v1 := spec.At(0, 40, 1, 137*time.Millisecond)
	p2, v2 := spec.At(0, 40, 1, 137*time.Millisecond)
	if p1 != p2 || v1 != v2 {
		t.Errorf("repeated evaluation diverged: (%v,%v) vs (%v,%v)", p1, v1, p2, v2)
	}
}

func TestSpringSpec_VelocitySeedMatters(t *testing.T) {
	spec := SpringSpec{Frequency: 6, Damping: 0.7}

	seeded, _ := spec.At(0, 50, 1, 100*time.Millisecond)
	unseeded, _ := spec.At(0, 0, 1, 100*time.Millisecond)
	if seeded <= unseeded {
		t.Errorf("positive velocity seed did not advance the spring: %v vs %v", seeded, unseeded)
	}
}

func TestTrajectory_VectorComponents(t *testing.T) {
	traj := newTrajectory(
		[]float64{0, 100},
		[]float64{100, 0},
		[]float64{0, 0},
		TweenSpec{Duration: time.Second, Curve: ease.Linear},
		nil,
	)

	vals := traj.ValueAt(500 * time.Millisecond)
	if vals[0] != 50.0 || vals[1] != 50.0 {
		t.Errorf("midpoint %v, want [50 50]", vals)
	}

	vels := traj.VelocityAt(500 * time.Millisecond)
	if math.Abs(vels[0]-100) > 1e-6 || math.Abs(vels[1]+100) > 1e-6 {
		t.Errorf("velocities %v, want [100 -100]", vels)
	}

	if traj.Done(500 * time.Millisecond) {
		t.Error("done at midpoint")
	}
	if !traj.Done(time.Second) {
		t.Error("not done at duration")
	}
}
