package glide

import (
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultFrameInterval is the default frame cadence for the async loop.
const DefaultFrameInterval = time.Second / 60

// DefaultDropHistory is the default capacity of the drop history ring.
const DefaultDropHistory = 32

// config holds construction options for an Engine.
type config struct {
	clock       clockz.Clock
	interval    time.Duration
	registry    *Registry
	defaultSpec Spec
	syncMode    bool
	metrics     MetricsProvider
	dropHistory int
}

// Option configures an Engine.
type Option func(*config)

// WithClock sets a custom clock for frame timing.
// Use this with clockz.FakeClock for deterministic frame testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithFrameInterval sets the async frame loop cadence.
func WithFrameInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithRegistry replaces the default adapter registry.
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithDefaultSpec sets the spec used by transitions that do not name one.
func WithDefaultSpec(s Spec) Option {
	return func(c *config) {
		c.defaultSpec = s
	}
}

// WithSyncMode disables the engine's frame loop for deterministic testing.
// In sync mode, Begin starts transitions and the caller drives every frame
// explicitly with Step.
func WithSyncMode() Option {
	return func(c *config) {
		c.syncMode = true
	}
}

// WithMetrics sets a metrics provider for engine events.
func WithMetrics(m MetricsProvider) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithDropHistory sets the capacity of the drop history ring.
// Zero disables drop recording.
func WithDropHistory(n int) Option {
	return func(c *config) {
		c.dropHistory = n
	}
}

// transitionConfig holds per-transition options.
type transitionConfig struct {
	spec Spec
}

// TransitionOption configures a single transition.
type TransitionOption func(*transitionConfig)

// WithSpec sets the spec for one transition, overriding the engine default.
func WithSpec(s Spec) TransitionOption {
	return func(c *transitionConfig) {
		c.spec = s
	}
}
