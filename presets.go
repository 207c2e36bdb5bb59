package glide

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultPresetDebounce is the default debounce duration for preset
// change processing.
const DefaultPresetDebounce = 100 * time.Millisecond

// validate is the shared validator instance for preset definitions.
var validate = validator.New()

// SpecDef is a declarative animation spec definition, the serializable form
// hosts keep in preset documents:
//
//	specs:
//	  fade: {type: tween, duration_ms: 300, curve: in-out-quad}
//	  pop:  {type: spring, frequency: 6, damping: 0.7}
type SpecDef struct {
	Type       string  `yaml:"type" json:"type" validate:"required,oneof=tween spring"`
	DurationMs int     `yaml:"duration_ms" json:"duration_ms" validate:"required_if=Type tween,omitempty,min=1"`
	Curve      string  `yaml:"curve" json:"curve" validate:"omitempty"`
	Frequency  float64 `yaml:"frequency" json:"frequency" validate:"required_if=Type spring,omitempty,gt=0"`
	Damping    float64 `yaml:"damping" json:"damping" validate:"required_if=Type spring,omitempty,gt=0"`
}

// Spec builds the runtime Spec this definition describes.
func (d SpecDef) Spec() (Spec, error) {
	switch d.Type {
	case "tween":
		curve := Curves["linear"]
		if d.Curve != "" {
			c, ok := Curves[d.Curve]
			if !ok {
				return nil, fmt.Errorf("unknown curve %q", d.Curve)
			}
			curve = c
		}
		return TweenSpec{
			Duration: time.Duration(d.DurationMs) * time.Millisecond,
			Curve:    curve,
		}, nil

	case "spring":
		return SpringSpec{Frequency: d.Frequency, Damping: d.Damping}, nil

	default:
		return nil, fmt.Errorf("unknown spec type %q", d.Type)
	}
}

// presetDoc is the wire shape of a preset document.
type presetDoc struct {
	Specs map[string]SpecDef `yaml:"specs" json:"specs" validate:"required,min=1,dive"`
}

// Presets watches a source of named spec definitions, decodes and validates
// each document, and applies the set atomically with automatic rollback:
// a bad document leaves the previous valid set active.
type Presets struct {
	watcher  Watcher
	onApply  func(map[string]Spec) error
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec // nil means auto-detect per document

	state     atomic.Int32
	current   atomic.Pointer[map[string]Spec]
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewPresets creates a Presets over the given watcher. Configure with the
// chainable methods before calling Start.
func NewPresets(w Watcher) *Presets {
	p := &Presets{
		watcher:  w,
		debounce: DefaultPresetDebounce,
		clock:    clockz.RealClock,
	}
	p.state.Store(int32(PresetLoading))
	return p
}

// Debounce sets the debounce duration for change processing. Changes
// arriving within this duration are coalesced into a single update.
func (p *Presets) Debounce(d time.Duration) *Presets {
	p.debounce = d
	return p
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
func (p *Presets) Clock(clock clockz.Clock) *Presets {
	p.clock = clock
	return p
}

// UseCodec enforces a document format. Without it, format is auto-detected
// per document.
func (p *Presets) UseCodec(c Codec) *Presets {
	p.codec = c
	return p
}

// Sync enables synchronous processing for testing. In sync mode, changes
// are processed immediately without debouncing or async goroutines, making
// tests deterministic.
func (p *Presets) Sync() *Presets {
	p.syncMode = true
	return p
}

// Apply registers a callback invoked with each valid spec set before it is
// stored. A callback error rejects the set like a validation failure.
func (p *Presets) Apply(fn func(map[string]Spec) error) *Presets {
	p.onApply = fn
	return p
}

// State returns the current state of the Presets.
func (p *Presets) State() PresetState {
	return PresetState(p.state.Load())
}

// Spec returns the named spec from the current set, or false if no valid
// set is applied or the name is absent.
func (p *Presets) Spec(name string) (Spec, bool) {
	ptr := p.current.Load()
	if ptr == nil {
		return nil, false
	}
	s, ok := (*ptr)[name]
	return s, ok
}

// All returns the current valid spec set and true, or nil and false if no
// valid set has been applied.
func (p *Presets) All() (map[string]Spec, bool) {
	ptr := p.current.Load()
	if ptr == nil {
		return nil, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil if no error occurred.
func (p *Presets) LastError() error {
	ptr := p.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching for changes. It blocks until the first document is
// processed (success or failure), then continues watching asynchronously.
//
// If the initial document fails, Start returns the error but continues
// watching in the background for valid updates.
//
// In sync mode, Start only processes the initial document. Use Process() to
// manually trigger processing of subsequent documents.
//
// Start can only be called once. Subsequent calls return an error.
func (p *Presets) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return fmt.Errorf("presets already started")
	}
	p.started = true
	p.mu.Unlock()

	capitan.Emit(ctx, PresetsStarted,
		KeyDebounce.Field(p.debounce),
	)

	changes, err := p.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Wait for first document and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial document")
		}
		capitan.Emit(ctx, PresetsChangeReceived)
		initialErr = p.process(ctx, raw)
	}

	if p.syncMode {
		// In sync mode, store channel for manual processing
		p.changes = changes
		return initialErr
	}

	// Continue watching asynchronously
	go p.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next document from the watcher.
// This is only available in sync mode and is used for deterministic testing.
// Returns false if no document is available or the channel is closed.
func (p *Presets) Process(ctx context.Context) bool {
	if !p.syncMode {
		return false
	}

	select {
	case raw, ok := <-p.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, PresetsChangeReceived)
		_ = p.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// process decodes, validates, builds, and applies a single document.
func (p *Presets) process(ctx context.Context, raw []byte) error {
	oldState := p.State()

	codec := p.codec
	if codec == nil {
		codec = detectCodec(raw)
	}

	var doc presetDoc
	if err := codec.Unmarshal(raw, &doc); err != nil {
		err = fmt.Errorf("decode failed: %w", err)
		p.reject(ctx, oldState, err)
		return err
	}

	if err := validate.Struct(doc); err != nil {
		err = fmt.Errorf("validation failed: %w", err)
		p.reject(ctx, oldState, err)
		return err
	}

	specs := make(map[string]Spec, len(doc.Specs))
	for name, def := range doc.Specs {
		s, err := def.Spec()
		if err != nil {
			err = fmt.Errorf("spec %q: %w", name, err)
			p.reject(ctx, oldState, err)
			return err
		}
		specs[name] = s
	}

	if p.onApply != nil {
		if err := p.onApply(specs); err != nil {
			err = fmt.Errorf("apply failed: %w", err)
			p.reject(ctx, oldState, err)
			return err
		}
	}

	p.current.Store(&specs)
	p.lastError.Store(nil)
	p.transitionState(ctx, oldState, PresetHealthy)
	capitan.Emit(ctx, PresetsApplied,
		KeySpecs.Field(len(specs)),
	)

	return nil
}

// reject records a failed document, keeping the previous valid set.
func (p *Presets) reject(ctx context.Context, oldState PresetState, err error) {
	e := err
	p.lastError.Store(&e)
	p.transitionState(ctx, oldState, p.failureState())
	capitan.Emit(ctx, PresetsRejected,
		KeyError.Field(err.Error()),
	)
}

// failureState returns the appropriate failure state based on whether a
// valid set has ever been applied.
func (p *Presets) failureState() PresetState {
	if p.current.Load() == nil {
		return PresetEmpty
	}
	return PresetDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (p *Presets) transitionState(ctx context.Context, oldState, newState PresetState) {
	if oldState == newState {
		return
	}
	p.state.Store(int32(newState))
	capitan.Emit(ctx, PresetsStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// watch processes changes from the watcher channel with debouncing.
func (p *Presets) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, PresetsStopped,
			KeyNewState.Field(p.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending change
				if hasPending {
					_ = p.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			capitan.Emit(ctx, PresetsChangeReceived)
			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = p.clock.NewTimer(p.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(p.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = p.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
