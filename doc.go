/*
Package glide animates reactive state changes instead of applying them
instantaneously.

A caller mutates any number of observed cells inside one transition block;
glide captures the targets those mutations describe, then drives every
touched cell from its current value to its target over time, committing one
atomic batch of writes per frame.

glide is designed to be embedded in hosts that own reactive state, not run
as a standalone service. The engine is an explicit, injectable instance so
tests and independent animation domains can each construct their own.

# Basic Usage

Create an engine over a store and animate a transition:

	store := glide.NewMemStore()
	x := glide.NewCell(store, 0.0)

	engine := glide.NewEngine(store)

	err := engine.Animate(ctx, func() error {
	    x.Set(100)
	    return nil
	})

Animate blocks until every touched cell has converged (or ctx is canceled).
The mutation block never applies its writes directly; it only declares what
the final state should look like.

# Interruption

Redirecting a cell that is already animating merges into the in-flight
animation rather than stacking a second one. The new trajectory starts from
the cell's current position and inherits the old trajectory's instantaneous
velocity, so redirections are seamless:

	engine.Animate(ctx, func() error { x.Set(100); return nil })
	// ... before it finishes ...
	engine.Animate(ctx, func() error { x.Set(0); return nil })

# Desync

If something other than the engine writes to an animating cell, the engine
detects the mismatch on its next frame, stops driving that cell, and leaves
the external value untouched.

# Specs

A Spec shapes the trajectory. Duration-based tweens use easing curves from
fogleman/ease; springs use a damped harmonic model from
charmbracelet/harmonica:

	engine.Animate(ctx, block, glide.WithSpec(glide.TweenSpec{
	    Duration: 300 * time.Millisecond,
	    Curve:    ease.OutCubic,
	}))

	engine.Animate(ctx, block, glide.WithSpec(glide.SpringSpec{
	    Frequency: 6.0,
	    Damping:   0.7,
	}))

# Adapters

Trajectories are computed in vector space. An Adapter reads and writes one
cell type and supplies a Converter that bijects its values to float64
vectors. Built-in adapters cover float64, int, and colorful.Color cells
(interpolated through Lab space); hosts register their own for other types:

	engine.RegisterAdapter(glide.CellAdapter[MyType](myConverter))

# Presets

Named specs can be described declaratively and hot-reloaded from a watched
source, in YAML or JSON:

	specs:
	  fade: {type: tween, duration_ms: 300, curve: in-out-quad}
	  pop:  {type: spring, frequency: 6, damping: 0.7}

	presets := glide.NewPresets(glide.NewFileWatcher("motion.yaml")).
	    Apply(func(specs map[string]glide.Spec) error {
	        engine.SetDefaultSpec(specs["fade"])
	        return nil
	    })

	if err := presets.Start(ctx); err != nil {
	    log.Printf("initial presets failed: %v", err)
	}

Definitions are validated before they apply; a bad document leaves the
previous set active.

# Observability

Engine and preset lifecycles emit capitan signals. Hook them for logging or
metrics:

	capitan.Hook(glide.HandleDesynced, func(_ context.Context, e *capitan.Event) {
	    cause, _ := glide.KeyCause.From(e)
	    log.Printf("stopped animating: %s", cause)
	})
*/
package glide
