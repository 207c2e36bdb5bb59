package glide

import "github.com/lucasb-eyer/go-colorful"

// Adapter is the capability bundle for one cell type: recognize a handle,
// read and write its value, and supply a Converter for trajectory math.
type Adapter interface {
	// Match reports whether this adapter handles the given handle.
	Match(h Handle) bool

	// Read returns the handle's current live value.
	Read(h Handle) (any, error)

	// Write sets the handle's value. Engine writes go through Store.Commit
	// instead; Write exists for hosts whose stores dispatch by adapter.
	Write(h Handle, v any) error

	// Converter returns the converter for the given value of this adapter's
	// type.
	Converter(v any) (Converter, error)
}

// Finder locates an Adapter for a handle, or nil when it has none. A Finder
// is the unit of registry composition: an Adapter, a Registry, or any host
// lookup structure can serve as one.
type Finder interface {
	Find(h Handle) Adapter
}

// Registry is an ordered composition of Finders. Later registrations take
// precedence, so a host can shadow a built-in adapter by registering its
// own for the same handle type.
type Registry struct {
	finders []Finder
}

// NewRegistry creates a registry over the given finders, in precedence
// order: the first argument is consulted last.
func NewRegistry(finders ...Finder) *Registry {
	r := &Registry{}
	for _, f := range finders {
		r.Register(f)
	}
	return r
}

// Register adds a finder with precedence over everything registered so far.
func (r *Registry) Register(f Finder) {
	r.finders = append([]Finder{f}, r.finders...)
}

// RegisterAdapter adds a single adapter with precedence over everything
// registered so far.
func (r *Registry) RegisterAdapter(a Adapter) {
	r.Register(adapterFinder{a})
}

// Find returns the first matching adapter, or nil if no finder matches.
func (r *Registry) Find(h Handle) Adapter {
	for _, f := range r.finders {
		if a := f.Find(h); a != nil {
			return a
		}
	}
	return nil
}

var _ Finder = (*Registry)(nil)

// adapterFinder lifts a single Adapter into a Finder.
type adapterFinder struct {
	a Adapter
}

func (f adapterFinder) Find(h Handle) Adapter {
	if f.a.Match(h) {
		return f.a
	}
	return nil
}

// cellAdapter adapts MemStore cells of one element type.
type cellAdapter[T any] struct {
	conv Converter
}

// CellAdapter creates an Adapter for *Cell[T] handles using the given
// converter. Use it to animate cell types beyond the built-ins:
//
//	engine.RegisterAdapter(glide.CellAdapter[MyVec](myVecConverter))
func CellAdapter[T any](conv Converter) Adapter {
	return cellAdapter[T]{conv: conv}
}

func (a cellAdapter[T]) Match(h Handle) bool {
	_, ok := h.(*Cell[T])
	return ok
}

func (a cellAdapter[T]) Read(h Handle) (any, error) {
	c, ok := h.(*Cell[T])
	if !ok {
		return nil, &UnsupportedValueTypeError{Handle: h}
	}
	return c.Get(), nil
}

func (a cellAdapter[T]) Write(h Handle, v any) error {
	c, ok := h.(*Cell[T])
	if !ok {
		return &UnsupportedValueTypeError{Handle: h}
	}
	t, ok := v.(T)
	if !ok {
		return &ConverterMismatchError{Value: v, Want: "cell element type"}
	}
	c.Set(t)
	return nil
}

func (a cellAdapter[T]) Converter(_ any) (Converter, error) {
	return a.conv, nil
}

// DefaultRegistry returns a registry covering the built-in cell types:
// float64, int, and colorful.Color.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterAdapter(CellAdapter[float64](Float64Converter{}))
	r.RegisterAdapter(CellAdapter[int](IntConverter{}))
	r.RegisterAdapter(CellAdapter[colorful.Color](ColorConverter{}))
	return r
}
