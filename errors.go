package glide

import (
	"errors"
	"fmt"
)

// UnsupportedValueTypeError reports a handle written during a transition
// that no registered adapter recognizes. It fails the whole transition
// before any animation starts.
type UnsupportedValueTypeError struct {
	Handle Handle
}

func (e *UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("glide: no adapter for handle %p of type %T", e.Handle, e.Handle)
}

// ConverterMismatchError reports a value a converter cannot represent.
// Well-formed adapters never produce it.
type ConverterMismatchError struct {
	Value any
	Want  string
}

func (e *ConverterMismatchError) Error() string {
	return fmt.Sprintf("glide: converter expected %s, got %T", e.Want, e.Value)
}

// ErrSyncEngine is returned by Animate on an engine constructed with
// WithSyncMode: a sync engine has no frame loop, so callers drive frames
// with Step and wait on Run.Done themselves.
var ErrSyncEngine = errors.New("glide: engine is in sync mode, drive frames with Step")
