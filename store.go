package glide

import "errors"

// Handle is an opaque reference to a mutable cell owned by the host. Handles
// are compared by identity, never by value: hosts must supply pointer-shaped
// values so two handles are equal exactly when they name the same cell.
type Handle = any

// Write is one staged cell update within a frame commit.
type Write struct {
	Handle  Handle
	Adapter Adapter
	Value   any
}

// ErrCommitConflict is returned by Store.Commit when the write target rejects
// the batch, typically because of concurrent external writes. The engine
// recovers by abandoning the affected animations; it is never surfaced to
// the caller of a transition.
var ErrCommitConflict = errors.New("glide: frame commit conflict")

// Store is the host's reactive state container. The engine owns no cell
// storage of its own; everything it learns or changes goes through here.
type Store interface {
	// Record executes block inside an isolated mutation scope. Every cell
	// written by block is recorded, and reads inside the scope observe the
	// scope's own writes, but nothing becomes visible outside it. The
	// returned map holds each written handle's value as it stood when the
	// scope closed. Record is the capture half of a transition: the block
	// declares the final state, and the engine realizes it gradually.
	Record(block func() error) (map[Handle]any, error)

	// Commit applies a frame's writes as one transaction: either every
	// write becomes visible together or none do. A rejected batch returns
	// ErrCommitConflict (possibly wrapped).
	Commit(writes []Write) error
}
