package glide

// PresetState represents the current state of a Presets watcher.
type PresetState int32

const (
	// PresetLoading indicates the Presets is initializing and has not yet
	// processed a document.
	PresetLoading PresetState = iota

	// PresetHealthy indicates a valid preset set is applied.
	PresetHealthy

	// PresetDegraded indicates the last document failed validation or
	// application. The previous valid set remains active.
	PresetDegraded

	// PresetEmpty indicates the initial document failed and no valid set
	// has ever been obtained. The Presets continues watching for valid
	// updates.
	PresetEmpty
)

// String returns the string representation of the state.
func (s PresetState) String() string {
	switch s {
	case PresetLoading:
		return "loading"
	case PresetHealthy:
		return "healthy"
	case PresetDegraded:
		return "degraded"
	case PresetEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
