package glide

import "testing"

func TestHandleState_String(t *testing.T) {
	tests := []struct {
		state HandleState
		want  string
	}{
		{StateUntracked, "untracked"},
		{StatePending, "pending"},
		{StateStepping, "stepping"},
		{StateFinished, "finished"},
		{StateSuperseded, "superseded"},
		{StateDesynced, "desynced"},
		{StateCanceled, "canceled"},
		{HandleState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("HandleState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestPresetState_String(t *testing.T) {
	tests := []struct {
		state PresetState
		want  string
	}{
		{PresetLoading, "loading"},
		{PresetHealthy, "healthy"},
		{PresetDegraded, "degraded"},
		{PresetEmpty, "empty"},
		{PresetState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("PresetState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
