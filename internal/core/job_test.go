package core

import "testing"

func TestJobStateTransitions(t *testing.T) {
	tests := []struct {
		name string
		from JobState
		to   JobState
		want bool
	}{
		{"waiting to active", JobStateWaiting, JobStateActive, true},
		{"active to completed", JobStateActive, JobStateCompleted, true},
		{"active to failed", JobStateActive, JobStateFailed, true},
		{"waiting to completed skips active", JobStateWaiting, JobStateCompleted, false},
		{"waiting to failed skips active", JobStateWaiting, JobStateFailed, false},
		{"active back to waiting", JobStateActive, JobStateWaiting, false},
		{"completed is terminal", JobStateCompleted, JobStateActive, false},
		{"failed is terminal", JobStateFailed, JobStateActive, false},
		{"failed to completed", JobStateFailed, JobStateCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestJobStateTerminal(t *testing.T) {
	if JobStateWaiting.Terminal() || JobStateActive.Terminal() {
		t.Error("waiting and active must not be terminal")
	}
	if !JobStateCompleted.Terminal() || !JobStateFailed.Terminal() {
		t.Error("completed and failed must be terminal")
	}
}
