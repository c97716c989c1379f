package domain

import "testing"

func TestIsStatusTransitionAllowed(t *testing.T) {
	statuses := []Status{StatusActive, StatusCompleted, StatusFailed, StatusCancelled}

	for _, from := range statuses {
		for _, to := range statuses {
			allowed := IsStatusTransitionAllowed(from, to)
			wantAllowed := from == StatusActive && to != StatusActive
			if allowed != wantAllowed {
				t.Fatalf("transition %q -> %q: expected %v, got %v", from, to, wantAllowed, allowed)
			}
		}
	}

	if IsStatusTransitionAllowed(StatusUnspecified, StatusActive) {
		t.Fatal("expected no transitions out of unspecified status")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusActive, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
		{StatusUnspecified, false},
	}

	for _, tc := range tests {
		if got := tc.status.IsTerminal(); got != tc.terminal {
			t.Fatalf("status %q: expected terminal=%v, got %v", tc.status, tc.terminal, got)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		value string
		want  Status
		ok    bool
	}{
		{"active", StatusActive, true},
		{"  Completed ", StatusCompleted, true},
		{"FAILED", StatusFailed, true},
		{"cancelled", StatusCancelled, true},
		{"", StatusUnspecified, false},
		{"archived", StatusUnspecified, false},
	}

	for _, tc := range tests {
		got, ok := ParseStatus(tc.value)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parse %q: expected (%q, %v), got (%q, %v)", tc.value, tc.want, tc.ok, got, ok)
		}
	}
}
