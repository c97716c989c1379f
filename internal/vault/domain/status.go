package domain

import "strings"

// Status describes the vault lifecycle label used by domain decisions.
type Status string

const (
	StatusUnspecified Status = ""
	StatusActive      Status = "active"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusCancelled   Status = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
// Every status except Active is terminal.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	case StatusActive, StatusUnspecified:
		return false
	default:
		return false
	}
}

// ParseStatus canonicalizes persisted status labels.
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return StatusActive, true
	case "completed":
		return StatusCompleted, true
	case "failed":
		return StatusFailed, true
	case "cancelled":
		return StatusCancelled, true
	default:
		return StatusUnspecified, false
	}
}

// isStatusTransitionAllowed enforces the vault lifecycle: Active is the only
// state with outbound edges, and every outcome is terminal.
func isStatusTransitionAllowed(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusCompleted || to == StatusFailed || to == StatusCancelled
	case StatusCompleted, StatusFailed, StatusCancelled, StatusUnspecified:
		return false
	default:
		return false
	}
}

// IsStatusTransitionAllowed reports whether a status transition is permitted.
func IsStatusTransitionAllowed(from, to Status) bool {
	return isStatusTransitionAllowed(from, to)
}
