// internal/track/status.go
//
// The closed status vocabulary for a (feature, team) pair. Every other
// package speaks in these values; anything outside the set is a contract
// violation upstream.

package track

// Status is the state of one team's work on one feature.
type Status int

const (
	StatusNone Status = iota // team is not involved in this feature
	StatusWaiting
	StatusInProgress
	StatusCompleted
	StatusBlocked
)

// String returns the canonical identifier for the status.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "NONE"
	case StatusWaiting:
		return "WAITING"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	case StatusBlocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// Label returns a short name suitable for board cells and menus.
func (s Status) Label() string {
	switch s {
	case StatusNone:
		return "—"
	case StatusWaiting:
		return "Waiting"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	default:
		return s.String()
	}
}

// IsActive reports whether the team participates in the feature at all.
func (s Status) IsActive() bool {
	return s != StatusNone
}

// ActiveStatuses returns the four statuses a quick menu offers. NONE is
// excluded on purpose: dropping a team from a feature is a detail-view
// operation, not a quick action.
func ActiveStatuses() []Status {
	return []Status{StatusCompleted, StatusInProgress, StatusWaiting, StatusBlocked}
}
