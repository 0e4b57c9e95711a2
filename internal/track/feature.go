// internal/track/feature.go
//
// Feature is the central record of the board: one unit of work inside a
// project, tracked independently per team. The annotation maps are sparse;
// their presence rules are enforced by the engine package, not here.

package track

import (
	"fmt"
	"strings"
)

// Feature is one trackable unit of work.
type Feature struct {
	ID          string
	Name        string
	ProjectName string
	Description string

	// Priority is a severity letter (A/B/C) followed by a rank, e.g. "A1".
	// Used for display emphasis only; uniqueness is not enforced.
	Priority string

	// TeamStatuses always holds an entry for every team. Entries are
	// overwritten, never removed.
	TeamStatuses map[Team]Status

	// BlockageReasons has an entry for a team exactly while that team's
	// status is BLOCKED. CompletionDays likewise tracks COMPLETED.
	// EstimatedDays is sticky: it is set and cleared only by explicit
	// edits, never by a status change.
	BlockageReasons map[Team]string
	CompletionDays  map[Team]string
	EstimatedDays   map[Team]string
}

// NewFeature builds a feature with every team present in TeamStatuses and
// empty annotation maps. The id is assigned by the store.
func NewFeature(name, projectName, description, priority string) *Feature {
	statuses := make(map[Team]Status, TeamCount)
	for _, team := range Teams() {
		statuses[team] = StatusNone
	}
	return &Feature{
		Name:            name,
		ProjectName:     projectName,
		Description:     description,
		Priority:        priority,
		TeamStatuses:    statuses,
		BlockageReasons: map[Team]string{},
		CompletionDays:  map[Team]string{},
		EstimatedDays:   map[Team]string{},
	}
}

// Clone returns a deep copy. The store hands out clones so that no caller
// ever holds a live reference into stored state.
func (f *Feature) Clone() *Feature {
	if f == nil {
		return nil
	}
	c := *f
	c.TeamStatuses = make(map[Team]Status, len(f.TeamStatuses))
	for team, status := range f.TeamStatuses {
		c.TeamStatuses[team] = status
	}
	c.BlockageReasons = cloneAnnotations(f.BlockageReasons)
	c.CompletionDays = cloneAnnotations(f.CompletionDays)
	c.EstimatedDays = cloneAnnotations(f.EstimatedDays)
	return &c
}

func cloneAnnotations(src map[Team]string) map[Team]string {
	dst := make(map[Team]string, len(src))
	for team, value := range src {
		dst[team] = value
	}
	return dst
}

// Status returns the recorded status for a team, NONE when the entry is
// missing (which only happens for records built outside NewFeature).
func (f *Feature) Status(team Team) Status {
	return f.TeamStatuses[team]
}

// PrioritySeverity returns the leading severity letter of the priority
// code, upper-cased, or an empty string when the code is blank.
func (f *Feature) PrioritySeverity() string {
	code := strings.TrimSpace(f.Priority)
	if code == "" {
		return ""
	}
	return strings.ToUpper(code[:1])
}

// FormatPriority joins a severity letter and a rank into the display code.
func FormatPriority(letter string, rank int) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(strings.TrimSpace(letter)), rank)
}
