// internal/views/views.go
//
// Derived read models for the board: filtering, progress percentages and
// status tallies. Everything here is a pure function of snapshots plus
// caller parameters; nothing mutates.

package views

import (
	"math"
	"sort"
	"strings"

	"github.com/kingrea/proflow/internal/track"
)

// TeamFilter selects either every team or one specific team.
type TeamFilter struct {
	team track.Team
	all  bool
}

// AllTeams matches every team.
func AllTeams() TeamFilter {
	return TeamFilter{all: true}
}

// OnlyTeam matches a single team.
func OnlyTeam(team track.Team) TeamFilter {
	return TeamFilter{team: team}
}

// IsAll reports whether the filter matches every team.
func (f TeamFilter) IsAll() bool {
	return f.all
}

// Team returns the selected team; meaningless when IsAll.
func (f TeamFilter) Team() track.Team {
	return f.team
}

// Filter keeps records whose name or project contains the search term
// case-insensitively (an empty term matches all). When a specific team is
// selected it also drops records whose status for that team is NONE.
// Order is preserved.
func Filter(records []track.Feature, searchTerm string, teamFilter TeamFilter) []track.Feature {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]track.Feature, 0, len(records))
	for _, f := range records {
		if term != "" &&
			!strings.Contains(strings.ToLower(f.Name), term) &&
			!strings.Contains(strings.ToLower(f.ProjectName), term) {
			continue
		}
		if !teamFilter.IsAll() && f.Status(teamFilter.Team()) == track.StatusNone {
			continue
		}
		out = append(out, f)
	}
	return out
}

// OverallProgress is the percentage of a feature's active teams that are
// COMPLETED, rounded half-up. A feature with no active teams is 0.
func OverallProgress(f track.Feature) int {
	relevant, done := 0, 0
	for _, status := range f.TeamStatuses {
		if status == track.StatusNone {
			continue
		}
		relevant++
		if status == track.StatusCompleted {
			done++
		}
	}
	if relevant == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(relevant)))
}

// Distribution tallies every non-NONE (feature, team) pair into four
// buckets. The sum of the buckets equals Total.
type Distribution struct {
	Completed  int
	InProgress int
	Waiting    int
	Blocked    int
}

// Total is the number of pairs counted.
func (d Distribution) Total() int {
	return d.Completed + d.InProgress + d.Waiting + d.Blocked
}

// StatusDistribution tallies statuses across all records in a single pass,
// optionally restricted to one team.
func StatusDistribution(records []track.Feature, teamFilter TeamFilter) Distribution {
	var d Distribution
	for _, f := range records {
		for _, team := range track.Teams() {
			if !teamFilter.IsAll() && team != teamFilter.Team() {
				continue
			}
			switch f.Status(team) {
			case track.StatusCompleted:
				d.Completed++
			case track.StatusInProgress:
				d.InProgress++
			case track.StatusWaiting:
				d.Waiting++
			case track.StatusBlocked:
				d.Blocked++
			}
		}
	}
	return d
}

// DistinctProjectNames returns the unique project names across all records,
// case-sensitively deduplicated and alphabetically sorted.
func DistinctProjectNames(records []track.Feature) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, f := range records {
		if _, ok := seen[f.ProjectName]; ok {
			continue
		}
		seen[f.ProjectName] = struct{}{}
		names = append(names, f.ProjectName)
	}
	sort.Strings(names)
	return names
}
