package views

import (
	"reflect"
	"testing"

	"github.com/kingrea/proflow/internal/track"
)

func feature(name, project string, statuses map[track.Team]track.Status) track.Feature {
	f := track.NewFeature(name, project, "", "A1")
	for team, status := range statuses {
		f.TeamStatuses[team] = status
	}
	return *f
}

func TestFilterEmptyTermAllTeamsKeepsOrder(t *testing.T) {
	records := []track.Feature{
		feature("Wallet", "Payments", nil),
		feature("Dark Mode", "UX", nil),
		feature("Voice Search", "UX", nil),
	}
	got := Filter(records, "", AllTeams())
	if len(got) != len(records) {
		t.Fatalf("expected full collection, got %d of %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Name != records[i].Name {
			t.Fatalf("order not preserved at %d: %s", i, got[i].Name)
		}
	}
}

func TestFilterMatchesNameOrProjectCaseInsensitively(t *testing.T) {
	records := []track.Feature{
		feature("Wallet", "Payments", nil),
		feature("Dark Mode", "UX", nil),
	}
	if got := Filter(records, "wALLet", AllTeams()); len(got) != 1 || got[0].Name != "Wallet" {
		t.Fatalf("expected name match, got %v", got)
	}
	if got := Filter(records, "ux", AllTeams()); len(got) != 1 || got[0].Name != "Dark Mode" {
		t.Fatalf("expected project match, got %v", got)
	}
	if got := Filter(records, "nothing", AllTeams()); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestFilterByTeamRequiresEngagement(t *testing.T) {
	records := []track.Feature{
		feature("Wallet", "Payments", map[track.Team]track.Status{track.TeamQA: track.StatusWaiting}),
		feature("Dark Mode", "UX", nil),
	}
	got := Filter(records, "", OnlyTeam(track.TeamQA))
	if len(got) != 1 || got[0].Name != "Wallet" {
		t.Fatalf("expected only the QA-engaged feature, got %v", got)
	}

	// Both predicates are ANDed.
	if got := Filter(records, "dark", OnlyTeam(track.TeamQA)); len(got) != 0 {
		t.Fatalf("search match without team engagement must be excluded")
	}
}

func TestOverallProgressBounds(t *testing.T) {
	allNone := feature("idle", "P", nil)
	if got := OverallProgress(allNone); got != 0 {
		t.Fatalf("all-NONE feature must be 0%%, got %d", got)
	}

	allDone := feature("done", "P", map[track.Team]track.Status{
		track.TeamProduct: track.StatusCompleted,
		track.TeamDesign:  track.StatusCompleted,
	})
	if got := OverallProgress(allDone); got != 100 {
		t.Fatalf("every active team completed must be 100%%, got %d", got)
	}
}

func TestOverallProgressRounding(t *testing.T) {
	f := feature("login", "Core", map[track.Team]track.Status{
		track.TeamProduct:  track.StatusCompleted,
		track.TeamDesign:   track.StatusCompleted,
		track.TeamBackend1: track.StatusInProgress,
	})
	if got := OverallProgress(f); got != 67 {
		t.Fatalf("round(2/3*100) = %d, want 67", got)
	}
}

func TestStatusDistributionUnfiltered(t *testing.T) {
	records := []track.Feature{
		feature("one", "P", map[track.Team]track.Status{track.TeamProduct: track.StatusBlocked}),
		feature("two", "P", map[track.Team]track.Status{
			track.TeamProduct: track.StatusCompleted,
			track.TeamDesign:  track.StatusWaiting,
		}),
	}
	got := StatusDistribution(records, AllTeams())
	want := Distribution{Completed: 1, InProgress: 0, Waiting: 1, Blocked: 1}
	if got != want {
		t.Fatalf("distribution = %+v, want %+v", got, want)
	}
	if got.Total() != 3 {
		t.Fatalf("total = %d, want 3", got.Total())
	}
}

func TestStatusDistributionFilteredByTeam(t *testing.T) {
	records := []track.Feature{
		feature("one", "P", map[track.Team]track.Status{
			track.TeamProduct: track.StatusBlocked,
			track.TeamQA:      track.StatusInProgress,
		}),
		feature("two", "P", map[track.Team]track.Status{track.TeamQA: track.StatusCompleted}),
	}
	got := StatusDistribution(records, OnlyTeam(track.TeamQA))
	want := Distribution{Completed: 1, InProgress: 1}
	if got != want {
		t.Fatalf("distribution = %+v, want %+v", got, want)
	}
}

func TestDistinctProjectNames(t *testing.T) {
	records := []track.Feature{
		feature("a", "Payments", nil),
		feature("b", "UX", nil),
		feature("c", "Payments", nil),
		feature("d", "payments", nil), // case-sensitive: distinct
	}
	got := DistinctProjectNames(records)
	want := []string{"Payments", "UX", "payments"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("projects = %v, want %v", got, want)
	}
}
