package track

import "testing"

func TestTeamsOrderIsStable(t *testing.T) {
	teams := Teams()
	if len(teams) != TeamCount {
		t.Fatalf("expected %d teams, got %d", TeamCount, len(teams))
	}
	if teams[0] != TeamProduct {
		t.Fatalf("expected Product first, got %s", teams[0])
	}
	if teams[len(teams)-1] != TeamRelease {
		t.Fatalf("expected Release last, got %s", teams[len(teams)-1])
	}
}

func TestNewFeatureCoversEveryTeam(t *testing.T) {
	f := NewFeature("Login", "Core", "desc", "A1")
	if len(f.TeamStatuses) != TeamCount {
		t.Fatalf("expected an entry per team, got %d", len(f.TeamStatuses))
	}
	for _, team := range Teams() {
		if f.Status(team) != StatusNone {
			t.Fatalf("team %s should start NONE, got %s", team, f.Status(team))
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	f := NewFeature("Login", "Core", "desc", "A1")
	f.TeamStatuses[TeamProduct] = StatusWaiting
	f.BlockageReasons[TeamQA] = "flaky env"

	c := f.Clone()
	c.TeamStatuses[TeamProduct] = StatusCompleted
	c.BlockageReasons[TeamQA] = "changed"

	if f.Status(TeamProduct) != StatusWaiting {
		t.Fatalf("clone mutated original statuses")
	}
	if f.BlockageReasons[TeamQA] != "flaky env" {
		t.Fatalf("clone mutated original reasons")
	}
}

func TestActiveStatusesExcludeNone(t *testing.T) {
	for _, s := range ActiveStatuses() {
		if s == StatusNone {
			t.Fatalf("quick statuses must not include NONE")
		}
	}
	if got := len(ActiveStatuses()); got != 4 {
		t.Fatalf("expected 4 quick statuses, got %d", got)
	}
}

func TestPriorityHelpers(t *testing.T) {
	if got := FormatPriority("a", 3); got != "A3" {
		t.Fatalf("expected A3, got %s", got)
	}
	f := &Feature{Priority: "b2"}
	if got := f.PrioritySeverity(); got != "B" {
		t.Fatalf("expected severity B, got %s", got)
	}
	if got := (&Feature{}).PrioritySeverity(); got != "" {
		t.Fatalf("expected empty severity for blank priority, got %q", got)
	}
}
