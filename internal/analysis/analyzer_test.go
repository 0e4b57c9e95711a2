package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/kingrea/proflow/internal/track"
)

func TestCompactDropsInactiveTeams(t *testing.T) {
	f := track.NewFeature("Wallet", "Payments", "", "A1")
	f.TeamStatuses[track.TeamProduct] = track.StatusCompleted
	f.TeamStatuses[track.TeamQA] = track.StatusBlocked
	f.BlockageReasons[track.TeamQA] = "flaky env"
	f.EstimatedDays[track.TeamQA] = "4"
	f.CompletionDays[track.TeamProduct] = "9"

	compacted := Compact([]track.Feature{*f})
	if len(compacted) != 1 {
		t.Fatalf("expected 1 compacted feature, got %d", len(compacted))
	}
	cf := compacted[0]
	if cf.Name != "Wallet" || cf.Project != "Payments" || cf.Prio != "A1" {
		t.Fatalf("header fields wrong: %+v", cf)
	}
	if len(cf.Teams) != 2 {
		t.Fatalf("expected 2 active teams on the wire, got %d", len(cf.Teams))
	}
	for _, entry := range cf.Teams {
		if entry.Status == track.StatusNone.String() {
			t.Fatalf("NONE entries must not be transmitted")
		}
		if entry.Team == track.TeamQA.Label() && entry.Reason != "flaky env" {
			t.Fatalf("blockage reason must ride along, got %q", entry.Reason)
		}
	}
}

func TestCompactDoesNotMutateInput(t *testing.T) {
	f := track.NewFeature("Wallet", "Payments", "", "A1")
	f.TeamStatuses[track.TeamProduct] = track.StatusWaiting
	records := []track.Feature{*f}
	Compact(records)
	if records[0].Status(track.TeamProduct) != track.StatusWaiting {
		t.Fatalf("compaction must not mutate its input")
	}
}

func TestAnalyzeWithoutKeyReturnsFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	a, err := New("", "", nil)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}
	got := a.Analyze(context.Background(), nil)
	if got != MsgNotConfigured {
		t.Fatalf("expected not-configured message, got %q", got)
	}
}

func TestRenderPromptEmbedsCompactPayload(t *testing.T) {
	a, err := New("test-key", "", nil)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}
	f := track.NewFeature("Wallet", "Payments", "", "A1")
	f.TeamStatuses[track.TeamProduct] = track.StatusBlocked
	f.BlockageReasons[track.TeamProduct] = "legal review"

	prompt, err := a.renderPrompt([]track.Feature{*f})
	if err != nil {
		t.Fatalf("render prompt: %v", err)
	}
	for _, want := range []string{"Wallet", "Payments", "BLOCKED", "legal review"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "NONE") {
		t.Fatalf("prompt must not carry NONE entries")
	}
}
