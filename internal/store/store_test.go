package store

import (
	"fmt"
	"testing"

	"github.com/kingrea/proflow/internal/track"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestCreateInsertsNewestFirst(t *testing.T) {
	s := New(WithIDFunc(seqIDs()))
	s.Create(track.NewFeature("first", "Core", "", "A1"))
	s.Create(track.NewFeature("second", "Core", "", "A2"))

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].Name != "second" || all[1].Name != "first" {
		t.Fatalf("expected newest first, got %s then %s", all[0].Name, all[1].Name)
	}
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	s := New()
	a := s.Create(track.NewFeature("same", "Core", "", "A1"))
	b := s.Create(track.NewFeature("same", "Core", "", "A1"))
	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected ids to be assigned")
	}
	if a.ID == b.ID {
		t.Fatalf("identical drafts must still get distinct ids")
	}
	if s.Len() != 2 {
		t.Fatalf("expected both records stored, got %d", s.Len())
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := New(WithIDFunc(seqIDs()))
	created := s.Create(track.NewFeature("Login", "Core", "", "A1"))

	got, ok := s.Get(created.ID)
	if !ok {
		t.Fatalf("expected record to be found")
	}
	got.TeamStatuses[track.TeamProduct] = track.StatusCompleted

	again, _ := s.Get(created.ID)
	if again.Status(track.TeamProduct) != track.StatusNone {
		t.Fatalf("mutating a snapshot must not reach the store")
	}
}

func TestApplyUpdateKeepsPosition(t *testing.T) {
	s := New(WithIDFunc(seqIDs()))
	s.Create(track.NewFeature("older", "Core", "", "B1"))
	target := s.Create(track.NewFeature("newer", "Core", "", "B2"))

	updated, _ := s.Get(target.ID)
	updated.Name = "renamed"
	s.ApplyUpdate(target.ID, updated)

	all := s.All()
	if all[0].Name != "renamed" {
		t.Fatalf("expected update in place at position 0, got %s", all[0].Name)
	}
	if all[0].ID != target.ID {
		t.Fatalf("update must not change the id")
	}
}

func TestApplyUpdateUnknownIDIsNoop(t *testing.T) {
	s := New(WithIDFunc(seqIDs()))
	s.Create(track.NewFeature("only", "Core", "", "C1"))

	s.ApplyUpdate("missing", *track.NewFeature("ghost", "Core", "", "C9"))

	if s.Len() != 1 {
		t.Fatalf("no-op update must not add records, got %d", s.Len())
	}
	if s.All()[0].Name != "only" {
		t.Fatalf("no-op update must not touch existing records")
	}
}

func TestSubscribersSeeUpdates(t *testing.T) {
	s := New(WithIDFunc(seqIDs()))
	var seen []string
	s.Subscribe(func(f track.Feature) { seen = append(seen, f.Name) })

	created := s.Create(track.NewFeature("watched", "Core", "", "A1"))
	updated, _ := s.Get(created.ID)
	updated.Name = "watched-2"
	s.ApplyUpdate(created.ID, updated)

	if len(seen) != 2 || seen[0] != "watched" || seen[1] != "watched-2" {
		t.Fatalf("expected create+update notifications, got %v", seen)
	}
}
