package store

import (
	"testing"
	"time"

	"github.com/sortrush/leaderboard-api/internal/models"
)

func entryAt(id string, score int64, ts time.Time) models.Entry {
	return models.Entry{
		ID:         id,
		PlayerName: "player-" + id,
		GameMode:   models.ModeSpeedSort,
		Score:      score,
		Date:       ts,
	}
}

func TestRetain_SortsByScoreThenTime(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryAt("a", 100, base.Add(2*time.Second)),
		entryAt("b", 150, base),
		entryAt("c", 100, base.Add(time.Second)),
	}

	kept := Retain(entries, 50)

	wantOrder := []string{"b", "c", "a"}
	if len(kept) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(kept))
	}
	for i, id := range wantOrder {
		if kept[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, kept[i].ID)
		}
	}
}

func TestRetain_CapsAtMaxSize(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryAt("a", 30, base),
		entryAt("b", 20, base.Add(time.Second)),
		entryAt("c", 10, base.Add(2*time.Second)),
	}

	kept := Retain(entries, 2)

	if len(kept) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(kept))
	}
	if kept[0].ID != "a" || kept[1].ID != "b" {
		t.Errorf("expected [a b], got [%s %s]", kept[0].ID, kept[1].ID)
	}
}

func TestRetain_BoundaryTieKeepsEarlier(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryAt("top", 90, base),
		entryAt("late", 50, base.Add(time.Minute)),
		entryAt("early", 50, base.Add(time.Second)),
	}

	kept := Retain(entries, 2)

	if len(kept) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(kept))
	}
	if kept[1].ID != "early" {
		t.Errorf("expected earlier tie to survive eviction, kept %s", kept[1].ID)
	}
}

func TestRetain_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryAt("low", 1, base),
		entryAt("high", 2, base),
	}

	Retain(entries, 1)

	if entries[0].ID != "low" {
		t.Errorf("input slice reordered: got %s first", entries[0].ID)
	}
}
