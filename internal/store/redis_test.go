package store

import (
	"testing"
	"time"

	"github.com/sortrush/leaderboard-api/internal/models"
)

func TestZMemberRoundTrip(t *testing.T) {
	e := models.Entry{
		ID:   "b7f9c2a1-0000-4000-8000-000000000001",
		Date: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	member := zMember(e)
	if got := memberID(member); got != e.ID {
		t.Errorf("expected id %q back, got %q", e.ID, got)
	}
}

func TestZMemberOrdersEarlierFirstOnTies(t *testing.T) {
	// ZREVRANGE returns equal-score members in reverse lexicographic
	// order, so the earlier submission must encode to the LARGER member.
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := zMember(models.Entry{ID: "e1", Date: base})
	later := zMember(models.Entry{ID: "e2", Date: base.Add(time.Second)})

	if !(earlier > later) {
		t.Errorf("expected earlier member %q to sort after later %q", earlier, later)
	}
}

func TestMemberID_MalformedMember(t *testing.T) {
	for _, raw := range []string{"", "short", "0123456789abcdef:"} {
		if got := memberID(raw); got != "" {
			t.Errorf("memberID(%q) = %q, expected empty", raw, got)
		}
	}
}
