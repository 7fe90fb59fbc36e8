package store

import (
	"sort"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// SortEntries orders entries in place by score descending, then submission
// time ascending (earlier wins ties), then ID for a stable total order.
func SortEntries(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Before(entries[j])
		}
		return entries[i].ID < entries[j].ID
	})
}

// Retain returns the subset kept after capacity eviction: the top maxSize
// entries in ranked order. Ties at the eviction boundary are broken by
// submission time, earlier kept. The input slice is not modified.
func Retain(entries []models.Entry, maxSize int) []models.Entry {
	if maxSize < 0 {
		maxSize = 0
	}
	kept := make([]models.Entry, len(entries))
	copy(kept, entries)
	SortEntries(kept)
	if len(kept) > maxSize {
		kept = kept[:maxSize]
	}
	return kept
}
