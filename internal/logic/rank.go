package logic

import "github.com/sortrush/leaderboard-api/internal/models"

// Rank returns e's 1-based rank within snapshot: one plus the number of
// entries with a strictly greater score, plus the number of equal-score
// entries submitted earlier. Evaluated against the snapshot taken right
// after e's own write, so the returned rank reflects at least e itself and
// everything committed before it; later concurrent commits may shift the
// rank shown by subsequent queries, which is expected.
func Rank(e models.Entry, snapshot []models.Entry) int {
	rank := 1
	for _, other := range snapshot {
		if other.ID == e.ID {
			continue
		}
		if other.Score > e.Score {
			rank++
		} else if other.Score == e.Score && other.Before(e) {
			rank++
		}
	}
	return rank
}
