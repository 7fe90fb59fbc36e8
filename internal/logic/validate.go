package logic

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// MaxPlayerNameLen bounds the trimmed player name, in characters.
const MaxPlayerNameLen = 20

// Validated is a sanitized submission, safe to persist.
type Validated struct {
	PlayerName string
	GameMode   models.Mode
	Score      int64
}

// Validate sanitizes a raw submission or rejects it with a
// ValidationError. Pure function, no side effects: the name is trimmed and
// bounds-checked, the score clamped to a non-negative integer, and the
// mode resolved against the closed registry. The aggregate pseudo-mode is
// rejected here; it is query-only.
func Validate(req models.SubmitRequest) (Validated, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		return Validated{}, models.NewValidationError("invalid playerName: empty or whitespace")
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLen {
		return Validated{}, models.NewValidationError("invalid playerName: longer than %d characters", MaxPlayerNameLen)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return Validated{}, models.NewValidationError("invalid playerName: non-printable character")
		}
	}

	if math.IsNaN(req.Score) || math.IsInf(req.Score, 0) {
		return Validated{}, models.NewValidationError("invalid score: must be finite")
	}
	score := int64(math.Round(req.Score))
	if score < 0 {
		score = 0
	}

	mode, err := models.ParseMode(req.GameMode)
	if err != nil || !mode.IsSubmittable() {
		return Validated{}, models.NewValidationError("invalid gameMode: %q", req.GameMode)
	}

	return Validated{PlayerName: name, GameMode: mode, Score: score}, nil
}
