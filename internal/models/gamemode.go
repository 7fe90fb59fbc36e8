package models

import (
	"errors"
	"fmt"
)

// Mode identifies one of the game's ranked variants. The set is closed:
// adding a mode is a code change, never a data migration.
type Mode string

const (
	ModeSpeedSort         Mode = "SpeedSort"
	ModeBenchSort         Mode = "BenchSort"
	ModeDraftSort         Mode = "DraftSort"
	ModeSchoolMatch       Mode = "SchoolMatch"
	ModeQuickRound        Mode = "QuickRound"
	ModeEndless           Mode = "Endless"
	ModePositionChallenge Mode = "PositionChallenge"

	// ModeAll is the cross-mode aggregate board. It accepts queries only;
	// submissions always target a concrete mode.
	ModeAll Mode = "all"
)

// ErrUnknownMode is returned when a raw mode string is not part of the
// closed enumeration.
var ErrUnknownMode = errors.New("unknown game mode")

var submitModes = []Mode{
	ModeSpeedSort,
	ModeBenchSort,
	ModeDraftSort,
	ModeSchoolMatch,
	ModeQuickRound,
	ModeEndless,
	ModePositionChallenge,
}

// SubmitModes returns the modes that accept score submissions, in display
// order. Callers get a copy and may not mutate the registry.
func SubmitModes() []Mode {
	out := make([]Mode, len(submitModes))
	copy(out, submitModes)
	return out
}

// ParseMode maps a raw string onto the closed mode set. Matching is
// case-sensitive.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if m == ModeAll {
		return ModeAll, nil
	}
	for _, known := range submitModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// IsQueryable reports whether a leaderboard query may target the mode.
// Every registered mode is queryable, as is the aggregate.
func (m Mode) IsQueryable() bool {
	if m == ModeAll {
		return true
	}
	return m.IsSubmittable()
}

// IsSubmittable reports whether scores may be submitted to the mode.
// The aggregate is maintained by the coordinator, never written directly.
func (m Mode) IsSubmittable() bool {
	for _, known := range submitModes {
		if m == known {
			return true
		}
	}
	return false
}
