package playfeed

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinal     = "FINAL"
)

// RawPlay is one scoring record as delivered by the play-by-play feed.
type RawPlay struct {
	GameID         string
	PlaySequence   *int
	Season         int
	PossessionTeam string
	DefenseTeam    string
	HomeTeam       string
	AwayTeam       string
	// TouchdownTeam is the feed's own scoring-team column, empty when absent.
	TouchdownTeam string
	// IsReturn marks interception, fumble and kick return scores.
	IsReturn   bool
	ScorerName string
}

// ScoringEvent is a normalized touchdown play.
type ScoringEvent struct {
	GameID       string
	PlaySequence int
	ScoringTeam  string
	ScorerName   string
	Season       int
}

// GameSnapshot is the complete current feed view of one game.
type GameSnapshot struct {
	GameID     string
	Season     int
	Week       int
	Status     string
	Plays      []RawPlay
	ReceivedAt time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinalStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinal, "F", "FINAL_OVERTIME", "FINAL_OT", "POST", "CLOSED":
		return true
	default:
		return false
	}
}

// NormalizeTeam canonicalizes a team abbreviation.
func NormalizeTeam(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// NormalizeScorerName trims and collapses inner whitespace.
func NormalizeScorerName(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
