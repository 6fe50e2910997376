package postgres

import (
	"database/sql"
	"time"
)

type touchdownFactsTableModel struct {
	GameID      string    `db:"game_id"`
	Season      int       `db:"season"`
	Week        int       `db:"week"`
	Final       bool      `db:"final"`
	Fingerprint string    `db:"fingerprint"`
	DerivedAt   time.Time `db:"derived_at"`
}

type touchdownScorerTableModel struct {
	GameID       string `db:"game_id"`
	ScorerName   string `db:"scorer_name"`
	Team         string `db:"team"`
	IsFirst      bool   `db:"is_first"`
	PlaySequence int    `db:"play_sequence"`
}

type reviewFlagTableModel struct {
	GameID       string        `db:"game_id"`
	Reason       string        `db:"reason"`
	Detail       string        `db:"detail"`
	PlaySequence sql.NullInt64 `db:"play_sequence"`
	FlaggedAt    time.Time     `db:"flagged_at"`
}
