package postgres

import (
	"database/sql"
	"time"
)

type predictionTableModel struct {
	PublicID            string        `db:"public_id"`
	UserID              string        `db:"user_id"`
	GameID              string        `db:"game_id"`
	Season              int           `db:"season"`
	Team                string        `db:"team"`
	PredictedPlayerName string        `db:"predicted_player_name"`
	PayoutOdds          sql.NullInt64 `db:"payout_odds"`
	UpdatedAt           time.Time     `db:"updated_at"`
}

type settlementRecordTableModel struct {
	PredictionID            string         `db:"prediction_public_id"`
	UserID                  string         `db:"user_id"`
	GameID                  string         `db:"game_id"`
	Season                  int            `db:"season"`
	Week                    int            `db:"week"`
	IsFirstScorerCorrect    bool           `db:"is_first_scorer_correct"`
	IsAnyTimeScorerHit      bool           `db:"is_any_time_scorer_hit"`
	MatchedActualScorerName sql.NullString `db:"matched_actual_scorer_name"`
	FactsFingerprint        string         `db:"facts_fingerprint"`
	SettledAt               time.Time      `db:"settled_at"`
}
