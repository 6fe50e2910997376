package postgres

import (
	"time"

	"github.com/riskibarqy/fast6/internal/domain/playfeed"
)

type feedSnapshotTableModel struct {
	GameID     string    `db:"game_id"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	Status     string    `db:"status"`
	Plays      []byte    `db:"plays"`
	ReceivedAt time.Time `db:"received_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type feedSnapshotInsertModel struct {
	GameID     string    `db:"game_id"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	Status     string    `db:"status"`
	Plays      string    `db:"plays"`
	ReceivedAt time.Time `db:"received_at"`
}

// rawPlayDocument is the jsonb shape of one stored raw play.
type rawPlayDocument struct {
	GameID         string `json:"game_id"`
	PlaySequence   *int   `json:"play_sequence"`
	Season         int    `json:"season"`
	PossessionTeam string `json:"posteam,omitempty"`
	DefenseTeam    string `json:"defteam,omitempty"`
	HomeTeam       string `json:"home_team,omitempty"`
	AwayTeam       string `json:"away_team,omitempty"`
	TouchdownTeam  string `json:"td_team,omitempty"`
	IsReturn       bool   `json:"is_return"`
	ScorerName     string `json:"td_player_name"`
}

func rawPlayDocuments(plays []playfeed.RawPlay) []rawPlayDocument {
	out := make([]rawPlayDocument, 0, len(plays))
	for _, play := range plays {
		out = append(out, rawPlayDocument{
			GameID:         play.GameID,
			PlaySequence:   play.PlaySequence,
			Season:         play.Season,
			PossessionTeam: play.PossessionTeam,
			DefenseTeam:    play.DefenseTeam,
			HomeTeam:       play.HomeTeam,
			AwayTeam:       play.AwayTeam,
			TouchdownTeam:  play.TouchdownTeam,
			IsReturn:       play.IsReturn,
			ScorerName:     play.ScorerName,
		})
	}
	return out
}

func rawPlaysFromDocuments(docs []rawPlayDocument) []playfeed.RawPlay {
	out := make([]playfeed.RawPlay, 0, len(docs))
	for _, doc := range docs {
		out = append(out, playfeed.RawPlay{
			GameID:         doc.GameID,
			PlaySequence:   doc.PlaySequence,
			Season:         doc.Season,
			PossessionTeam: doc.PossessionTeam,
			DefenseTeam:    doc.DefenseTeam,
			HomeTeam:       doc.HomeTeam,
			AwayTeam:       doc.AwayTeam,
			TouchdownTeam:  doc.TouchdownTeam,
			IsReturn:       doc.IsReturn,
			ScorerName:     doc.ScorerName,
		})
	}
	return out
}

type scoringEventTableModel struct {
	GameID       string `db:"game_id"`
	PlaySequence int    `db:"play_sequence"`
	ScoringTeam  string `db:"scoring_team"`
	ScorerName   string `db:"scorer_name"`
	Season       int    `db:"season"`
}
