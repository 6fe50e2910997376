package playbyplay

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// gamePayload is one game block of the play-by-play feed.
type gamePayload struct {
	GameID     string        `json:"game_id" validate:"required"`
	Season     int           `json:"season" validate:"required,gte=1"`
	Week       int           `json:"week" validate:"gte=0"`
	GameStatus string        `json:"game_status"`
	HomeTeam   string        `json:"home_team"`
	AwayTeam   string        `json:"away_team"`
	Plays      []playPayload `json:"plays" validate:"dive"`
}

type playPayload struct {
	GameID          string `json:"game_id"`
	PlayID          *int   `json:"play_id"`
	Season          int    `json:"season"`
	PossessionTeam  string `json:"posteam"`
	DefenseTeam     string `json:"defteam"`
	HomeTeam        string `json:"home_team"`
	AwayTeam        string `json:"away_team"`
	TouchdownTeam   string `json:"td_team"`
	ScorerName      string `json:"td_player_name"`
	Touchdown       flag   `json:"touchdown"`
	ReturnTouchdown flag   `json:"return_touchdown"`
	Interception    flag   `json:"interception"`
	FumbleLost      flag   `json:"fumble_lost"`
}

type envelope struct {
	Games []gamePayload `json:"games" validate:"dive"`
}

// flag accepts the feed's boolean columns as true/false, 0/1 or their
// string forms. null reads as false.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(text) {
	case "", "null", "na":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %q", text)
	}
	*f = value != 0
	return nil
}
