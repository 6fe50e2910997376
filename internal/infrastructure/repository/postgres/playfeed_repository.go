package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fast6/internal/domain/playfeed"
	qb "github.com/riskibarqy/fast6/internal/platform/querybuilder"
)

type PlayFeedRepository struct {
	db *sqlx.DB
}

func NewPlayFeedRepository(db *sqlx.DB) *PlayFeedRepository {
	return &PlayFeedRepository{db: db}
}

func (r *PlayFeedRepository) SaveSnapshot(ctx context.Context, snapshot playfeed.GameSnapshot) error {
	plays, err := sonic.MarshalString(rawPlayDocuments(snapshot.Plays))
	if err != nil {
		return fmt.Errorf("marshal snapshot plays game=%s: %w", snapshot.GameID, err)
	}

	insertModel := feedSnapshotInsertModel{
		GameID:     snapshot.GameID,
		Season:     snapshot.Season,
		Week:       snapshot.Week,
		Status:     snapshot.Status,
		Plays:      plays,
		ReceivedAt: snapshot.ReceivedAt.UTC(),
	}
	query, args, err := qb.InsertModel("feed_snapshots", insertModel, `ON CONFLICT (game_id)
DO UPDATE SET
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    status = EXCLUDED.status,
    plays = EXCLUDED.plays,
    received_at = EXCLUDED.received_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert feed snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert feed snapshot game=%s: %w", snapshot.GameID, err)
	}
	return nil
}

func (r *PlayFeedRepository) GetSnapshot(ctx context.Context, gameID string) (playfeed.GameSnapshot, bool, error) {
	query, args, err := qb.Select("*").From("feed_snapshots").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return playfeed.GameSnapshot{}, false, fmt.Errorf("build get feed snapshot query: %w", err)
	}

	var row feedSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playfeed.GameSnapshot{}, false, nil
		}
		return playfeed.GameSnapshot{}, false, fmt.Errorf("get feed snapshot game=%s: %w", gameID, err)
	}

	var docs []rawPlayDocument
	if len(row.Plays) > 0 {
		if err := sonic.Unmarshal(row.Plays, &docs); err != nil {
			return playfeed.GameSnapshot{}, false, fmt.Errorf("decode feed snapshot plays game=%s: %w", gameID, err)
		}
	}
	return playfeed.GameSnapshot{
		GameID:     row.GameID,
		Season:     row.Season,
		Week:       row.Week,
		Status:     row.Status,
		Plays:      rawPlaysFromDocuments(docs),
		ReceivedAt: row.ReceivedAt.UTC(),
	}, true, nil
}

// ReplaceGameEvents swaps the event set of a game inside one transaction.
func (r *PlayFeedRepository) ReplaceGameEvents(ctx context.Context, gameID string, events []playfeed.ScoringEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace scoring events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("scoring_events").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete scoring events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete scoring events game=%s: %w", gameID, err)
	}

	if len(events) > 0 {
		rows := make([]scoringEventTableModel, 0, len(events))
		for _, event := range events {
			rows = append(rows, scoringEventTableModel{
				GameID:       gameID,
				PlaySequence: event.PlaySequence,
				ScoringTeam:  event.ScoringTeam,
				ScorerName:   event.ScorerName,
				Season:       event.Season,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels("scoring_events", rows, "")
		if err != nil {
			return fmt.Errorf("build insert scoring events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert scoring events game=%s: %w", gameID, playfeed.ErrMalformedEvent)
			}
			return fmt.Errorf("insert scoring events game=%s: %w", gameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace scoring events tx: %w", err)
	}
	return nil
}

func (r *PlayFeedRepository) ListGameEvents(ctx context.Context, gameID string) ([]playfeed.ScoringEvent, error) {
	query, args, err := qb.Select("game_id", "play_sequence", "scoring_team", "scorer_name", "season").
		From("scoring_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("play_sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scoring events query: %w", err)
	}

	var rows []scoringEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scoring events game=%s: %w", gameID, err)
	}

	out := make([]playfeed.ScoringEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, playfeed.ScoringEvent{
			GameID:       row.GameID,
			PlaySequence: row.PlaySequence,
			ScoringTeam:  row.ScoringTeam,
			ScorerName:   row.ScorerName,
			Season:       row.Season,
		})
	}
	return out, nil
}
