package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	qb "github.com/riskibarqy/fast6/internal/platform/querybuilder"
)

type TouchdownRepository struct {
	db *sqlx.DB
}

func NewTouchdownRepository(db *sqlx.DB) *TouchdownRepository {
	return &TouchdownRepository{db: db}
}

func (r *TouchdownRepository) GetFacts(ctx context.Context, gameID string) (touchdown.Facts, bool, error) {
	query, args, err := qb.Select(qb.Columns(touchdownFactsTableModel{})...).
		From("game_touchdown_facts").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return touchdown.Facts{}, false, fmt.Errorf("build get touchdown facts query: %w", err)
	}

	var row touchdownFactsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return touchdown.Facts{}, false, nil
		}
		return touchdown.Facts{}, false, fmt.Errorf("get touchdown facts game=%s: %w", gameID, err)
	}

	scorers, err := r.listScorers(ctx, []string{gameID})
	if err != nil {
		return touchdown.Facts{}, false, err
	}
	return factsFromRow(row, scorers[gameID]), true, nil
}

// UpsertFacts rewrites the facts row and its scorers in one transaction.
func (r *TouchdownRepository) UpsertFacts(ctx context.Context, facts touchdown.Facts) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert touchdown facts: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := touchdownFactsTableModel{
		GameID:      facts.GameID,
		Season:      facts.Season,
		Week:        facts.Week,
		Final:       facts.Final,
		Fingerprint: facts.Fingerprint,
		DerivedAt:   facts.DerivedAt.UTC(),
	}
	query, args, err := qb.InsertModel("game_touchdown_facts", insertModel, `ON CONFLICT (game_id)
DO UPDATE SET
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    final = EXCLUDED.final,
    fingerprint = EXCLUDED.fingerprint,
    derived_at = EXCLUDED.derived_at`)
	if err != nil {
		return fmt.Errorf("build upsert touchdown facts query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert touchdown facts game=%s: %w", facts.GameID, err)
	}

	clearQuery, clearArgs, err := qb.DeleteFrom("game_touchdown_scorers").
		Where(qb.Eq("game_id", facts.GameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear touchdown scorers query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear touchdown scorers game=%s: %w", facts.GameID, err)
	}

	if len(facts.Scorers) > 0 {
		rows := make([]touchdownScorerTableModel, 0, len(facts.Scorers))
		for _, scorer := range facts.Scorers {
			rows = append(rows, touchdownScorerTableModel{
				GameID:       facts.GameID,
				ScorerName:   scorer.Name,
				Team:         scorer.Team,
				IsFirst:      scorer.IsFirst,
				PlaySequence: scorer.PlaySequence,
			})
		}
		scorerQuery, scorerArgs, err := qb.InsertModels("game_touchdown_scorers", rows, "")
		if err != nil {
			return fmt.Errorf("build insert touchdown scorers query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, scorerQuery, scorerArgs...); err != nil {
			return fmt.Errorf("insert touchdown scorers game=%s: %w", facts.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert touchdown facts tx: %w", err)
	}
	return nil
}

func (r *TouchdownRepository) DeleteFacts(ctx context.Context, gameID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete touchdown facts: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"game_touchdown_scorers", "game_touchdown_facts"} {
		query, args, err := qb.DeleteFrom(table).Where(qb.Eq("game_id", gameID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s game=%s: %w", table, gameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete touchdown facts tx: %w", err)
	}
	return nil
}

func (r *TouchdownRepository) ListFinalGameIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("game_id").From("game_touchdown_facts").
		Where(qb.Eq("final", true)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list final games query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list final games: %w", err)
	}
	return out, nil
}

func (r *TouchdownRepository) ListFactsBySeason(ctx context.Context, season int) ([]touchdown.Facts, error) {
	query, args, err := qb.Select(qb.Columns(touchdownFactsTableModel{})...).
		From("game_touchdown_facts").
		Where(qb.Eq("season", season)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list touchdown facts by season query: %w", err)
	}

	var rows []touchdownFactsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list touchdown facts season=%d: %w", season, err)
	}
	if len(rows) == 0 {
		return []touchdown.Facts{}, nil
	}

	gameIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		gameIDs = append(gameIDs, row.GameID)
	}
	scorers, err := r.listScorers(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	out := make([]touchdown.Facts, 0, len(rows))
	for _, row := range rows {
		out = append(out, factsFromRow(row, scorers[row.GameID]))
	}
	return out, nil
}

func (r *TouchdownRepository) listScorers(ctx context.Context, gameIDs []string) (map[string][]touchdown.Scorer, error) {
	values := make([]any, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		values = append(values, gameID)
	}
	query, args, err := qb.Select(qb.Columns(touchdownScorerTableModel{})...).
		From("game_touchdown_scorers").
		Where(qb.In("game_id", values)).
		OrderBy("game_id", "play_sequence", "scorer_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list touchdown scorers query: %w", err)
	}

	var rows []touchdownScorerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list touchdown scorers: %w", err)
	}

	out := make(map[string][]touchdown.Scorer, len(gameIDs))
	for _, row := range rows {
		out[row.GameID] = append(out[row.GameID], touchdown.Scorer{
			Name:         row.ScorerName,
			Team:         row.Team,
			IsFirst:      row.IsFirst,
			PlaySequence: row.PlaySequence,
		})
	}
	return out, nil
}

func factsFromRow(row touchdownFactsTableModel, scorers []touchdown.Scorer) touchdown.Facts {
	if scorers == nil {
		scorers = []touchdown.Scorer{}
	}
	return touchdown.Facts{
		GameID:      row.GameID,
		Season:      row.Season,
		Week:        row.Week,
		Final:       row.Final,
		Scorers:     scorers,
		Fingerprint: row.Fingerprint,
		DerivedAt:   row.DerivedAt.UTC(),
	}
}

func (r *TouchdownRepository) GetReviewFlag(ctx context.Context, gameID string) (touchdown.ReviewFlag, bool, error) {
	query, args, err := qb.Select(qb.Columns(reviewFlagTableModel{})...).
		From("game_review_flags").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return touchdown.ReviewFlag{}, false, fmt.Errorf("build get review flag query: %w", err)
	}

	var row reviewFlagTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return touchdown.ReviewFlag{}, false, nil
		}
		return touchdown.ReviewFlag{}, false, fmt.Errorf("get review flag game=%s: %w", gameID, err)
	}
	return reviewFlagFromRow(row), true, nil
}

func (r *TouchdownRepository) UpsertReviewFlag(ctx context.Context, flag touchdown.ReviewFlag) error {
	insertModel := reviewFlagTableModel{
		GameID:       flag.GameID,
		Reason:       flag.Reason,
		Detail:       flag.Detail,
		PlaySequence: nullableInt(flag.PlaySequence),
		FlaggedAt:    flag.FlaggedAt.UTC(),
	}
	query, args, err := qb.InsertModel("game_review_flags", insertModel, `ON CONFLICT (game_id)
DO UPDATE SET
    reason = EXCLUDED.reason,
    detail = EXCLUDED.detail,
    play_sequence = EXCLUDED.play_sequence,
    flagged_at = EXCLUDED.flagged_at`)
	if err != nil {
		return fmt.Errorf("build upsert review flag query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert review flag game=%s: %w", flag.GameID, err)
	}
	return nil
}

func (r *TouchdownRepository) DeleteReviewFlag(ctx context.Context, gameID string) error {
	query, args, err := qb.DeleteFrom("game_review_flags").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete review flag query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete review flag game=%s: %w", gameID, err)
	}
	return nil
}

func (r *TouchdownRepository) ListReviewFlags(ctx context.Context) ([]touchdown.ReviewFlag, error) {
	query, args, err := qb.Select(qb.Columns(reviewFlagTableModel{})...).
		From("game_review_flags").
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list review flags query: %w", err)
	}

	var rows []reviewFlagTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list review flags: %w", err)
	}

	out := make([]touchdown.ReviewFlag, 0, len(rows))
	for _, row := range rows {
		out = append(out, reviewFlagFromRow(row))
	}
	return out, nil
}

func reviewFlagFromRow(row reviewFlagTableModel) touchdown.ReviewFlag {
	return touchdown.ReviewFlag{
		GameID:       row.GameID,
		Reason:       row.Reason,
		Detail:       row.Detail,
		PlaySequence: intFromNull(row.PlaySequence),
		FlaggedAt:    row.FlaggedAt.UTC(),
	}
}
