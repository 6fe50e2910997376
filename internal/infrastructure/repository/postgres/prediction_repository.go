package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fast6/internal/domain/prediction"
	qb "github.com/riskibarqy/fast6/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetByID(ctx context.Context, predictionID string) (prediction.Prediction, bool, error) {
	query, args, err := predictionBaseSelectBuilder().
		Where(qb.Eq("public_id", predictionID)).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction id=%s: %w", predictionID, err)
	}
	return predictionFromRow(row), true, nil
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	insertModel := predictionTableModel{
		PublicID:            item.ID,
		UserID:              item.UserID,
		GameID:              item.GameID,
		Season:              item.Season,
		Team:                item.Team,
		PredictedPlayerName: item.PredictedPlayerName,
		PayoutOdds:          nullableInt(item.PayoutOdds),
		UpdatedAt:           item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    user_id = EXCLUDED.user_id,
    game_id = EXCLUDED.game_id,
    season = EXCLUDED.season,
    team = EXCLUDED.team,
    predicted_player_name = EXCLUDED.predicted_player_name,
    payout_odds = EXCLUDED.payout_odds,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *PredictionRepository) ListByGame(ctx context.Context, gameID string) ([]prediction.Prediction, error) {
	return r.list(ctx, "game", qb.Eq("game_id", gameID))
}

func (r *PredictionRepository) ListBySeason(ctx context.Context, season int) ([]prediction.Prediction, error) {
	return r.list(ctx, "season", qb.Eq("season", season))
}

func (r *PredictionRepository) list(ctx context.Context, scope string, condition qb.Condition) ([]prediction.Prediction, error) {
	query, args, err := predictionBaseSelectBuilder().
		Where(condition).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by %s query: %w", scope, err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by %s: %w", scope, err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:                  row.PublicID,
		UserID:              row.UserID,
		GameID:              row.GameID,
		Season:              row.Season,
		Team:                row.Team,
		PredictedPlayerName: row.PredictedPlayerName,
		PayoutOdds:          intFromNull(row.PayoutOdds),
		UpdatedAt:           row.UpdatedAt.UTC(),
	}
}

func predictionBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(qb.Columns(predictionTableModel{})...).From("predictions")
}
