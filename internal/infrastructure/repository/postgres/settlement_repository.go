package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fast6/internal/domain/settlement"
	qb "github.com/riskibarqy/fast6/internal/platform/querybuilder"
)

type SettlementRepository struct {
	db *sqlx.DB
}

func NewSettlementRepository(db *sqlx.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) GetByPrediction(ctx context.Context, predictionID string) (settlement.Record, bool, error) {
	query, args, err := settlementBaseSelectBuilder().
		Where(qb.Eq("prediction_public_id", predictionID)).
		ToSQL()
	if err != nil {
		return settlement.Record{}, false, fmt.Errorf("build get settlement record query: %w", err)
	}

	var row settlementRecordTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settlement.Record{}, false, nil
		}
		return settlement.Record{}, false, fmt.Errorf("get settlement record prediction=%s: %w", predictionID, err)
	}
	return recordFromRow(row), true, nil
}

// Replace deletes any prior record and inserts the new one in a single
// transaction so readers never observe two records for one prediction.
func (r *SettlementRepository) Replace(ctx context.Context, record settlement.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace settlement record: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("settlement_records").
		Where(qb.Eq("prediction_public_id", record.PredictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete settlement record query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete settlement record prediction=%s: %w", record.PredictionID, err)
	}

	matched := sql.NullString{}
	if record.MatchedActualScorerName != nil {
		matched = sql.NullString{String: *record.MatchedActualScorerName, Valid: true}
	}
	insertModel := settlementRecordTableModel{
		PredictionID:            record.PredictionID,
		UserID:                  record.UserID,
		GameID:                  record.GameID,
		Season:                  record.Season,
		Week:                    record.Week,
		IsFirstScorerCorrect:    record.IsFirstScorerCorrect,
		IsAnyTimeScorerHit:      record.IsAnyTimeScorerHit,
		MatchedActualScorerName: matched,
		FactsFingerprint:        record.FactsFingerprint,
		SettledAt:               record.SettledAt.UTC(),
	}
	insertQuery, insertArgs, err := qb.InsertModel("settlement_records", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert settlement record query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("insert settlement record prediction=%s: %w", record.PredictionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace settlement record tx: %w", err)
	}
	return nil
}

func (r *SettlementRepository) DeleteByPrediction(ctx context.Context, predictionID string) error {
	query, args, err := qb.DeleteFrom("settlement_records").
		Where(qb.Eq("prediction_public_id", predictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete settlement record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete settlement record prediction=%s: %w", predictionID, err)
	}
	return nil
}

func (r *SettlementRepository) ListByGame(ctx context.Context, gameID string) ([]settlement.Record, error) {
	return r.list(ctx, "game", qb.Eq("game_id", gameID))
}

func (r *SettlementRepository) ListBySeason(ctx context.Context, season int) ([]settlement.Record, error) {
	return r.list(ctx, "season", qb.Eq("season", season))
}

func (r *SettlementRepository) list(ctx context.Context, scope string, condition qb.Condition) ([]settlement.Record, error) {
	query, args, err := settlementBaseSelectBuilder().
		Where(condition).
		OrderBy("prediction_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list settlement records by %s query: %w", scope, err)
	}

	var rows []settlementRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list settlement records by %s: %w", scope, err)
	}

	out := make([]settlement.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, recordFromRow(row))
	}
	return out, nil
}

func recordFromRow(row settlementRecordTableModel) settlement.Record {
	return settlement.Record{
		PredictionID:            row.PredictionID,
		UserID:                  row.UserID,
		GameID:                  row.GameID,
		Season:                  row.Season,
		Week:                    row.Week,
		IsFirstScorerCorrect:    row.IsFirstScorerCorrect,
		IsAnyTimeScorerHit:      row.IsAnyTimeScorerHit,
		MatchedActualScorerName: stringFromNull(row.MatchedActualScorerName),
		FactsFingerprint:        row.FactsFingerprint,
		SettledAt:               row.SettledAt.UTC(),
	}
}

func settlementBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(qb.Columns(settlementRecordTableModel{})...).From("settlement_records")
}
