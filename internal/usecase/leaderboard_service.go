package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/fast6/internal/domain/performance"
	"github.com/riskibarqy/fast6/internal/domain/prediction"
	"github.com/riskibarqy/fast6/internal/domain/settlement"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/platform/cache"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/riskibarqy/fast6/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type LeaderboardService struct {
	predictionRepo prediction.Repository
	settlementRepo settlement.Repository
	factsRepo      touchdown.Repository
	rules          performance.Rules
	logger         *logging.Logger
	inflight       resilience.Group[[]performance.Snapshot]
	cache          *cache.Store[[]performance.Snapshot]
}

func NewLeaderboardService(
	predictionRepo prediction.Repository,
	settlementRepo settlement.Repository,
	factsRepo touchdown.Repository,
	rules performance.Rules,
	logger *logging.Logger,
) (*LeaderboardService, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		predictionRepo: predictionRepo,
		settlementRepo: settlementRepo,
		factsRepo:      factsRepo,
		rules:          rules,
		logger:         logger,
	}, nil
}

// WithCache serves repeated reads of one scope from store until its entries
// expire, so a cached table can trail settlement by up to the store TTL.
func (s *LeaderboardService) WithCache(store *cache.Store[[]performance.Snapshot]) *LeaderboardService {
	s.cache = store
	return s
}

// Leaderboard ranks every user who predicted in the scope's season. Records
// of games under review are left out until the review clears.
func (s *LeaderboardService) Leaderboard(ctx context.Context, scope performance.Scope) ([]performance.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard",
		attribute.Int("season", scope.Season),
		attribute.Int("week", scope.Week),
	)
	defer span.End()

	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// A shared load serves several callers, so it must not die with the one
	// that started it.
	loadCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("leaderboard:%d:%d", scope.Season, scope.Week)
	if s.cache != nil {
		rows, err := s.cache.GetOrLoad(loadCtx, key, func(ctx context.Context) ([]performance.Snapshot, error) {
			return s.build(ctx, scope)
		})
		if err != nil {
			return nil, err
		}
		return cloneSnapshots(rows), nil
	}

	rows, err, shared := s.inflight.Do(key, func() ([]performance.Snapshot, error) {
		return s.build(loadCtx, scope)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "leaderboard shared in-flight result", "key", key)
	}
	return cloneSnapshots(rows), nil
}

// cloneSnapshots copies rows including the values behind ROI and WinRate, so
// a caller can never edit a cached or shared table.
func cloneSnapshots(rows []performance.Snapshot) []performance.Snapshot {
	out := make([]performance.Snapshot, len(rows))
	copy(out, rows)
	for idx := range out {
		if out[idx].ROI != nil {
			roi := *out[idx].ROI
			out[idx].ROI = &roi
		}
		if out[idx].WinRate != nil {
			rate := *out[idx].WinRate
			out[idx].WinRate = &rate
		}
	}
	return out
}

func (s *LeaderboardService) build(ctx context.Context, scope performance.Scope) ([]performance.Snapshot, error) {
	predictions, err := s.predictionRepo.ListBySeason(ctx, scope.Season)
	if err != nil {
		return nil, fmt.Errorf("list predictions season=%d: %w", scope.Season, err)
	}
	records, err := s.settlementRepo.ListBySeason(ctx, scope.Season)
	if err != nil {
		return nil, fmt.Errorf("list settlement records season=%d: %w", scope.Season, err)
	}
	flags, err := s.factsRepo.ListReviewFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list review flags: %w", err)
	}
	facts, err := s.factsRepo.ListFactsBySeason(ctx, scope.Season)
	if err != nil {
		return nil, fmt.Errorf("list touchdown facts season=%d: %w", scope.Season, err)
	}

	// Current facts decide a game's week. A record's own week can predate a
	// schedule correction that has not been settled yet.
	weeks := make(map[string]int, len(facts))
	for _, item := range facts {
		weeks[item.GameID] = item.Week
	}

	underReview := make(map[string]struct{}, len(flags))
	for _, flag := range flags {
		underReview[flag.GameID] = struct{}{}
	}
	odds := make(map[string]*int, len(predictions))
	participantSet := make(map[string]struct{}, len(predictions))
	for _, item := range predictions {
		odds[item.ID] = item.PayoutOdds
		if item.UserID != "" {
			participantSet[item.UserID] = struct{}{}
		}
	}
	participants := make([]string, 0, len(participantSet))
	for userID := range participantSet {
		participants = append(participants, userID)
	}
	sort.Strings(participants)

	entries := make([]performance.Entry, 0, len(records))
	for _, record := range records {
		if _, ok := underReview[record.GameID]; ok {
			continue
		}
		entry := performance.EntryFromRecord(record, odds[record.PredictionID])
		if week, ok := weeks[record.GameID]; ok {
			entry.Week = week
		}
		entries = append(entries, entry)
	}

	rows, err := performance.Aggregate(entries, participants, scope, s.rules)
	if err != nil {
		if errors.Is(err, performance.ErrInvalidScope) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("aggregate leaderboard season=%d week=%d: %w", scope.Season, scope.Week, err)
	}
	return rows, nil
}
