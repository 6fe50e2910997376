package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fast6/internal/domain/playfeed"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/riskibarqy/fast6/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	syncStatusDerived     = "derived"
	syncStatusUnchanged   = "unchanged"
	syncStatusFlagged     = "flagged"
	syncStatusNeedsReview = "needs_review"
	syncStatusFailed      = "failed"

	defaultFeedSyncWorkers = 4
)

type FeedSyncServiceConfig struct {
	MaxWorkers int
	// AutoSettle settles a game right after its concluded facts change.
	AutoSettle bool
}

// PlayByPlayFetcher is the feed provider collaborator.
type PlayByPlayFetcher interface {
	FetchGameSnapshot(ctx context.Context, gameID string) (playfeed.GameSnapshot, error)
}

// FeedSyncService turns feed snapshots into persisted touchdown facts.
type FeedSyncService struct {
	feedRepo  playfeed.Repository
	factsRepo touchdown.Repository
	fetcher   PlayByPlayFetcher
	settler   *SettlementService
	gameLocks *resilience.KeyedMutex
	logger    *logging.Logger
	now       func() time.Time
	cfg       FeedSyncServiceConfig
}

func NewFeedSyncService(
	feedRepo playfeed.Repository,
	factsRepo touchdown.Repository,
	fetcher PlayByPlayFetcher,
	settler *SettlementService,
	gameLocks *resilience.KeyedMutex,
	logger *logging.Logger,
	cfg FeedSyncServiceConfig,
) *FeedSyncService {
	if gameLocks == nil {
		gameLocks = &resilience.KeyedMutex{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultFeedSyncWorkers
	}
	return &FeedSyncService{
		feedRepo:  feedRepo,
		factsRepo: factsRepo,
		fetcher:   fetcher,
		settler:   settler,
		gameLocks: gameLocks,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

type SyncInput struct {
	Snapshots  []playfeed.GameSnapshot
	MaxWorkers int
}

type SyncResult struct {
	GameCount      int              `json:"game_count"`
	WorkerCount    int              `json:"worker_count"`
	DerivedCount   int              `json:"derived_count"`
	UnchangedCount int              `json:"unchanged_count"`
	FlaggedCount   int              `json:"flagged_count"`
	FailedCount    int              `json:"failed_count"`
	Games          []GameSyncResult `json:"games"`
}

type GameSyncResult struct {
	GameID      string            `json:"game_id"`
	Status      string            `json:"status"`
	Final       bool              `json:"final"`
	Scorers     int               `json:"scorers"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Rejections  []string          `json:"rejections,omitempty"`
	Settlement  *SettleGameResult `json:"settlement,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// Sync ingests complete per-game snapshots. Games run in parallel; each game
// holds its lock from snapshot write through derivation and settlement.
func (s *FeedSyncService) Sync(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.Sync", attribute.Int("snapshots", len(input.Snapshots)))
	defer span.End()

	if len(input.Snapshots) == 0 {
		return SyncResult{}, fmt.Errorf("%w: at least one snapshot is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(input.Snapshots))
	snapshots := make([]playfeed.GameSnapshot, 0, len(input.Snapshots))
	for idx, snapshot := range input.Snapshots {
		snapshot.GameID = strings.TrimSpace(snapshot.GameID)
		if snapshot.GameID == "" {
			return SyncResult{}, fmt.Errorf("%w: snapshot %d game id is required", ErrInvalidInput, idx)
		}
		if _, ok := seen[snapshot.GameID]; ok {
			return SyncResult{}, fmt.Errorf("%w: duplicate snapshot for game=%s", ErrInvalidInput, snapshot.GameID)
		}
		seen[snapshot.GameID] = struct{}{}
		snapshot.Status = playfeed.NormalizeStatus(snapshot.Status)
		snapshots = append(snapshots, snapshot)
	}

	workerCount := normalizeWorkerCount(input.MaxWorkers, s.cfg.MaxWorkers, len(snapshots))
	rows := make([]GameSyncResult, len(snapshots))
	p := pool.New().WithMaxGoroutines(workerCount)
	for idx := range snapshots {
		idx := idx
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				rows[idx] = GameSyncResult{GameID: snapshots[idx].GameID, Status: syncStatusFailed, Message: err.Error()}
				return
			}
			rows[idx] = s.syncGame(ctx, snapshots[idx])
		})
	}
	p.Wait()

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].GameID < rows[j].GameID
	})
	result := SyncResult{
		GameCount:   len(rows),
		WorkerCount: workerCount,
		Games:       rows,
	}
	for _, row := range rows {
		switch row.Status {
		case syncStatusDerived:
			result.DerivedCount++
		case syncStatusUnchanged:
			result.UnchangedCount++
		case syncStatusFlagged, syncStatusNeedsReview:
			result.FlaggedCount++
		default:
			result.FailedCount++
		}
	}
	return result, nil
}

type PullInput struct {
	GameIDs    []string
	MaxWorkers int
}

// Pull fetches the listed games from the feed provider and syncs every
// snapshot that was fetched. Fetch failures are reported per game.
func (s *FeedSyncService) Pull(ctx context.Context, input PullInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.Pull", attribute.Int("games", len(input.GameIDs)))
	defer span.End()

	if s.fetcher == nil {
		return SyncResult{}, fmt.Errorf("%w: play-by-play feed is not configured", ErrDependencyUnavailable)
	}
	gameIDs := make([]string, 0, len(input.GameIDs))
	seen := make(map[string]struct{}, len(input.GameIDs))
	for _, gameID := range input.GameIDs {
		gameID = strings.TrimSpace(gameID)
		if gameID == "" {
			continue
		}
		if _, ok := seen[gameID]; ok {
			continue
		}
		seen[gameID] = struct{}{}
		gameIDs = append(gameIDs, gameID)
	}
	if len(gameIDs) == 0 {
		return SyncResult{}, fmt.Errorf("%w: at least one game id is required", ErrInvalidInput)
	}

	type fetched struct {
		snapshot playfeed.GameSnapshot
		err      error
	}
	workerCount := normalizeWorkerCount(input.MaxWorkers, s.cfg.MaxWorkers, len(gameIDs))
	results := make([]fetched, len(gameIDs))
	p := pool.New().WithMaxGoroutines(workerCount)
	for idx := range gameIDs {
		idx := idx
		p.Go(func() {
			snapshot, err := s.fetcher.FetchGameSnapshot(ctx, gameIDs[idx])
			results[idx] = fetched{snapshot: snapshot, err: err}
		})
	}
	p.Wait()

	snapshots := make([]playfeed.GameSnapshot, 0, len(results))
	failures := make([]GameSyncResult, 0)
	for idx, item := range results {
		if item.err != nil {
			failures = append(failures, s.failed(ctx, gameIDs[idx], item.err))
			continue
		}
		item.snapshot.GameID = gameIDs[idx]
		snapshots = append(snapshots, item.snapshot)
	}

	result := SyncResult{WorkerCount: workerCount}
	if len(snapshots) > 0 {
		synced, err := s.Sync(ctx, SyncInput{Snapshots: snapshots, MaxWorkers: input.MaxWorkers})
		if err != nil {
			return SyncResult{}, err
		}
		result = synced
	}
	result.Games = append(result.Games, failures...)
	result.GameCount += len(failures)
	result.FailedCount += len(failures)
	sort.SliceStable(result.Games, func(i, j int) bool {
		return result.Games[i].GameID < result.Games[j].GameID
	})
	return result, nil
}

func (s *FeedSyncService) syncGame(ctx context.Context, snapshot playfeed.GameSnapshot) GameSyncResult {
	unlock := s.gameLocks.Lock(snapshot.GameID)
	defer unlock()

	if snapshot.ReceivedAt.IsZero() {
		snapshot.ReceivedAt = s.now().UTC()
	}
	if err := s.feedRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return s.failed(ctx, snapshot.GameID, fmt.Errorf("save snapshot game=%s: %w", snapshot.GameID, err))
	}

	flag, flagged, err := s.factsRepo.GetReviewFlag(ctx, snapshot.GameID)
	if err != nil {
		return s.failed(ctx, snapshot.GameID, fmt.Errorf("get review flag game=%s: %w", snapshot.GameID, err))
	}
	if flagged {
		s.logger.InfoContext(ctx, "snapshot stored for game awaiting review",
			"game_id", snapshot.GameID,
			"reason", flag.Reason,
		)
		return GameSyncResult{
			GameID:  snapshot.GameID,
			Status:  syncStatusNeedsReview,
			Final:   playfeed.IsFinalStatus(snapshot.Status),
			Message: flag.Reason,
		}
	}

	return s.deriveLocked(ctx, snapshot)
}

// deriveLocked requires the caller to hold the game lock.
func (s *FeedSyncService) deriveLocked(ctx context.Context, snapshot playfeed.GameSnapshot) GameSyncResult {
	gameID := snapshot.GameID
	row := GameSyncResult{GameID: gameID, Final: playfeed.IsFinalStatus(snapshot.Status)}

	batch := playfeed.NormalizeBatch(snapshot.Plays)
	for _, event := range batch.Events {
		if event.GameID != gameID {
			batch.Rejected = append(batch.Rejected, playfeed.Rejection{
				GameID: event.GameID,
				Err:    &playfeed.MalformedEventError{GameID: event.GameID, Field: "game_id"},
			})
		}
	}
	if len(batch.Rejected) > 0 {
		reasons := make([]string, 0, len(batch.Rejected))
		for _, rejection := range batch.Rejected {
			reasons = append(reasons, rejection.Err.Error())
		}
		row.Rejections = reasons

		reason := touchdown.ReviewReasonMalformedEvent
		var seq *int
		var ambiguous *playfeed.AmbiguousTeamError
		if errors.As(batch.Rejected[0].Err, &ambiguous) {
			reason = touchdown.ReviewReasonAmbiguousTeam
			play := ambiguous.PlaySequence
			seq = &play
		}
		return s.flagLocked(ctx, row, reason, strings.Join(reasons, "; "), seq)
	}

	facts, err := touchdown.Derive(touchdown.Game{
		ID:     gameID,
		Season: snapshot.Season,
		Week:   snapshot.Week,
		Final:  row.Final,
	}, batch.Events, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		var integrity *touchdown.IntegrityError
		if errors.As(err, &integrity) {
			play := integrity.PlaySequence
			return s.flagLocked(ctx, row, touchdown.ReviewReasonDuplicatePlaySequence, integrity.Error(), &play)
		}
		return s.failed(ctx, gameID, fmt.Errorf("derive touchdown facts game=%s: %w", gameID, err))
	}
	row.Scorers = len(facts.Scorers)
	row.Fingerprint = facts.Fingerprint

	existing, ok, err := s.factsRepo.GetFacts(ctx, gameID)
	if err != nil {
		return s.failed(ctx, gameID, fmt.Errorf("get touchdown facts game=%s: %w", gameID, err))
	}
	if ok && existing.Fingerprint == facts.Fingerprint && existing.Season == facts.Season && existing.Week == facts.Week {
		// Facts are unchanged but the events behind them may not be, e.g. a
		// repeat touchdown by a player who already scored.
		stored, err := s.feedRepo.ListGameEvents(ctx, gameID)
		if err != nil {
			return s.failed(ctx, gameID, fmt.Errorf("list scoring events game=%s: %w", gameID, err))
		}
		if !sameEvents(stored, batch.Events) {
			if err := s.feedRepo.ReplaceGameEvents(ctx, gameID, batch.Events); err != nil {
				return s.failed(ctx, gameID, fmt.Errorf("replace scoring events game=%s: %w", gameID, err))
			}
			s.logger.InfoContext(ctx, "scoring events refreshed", "game_id", gameID, "events", len(batch.Events))
		}
		row.Status = syncStatusUnchanged
		return row
	}

	if err := s.feedRepo.ReplaceGameEvents(ctx, gameID, batch.Events); err != nil {
		return s.failed(ctx, gameID, fmt.Errorf("replace scoring events game=%s: %w", gameID, err))
	}
	if err := s.factsRepo.UpsertFacts(ctx, facts); err != nil {
		return s.failed(ctx, gameID, fmt.Errorf("upsert touchdown facts game=%s: %w", gameID, err))
	}
	row.Status = syncStatusDerived
	s.logger.InfoContext(ctx, "touchdown facts derived",
		"game_id", gameID,
		"final", facts.Final,
		"scorers", len(facts.Scorers),
		"fingerprint", facts.Fingerprint,
	)

	if s.settler != nil && s.cfg.AutoSettle && facts.Final {
		settled, err := s.settler.settleGameLocked(ctx, gameID, false)
		if err != nil {
			row.Message = fmt.Sprintf("auto settle failed: %v", err)
			s.logger.ErrorContext(ctx, "auto settle failed", "game_id", gameID, "error", err)
			return row
		}
		row.Settlement = &settled
	}
	return row
}

// sameEvents compares two event sets regardless of order.
func sameEvents(a, b []playfeed.ScoringEvent) bool {
	if len(a) != len(b) {
		return false
	}
	sorted := func(in []playfeed.ScoringEvent) []playfeed.ScoringEvent {
		out := append([]playfeed.ScoringEvent(nil), in...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PlaySequence < out[j].PlaySequence
		})
		return out
	}
	left, right := sorted(a), sorted(b)
	for idx := range left {
		if left[idx] != right[idx] {
			return false
		}
	}
	return true
}

func (s *FeedSyncService) flagLocked(ctx context.Context, row GameSyncResult, reason, detail string, seq *int) GameSyncResult {
	flag := touchdown.ReviewFlag{
		GameID:       row.GameID,
		Reason:       reason,
		Detail:       detail,
		PlaySequence: seq,
		FlaggedAt:    s.now().UTC(),
	}
	if err := s.factsRepo.UpsertReviewFlag(ctx, flag); err != nil {
		return s.failed(ctx, row.GameID, fmt.Errorf("upsert review flag game=%s: %w", row.GameID, err))
	}
	if err := s.factsRepo.DeleteFacts(ctx, row.GameID); err != nil {
		return s.failed(ctx, row.GameID, fmt.Errorf("delete touchdown facts game=%s: %w", row.GameID, err))
	}

	s.logger.WarnContext(ctx, "game flagged for review",
		"game_id", row.GameID,
		"reason", reason,
		"detail", detail,
	)
	row.Status = syncStatusFlagged
	row.Message = reason
	return row
}

func (s *FeedSyncService) failed(ctx context.Context, gameID string, err error) GameSyncResult {
	s.logger.ErrorContext(ctx, "feed sync failed", "game_id", gameID, "error", err)
	return GameSyncResult{GameID: gameID, Status: syncStatusFailed, Message: err.Error()}
}

// ResolveReview clears a game's review flag and re-derives it from the
// latest stored snapshot. If that snapshot is still defective the game is
// flagged again and ErrNeedsReview is returned.
func (s *FeedSyncService) ResolveReview(ctx context.Context, gameID string) (GameSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.ResolveReview", attribute.String("game_id", gameID))
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return GameSyncResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	unlock := s.gameLocks.Lock(gameID)
	defer unlock()

	if _, flagged, err := s.factsRepo.GetReviewFlag(ctx, gameID); err != nil {
		return GameSyncResult{}, fmt.Errorf("get review flag game=%s: %w", gameID, err)
	} else if !flagged {
		return GameSyncResult{}, fmt.Errorf("%w: no review flag for game=%s", ErrNotFound, gameID)
	}
	snapshot, ok, err := s.feedRepo.GetSnapshot(ctx, gameID)
	if err != nil {
		return GameSyncResult{}, fmt.Errorf("get snapshot game=%s: %w", gameID, err)
	}
	if !ok {
		return GameSyncResult{}, fmt.Errorf("%w: no stored snapshot for game=%s", ErrNotFound, gameID)
	}

	if err := s.factsRepo.DeleteReviewFlag(ctx, gameID); err != nil {
		return GameSyncResult{}, fmt.Errorf("delete review flag game=%s: %w", gameID, err)
	}
	row := s.deriveLocked(ctx, snapshot)
	switch row.Status {
	case syncStatusFlagged:
		return row, fmt.Errorf("%w: game=%s reason=%s", ErrNeedsReview, gameID, row.Message)
	case syncStatusFailed:
		return row, fmt.Errorf("%w: %s", ErrDependencyUnavailable, row.Message)
	}
	return row, nil
}

// ReviewQueue lists games currently excluded from automatic derivation.
func (s *FeedSyncService) ReviewQueue(ctx context.Context) ([]touchdown.ReviewFlag, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.ReviewQueue")
	defer span.End()

	flags, err := s.factsRepo.ListReviewFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list review flags: %w", err)
	}
	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].GameID < flags[j].GameID
	})
	return flags, nil
}
