package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fast6/external/playbyplay"
	"github.com/riskibarqy/fast6/internal/config"
	"github.com/riskibarqy/fast6/internal/domain/performance"
	"github.com/riskibarqy/fast6/internal/domain/playfeed"
	"github.com/riskibarqy/fast6/internal/domain/prediction"
	"github.com/riskibarqy/fast6/internal/domain/settlement"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fast6/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fast6/internal/interfaces/httpapi"
	"github.com/riskibarqy/fast6/internal/platform/cache"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/riskibarqy/fast6/internal/platform/resilience"
	"github.com/riskibarqy/fast6/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	feed        playfeed.Repository
	facts       touchdown.Repository
	predictions prediction.Repository
	settlements settlement.Repository
	close       func() error
}

// NewHTTPServer wires repositories, services and the router. The returned
// cleanup releases the database pool and must run after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rules := performance.Rules{
		FirstScorerPoints: cfg.FirstScorerPoints,
		AnyTimePoints:     cfg.AnyTimePoints,
		Stake:             cfg.Stake,
		Payout:            performance.AmericanOddsPayout,
	}
	gameLocks := &resilience.KeyedMutex{}

	settler := usecase.NewSettlementService(
		repos.predictions,
		repos.settlements,
		repos.facts,
		gameLocks,
		logger,
		usecase.SettlementServiceConfig{MaxWorkers: cfg.SettlementMaxWorkers},
	)

	var fetcher usecase.PlayByPlayFetcher
	if cfg.PlayByPlayBaseURL != "" {
		fetcher = playbyplay.NewClient(playbyplay.ClientConfig{
			BaseURL:    cfg.PlayByPlayBaseURL,
			Token:      cfg.PlayByPlayToken,
			Timeout:    cfg.PlayByPlayTimeout,
			MaxRetries: cfg.PlayByPlayMaxRetries,
			Breaker: resilience.BreakerConfig{
				FailureThreshold: cfg.PlayByPlayBreakerLimit,
				Cooldown:         cfg.PlayByPlayBreakerReset,
				HalfOpenCalls:    1,
			},
			Logger: logger,
		})
	} else {
		logger.Info("play-by-play provider disabled", "reason", "PLAYBYPLAY_BASE_URL empty")
	}

	feedSync := usecase.NewFeedSyncService(
		repos.feed,
		repos.facts,
		fetcher,
		settler,
		gameLocks,
		logger,
		usecase.FeedSyncServiceConfig{
			MaxWorkers: cfg.FeedSyncMaxWorkers,
			AutoSettle: cfg.SettlementAutoSettle,
		},
	)

	leaderboard, err := usecase.NewLeaderboardService(repos.predictions, repos.settlements, repos.facts, rules, logger)
	if err != nil {
		_ = repos.close()
		return nil, nil, fmt.Errorf("build leaderboard service: %w", err)
	}
	if cfg.LeaderboardCacheTTL > 0 {
		leaderboard.WithCache(cache.NewStore[[]performance.Snapshot](cfg.LeaderboardCacheTTL))
	}

	handler := httpapi.NewHandler(feedSync, settler, leaderboard, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func openRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.UsesMemoryStore() {
		logger.Warn("DB_URL empty, using in-memory repositories")
		return repositories{
			feed:        memory.NewPlayFeedRepository(),
			facts:       memory.NewTouchdownRepository(),
			predictions: memory.NewPredictionRepository(nil),
			settlements: memory.NewSettlementRepository(),
			close:       func() error { return nil },
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)

	return repositories{
		feed:        postgres.NewPlayFeedRepository(db),
		facts:       postgres.NewTouchdownRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		settlements: postgres.NewSettlementRepository(db),
		close:       db.Close,
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := DatabaseURL(cfg)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
