package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/shopspring/decimal"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	DBURL                   string
	DBDisablePreparedBinary bool
	DBMaxOpenConns          int
	InternalJobToken        string
	CORSAllowedOrigins      []string
	FirstScorerPoints       int
	AnyTimePoints           int
	Stake                   decimal.Decimal
	SettlementMaxWorkers    int
	SettlementAutoSettle    bool
	FeedSyncMaxWorkers      int
	LeaderboardCacheTTL     time.Duration
	PlayByPlayBaseURL       string
	PlayByPlayToken         string
	PlayByPlayTimeout       time.Duration
	PlayByPlayMaxRetries    int
	PlayByPlayBreakerLimit  int
	PlayByPlayBreakerReset  time.Duration
	UptraceEnabled          bool
	UptraceDSN              string
	UptraceLogsEnabled      bool
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
	LogLevel                logging.Level
}

// UsesMemoryStore reports whether no database is configured.
func (c Config) UsesMemoryStore() bool {
	return strings.TrimSpace(c.DBURL) == ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if dbMaxOpenConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}

	firstScorerPoints, err := getEnvAsInt("SCORING_FIRST_SCORER_POINTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_FIRST_SCORER_POINTS: %w", err)
	}
	anyTimePoints, err := getEnvAsInt("SCORING_ANY_TIME_POINTS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_ANY_TIME_POINTS: %w", err)
	}
	if anyTimePoints < 0 {
		return Config{}, fmt.Errorf("SCORING_ANY_TIME_POINTS must be >= 0")
	}
	if firstScorerPoints <= anyTimePoints {
		return Config{}, fmt.Errorf("SCORING_FIRST_SCORER_POINTS must be > SCORING_ANY_TIME_POINTS")
	}
	stake, err := decimal.NewFromString(getEnv("SCORING_STAKE", "1.00"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_STAKE: %w", err)
	}
	if !stake.IsPositive() {
		return Config{}, fmt.Errorf("SCORING_STAKE must be > 0")
	}

	settlementMaxWorkers, err := getEnvAsInt("SETTLEMENT_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SETTLEMENT_MAX_WORKERS: %w", err)
	}
	if settlementMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("SETTLEMENT_MAX_WORKERS must be > 0")
	}
	settlementAutoSettle, err := strconv.ParseBool(getEnv("SETTLEMENT_AUTO_SETTLE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SETTLEMENT_AUTO_SETTLE: %w", err)
	}
	feedSyncMaxWorkers, err := getEnvAsInt("FEED_SYNC_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_SYNC_MAX_WORKERS: %w", err)
	}
	if feedSyncMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("FEED_SYNC_MAX_WORKERS must be > 0")
	}

	leaderboardCacheTTL, err := time.ParseDuration(getEnv("LEADERBOARD_CACHE_TTL", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEADERBOARD_CACHE_TTL: %w", err)
	}
	if leaderboardCacheTTL < 0 {
		return Config{}, fmt.Errorf("LEADERBOARD_CACHE_TTL must be >= 0")
	}

	playByPlayTimeout, err := time.ParseDuration(getEnv("PLAYBYPLAY_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYBYPLAY_TIMEOUT: %w", err)
	}
	if playByPlayTimeout <= 0 {
		return Config{}, fmt.Errorf("PLAYBYPLAY_TIMEOUT must be > 0")
	}
	playByPlayMaxRetries, err := getEnvAsInt("PLAYBYPLAY_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYBYPLAY_MAX_RETRIES: %w", err)
	}
	if playByPlayMaxRetries < 0 {
		return Config{}, fmt.Errorf("PLAYBYPLAY_MAX_RETRIES must be >= 0")
	}
	playByPlayBreakerLimit, err := getEnvAsInt("PLAYBYPLAY_BREAKER_THRESHOLD", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYBYPLAY_BREAKER_THRESHOLD: %w", err)
	}
	if playByPlayBreakerLimit < 0 {
		return Config{}, fmt.Errorf("PLAYBYPLAY_BREAKER_THRESHOLD must be >= 0")
	}
	playByPlayBreakerReset, err := time.ParseDuration(getEnv("PLAYBYPLAY_BREAKER_COOLDOWN", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYBYPLAY_BREAKER_COOLDOWN: %w", err)
	}
	if playByPlayBreakerReset <= 0 {
		return Config{}, fmt.Errorf("PLAYBYPLAY_BREAKER_COOLDOWN must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "fast6-settlement"),
		ServiceVersion:          getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		DBMaxOpenConns:          dbMaxOpenConns,
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		FirstScorerPoints:       firstScorerPoints,
		AnyTimePoints:           anyTimePoints,
		Stake:                   stake,
		SettlementMaxWorkers:    settlementMaxWorkers,
		SettlementAutoSettle:    settlementAutoSettle,
		FeedSyncMaxWorkers:      feedSyncMaxWorkers,
		LeaderboardCacheTTL:     leaderboardCacheTTL,
		PlayByPlayBaseURL:       strings.TrimRight(strings.TrimSpace(getEnv("PLAYBYPLAY_BASE_URL", "")), "/"),
		PlayByPlayToken:         strings.TrimSpace(getEnv("PLAYBYPLAY_TOKEN", "")),
		PlayByPlayTimeout:       playByPlayTimeout,
		PlayByPlayMaxRetries:    playByPlayMaxRetries,
		PlayByPlayBreakerLimit:  playByPlayBreakerLimit,
		PlayByPlayBreakerReset:  playByPlayBreakerReset,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		UptraceLogsEnabled:      uptraceLogsEnabled,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:     pyroscopeUploadRate,
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && cfg.InternalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=%s", EnvProd)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
