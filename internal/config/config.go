package config

import (
	"os"
	"strconv"
	"time"

	"lotto-picker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	StatsURL     string
	StatsReferer string
	DBPath       string
	ServerPort   string
	LogLevel     string
	CacheTTL     time.Duration
	FetchTimeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification on the
	// outbound statistics fetch. Some deployments sit behind proxies
	// that break verification against dhlottery.co.kr; leaving it off
	// keeps verification on.
	InsecureSkipVerify bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		StatsURL:           getEnv("STATS_URL", "https://dhlottery.co.kr/gameResult.do?method=statByNumber"),
		StatsReferer:       getEnv("STATS_REFERER", "https://dhlottery.co.kr/gameResult.do?method=byWin"),
		DBPath:             getEnv("DB_PATH", "lotto.db"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CacheTTL:           getDurationEnv("CACHE_TTL", constants.StatsCacheTTL),
		FetchTimeout:       getDurationEnv("FETCH_TIMEOUT", constants.FetchTimeout),
		InsecureSkipVerify: getBoolEnv("INSECURE_SKIP_VERIFY", false),
	}

	logger.Info().
		Str("stats_url", cfg.StatsURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("cache_ttl", cfg.CacheTTL).
		Dur("fetch_timeout", cfg.FetchTimeout).
		Bool("insecure_skip_verify", cfg.InsecureSkipVerify).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
