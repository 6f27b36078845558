package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skykauf/fivb-leaderboard/internal/platform/logging"
)

// Config stores runtime configuration for the ingestion job and the
// auxiliary binaries.
type Config struct {
	DBURL    string `validate:"required,url"`
	LogLevel logging.Level

	VISBaseURL string        `validate:"required,url"`
	VISTimeout time.Duration `validate:"gt=0"`

	Season        string `validate:"required"`
	Parallel      bool
	MaxWorkers    int `validate:"gte=1"`
	MinExpandYear int `validate:"gte=1900,lte=2100"`
	TruncateRaw   bool

	LimitTournaments          int `validate:"gte=0"`
	LimitMatchesPerTournament int `validate:"gte=0"`
	LimitResultsPerTournament int `validate:"gte=0"`

	EventFirstStartDate string `validate:"required,datetime=2006-01-02"`
	EventLastStartDate  string `validate:"required,datetime=2006-01-02"`
}

func Load() (Config, error) {
	visTimeout, err := time.ParseDuration(getEnv("VIS_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VIS_TIMEOUT: %w", err)
	}

	parallel, err := strconv.ParseBool(getEnv("ETL_PARALLEL", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ETL_PARALLEL: %w", err)
	}

	truncateRaw, err := strconv.ParseBool(getEnv("TRUNCATE_RAW", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TRUNCATE_RAW: %w", err)
	}

	maxWorkers, err := getEnvAsInt("ETL_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse ETL_MAX_WORKERS: %w", err)
	}

	minExpandYear, err := getEnvAsInt("ETL_MIN_EXPAND_YEAR", 2015)
	if err != nil {
		return Config{}, fmt.Errorf("parse ETL_MIN_EXPAND_YEAR: %w", err)
	}

	limitTournaments, err := getEnvAsInt("LIMIT_TOURNAMENTS", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIMIT_TOURNAMENTS: %w", err)
	}

	limitMatches, err := getEnvAsInt("LIMIT_MATCHES_PER_TOURNAMENT", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIMIT_MATCHES_PER_TOURNAMENT: %w", err)
	}

	limitResults, err := getEnvAsInt("LIMIT_RESULTS_PER_TOURNAMENT", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIMIT_RESULTS_PER_TOURNAMENT: %w", err)
	}

	cfg := Config{
		DBURL:                     strings.TrimSpace(getEnv("DB_URL", "")),
		LogLevel:                  parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		VISBaseURL:                strings.TrimSpace(getEnv("VIS_BASE_URL", "https://www.fivb.org/Vis2009/XmlRequest.asmx")),
		VISTimeout:                visTimeout,
		Season:                    strings.TrimSpace(getEnv("ETL_SEASON", "2025 2026")),
		Parallel:                  parallel,
		MaxWorkers:                maxWorkers,
		MinExpandYear:             minExpandYear,
		TruncateRaw:               truncateRaw,
		LimitTournaments:          limitTournaments,
		LimitMatchesPerTournament: limitMatches,
		LimitResultsPerTournament: limitResults,
		EventFirstStartDate:       strings.TrimSpace(getEnv("EVENT_FIRST_START_DATE", "2024-01-01")),
		EventLastStartDate:        strings.TrimSpace(getEnv("EVENT_LAST_START_DATE", "2026-12-31")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// WebDocs holds the subset of configuration the documentation proxy needs.
// The proxy never touches the database, so DB_URL is not required here.
type WebDocs struct {
	LogLevel logging.Level

	VISBaseURL string        `validate:"required,url"`
	VISTimeout time.Duration `validate:"gt=0"`

	Addr string `validate:"required"`
}

func LoadWebDocs() (WebDocs, error) {
	visTimeout, err := time.ParseDuration(getEnv("VIS_TIMEOUT", "60s"))
	if err != nil {
		return WebDocs{}, fmt.Errorf("parse VIS_TIMEOUT: %w", err)
	}

	cfg := WebDocs{
		LogLevel:   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		VISBaseURL: strings.TrimSpace(getEnv("VIS_BASE_URL", "https://www.fivb.org/Vis2009/XmlRequest.asmx")),
		VISTimeout: visTimeout,
		Addr:       strings.TrimSpace(getEnv("WEBDOCS_ADDR", ":8080")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return WebDocs{}, fmt.Errorf("validate webdocs config: %w", err)
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

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
