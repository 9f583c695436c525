// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/utils"
)

// Config holds engine configuration.
type Config struct {
	LogLevel string

	// EphemerisDBPath points at a SQLite ephemeris file built by ephemgen.
	// Empty selects the built-in analytic model.
	EphemerisDBPath string
	// EphemerisTimeout bounds a single position lookup; it is the engine's
	// only suspension point.
	EphemerisTimeout time.Duration

	// CoordinatePrecision is the number of decimals birth coordinates are
	// rounded to for fingerprinting (4 decimals is ~11m, well below any
	// astrologically meaningful distance).
	CoordinatePrecision int

	// IncludeMinorAspects extends the aspect table beyond the five majors.
	IncludeMinorAspects bool
	// ExcludedBodies removes bodies (e.g. CHIRON, NORTH_NODE) from charts
	// before aspect detection.
	ExcludedBodies []domain.Body

	// ChineseYearFrom/To bound the lunar-new-year table derived at startup
	// for years not covered by the pinned table.
	ChineseYearFrom int
	ChineseYearTo   int
}

// Load reads configuration from environment variables, with a .env file as
// an optional source for development.
func Load() (*Config, error) {
	// .env is optional; environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("NATAL_LOG_LEVEL", "info"),
		EphemerisDBPath:     getEnv("NATAL_EPHEMERIS_DB", ""),
		EphemerisTimeout:    5 * time.Second,
		CoordinatePrecision: 4,
		IncludeMinorAspects: getEnvBool("NATAL_MINOR_ASPECTS", true),
		ChineseYearFrom:     1900,
		ChineseYearTo:       2100,
	}

	if v := getEnv("NATAL_EPHEMERIS_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NATAL_EPHEMERIS_TIMEOUT %q: %w", v, err)
		}
		cfg.EphemerisTimeout = d
	}

	if v := getEnv("NATAL_COORD_PRECISION", ""); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 || p > 8 {
			return nil, fmt.Errorf("invalid NATAL_COORD_PRECISION %q: must be an integer in [0, 8]", v)
		}
		cfg.CoordinatePrecision = p
	}

	for _, name := range utils.ParseCSV(getEnv("NATAL_EXCLUDE_BODIES", "")) {
		cfg.ExcludedBodies = append(cfg.ExcludedBodies, domain.Body(name))
	}

	if v := getEnv("NATAL_CHINESE_FROM", ""); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NATAL_CHINESE_FROM %q: %w", v, err)
		}
		cfg.ChineseYearFrom = y
	}
	if v := getEnv("NATAL_CHINESE_TO", ""); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NATAL_CHINESE_TO %q: %w", v, err)
		}
		cfg.ChineseYearTo = y
	}
	if cfg.ChineseYearFrom > cfg.ChineseYearTo {
		return nil, fmt.Errorf("NATAL_CHINESE_FROM %d exceeds NATAL_CHINESE_TO %d",
			cfg.ChineseYearFrom, cfg.ChineseYearTo)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
