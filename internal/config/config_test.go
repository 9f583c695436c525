package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/natal/internal/domain"
)

func clearNatalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NATAL_LOG_LEVEL", "NATAL_EPHEMERIS_DB", "NATAL_EPHEMERIS_TIMEOUT",
		"NATAL_COORD_PRECISION", "NATAL_MINOR_ASPECTS", "NATAL_EXCLUDE_BODIES",
		"NATAL_CHINESE_FROM", "NATAL_CHINESE_TO",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearNatalEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.EphemerisDBPath)
	assert.Equal(t, 5*time.Second, cfg.EphemerisTimeout)
	assert.Equal(t, 4, cfg.CoordinatePrecision)
	assert.True(t, cfg.IncludeMinorAspects)
	assert.Empty(t, cfg.ExcludedBodies)
	assert.Equal(t, 1900, cfg.ChineseYearFrom)
	assert.Equal(t, 2100, cfg.ChineseYearTo)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearNatalEnv(t)
	t.Setenv("NATAL_LOG_LEVEL", "debug")
	t.Setenv("NATAL_EPHEMERIS_DB", "/var/lib/natal/ephemeris.db")
	t.Setenv("NATAL_EPHEMERIS_TIMEOUT", "250ms")
	t.Setenv("NATAL_COORD_PRECISION", "2")
	t.Setenv("NATAL_MINOR_ASPECTS", "false")
	t.Setenv("NATAL_EXCLUDE_BODIES", "CHIRON, NORTH_NODE")
	t.Setenv("NATAL_CHINESE_FROM", "1950")
	t.Setenv("NATAL_CHINESE_TO", "2050")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/lib/natal/ephemeris.db", cfg.EphemerisDBPath)
	assert.Equal(t, 250*time.Millisecond, cfg.EphemerisTimeout)
	assert.Equal(t, 2, cfg.CoordinatePrecision)
	assert.False(t, cfg.IncludeMinorAspects)
	assert.Equal(t, []domain.Body{domain.BodyChiron, domain.BodyNorthNode}, cfg.ExcludedBodies)
	assert.Equal(t, 1950, cfg.ChineseYearFrom)
	assert.Equal(t, 2050, cfg.ChineseYearTo)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed timeout", "NATAL_EPHEMERIS_TIMEOUT", "soon"},
		{"non-numeric precision", "NATAL_COORD_PRECISION", "four"},
		{"precision above range", "NATAL_COORD_PRECISION", "9"},
		{"negative precision", "NATAL_COORD_PRECISION", "-1"},
		{"non-numeric chinese bound", "NATAL_CHINESE_FROM", "MCMXC"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearNatalEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsInvertedChineseRange(t *testing.T) {
	clearNatalEnv(t)
	t.Setenv("NATAL_CHINESE_FROM", "2050")
	t.Setenv("NATAL_CHINESE_TO", "1950")
	_, err := Load()
	assert.Error(t, err)
}
