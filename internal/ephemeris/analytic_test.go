package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/natal/internal/domain"
)

func testSource() *AnalyticSource {
	return NewAnalyticSource(zerolog.Nop())
}

func TestAnalyticPositionsCoverAllBodies(t *testing.T) {
	positions, err := testSource().Positions(context.Background(),
		time.Date(1990, time.January, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	for _, body := range domain.AllBodies {
		p, ok := positions[body]
		require.True(t, ok, "missing %s", body)
		assert.GreaterOrEqual(t, p.Longitude, 0.0, "%s", body)
		assert.Less(t, p.Longitude, 360.0, "%s", body)
	}
}

func TestAnalyticSunCapricornScenario(t *testing.T) {
	// 1990-01-01 12:00 UTC: the Sun sits in Capricorn (270-300 degrees
	// tropical), close to 280.9.
	positions, err := testSource().Positions(context.Background(),
		time.Date(1990, time.January, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	sun := positions[domain.BodySun]
	assert.GreaterOrEqual(t, sun.Longitude, 270.0)
	assert.Less(t, sun.Longitude, 300.0)
	assert.InDelta(t, 280.9, sun.Longitude, 0.3)
	assert.InDelta(t, 0.983, sun.Distance, 0.01) // perihelion is early January
}

func TestAnalyticDeterminism(t *testing.T) {
	instant := time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC)

	first, err := testSource().Positions(context.Background(), instant)
	require.NoError(t, err)
	second, err := testSource().Positions(context.Background(), instant)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyticRange(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		wantErr bool
	}{
		{name: "before span", instant: time.Date(1799, time.December, 31, 23, 59, 0, 0, time.UTC), wantErr: true},
		{name: "start of span", instant: RangeStart, wantErr: false},
		{name: "inside span", instant: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), wantErr: false},
		{name: "end of span", instant: RangeEnd, wantErr: true},
		{name: "far future", instant: time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSource().Positions(context.Background(), tt.instant)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrEphemerisRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSouthNodeOppositeNorthNode(t *testing.T) {
	positions, err := testSource().Positions(context.Background(),
		time.Date(2010, time.March, 15, 6, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	north := positions[domain.BodyNorthNode].Longitude
	south := positions[domain.BodySouthNode].Longitude
	diff := south - north
	if diff < 0 {
		diff += 360
	}
	assert.InDelta(t, 180.0, diff, 1e-9)
}

func TestRetrogrades(t *testing.T) {
	// Mercury was retrograde throughout late August / early September 2023.
	instant := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)

	flags, err := Retrogrades(context.Background(), testSource(), instant)
	require.NoError(t, err)

	assert.True(t, flags[domain.BodyMercury], "Mercury should be retrograde")
	assert.False(t, flags[domain.BodySun], "the Sun is never retrograde")
	assert.False(t, flags[domain.BodyMoon], "the Moon is never retrograde")
	// The mean node regresses continuously.
	assert.True(t, flags[domain.BodyNorthNode])
}

func TestRetrogradesAtSpanEdges(t *testing.T) {
	// The sampling window shifts inward at the edges instead of failing.
	_, err := Retrogrades(context.Background(), testSource(), RangeStart)
	assert.NoError(t, err)

	_, err = Retrogrades(context.Background(), testSource(), RangeEnd.Add(-time.Hour))
	assert.NoError(t, err)
}

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected float64
	}{
		{
			name:     "J2000 epoch",
			instant:  time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
		},
		{
			name:     "midnight UTC ends in .5",
			instant:  time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: 2451544.5,
		},
		{
			name:     "gregorian reform era handled by calendar rule",
			instant:  time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: 2415020.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, JulianDay(tt.instant), 1e-6)
		})
	}
}

func TestLunarMotionDirection(t *testing.T) {
	// The Moon covers ~13 degrees per day prograde.
	src := testSource()
	day0, err := src.Positions(context.Background(), time.Date(2015, time.May, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	day1, err := src.Positions(context.Background(), time.Date(2015, time.May, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	delta := day1[domain.BodyMoon].Longitude - day0[domain.BodyMoon].Longitude
	if delta < 0 {
		delta += 360
	}
	assert.InDelta(t, 13.2, delta, 2.0)
}
