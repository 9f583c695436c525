// Package ephemeris provides celestial position sources. Positions are
// geocentric ecliptic coordinates referred to the equinox of date, which is
// the frame tropical longitudes are defined in.
package ephemeris

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/natal/internal/domain"
)

// Supported ephemeris span. Instants outside fail with domain.ErrEphemerisRange.
var (
	RangeStart = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	RangeEnd   = time.Date(2400, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Ecliptic is a geocentric ecliptic position at one instant.
type Ecliptic struct {
	Longitude float64 `json:"longitude"`   // degrees, [0, 360), equinox of date
	Latitude  float64 `json:"latitude"`    // degrees
	Distance  float64 `json:"distance_au"` // AU; zero for point objects (nodes)
}

// Source returns positions for every tracked body at a UTC instant.
// Implementations are pure functions of time and safe for concurrent use.
// The Positions call is the engine's sole suspension point; callers bound it
// with a context deadline and own any retry policy.
type Source interface {
	Positions(ctx context.Context, t time.Time) (map[domain.Body]Ecliptic, error)
	// ModelID identifies the pinned position model for chart auditing.
	ModelID() string
}

// CheckRange validates that the instant lies within the supported span.
func CheckRange(t time.Time) error {
	if t.Before(RangeStart) || !t.Before(RangeEnd) {
		return fmt.Errorf("%w: %s not in [%s, %s)",
			domain.ErrEphemerisRange,
			t.UTC().Format(time.RFC3339),
			RangeStart.Format("2006-01-02"),
			RangeEnd.Format("2006-01-02"))
	}
	return nil
}

// Retrogrades derives per-body retrograde flags by central difference of the
// longitude over a one-day window. The Sun and Moon never appear retrograde
// from Earth and are always false.
func Retrogrades(ctx context.Context, src Source, t time.Time) (map[domain.Body]bool, error) {
	const halfWindow = 12 * time.Hour

	// Shift the window inward at the span edges so both samples stay valid.
	t0, t1 := t.Add(-halfWindow), t.Add(halfWindow)
	if t0.Before(RangeStart) {
		t0, t1 = RangeStart, RangeStart.Add(2*halfWindow)
	} else if !t1.Before(RangeEnd) {
		t0, t1 = RangeEnd.Add(-2*halfWindow), RangeEnd.Add(-time.Second)
	}

	before, err := src.Positions(ctx, t0)
	if err != nil {
		return nil, err
	}
	after, err := src.Positions(ctx, t1)
	if err != nil {
		return nil, err
	}

	flags := make(map[domain.Body]bool, len(after))
	for body, pb := range before {
		pa, ok := after[body]
		if !ok {
			continue
		}
		if body == domain.BodySun || body == domain.BodyMoon {
			flags[body] = false
			continue
		}
		// Signed longitude change, wrapped into (-180, 180].
		delta := pa.Longitude - pb.Longitude
		if delta > 180 {
			delta -= 360
		} else if delta <= -180 {
			delta += 360
		}
		flags[body] = delta < 0
	}
	return flags, nil
}
