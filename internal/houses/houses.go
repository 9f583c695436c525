// Package houses computes the Ascendant, Midheaven and the twelve house
// cusps, and assigns bodies to houses.
package houses

import (
	"math"
	"time"

	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/ephemeris"
	"github.com/aristath/natal/internal/zodiac"
	"github.com/rs/zerolog"
)

// HouseSystemID pins the house-division algorithm: Placidus, with Porphyry
// trisection above the fallback latitude where the Placidus semi-arc
// iteration degenerates. Changing the system invalidates every cached chart.
const HouseSystemID = "placidus-porphyry66-v1"

// Above this absolute latitude intermediate cusps use Porphyry trisection.
const polarFallbackLatitude = 66.0

const radToDeg = 180 / math.Pi

// Calculator computes house cusps for a birth instant and location.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a house calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{log: log.With().Str("component", "houses").Logger()}
}

// Cusps returns the tropical house cusps for the given UTC instant and
// geographic coordinates (east longitude positive).
func (c *Calculator) Cusps(t time.Time, latitude, longitude float64) domain.HouseCusps {
	jd := ephemeris.JulianDay(t)
	T := ephemeris.JulianCenturies(jd)

	// Mean obliquity of the ecliptic, of date.
	obliquity := 23.4392911 - 0.0130042*T - 1.64e-7*T*T + 5.04e-7*T*T*T

	// Greenwich mean sidereal time in degrees, then local: RAMC.
	gmst := 280.46061837 + 360.98564736629*(jd-2451545.0) +
		0.000387933*T*T - T*T*T/38710000.0
	ramc := zodiac.Normalize(gmst + longitude)

	mc := eclipticFromRA(ramc, obliquity)
	asc := ascendant(ramc, latitude, obliquity)

	var cusps [12]float64
	cusps[0] = asc
	cusps[3] = zodiac.Normalize(mc + 180)
	cusps[6] = zodiac.Normalize(asc + 180)
	cusps[9] = mc

	if intermediate, ok := c.placidusIntermediate(ramc, latitude, obliquity); ok {
		cusps[10] = intermediate[0] // house 11
		cusps[11] = intermediate[1] // house 12
		cusps[1] = intermediate[2]  // house 2
		cusps[2] = intermediate[3]  // house 3
	} else {
		c.log.Debug().
			Float64("latitude", latitude).
			Msg("Placidus degenerate, using Porphyry trisection")
		porphyryIntermediate(&cusps, asc, mc)
	}

	// Opposite cusps mirror across the chart.
	cusps[4] = zodiac.Normalize(cusps[10] + 180)
	cusps[5] = zodiac.Normalize(cusps[11] + 180)
	cusps[7] = zodiac.Normalize(cusps[1] + 180)
	cusps[8] = zodiac.Normalize(cusps[2] + 180)

	return domain.HouseCusps{
		System:    domain.SystemTropical,
		Cusps:     cusps,
		Ascendant: asc,
		Midheaven: mc,
	}
}

// Sidereal derives the sidereal cusps from tropical ones by applying the
// ayanamsa at the chart epoch. The physical arcs are identical; only the
// reference frame shifts.
func Sidereal(tropical domain.HouseCusps, t time.Time) domain.HouseCusps {
	out := domain.HouseCusps{System: domain.SystemSidereal}
	for i, cusp := range tropical.Cusps {
		out.Cusps[i] = zodiac.ToSidereal(cusp, t)
	}
	out.Ascendant = zodiac.ToSidereal(tropical.Ascendant, t)
	out.Midheaven = zodiac.ToSidereal(tropical.Midheaven, t)
	return out
}

// Assign returns the house (1-12) containing the longitude. Cusp arcs wrap
// across 0/360, so containment is modular: a longitude is in house n when its
// forward distance from cusp n is smaller than the forward arc to cusp n+1.
func Assign(longitude float64, cusps domain.HouseCusps) int {
	for i := 0; i < 12; i++ {
		start := cusps.Cusps[i]
		end := cusps.Cusps[(i+1)%12]
		arc := zodiac.Normalize(end - start)
		if arc == 0 {
			continue
		}
		if zodiac.Normalize(longitude-start) < arc {
			return i + 1
		}
	}
	// Unreachable with a proper cusp partition; house 1 only as a guard.
	return 1
}

// eclipticFromRA converts a right ascension on the ecliptic (latitude zero)
// to ecliptic longitude.
func eclipticFromRA(ra, obliquity float64) float64 {
	lon := math.Atan2(sinDeg(ra), cosDeg(ra)*cosDeg(obliquity)) * radToDeg
	return zodiac.Normalize(lon)
}

// ascendant returns the ecliptic degree rising on the eastern horizon.
func ascendant(ramc, latitude, obliquity float64) float64 {
	lon := math.Atan2(
		cosDeg(ramc),
		-(sinDeg(ramc)*cosDeg(obliquity) + math.Tan(latitude*math.Pi/180)*sinDeg(obliquity)),
	) * radToDeg
	return zodiac.Normalize(lon)
}

// placidusIntermediate computes cusps 11, 12, 2 and 3 by the Placidus
// semi-arc condition: each cusp is the ecliptic point whose hour angle covers
// the matching fraction of its own diurnal (or nocturnal) semi-arc. Solved by
// fixed-point iteration on right ascension; reports ok=false when the
// iteration degenerates (circumpolar ecliptic points near the poles).
func (c *Calculator) placidusIntermediate(ramc, latitude, obliquity float64) ([4]float64, bool) {
	if math.Abs(latitude) > polarFallbackLatitude {
		return [4]float64{}, false
	}

	specs := []struct {
		offset   float64
		fraction float64
	}{
		{30, 1.0 / 3.0},  // house 11
		{60, 2.0 / 3.0},  // house 12
		{120, 2.0 / 3.0}, // house 2
		{150, 1.0 / 3.0}, // house 3
	}

	tanLat := math.Tan(latitude * math.Pi / 180)

	var out [4]float64
	for i, spec := range specs {
		ra := ramc + spec.offset
		converged := false
		for iter := 0; iter < 50; iter++ {
			lon := eclipticFromRA(ra, obliquity)
			decl := math.Asin(sinDeg(obliquity)*sinDeg(lon)) * radToDeg
			x := tanLat * math.Tan(decl*math.Pi/180)
			if math.Abs(x) >= 1 {
				return [4]float64{}, false
			}
			ad := math.Asin(x) * radToDeg
			next := ramc + spec.offset + spec.fraction*ad
			if math.Abs(next-ra) < 1e-7 {
				ra = next
				converged = true
				break
			}
			ra = next
		}
		if !converged {
			return [4]float64{}, false
		}
		out[i] = eclipticFromRA(ra, obliquity)
	}
	return out, true
}

// porphyryIntermediate trisects the quadrant arcs between the angles.
func porphyryIntermediate(cusps *[12]float64, asc, mc float64) {
	upper := zodiac.Normalize(asc - mc) // MC -> Asc arc
	cusps[10] = zodiac.Normalize(mc + upper/3)
	cusps[11] = zodiac.Normalize(mc + 2*upper/3)

	ic := zodiac.Normalize(mc + 180)
	lower := zodiac.Normalize(ic - asc) // Asc -> IC arc
	cusps[1] = zodiac.Normalize(asc + lower/3)
	cusps[2] = zodiac.Normalize(asc + 2*lower/3)
}

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }
func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }
