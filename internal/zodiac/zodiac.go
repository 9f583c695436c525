// Package zodiac provides angle normalization, the ayanamsa model and
// dual-system sign derivation.
package zodiac

import (
	"math"
	"time"

	"github.com/aristath/natal/internal/domain"
)

// AyanamsaModelID is the version pin of the precession model. Every chart ever
// compared in synastry must be computed with the same model; changing it
// invalidates fingerprint-based caching owned by the caller.
const AyanamsaModelID = "lahiri-linear-v1"

// Lahiri ayanamsa, linear approximation anchored at J2000.0.
const (
	ayanamsaAtJ2000   = 23.85236            // degrees at 2000-01-01 12:00 TT
	precessionPerYear = 50.28796 / 3600.0   // degrees per Julian year
	julianYearHours   = 365.25 * 24.0
)

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// Ayanamsa returns the tropical-sidereal offset in degrees at the given epoch.
func Ayanamsa(t time.Time) float64 {
	years := t.Sub(j2000).Hours() / julianYearHours
	return ayanamsaAtJ2000 + precessionPerYear*years
}

// ToSidereal converts a tropical longitude to the sidereal longitude at the
// given epoch.
func ToSidereal(tropicalLongitude float64, t time.Time) float64 {
	return Normalize(tropicalLongitude - Ayanamsa(t))
}

// Normalize wraps an angle into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Separation returns the minimal angular separation between two longitudes,
// in [0, 180]. Symmetric in its arguments.
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignOf returns the zodiac sign containing the longitude. Signs are the
// twelve fixed 30-degree segments, identically for tropical and sidereal
// longitudes.
func SignOf(longitude float64) domain.Sign {
	idx := int(Normalize(longitude) / 30)
	if idx > 11 { // guards the 360.0 edge after float rounding
		idx = 11
	}
	return domain.Signs[idx]
}

// DegreeInSign returns the longitude's offset within its sign, in [0, 30).
func DegreeInSign(longitude float64) float64 {
	return math.Mod(Normalize(longitude), 30)
}
