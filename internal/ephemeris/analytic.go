package ephemeris

import (
	"context"
	"math"
	"time"

	"github.com/aristath/natal/internal/domain"
	"github.com/rs/zerolog"
)

// AnalyticModelID pins the built-in position model.
const AnalyticModelID = "analytic-v1"

// Pinned osculating elements for Chiron (heliocentric, J2000 ecliptic,
// epoch J2000.0). Chiron's orbit is perturbed by Saturn; a fixed-element
// propagation is good to a degree or two across the supported span, which is
// sufficient for sign and aspect work.
var chironElements = struct {
	a, e, i, node, peri, m0, n float64
}{
	a:    13.6981,
	e:    0.38298,
	i:    6.9352,
	node: 209.282,
	peri: 339.417,
	m0:   28.4, // mean anomaly at J2000.0
	n:    360.0 / (50.54 * 365.25),
}

// AnalyticSource computes positions from built-in analytic models: a
// low-precision solar theory, a truncated lunar series, Keplerian mean
// elements for the planets and pinned elements for Chiron. It holds no
// state and is safe for concurrent use.
type AnalyticSource struct {
	log zerolog.Logger
}

// NewAnalyticSource creates the built-in analytic position source.
func NewAnalyticSource(log zerolog.Logger) *AnalyticSource {
	return &AnalyticSource{log: log.With().Str("component", "ephemeris").Logger()}
}

// ModelID identifies the pinned position model.
func (s *AnalyticSource) ModelID() string { return AnalyticModelID }

// Positions returns geocentric ecliptic positions (equinox of date) for all
// tracked bodies. Pure function of the instant.
func (s *AnalyticSource) Positions(ctx context.Context, t time.Time) (map[domain.Body]Ecliptic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := CheckRange(t); err != nil {
		return nil, err
	}

	jd := JulianDay(t)
	T := JulianCenturies(jd)

	// General precession in longitude from J2000 to date; the Keplerian
	// elements produce J2000-frame longitudes while tropical longitudes are
	// referred to the equinox of date.
	precession := 1.39697128*T + 0.0003086*T*T

	out := make(map[domain.Body]Ecliptic, len(domain.AllBodies))

	sunLon, sunDist := solarLongitude(T)
	out[domain.BodySun] = Ecliptic{Longitude: norm360(sunLon), Distance: sunDist}

	moonLon, moonLat, moonDist := lunarPosition(T)
	out[domain.BodyMoon] = Ecliptic{Longitude: norm360(moonLon), Latitude: moonLat, Distance: moonDist}

	earth := elemEarthMoonBary.heliocentric(T)
	planets := map[domain.Body]elements{
		domain.BodyMercury: elemMercury,
		domain.BodyVenus:   elemVenus,
		domain.BodyMars:    elemMars,
		domain.BodyJupiter: elemJupiter,
		domain.BodySaturn:  elemSaturn,
		domain.BodyUranus:  elemUranus,
		domain.BodyNeptune: elemNeptune,
		domain.BodyPluto:   elemPluto,
	}
	for body, el := range planets {
		out[body] = geocentric(el.heliocentric(T), earth, precession)
	}

	ch := keplerFromPinned(jd)
	out[domain.BodyChiron] = geocentric(ch, earth, precession)

	node := norm360(meanLunarNode(T))
	out[domain.BodyNorthNode] = Ecliptic{Longitude: node}
	out[domain.BodySouthNode] = Ecliptic{Longitude: norm360(node + 180)}

	return out, nil
}

// geocentric converts a heliocentric J2000 position to geocentric ecliptic
// longitude/latitude of date.
func geocentric(planet, earth vec3, precession float64) Ecliptic {
	g := planet.sub(earth)
	lon := math.Atan2(g.y, g.x) / degToRad
	lat := math.Atan2(g.z, math.Hypot(g.x, g.y)) / degToRad
	return Ecliptic{
		Longitude: norm360(lon + precession),
		Latitude:  lat,
		Distance:  g.norm(),
	}
}

// keplerFromPinned propagates Chiron's pinned elements to the given Julian day.
func keplerFromPinned(jd float64) vec3 {
	c := chironElements
	el := elements{
		a: c.a, e: c.e, i: c.i,
		node: c.node,
		peri: c.node + c.peri, // stored as argument of perihelion
		l:    c.node + c.peri + c.m0 + c.n*(jd-2451545.0),
	}
	return el.heliocentric(0)
}

func norm360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
