package ephemeris

import (
	"math"
	"time"
)

// JulianDay converts a UTC instant to the Julian day number. The UT/TT
// difference (under two minutes across the supported span) is below the
// resolution this model targets and is ignored.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y, m := t.Year(), int(t.Month())
	d := float64(t.Day()) +
		(float64(t.Hour())+float64(t.Minute())/60+float64(t.Second())/3600)/24

	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) +
		d + float64(b) - 1524.5
}

// JulianCenturies returns Julian centuries since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

func sinDeg(d float64) float64 { return math.Sin(d * degToRad) }
func cosDeg(d float64) float64 { return math.Cos(d * degToRad) }

// solarLongitude returns the Sun's apparent geocentric ecliptic longitude
// (degrees, equinox of date) and distance (AU). Low-precision theory,
// good to well under an arcminute across the supported span.
func solarLongitude(T float64) (lon, dist float64) {
	l0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	m := 357.52911 + 35999.05029*T - 0.0001537*T*T
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T

	c := (1.914602-0.004817*T-0.000014*T*T)*sinDeg(m) +
		(0.019993-0.000101*T)*sinDeg(2*m) +
		0.000289*sinDeg(3*m)

	trueLon := l0 + c
	trueAnom := m + c

	dist = 1.000001018 * (1 - e*e) / (1 + e*cosDeg(trueAnom))

	// Aberration; nutation is below model resolution and omitted.
	lon = trueLon - 0.00569
	return lon, dist
}

// lunarPosition returns the Moon's geocentric ecliptic longitude and latitude
// (degrees, equinox of date) and distance (AU) from a truncated ELP-2000
// series. Worst-case longitude error is a few arcminutes, well inside the
// sub-degree target.
func lunarPosition(T float64) (lon, lat, dist float64) {
	// Mean elements (degrees).
	lp := 218.3164477 + 481267.88123421*T - 0.0015786*T*T // mean longitude
	d := 297.8501921 + 445267.1114034*T - 0.0018819*T*T   // mean elongation
	m := 357.5291092 + 35999.0502909*T - 0.0001536*T*T    // solar mean anomaly
	mp := 134.9633964 + 477198.8675055*T + 0.0087414*T*T  // lunar mean anomaly
	f := 93.2720950 + 483202.0175233*T - 0.0036539*T*T    // argument of latitude

	// Principal periodic terms (coefficients in degrees).
	lonTerms := []struct{ coeff, d, m, mp, f float64 }{
		{6.288774, 0, 0, 1, 0},
		{1.274027, 2, 0, -1, 0},
		{0.658314, 2, 0, 0, 0},
		{0.213618, 0, 0, 2, 0},
		{-0.185116, 0, 1, 0, 0},
		{-0.114332, 0, 0, 0, 2},
		{0.058793, 2, 0, -2, 0},
		{0.057066, 2, -1, -1, 0},
		{0.053322, 2, 0, 1, 0},
		{0.045758, 2, -1, 0, 0},
		{-0.040923, 0, 1, -1, 0},
		{-0.034720, 1, 0, 0, 0},
		{-0.030383, 0, 1, 1, 0},
		{0.015327, 2, 0, 0, -2},
		{-0.012528, 0, 0, 1, 2},
		{0.010980, 0, 0, 1, -2},
	}
	latTerms := []struct{ coeff, d, m, mp, f float64 }{
		{5.128122, 0, 0, 0, 1},
		{0.280602, 0, 0, 1, 1},
		{0.277693, 0, 0, 1, -1},
		{0.173237, 2, 0, 0, -1},
		{0.055413, 2, 0, -1, 1},
		{0.046271, 2, 0, -1, -1},
		{0.032573, 2, 0, 0, 1},
	}
	distTerms := []struct{ coeff, d, m, mp, f float64 }{ // kilometers
		{-20905.355, 0, 0, 1, 0},
		{-3699.111, 2, 0, -1, 0},
		{-2955.968, 2, 0, 0, 0},
		{-569.925, 0, 0, 2, 0},
		{48.888, 0, 1, 0, 0},
		{-3.149, 0, 0, 0, 2},
	}

	lon = lp
	for _, t := range lonTerms {
		lon += t.coeff * sinDeg(t.d*d+t.m*m+t.mp*mp+t.f*f)
	}
	lat = 0
	for _, t := range latTerms {
		lat += t.coeff * sinDeg(t.d*d+t.m*m+t.mp*mp+t.f*f)
	}
	distKm := 385000.56
	for _, t := range distTerms {
		distKm += t.coeff * cosDeg(t.d*d+t.m*m+t.mp*mp+t.f*f)
	}

	const kmPerAU = 149597870.7
	return lon, lat, distKm / kmPerAU
}

// meanLunarNode returns the mean longitude of the Moon's ascending node
// (degrees, equinox of date). The mean node regresses through the zodiac.
func meanLunarNode(T float64) float64 {
	return 125.0445479 - 1934.1362891*T + 0.0020754*T*T + T*T*T/467441.0
}
