package ephemeris

import "math"

// Keplerian mean elements and centennial rates for the major planets,
// heliocentric, J2000 ecliptic frame. Values are the JPL approximate elements
// fitted to the 1800 AD - 2050 AD span (Standish); beyond that span accuracy
// degrades gracefully, which is acceptable for sign/house/aspect work.
type elements struct {
	a, aDot       float64 // semi-major axis, AU (per century)
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination, deg
	l, lDot       float64 // mean longitude, deg
	peri, periDot float64 // longitude of perihelion, deg
	node, nodeDot float64 // longitude of ascending node, deg
}

var (
	elemMercury = elements{0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081}
	elemVenus = elements{0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418}
	elemEarthMoonBary = elements{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
		100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0}
	elemMars = elements{1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343}
	elemJupiter = elements{5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106}
	elemSaturn = elements{9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794}
	elemUranus = elements{19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589}
	elemNeptune = elements{30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664}
	elemPluto = elements{39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482}
)

// vec3 is a heliocentric position in AU, J2000 ecliptic frame.
type vec3 struct{ x, y, z float64 }

func (v vec3) sub(o vec3) vec3 { return vec3{v.x - o.x, v.y - o.y, v.z - o.z} }

func (v vec3) norm() float64 { return math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z) }

const degToRad = math.Pi / 180

// solveKepler solves M = E - e*sin(E) for the eccentric anomaly E (radians)
// by Newton iteration. Converges in a handful of steps for planetary
// eccentricities; Pluto (e~0.25) stays well inside the iteration budget.
func solveKepler(meanAnomaly, eccentricity float64) float64 {
	e := eccentricity
	ea := meanAnomaly + e*math.Sin(meanAnomaly)
	for i := 0; i < 20; i++ {
		delta := (meanAnomaly - (ea - e*math.Sin(ea))) / (1 - e*math.Cos(ea))
		ea += delta
		if math.Abs(delta) < 1e-10 {
			break
		}
	}
	return ea
}

// heliocentric propagates the mean elements to T (Julian centuries since
// J2000) and returns the heliocentric J2000 ecliptic position.
func (el elements) heliocentric(T float64) vec3 {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	inc := (el.i + el.iDot*T) * degToRad
	meanLon := el.l + el.lDot*T
	periLon := el.peri + el.periDot*T
	nodeLon := el.node + el.nodeDot*T

	// Mean anomaly and argument of perihelion.
	m := math.Mod(meanLon-periLon, 360) * degToRad
	w := (periLon - nodeLon) * degToRad
	om := nodeLon * degToRad

	ea := solveKepler(m, e)

	// Position in the orbital plane, perihelion on +x.
	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	cw, sw := math.Cos(w), math.Sin(w)
	co, so := math.Cos(om), math.Sin(om)
	ci, si := math.Cos(inc), math.Sin(inc)

	return vec3{
		x: (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp,
		y: (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp,
		z: (sw*si)*xp + (cw*si)*yp,
	}
}
