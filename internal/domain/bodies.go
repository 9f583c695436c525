// Package domain provides core domain models and types for chart computation.
package domain

// Body identifies a tracked celestial body or chart point.
type Body string

const (
	BodySun       Body = "SUN"
	BodyMoon      Body = "MOON"
	BodyMercury   Body = "MERCURY"
	BodyVenus     Body = "VENUS"
	BodyMars      Body = "MARS"
	BodyJupiter   Body = "JUPITER"
	BodySaturn    Body = "SATURN"
	BodyUranus    Body = "URANUS"
	BodyNeptune   Body = "NEPTUNE"
	BodyPluto     Body = "PLUTO"
	BodyNorthNode Body = "NORTH_NODE"
	BodySouthNode Body = "SOUTH_NODE"
	BodyChiron    Body = "CHIRON"
)

// AllBodies is the canonical body ordering. Pair ordering in aspect output and
// all deterministic tie-breaks derive from the index in this slice.
var AllBodies = []Body{
	BodySun,
	BodyMoon,
	BodyMercury,
	BodyVenus,
	BodyMars,
	BodyJupiter,
	BodySaturn,
	BodyUranus,
	BodyNeptune,
	BodyPluto,
	BodyNorthNode,
	BodySouthNode,
	BodyChiron,
}

var bodyRank = func() map[Body]int {
	m := make(map[Body]int, len(AllBodies))
	for i, b := range AllBodies {
		m[b] = i
	}
	return m
}()

// Rank returns the position of the body in the canonical ordering.
// Unknown bodies sort after all known ones.
func (b Body) Rank() int {
	if r, ok := bodyRank[b]; ok {
		return r
	}
	return len(AllBodies)
}

// ZodiacSystem selects the reference frame longitudes are expressed in.
type ZodiacSystem string

const (
	SystemTropical ZodiacSystem = "tropical"
	SystemSidereal ZodiacSystem = "sidereal"
)

// Sign is one of the twelve 30-degree zodiac segments.
type Sign string

const (
	SignAries       Sign = "ARIES"
	SignTaurus      Sign = "TAURUS"
	SignGemini      Sign = "GEMINI"
	SignCancer      Sign = "CANCER"
	SignLeo         Sign = "LEO"
	SignVirgo       Sign = "VIRGO"
	SignLibra       Sign = "LIBRA"
	SignScorpio     Sign = "SCORPIO"
	SignSagittarius Sign = "SAGITTARIUS"
	SignCapricorn   Sign = "CAPRICORN"
	SignAquarius    Sign = "AQUARIUS"
	SignPisces      Sign = "PISCES"
)

// Signs is the canonical sign ordering, Aries first.
var Signs = []Sign{
	SignAries, SignTaurus, SignGemini, SignCancer,
	SignLeo, SignVirgo, SignLibra, SignScorpio,
	SignSagittarius, SignCapricorn, SignAquarius, SignPisces,
}
