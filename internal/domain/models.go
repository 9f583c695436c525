package domain

import "time"

// Date is a calendar date without a time-of-day component.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// Valid reports whether the date is a real Gregorian calendar date.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// BirthInput holds the raw birth data a chart is computed from.
// Invariant: when UnknownTime is true, Hour/Minute are ignored for all
// time-sensitive derivations (houses, ascendant, fast-body sub-degree
// precision) but date-only derivations (signs, numerology, chinese zodiac)
// are unaffected.
type BirthInput struct {
	Name        string  `json:"name"`
	Date        Date    `json:"date"`
	Hour        int     `json:"hour"`
	Minute      int     `json:"minute"`
	UnknownTime bool    `json:"unknown_time"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"` // IANA identifier (e.g. "Europe/Athens") or fixed offset "UTC+02:00"
}

// BodyPosition is the dual-system position of one body. Immutable once computed.
// House is nil when birth time is unknown; nil means "house unknown", never a
// default house.
type BodyPosition struct {
	Body              Body    `json:"body"`
	TropicalLongitude float64 `json:"tropical_longitude"`
	SiderealLongitude float64 `json:"sidereal_longitude"`
	Latitude          float64 `json:"latitude"`
	Distance          float64 `json:"distance_au"`
	TropicalSign      Sign    `json:"tropical_sign"`
	TropicalDegree    float64 `json:"tropical_degree"`
	SiderealSign      Sign    `json:"sidereal_sign"`
	SiderealDegree    float64 `json:"sidereal_degree"`
	House             *int    `json:"house,omitempty"`
	Retrograde        bool    `json:"retrograde"`
}

// Longitude returns the body's longitude in the requested zodiac system.
func (p BodyPosition) Longitude(system ZodiacSystem) float64 {
	if system == SystemSidereal {
		return p.SiderealLongitude
	}
	return p.TropicalLongitude
}

// HouseCusps holds the twelve cusp longitudes of one zodiac system.
// Cusps[0] is the first-house cusp and equals the Ascendant.
type HouseCusps struct {
	System    ZodiacSystem `json:"system"`
	Cusps     [12]float64  `json:"cusps"`
	Ascendant float64      `json:"ascendant"`
	Midheaven float64      `json:"midheaven"`
}

// AspectType names an angular relationship between two bodies.
type AspectType string

const (
	AspectConjunction    AspectType = "CONJUNCTION"
	AspectOpposition     AspectType = "OPPOSITION"
	AspectTrine          AspectType = "TRINE"
	AspectSquare         AspectType = "SQUARE"
	AspectSextile        AspectType = "SEXTILE"
	AspectQuincunx       AspectType = "QUINCUNX"
	AspectSemisextile    AspectType = "SEMISEXTILE"
	AspectSemisquare     AspectType = "SEMISQUARE"
	AspectSesquiquadrate AspectType = "SESQUIQUADRATE"
	AspectQuintile       AspectType = "QUINTILE"
)

// Aspect is a matched angular relationship between an ordered pair of bodies.
// For natal aspects BodyA precedes BodyB in the canonical body ordering; for
// synastry aspects BodyA belongs to chart A and BodyB to chart B.
type Aspect struct {
	BodyA   Body         `json:"body_a"`
	BodyB   Body         `json:"body_b"`
	Type    AspectType   `json:"type"`
	Angle   float64      `json:"angle"`
	Orb     float64      `json:"orb"`
	Score   float64      `json:"score"`
	SystemA ZodiacSystem `json:"system_a"`
	SystemB ZodiacSystem `json:"system_b"`
}

// NumerologyProfile holds the three derived numerology numbers.
// Values are in {1..9, 11, 22, 33}.
type NumerologyProfile struct {
	LifePath   int `json:"life_path"`
	Expression int `json:"expression"`
	DayNumber  int `json:"day_number"`
}

// Animal is one of the twelve chinese zodiac animal signs.
type Animal string

const (
	AnimalRat     Animal = "RAT"
	AnimalOx      Animal = "OX"
	AnimalTiger   Animal = "TIGER"
	AnimalRabbit  Animal = "RABBIT"
	AnimalDragon  Animal = "DRAGON"
	AnimalSnake   Animal = "SNAKE"
	AnimalHorse   Animal = "HORSE"
	AnimalGoat    Animal = "GOAT"
	AnimalMonkey  Animal = "MONKEY"
	AnimalRooster Animal = "ROOSTER"
	AnimalDog     Animal = "DOG"
	AnimalPig     Animal = "PIG"
)

// Animals is the twelve-year cycle in order, anchored so that 1984 is Rat.
var Animals = []Animal{
	AnimalRat, AnimalOx, AnimalTiger, AnimalRabbit,
	AnimalDragon, AnimalSnake, AnimalHorse, AnimalGoat,
	AnimalMonkey, AnimalRooster, AnimalDog, AnimalPig,
}

// Element is one of the five chinese elements.
type Element string

const (
	ElementWood  Element = "WOOD"
	ElementFire  Element = "FIRE"
	ElementEarth Element = "EARTH"
	ElementMetal Element = "METAL"
	ElementWater Element = "WATER"
)

// ChineseZodiacProfile holds the derived animal sign and element.
type ChineseZodiacProfile struct {
	Animal Animal `json:"animal"`
	// Element is derived from the heavenly-stem cycle (two years per element).
	Element Element `json:"element"`
	// CycleYear is the year the birth date belongs to after the lunar
	// new-year boundary adjustment.
	CycleYear int `json:"cycle_year"`
}

// ModelPins records the version-pinned algorithm choices a chart was computed
// with. Changing any pin invalidates fingerprint-based comparisons, so pins
// travel with the chart.
type ModelPins struct {
	Ayanamsa    string `json:"ayanamsa"`
	HouseSystem string `json:"house_system"`
	Ephemeris   string `json:"ephemeris"`
}

// Chart is the assembled, immutable result of a single chart computation.
// It is a value object owned by the caller; nothing in this module mutates a
// Chart after assembly.
type Chart struct {
	Input       BirthInput                `json:"input"`
	InstantUTC  time.Time                 `json:"instant_utc"`
	Positions   []BodyPosition            `json:"positions"`
	Tropical    *HouseCusps               `json:"tropical_houses,omitempty"`
	Sidereal    *HouseCusps               `json:"sidereal_houses,omitempty"`
	Aspects     map[ZodiacSystem][]Aspect `json:"aspects"`
	Numerology  NumerologyProfile         `json:"numerology"`
	Chinese     ChineseZodiacProfile      `json:"chinese_zodiac"`
	Fingerprint string                    `json:"fingerprint"`
	Pins        ModelPins                 `json:"pins"`
}

// TimeKnown reports whether the chart was computed with a known birth time.
// When false, house cusps and every per-body house are nil by contract.
func (c *Chart) TimeKnown() bool {
	return !c.Input.UnknownTime
}

// Position returns the position record for the given body, or nil if the body
// was excluded from this chart.
func (c *Chart) Position(b Body) *BodyPosition {
	for i := range c.Positions {
		if c.Positions[i].Body == b {
			return &c.Positions[i]
		}
	}
	return nil
}

// SystemPair labels one synastry comparison subset.
type SystemPair struct {
	A ZodiacSystem `json:"a"`
	B ZodiacSystem `json:"b"`
}

// SystemPairs is the fixed enumeration order of synastry subsets: the two
// same-system runs first, then the two cross-system runs. Subsets are never
// merged; same-system and cross-system aspects carry different interpretive
// weight downstream.
var SystemPairs = []SystemPair{
	{A: SystemTropical, B: SystemTropical},
	{A: SystemSidereal, B: SystemSidereal},
	{A: SystemSidereal, B: SystemTropical},
	{A: SystemTropical, B: SystemSidereal},
}

// SameSystem reports whether both longitudes come from the same zodiac system.
func (p SystemPair) SameSystem() bool { return p.A == p.B }

// Key is the stable serialization key of the pair, e.g. "tropical-sidereal".
func (p SystemPair) Key() string { return string(p.A) + "-" + string(p.B) }

// SubsetSummary aggregates one synastry subset for downstream ranking.
type SubsetSummary struct {
	Count       int     `json:"count"`
	MeanScore   float64 `json:"mean_score"`
	ScoreStdDev float64 `json:"score_std_dev"`
	MeanOrb     float64 `json:"mean_orb"`
}

// SynastrySubset is one labeled cross-comparison run.
type SynastrySubset struct {
	Pair    SystemPair    `json:"pair"`
	Aspects []Aspect      `json:"aspects"`
	Summary SubsetSummary `json:"summary"`
}

// SynastryResult is the cross-chart comparison of two charts. Created on
// demand; the core does not persist it.
type SynastryResult struct {
	ID           string           `json:"id"`
	FingerprintA string           `json:"fingerprint_a"`
	FingerprintB string           `json:"fingerprint_b"`
	Subsets      []SynastrySubset `json:"subsets"`
}
