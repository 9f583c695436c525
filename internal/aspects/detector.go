package aspects

import (
	"math"
	"sort"

	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/zodiac"
	"github.com/rs/zerolog"
)

// Detector matches pairwise separations against the aspect table.
type Detector struct {
	table []Definition
	log   zerolog.Logger
}

// NewDetector creates a detector over the major table, plus the minor table
// when includeMinor is set.
func NewDetector(includeMinor bool, log zerolog.Logger) *Detector {
	return NewDetectorWithTable(Table(includeMinor), log)
}

// NewDetectorWithTable creates a detector over a custom aspect table.
// The table must be ordered by harmonic rank for tie-breaks to hold.
func NewDetectorWithTable(table []Definition, log zerolog.Logger) *Detector {
	return &Detector{
		table: table,
		log:   log.With().Str("component", "aspects").Logger(),
	}
}

// Detect computes aspects among one chart's bodies in the given zodiac
// system. Every unordered pair of distinct bodies is evaluated exactly once;
// a body never aspects itself. Output is ranked deterministically.
func (d *Detector) Detect(positions []domain.BodyPosition, system domain.ZodiacSystem) []domain.Aspect {
	var found []domain.Aspect
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			a, b := positions[i], positions[j]
			// Canonical pair order for determinism.
			if a.Body.Rank() > b.Body.Rank() {
				a, b = b, a
			}
			if aspect, ok := d.Match(a.Body, a.Longitude(system), b.Body, b.Longitude(system), system, system); ok {
				found = append(found, aspect)
			}
		}
	}
	Rank(found)
	d.log.Debug().
		Str("system", string(system)).
		Int("bodies", len(positions)).
		Int("aspects", len(found)).
		Msg("Detected aspects")
	return found
}

// Match evaluates a single ordered body pair. Longitudes may come from
// different zodiac systems (synastry cross-system runs); the separation
// computation is frame-agnostic. Returns false when no aspect type matches
// within its orb - no aspect is fabricated.
func (d *Detector) Match(bodyA domain.Body, lonA float64, bodyB domain.Body, lonB float64, systemA, systemB domain.ZodiacSystem) (domain.Aspect, bool) {
	separation := zodiac.Separation(lonA, lonB)

	best, ok := d.closest(separation)
	if !ok {
		return domain.Aspect{}, false
	}

	orb := math.Abs(separation - best.Angle)
	return domain.Aspect{
		BodyA:   bodyA,
		BodyB:   bodyB,
		Type:    best.Type,
		Angle:   best.Angle,
		Orb:     orb,
		Score:   1 - orb/best.MaxOrb,
		SystemA: systemA,
		SystemB: systemB,
	}, true
}

// closest resolves overlapping orb ranges: the type with the smallest orb
// wins; on an exact orb tie the lower harmonic wins. The table is stored in
// harmonic order, so a strict comparison implements the tie-break.
func (d *Detector) closest(separation float64) (Definition, bool) {
	var (
		best    Definition
		bestOrb = math.Inf(1)
		found   bool
	)
	for _, def := range d.table {
		orb := math.Abs(separation - def.Angle)
		if orb > def.MaxOrb {
			continue
		}
		if orb < bestOrb {
			best = def
			bestOrb = orb
			found = true
		}
	}
	return best, found
}

// Rank sorts aspects descending by score with fixed tie-breaks (body pair
// order, then type) so equal inputs always serialize identically.
func Rank(aspects []domain.Aspect) {
	sort.Slice(aspects, func(i, j int) bool {
		a, b := aspects[i], aspects[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.BodyA.Rank() != b.BodyA.Rank() {
			return a.BodyA.Rank() < b.BodyA.Rank()
		}
		if a.BodyB.Rank() != b.BodyB.Rank() {
			return a.BodyB.Rank() < b.BodyB.Rank()
		}
		return a.Type < b.Type
	})
}

// Top returns the strongest n aspects (or all of them when fewer exist).
// Input must already be ranked.
func Top(aspects []domain.Aspect, n int) []domain.Aspect {
	if n >= len(aspects) {
		return aspects
	}
	return aspects[:n]
}
