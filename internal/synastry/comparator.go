// Package synastry cross-compares two assembled charts.
package synastry

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/natal/internal/aspects"
	"github.com/aristath/natal/internal/domain"
)

// Comparator computes cross-chart aspects across the four zodiac system
// pairings. Comparisons are exhaustive: every body of chart A against every
// body of chart B, same-body pairs included, no sampling or pruning.
type Comparator struct {
	detector *aspects.Detector
	log      zerolog.Logger
}

// NewComparator creates a comparator sharing the natal aspect table.
func NewComparator(detector *aspects.Detector, log zerolog.Logger) *Comparator {
	return &Comparator{
		detector: detector,
		log:      log.With().Str("component", "synastry").Logger(),
	}
}

// Compare returns the synastry result for two charts. The four labeled
// subsets (tropical-tropical, sidereal-sidereal, sidereal-tropical,
// tropical-sidereal) are kept separate; same-system and cross-system aspects
// carry different interpretive weight downstream and are never merged.
func (c *Comparator) Compare(chartA, chartB *domain.Chart) *domain.SynastryResult {
	result := &domain.SynastryResult{
		ID:           uuid.New().String(),
		FingerprintA: chartA.Fingerprint,
		FingerprintB: chartB.Fingerprint,
		Subsets:      make([]domain.SynastrySubset, 0, len(domain.SystemPairs)),
	}

	for _, pair := range domain.SystemPairs {
		subset := c.compareSubset(chartA, chartB, pair)
		result.Subsets = append(result.Subsets, subset)
	}

	c.log.Debug().
		Str("fingerprint_a", chartA.Fingerprint).
		Str("fingerprint_b", chartB.Fingerprint).
		Msg("Computed synastry")
	return result
}

// compareSubset runs the ordered cross product for one system pairing.
// BodyA always belongs to chart A and BodyB to chart B, so the pair (A.Sun,
// B.Moon) is distinct from (A.Moon, B.Sun) and both are evaluated.
func (c *Comparator) compareSubset(chartA, chartB *domain.Chart, pair domain.SystemPair) domain.SynastrySubset {
	var found []domain.Aspect
	for i := range chartA.Positions {
		pa := &chartA.Positions[i]
		for j := range chartB.Positions {
			pb := &chartB.Positions[j]
			aspect, ok := c.detector.Match(
				pa.Body, pa.Longitude(pair.A),
				pb.Body, pb.Longitude(pair.B),
				pair.A, pair.B,
			)
			if !ok {
				continue
			}
			found = append(found, aspect)
		}
	}
	aspects.Rank(found)

	return domain.SynastrySubset{
		Pair:    pair,
		Aspects: found,
		Summary: summarize(found),
	}
}

// summarize aggregates a subset for downstream ranking consumers.
func summarize(found []domain.Aspect) domain.SubsetSummary {
	if len(found) == 0 {
		return domain.SubsetSummary{}
	}
	scores := make([]float64, len(found))
	orbs := make([]float64, len(found))
	for i, a := range found {
		scores[i] = a.Score
		orbs[i] = a.Orb
	}
	summary := domain.SubsetSummary{
		Count:     len(found),
		MeanScore: stat.Mean(scores, nil),
		MeanOrb:   stat.Mean(orbs, nil),
	}
	if len(found) > 1 {
		summary.ScoreStdDev = stat.StdDev(scores, nil)
	}
	return summary
}
