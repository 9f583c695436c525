// Package chart assembles birth inputs into immutable Chart values and
// serializes them.
package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/natal/internal/aspects"
	"github.com/aristath/natal/internal/chinese"
	"github.com/aristath/natal/internal/config"
	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/ephemeris"
	"github.com/aristath/natal/internal/houses"
	"github.com/aristath/natal/internal/numerology"
	"github.com/aristath/natal/internal/zodiac"
)

// Assembler orchestrates the position source, coordinate transformation,
// house calculation, aspect detection and the calendrical derivers into one
// Chart value. It holds no mutable state and is safe for concurrent use;
// chart computations may run fully in parallel.
type Assembler struct {
	src      ephemeris.Source
	houses   *houses.Calculator
	detector *aspects.Detector
	chinese  *chinese.Deriver

	excluded       map[domain.Body]bool
	coordPrecision int
	timeout        time.Duration

	log zerolog.Logger
}

// NewAssembler wires an assembler from configuration and collaborators.
// The position source lifecycle (e.g. the ephemeris file handle) is owned by
// the caller.
func NewAssembler(cfg *config.Config, src ephemeris.Source, chineseDeriver *chinese.Deriver, log zerolog.Logger) *Assembler {
	excluded := make(map[domain.Body]bool, len(cfg.ExcludedBodies))
	for _, b := range cfg.ExcludedBodies {
		excluded[b] = true
	}
	return &Assembler{
		src:            src,
		houses:         houses.NewCalculator(log),
		detector:       aspects.NewDetector(cfg.IncludeMinorAspects, log),
		chinese:        chineseDeriver,
		excluded:       excluded,
		coordPrecision: cfg.CoordinatePrecision,
		timeout:        cfg.EphemerisTimeout,
		log:            log.With().Str("component", "chart").Logger(),
	}
}

// Detector exposes the shared aspect detector for the synastry comparator.
func (a *Assembler) Detector() *aspects.Detector { return a.detector }

// Compute assembles the chart for one birth input. The ephemeris lookup is
// the only suspension point and is bounded by the configured timeout on top
// of the caller's context; the core performs no retries.
func (a *Assembler) Compute(ctx context.Context, input domain.BirthInput) (*domain.Chart, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	instant, err := birthInstant(input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.src.Positions(ctx, instant)
	if err != nil {
		return nil, mapEphemerisErr(err)
	}
	retro, err := ephemeris.Retrogrades(ctx, a.src, instant)
	if err != nil {
		return nil, mapEphemerisErr(err)
	}

	chart := &domain.Chart{
		Input:      input,
		InstantUTC: instant,
		Aspects:    make(map[domain.ZodiacSystem][]domain.Aspect, 2),
		Pins: domain.ModelPins{
			Ayanamsa:    zodiac.AyanamsaModelID,
			HouseSystem: houses.HouseSystemID,
			Ephemeris:   a.src.ModelID(),
		},
	}

	// Houses first: positions carry their house assignment. Unknown birth
	// time is a first-class degraded mode, not an error: cusps stay nil and
	// every house field stays nil.
	var tropicalCusps *domain.HouseCusps
	if !input.UnknownTime {
		cusps := a.houses.Cusps(instant, input.Latitude, input.Longitude)
		sidereal := houses.Sidereal(cusps, instant)
		tropicalCusps = &cusps
		chart.Tropical = &cusps
		chart.Sidereal = &sidereal
	}

	for _, body := range domain.AllBodies {
		if a.excluded[body] {
			continue
		}
		ecl, ok := raw[body]
		if !ok {
			return nil, fmt.Errorf("%w: source returned no position for %s",
				domain.ErrEphemerisUnavailable, body)
		}

		tropical := ecl.Longitude
		sidereal := zodiac.ToSidereal(tropical, instant)

		position := domain.BodyPosition{
			Body:              body,
			TropicalLongitude: tropical,
			SiderealLongitude: sidereal,
			Latitude:          ecl.Latitude,
			Distance:          ecl.Distance,
			TropicalSign:      zodiac.SignOf(tropical),
			TropicalDegree:    zodiac.DegreeInSign(tropical),
			SiderealSign:      zodiac.SignOf(sidereal),
			SiderealDegree:    zodiac.DegreeInSign(sidereal),
			Retrograde:        retro[body],
		}
		if tropicalCusps != nil {
			house := houses.Assign(tropical, *tropicalCusps)
			position.House = &house
		}
		chart.Positions = append(chart.Positions, position)
	}

	chart.Aspects[domain.SystemTropical] = a.detector.Detect(chart.Positions, domain.SystemTropical)
	chart.Aspects[domain.SystemSidereal] = a.detector.Detect(chart.Positions, domain.SystemSidereal)

	chart.Numerology, err = numerology.Derive(input.Name, input.Date)
	if err != nil {
		return nil, err
	}
	chart.Chinese, err = a.chinese.Derive(input.Date)
	if err != nil {
		// A birth year outside the lunar new year table is an input the
		// engine as configured cannot serve; callers branch on the same
		// documented error set as missing fields.
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompleteBirthInput, err)
	}

	chart.Fingerprint = Fingerprint(input, a.coordPrecision)

	a.log.Debug().
		Str("fingerprint", chart.Fingerprint).
		Bool("unknown_time", input.UnknownTime).
		Int("bodies", len(chart.Positions)).
		Msg("Assembled chart")
	return chart, nil
}

// validate checks the input contract. Errors identify the offending field
// and are never retried.
func validate(input domain.BirthInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is empty", domain.ErrInvalidName)
	}
	if !input.Date.Valid() {
		return fmt.Errorf("%w: %04d-%02d-%02d is not a Gregorian date",
			domain.ErrInvalidDate, input.Date.Year, input.Date.Month, input.Date.Day)
	}
	if !input.UnknownTime {
		if input.Hour < 0 || input.Hour > 23 || input.Minute < 0 || input.Minute > 59 {
			return fmt.Errorf("%w: time-of-day %02d:%02d out of range",
				domain.ErrInvalidDate, input.Hour, input.Minute)
		}
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.4f out of range", domain.ErrIncompleteBirthInput, input.Latitude)
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.4f out of range", domain.ErrIncompleteBirthInput, input.Longitude)
	}
	if strings.TrimSpace(input.Timezone) == "" {
		return fmt.Errorf("%w: timezone missing", domain.ErrIncompleteBirthInput)
	}
	return nil
}

// birthInstant resolves the UTC instant the ephemeris is evaluated at.
// Unknown time uses 12:00 UTC of the birth date - a documented convention of
// the degraded mode, affecting only sub-degree precision of fast bodies;
// houses and ascendant are nil in that mode, never defaulted.
func birthInstant(input domain.BirthInput) (time.Time, error) {
	if input.UnknownTime {
		return time.Date(input.Date.Year, input.Date.Month, input.Date.Day,
			12, 0, 0, 0, time.UTC), nil
	}

	loc, err := resolveTimezone(input.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timezone %q: %v",
			domain.ErrIncompleteBirthInput, input.Timezone, err)
	}
	local := time.Date(input.Date.Year, input.Date.Month, input.Date.Day,
		input.Hour, input.Minute, 0, 0, loc)
	return local.UTC(), nil
}

// resolveTimezone accepts an IANA identifier or a fixed offset of the form
// "UTC+02:00" / "UTC-05:30".
func resolveTimezone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if strings.HasPrefix(tz, "UTC+") || strings.HasPrefix(tz, "UTC-") {
		sign := 1
		if tz[3] == '-' {
			sign = -1
		}
		var h, m int
		if _, err := fmt.Sscanf(tz[4:], "%d:%d", &h, &m); err != nil {
			if _, err := fmt.Sscanf(tz[4:], "%d", &h); err != nil {
				return nil, fmt.Errorf("cannot parse offset %q", tz)
			}
		}
		// Real-world offsets top out at UTC+14:00 (Line Islands).
		if h > 14 || m < 0 || m > 59 || (h == 14 && m > 0) {
			return nil, fmt.Errorf("offset %q out of range", tz)
		}
		return time.FixedZone(tz, sign*(h*3600+m*60)), nil
	}
	return time.LoadLocation(tz)
}

// mapEphemerisErr keeps the error taxonomy tight: range violations and
// already-classified source failures pass through; everything else, context
// expiry included, surfaces as the transient ephemeris failure the caller may
// retry with backoff.
func mapEphemerisErr(err error) error {
	if errors.Is(err, domain.ErrEphemerisRange) || errors.Is(err, domain.ErrEphemerisUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrEphemerisUnavailable, err)
}
