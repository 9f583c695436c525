// Package chinese derives the chinese zodiac animal and element from a birth
// date, with the lunar new year boundary adjustment.
package chinese

import (
	"errors"
	"fmt"

	"github.com/aristath/natal/internal/domain"
)

// ErrNoBoundary indicates the boundary table does not cover the birth year.
var ErrNoBoundary = errors.New("no lunar new year boundary for year")

// The twelve-year animal cycle is anchored so that 1984 (a Rat year opening
// a sexagenary cycle) has index zero.
const animalAnchorYear = 1984

// Deriver maps birth dates to animal signs and elements. Stateless after
// construction; safe for concurrent use.
type Deriver struct {
	table NewYearTable
}

// NewDeriver creates a deriver over the given boundary table. The table is a
// required input: dates in January/February before that year's lunar new
// year belong to the previous cycle year.
func NewDeriver(table NewYearTable) *Deriver {
	return &Deriver{table: table}
}

// Derive returns the profile for the birth date. Fails when the boundary
// table does not cover the birth year.
func (d *Deriver) Derive(date domain.Date) (domain.ChineseZodiacProfile, error) {
	boundary, ok := d.table[date.Year]
	if !ok {
		return domain.ChineseZodiacProfile{}, fmt.Errorf("%w: %d", ErrNoBoundary, date.Year)
	}

	cycleYear := date.Year
	if beforeBoundary(date, boundary) {
		cycleYear--
	}

	idx := (cycleYear - animalAnchorYear) % 12
	if idx < 0 {
		idx += 12
	}

	return domain.ChineseZodiacProfile{
		Animal:    domain.Animals[idx],
		Element:   elementOf(cycleYear),
		CycleYear: cycleYear,
	}, nil
}

// beforeBoundary reports whether the date falls before the lunar new year of
// its own Gregorian year.
func beforeBoundary(date, boundary domain.Date) bool {
	if date.Month != boundary.Month {
		return date.Month < boundary.Month
	}
	return date.Day < boundary.Day
}

// elementOf maps the heavenly-stem cycle to an element, two years per
// element, keyed by the cycle year's final digit.
func elementOf(cycleYear int) domain.Element {
	digit := cycleYear % 10
	if digit < 0 {
		digit += 10
	}
	switch digit {
	case 0, 1:
		return domain.ElementMetal
	case 2, 3:
		return domain.ElementWater
	case 4, 5:
		return domain.ElementWood
	case 6, 7:
		return domain.ElementFire
	default:
		return domain.ElementEarth
	}
}
