// Package aspects detects and ranks angular relationships between bodies.
package aspects

import "github.com/aristath/natal/internal/domain"

// Definition is one row of the aspect table. Adding an aspect type is a data
// change here, not a code change in the matcher.
type Definition struct {
	Type     domain.AspectType
	Angle    float64 // exact target separation, degrees
	MaxOrb   float64 // maximum allowed deviation from Angle, degrees
	Harmonic int     // tie-break rank; lower wins on equal orb
}

// Major aspects, ordered by harmonic rank.
var majorTable = []Definition{
	{Type: domain.AspectConjunction, Angle: 0, MaxOrb: 8, Harmonic: 1},
	{Type: domain.AspectOpposition, Angle: 180, MaxOrb: 8, Harmonic: 2},
	{Type: domain.AspectTrine, Angle: 120, MaxOrb: 8, Harmonic: 3},
	{Type: domain.AspectSquare, Angle: 90, MaxOrb: 7, Harmonic: 4},
	{Type: domain.AspectSextile, Angle: 60, MaxOrb: 6, Harmonic: 5},
}

// Minor aspects, appended behind the include-minor configuration flag.
var minorTable = []Definition{
	{Type: domain.AspectQuincunx, Angle: 150, MaxOrb: 3, Harmonic: 6},
	{Type: domain.AspectSemisextile, Angle: 30, MaxOrb: 2, Harmonic: 7},
	{Type: domain.AspectSemisquare, Angle: 45, MaxOrb: 2, Harmonic: 8},
	{Type: domain.AspectSesquiquadrate, Angle: 135, MaxOrb: 2, Harmonic: 9},
	{Type: domain.AspectQuintile, Angle: 72, MaxOrb: 2, Harmonic: 10},
}

// Table returns the aspect definitions in harmonic order.
func Table(includeMinor bool) []Definition {
	table := make([]Definition, 0, len(majorTable)+len(minorTable))
	table = append(table, majorTable...)
	if includeMinor {
		table = append(table, minorTable...)
	}
	return table
}
