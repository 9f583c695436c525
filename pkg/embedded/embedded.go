// Package embedded provides embedded static data assets.
package embedded

import (
	"embed"
)

// Files contains the data files embedded in the binary:
//   - data/lunar_new_year.csv - pinned lunar new year dates (year,month,day),
//     one sexagenary span. Years outside this table fall back to
//     ephemeris-derived new-moon dates.
//
//go:embed data
var Files embed.FS

// LunarNewYearPath is the embedded path of the pinned boundary table.
const LunarNewYearPath = "data/lunar_new_year.csv"
