package chart

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/natal/internal/domain"
)

// fingerprintVersion participates in the canonical string so a change to the
// normalization rules can never collide with previously issued fingerprints.
const fingerprintVersion = "natal-v1"

// Fingerprint returns the stable identity of a birth input: the hex SHA-256
// of its canonical form. Two inputs differing only in name casing/whitespace,
// or in coordinates below the rounding precision, fingerprint identically.
// External caches use it as an at-most-once-compute key.
func Fingerprint(input domain.BirthInput, coordPrecision int) string {
	canonical := canonicalString(input, coordPrecision)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// canonicalString normalizes the input: name case-folded with collapsed
// whitespace, time rounded to the minute or "-" when unknown, coordinates
// rounded to the configured precision.
func canonicalString(input domain.BirthInput, coordPrecision int) string {
	name := strings.ToLower(strings.Join(strings.Fields(input.Name), " "))

	timePart := "-"
	if !input.UnknownTime {
		timePart = fmt.Sprintf("%02d:%02d", input.Hour, input.Minute)
	}

	return strings.Join([]string{
		fingerprintVersion,
		name,
		fmt.Sprintf("%04d-%02d-%02d", input.Date.Year, input.Date.Month, input.Date.Day),
		timePart,
		roundCoord(input.Latitude, coordPrecision),
		roundCoord(input.Longitude, coordPrecision),
		strings.TrimSpace(input.Timezone),
	}, "|")
}

func roundCoord(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	// FormatFloat keeps the sign of values that round to negative zero;
	// coordinates an epsilon either side of zero must canonicalize
	// identically.
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
