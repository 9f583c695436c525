package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/natal/internal/domain"
)

func baseInput() domain.BirthInput {
	return domain.BirthInput{
		Name:      "John Doe",
		Date:      domain.Date{Year: 1990, Month: time.January, Day: 1},
		Hour:      12,
		Minute:    30,
		Latitude:  37.9838,
		Longitude: 23.7275,
		Timezone:  "Europe/Athens",
	}
}

func TestFingerprintStable(t *testing.T) {
	input := baseInput()
	fp := Fingerprint(input, 4)

	assert.Len(t, fp, 64, "hex SHA-256")
	assert.Equal(t, fp, Fingerprint(input, 4), "same input, same fingerprint")
}

func TestFingerprintNameNormalization(t *testing.T) {
	input := baseInput()
	fp := Fingerprint(input, 4)

	cased := input
	cased.Name = "JOHN DOE"
	assert.Equal(t, fp, Fingerprint(cased, 4))

	spaced := input
	spaced.Name = "  John \t Doe  "
	assert.Equal(t, fp, Fingerprint(spaced, 4))

	different := input
	different.Name = "Jane Doe"
	assert.NotEqual(t, fp, Fingerprint(different, 4))
}

func TestFingerprintCoordinateRounding(t *testing.T) {
	input := baseInput()
	fp := Fingerprint(input, 4)

	// Below the rounding precision: identical.
	nudged := input
	nudged.Latitude += 0.000009
	assert.Equal(t, fp, Fingerprint(nudged, 4))

	// Above it: distinct.
	moved := input
	moved.Latitude += 0.001
	assert.NotEqual(t, fp, Fingerprint(moved, 4))

	// A coarser precision folds the distinction away again.
	assert.Equal(t, Fingerprint(input, 2), Fingerprint(moved, 2))
}

func TestFingerprintSignedZeroCoordinates(t *testing.T) {
	// Coordinates an epsilon either side of the meridian or equator round
	// to the same canonical zero, never to "-0.0000".
	north := baseInput()
	north.Latitude = 0.00001
	north.Longitude = 0.000001

	south := baseInput()
	south.Latitude = -0.00001
	south.Longitude = -0.000001

	assert.Equal(t, Fingerprint(north, 4), Fingerprint(south, 4))

	// A genuinely negative coordinate above the precision keeps its sign.
	west := baseInput()
	west.Longitude = -0.001
	east := baseInput()
	east.Longitude = 0.001
	assert.NotEqual(t, Fingerprint(west, 4), Fingerprint(east, 4))

	// Holds at zero precision too, where the formatted value is bare "0".
	assert.Equal(t, Fingerprint(north, 0), Fingerprint(south, 0))
}

func TestFingerprintTimeSensitivity(t *testing.T) {
	input := baseInput()
	fp := Fingerprint(input, 4)

	later := input
	later.Minute = 31
	assert.NotEqual(t, fp, Fingerprint(later, 4))

	unknown := input
	unknown.UnknownTime = true
	assert.NotEqual(t, fp, Fingerprint(unknown, 4))

	// Unknown-time inputs ignore the hour/minute fields entirely.
	unknownOther := unknown
	unknownOther.Hour = 3
	unknownOther.Minute = 7
	assert.Equal(t, Fingerprint(unknown, 4), Fingerprint(unknownOther, 4))
}

func TestFingerprintTimezoneSensitivity(t *testing.T) {
	input := baseInput()
	fp := Fingerprint(input, 4)

	shifted := input
	shifted.Timezone = "UTC+02:00"
	assert.NotEqual(t, fp, Fingerprint(shifted, 4))
}
