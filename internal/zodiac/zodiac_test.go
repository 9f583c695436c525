package zodiac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/natal/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "zero", input: 0, expected: 0},
		{name: "in range", input: 123.45, expected: 123.45},
		{name: "exactly 360", input: 360, expected: 0},
		{name: "above 360", input: 370.5, expected: 10.5},
		{name: "negative", input: -10, expected: 350},
		{name: "large negative", input: -730, expected: 350},
		{name: "multiple turns", input: 1080.25, expected: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Normalize(tt.input), 1e-9)
		})
	}
}

func TestSeparation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{name: "identical", a: 100, b: 100, expected: 0},
		{name: "simple", a: 10, b: 50, expected: 40},
		{name: "short way around zero", a: 350, b: 10, expected: 20},
		{name: "opposition", a: 0, b: 180, expected: 180},
		{name: "beyond opposition takes short arc", a: 0, b: 190, expected: 170},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Separation(tt.a, tt.b), 1e-9)
			// Symmetric in its arguments.
			assert.InDelta(t, Separation(tt.a, tt.b), Separation(tt.b, tt.a), 1e-12)
		})
	}
}

func TestSeparationRange(t *testing.T) {
	for a := 0.0; a < 360; a += 13.7 {
		for b := 0.0; b < 360; b += 17.3 {
			d := Separation(a, b)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 180.0)
		}
	}
}

func TestSignDegreeConsistency(t *testing.T) {
	// sign(L) = floor(L/30), degree(L) = L mod 30, for any longitude.
	for l := 0.0; l < 360; l += 0.37 {
		sign := SignOf(l)
		degree := DegreeInSign(l)

		assert.Equal(t, domain.Signs[int(l/30)], sign, "longitude %f", l)
		assert.InDelta(t, l-30*float64(int(l/30)), degree, 1e-9, "longitude %f", l)
		assert.GreaterOrEqual(t, degree, 0.0)
		assert.Less(t, degree, 30.0)
	}
}

func TestSignOfBoundaries(t *testing.T) {
	assert.Equal(t, domain.SignAries, SignOf(0))
	assert.Equal(t, domain.SignAries, SignOf(29.999))
	assert.Equal(t, domain.SignTaurus, SignOf(30))
	assert.Equal(t, domain.SignCapricorn, SignOf(270))
	assert.Equal(t, domain.SignPisces, SignOf(359.999))
	assert.Equal(t, domain.SignAries, SignOf(360))
}

func TestAyanamsa(t *testing.T) {
	// Pinned model value at the reference epoch.
	atJ2000 := Ayanamsa(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 23.85236, atJ2000, 1e-9)

	// Grows by the pinned rate: ~50.29 arcseconds per year.
	atJ2100 := Ayanamsa(time.Date(2100, time.January, 1, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 23.85236+100*50.28796/3600, atJ2100, 1e-3)

	// And is monotonically increasing across the supported span.
	assert.Less(t, Ayanamsa(time.Date(1850, time.June, 1, 0, 0, 0, 0, time.UTC)), atJ2000)
}

func TestToSidereal(t *testing.T) {
	epoch := time.Date(1990, time.January, 1, 12, 0, 0, 0, time.UTC)
	ayanamsa := Ayanamsa(epoch)

	tests := []struct {
		name     string
		tropical float64
	}{
		{name: "mid zodiac", tropical: 280.5},
		{name: "wraps below zero", tropical: 5.0},
		{name: "zero", tropical: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sidereal := ToSidereal(tt.tropical, epoch)
			assert.InDelta(t, ayanamsa, Separation(tt.tropical, sidereal), 1e-9)
			assert.GreaterOrEqual(t, sidereal, 0.0)
			assert.Less(t, sidereal, 360.0)
		})
	}
}
