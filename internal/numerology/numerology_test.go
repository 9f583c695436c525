package numerology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/natal/internal/domain"
)

func TestLifePath(t *testing.T) {
	tests := []struct {
		name string
		date domain.Date
		want int
	}{
		// 1+9+9+0 + 8 + 2 = 29 -> 11, kept as a master number.
		{"master eleven", domain.Date{Year: 1990, Month: time.August, Day: 2}, 11},
		// 1+9+9+0 + 1 + 1 = 21 -> 3.
		{"plain reduction", domain.Date{Year: 1990, Month: time.January, Day: 1}, 3},
		// 1+9+8+4 + 1+2 + 3+1 = 29 -> 11.
		{"multi digit month and day", domain.Date{Year: 1984, Month: time.December, Day: 31}, 11},
		// 2+0+0+0 + 2 + 2+9 = 15 -> 6.
		{"leap day", domain.Date{Year: 2000, Month: time.February, Day: 29}, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LifePath(tc.date))
		})
	}
}

func TestExpression(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		// J=1 O=6 H=8 N=5 + D=4 O=6 E=5 = 35 -> 8.
		{"two words", "JOHN DOE", 8},
		{"case insensitive", "john doe", 8},
		{"punctuation ignored", "J-o.h,n  D'o!e", 8},
		// The letter cycle wraps after I: K is the 11th letter and counts 2.
		{"letter cycle wraps", "K", 2},
		// R=9 R=9 D=4 = 22, kept as a master number.
		{"master expression", "RRD", 22},
		{"single letter", "A", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expression(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExpressionRejectsLetterlessNames(t *testing.T) {
	for _, in := range []string{"", "   ", "123", "!!!", "12 34"} {
		_, err := Expression(in)
		assert.ErrorIs(t, err, domain.ErrInvalidName, "input %q", in)
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{5, 5},
		{9, 9},
		{10, 1},
		{11, 11}, // master, untouched
		{22, 22},
		{33, 33},
		{29, 11},  // reduces onto a master and stops
		{38, 11},  // 38 -> 11
		{44, 8},   // 44 is not a master
		{99, 9},   // 99 -> 18 -> 9
		{123, 6},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Reduce(tc.in), "Reduce(%d)", tc.in)
	}
}

func TestDerive(t *testing.T) {
	profile, err := Derive("John Doe", domain.Date{Year: 1990, Month: time.August, Day: 2})
	require.NoError(t, err)

	assert.Equal(t, 11, profile.LifePath)
	assert.Equal(t, 8, profile.Expression)
	assert.Equal(t, 2, profile.DayNumber)

	// Day 29 reduces to the master 11 and stays there.
	profile, err = Derive("John Doe", domain.Date{Year: 2000, Month: time.February, Day: 29})
	require.NoError(t, err)
	assert.Equal(t, 11, profile.DayNumber)

	// Day 22 is already a master.
	profile, err = Derive("John Doe", domain.Date{Year: 2000, Month: time.March, Day: 22})
	require.NoError(t, err)
	assert.Equal(t, 22, profile.DayNumber)

	_, err = Derive("12345", domain.Date{Year: 1990, Month: time.August, Day: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}
