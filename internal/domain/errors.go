package domain

import "errors"

// Input errors are permanent failures of the supplied birth data; callers must
// not retry them. Ephemeris errors separate permanent range violations from
// transient source failures (retry policy belongs to the caller).
var (
	// ErrInvalidName indicates an empty or letterless full name.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidDate indicates a date that is not a valid Gregorian calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrIncompleteBirthInput indicates missing or out-of-range location data.
	ErrIncompleteBirthInput = errors.New("incomplete birth input")
	// ErrEphemerisRange indicates an instant outside the supported ephemeris span.
	ErrEphemerisRange = errors.New("instant outside supported ephemeris range")
	// ErrEphemerisUnavailable indicates the position source failed or timed out.
	ErrEphemerisUnavailable = errors.New("ephemeris source unavailable")
)
