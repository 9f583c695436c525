// Package numerology derives the life path, expression and day numbers from
// a name and birth date. Pure functions, independent of the ephemeris.
package numerology

import (
	"fmt"
	"strings"

	"github.com/aristath/natal/internal/domain"
)

// Master numbers are preserved at every reduction stage, never reduced to a
// single digit.
var masterNumbers = map[int]bool{11: true, 22: true, 33: true}

// Derive computes the numerology profile. The name must contain at least one
// A-Z letter after normalization, otherwise domain.ErrInvalidName.
func Derive(name string, date domain.Date) (domain.NumerologyProfile, error) {
	expression, err := Expression(name)
	if err != nil {
		return domain.NumerologyProfile{}, err
	}
	return domain.NumerologyProfile{
		LifePath:   LifePath(date),
		Expression: expression,
		DayNumber:  Reduce(date.Day),
	}, nil
}

// LifePath sums every digit of the birth date (year, month, day) and reduces
// the total, preserving master numbers.
func LifePath(date domain.Date) int {
	total := digitSum(date.Year) + digitSum(int(date.Month)) + digitSum(date.Day)
	return Reduce(total)
}

// Expression sums the Pythagorean letter values of the full name and reduces
// the total. Letters map A=1..I=9 and repeat every nine letters; anything
// that is not an ASCII letter is ignored.
func Expression(name string) (int, error) {
	total := 0
	letters := 0
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || r > 'Z' {
			continue
		}
		total += int(r-'A')%9 + 1
		letters++
	}
	if letters == 0 {
		return 0, fmt.Errorf("%w: name %q contains no letters", domain.ErrInvalidName, name)
	}
	return Reduce(total), nil
}

// Reduce repeatedly sums decimal digits until a single digit remains, except
// that 11, 22 and 33 are kept as master numbers at any stage.
func Reduce(n int) int {
	for n > 9 && !masterNumbers[n] {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
