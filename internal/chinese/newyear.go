package chinese

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/ephemeris"
	"github.com/aristath/natal/pkg/embedded"
)

// NewYearTable maps a Gregorian year to the date of that year's lunar new
// year. The boundary shifts yearly, so the table is a required input of the
// deriver rather than a fixed Gregorian date.
type NewYearTable map[int]domain.Date

// PinnedTable loads the embedded boundary table (pinned, one sexagenary
// span). It is the canonical source for the years it covers.
func PinnedTable() (NewYearTable, error) {
	f, err := embedded.Files.Open(embedded.LunarNewYearPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded lunar new year table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse lunar new year table: %w", err)
	}

	table := make(NewYearTable, len(records))
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != 3 {
			return nil, fmt.Errorf("lunar new year table row %d: expected 3 fields, got %d", i, len(rec))
		}
		year, err1 := strconv.Atoi(rec[0])
		month, err2 := strconv.Atoi(rec[1])
		day, err3 := strconv.Atoi(rec[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("lunar new year table row %d: non-numeric field", i)
		}
		table[year] = domain.Date{Year: year, Month: time.Month(month), Day: day}
	}
	return table, nil
}

// BuildTable derives boundary dates from the ephemeris for [fromYear, toYear]:
// the lunar new year is the new moon falling in the window Jan 21 - Feb 21,
// taken in UTC+8. Years already present in base keep their pinned dates.
func BuildTable(ctx context.Context, src ephemeris.Source, fromYear, toYear int, base NewYearTable) (NewYearTable, error) {
	table := make(NewYearTable, toYear-fromYear+1)
	for y, d := range base {
		table[y] = d
	}
	for year := fromYear; year <= toYear; year++ {
		if _, ok := table[year]; ok {
			continue
		}
		d, err := newMoonInWindow(ctx, src, year)
		if err != nil {
			return nil, fmt.Errorf("failed to derive lunar new year for %d: %w", year, err)
		}
		table[year] = d
	}
	return table, nil
}

// cst is the UTC+8 boundary frame the chinese calendar day is taken in.
var cst = time.FixedZone("UTC+8", 8*3600)

// newMoonInWindow locates the calendar day (UTC+8) of the new moon between
// Jan 21 and Feb 21. The Sun-Moon elongation grows ~12 degrees per day, so
// the new moon is the day on which it wraps through zero.
func newMoonInWindow(ctx context.Context, src ephemeris.Source, year int) (domain.Date, error) {
	prev, err := elongation(ctx, src, time.Date(year, time.January, 20, 0, 0, 0, 0, cst))
	if err != nil {
		return domain.Date{}, err
	}
	for day := time.Date(year, time.January, 21, 0, 0, 0, 0, cst); day.Month() < time.March; day = day.AddDate(0, 0, 1) {
		cur, err := elongation(ctx, src, day)
		if err != nil {
			return domain.Date{}, err
		}
		if prev > 270 && cur < 90 {
			// Wrapped during the preceding day.
			lny := day.AddDate(0, 0, -1)
			return domain.Date{Year: lny.Year(), Month: lny.Month(), Day: lny.Day()}, nil
		}
		prev = cur
	}
	return domain.Date{}, fmt.Errorf("no new moon found in window for %d", year)
}

func elongation(ctx context.Context, src ephemeris.Source, t time.Time) (float64, error) {
	positions, err := src.Positions(ctx, t)
	if err != nil {
		return 0, err
	}
	moon := positions[domain.BodyMoon].Longitude
	sun := positions[domain.BodySun].Longitude
	e := moon - sun
	for e < 0 {
		e += 360
	}
	for e >= 360 {
		e -= 360
	}
	return e, nil
}
