package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aristath/natal/internal/database"
	"github.com/aristath/natal/internal/domain"
	"github.com/rs/zerolog"
)

// SQLiteModelID pins the file-backed position model.
const SQLiteModelID = "sqlite-daily-v1"

// SQLiteSource reads daily body positions from a SQLite file built by
// cmd/ephemgen and interpolates between the bracketing days. The file is
// opened once (read-only) and the handle is safe for concurrent use; its
// lifecycle belongs to the caller.
type SQLiteSource struct {
	db      *database.DB
	modelID string
	log     zerolog.Logger
}

// NewSQLiteSource wraps an opened read-only ephemeris database.
func NewSQLiteSource(db *database.DB, log zerolog.Logger) *SQLiteSource {
	src := &SQLiteSource{
		db:      db,
		modelID: SQLiteModelID,
		log:     log.With().Str("component", "ephemeris_sqlite").Logger(),
	}
	// The generator records which analytic model produced the file.
	var gen string
	err := db.Conn().QueryRow(`SELECT value FROM meta WHERE key = 'model'`).Scan(&gen)
	if err == nil && gen != "" {
		src.modelID = SQLiteModelID + "+" + gen
	}
	return src
}

// ModelID identifies the pinned position model.
func (s *SQLiteSource) ModelID() string { return s.modelID }

// Positions returns interpolated positions for all tracked bodies.
// Query failures and context deadlines surface as
// domain.ErrEphemerisUnavailable; the core performs no retries.
func (s *SQLiteSource) Positions(ctx context.Context, t time.Time) (map[domain.Body]Ecliptic, error) {
	if err := CheckRange(t); err != nil {
		return nil, err
	}

	jd := JulianDay(t)
	// Daily grid rows sit at 00:00 UTC, whose Julian day ends in .5.
	jd0 := math.Floor(jd-0.5) + 0.5
	frac := jd - jd0

	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT body, jd, longitude, latitude, distance
		 FROM positions WHERE jd IN (?, ?) ORDER BY body, jd`,
		jd0, jd0+1)
	if err != nil {
		return nil, fmt.Errorf("%w: query positions: %v", domain.ErrEphemerisUnavailable, err)
	}
	defer rows.Close()

	type sample struct {
		ok  bool
		pos Ecliptic
	}
	lo := make(map[domain.Body]sample)
	hi := make(map[domain.Body]sample)

	for rows.Next() {
		var (
			body string
			rjd  float64
			p    Ecliptic
		)
		if err := rows.Scan(&body, &rjd, &p.Longitude, &p.Latitude, &p.Distance); err != nil {
			return nil, fmt.Errorf("%w: scan position row: %v", domain.ErrEphemerisUnavailable, err)
		}
		if rjd == jd0 {
			lo[domain.Body(body)] = sample{ok: true, pos: p}
		} else {
			hi[domain.Body(body)] = sample{ok: true, pos: p}
		}
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", domain.ErrEphemerisUnavailable, err)
		}
		return nil, fmt.Errorf("%w: iterate position rows: %v", domain.ErrEphemerisUnavailable, err)
	}

	out := make(map[domain.Body]Ecliptic, len(domain.AllBodies))
	for _, body := range domain.AllBodies {
		a, b := lo[body], hi[body]
		if !a.ok || !b.ok {
			return nil, fmt.Errorf("%w: no coverage for %s at jd %.1f", domain.ErrEphemerisUnavailable, body, jd0)
		}
		out[body] = interpolate(a.pos, b.pos, frac)
	}
	return out, nil
}

// interpolate blends two daily samples, taking the short way around the
// 0/360 wrap for longitudes.
func interpolate(a, b Ecliptic, frac float64) Ecliptic {
	dLon := b.Longitude - a.Longitude
	if dLon > 180 {
		dLon -= 360
	} else if dLon < -180 {
		dLon += 360
	}
	return Ecliptic{
		Longitude: norm360(a.Longitude + dLon*frac),
		Latitude:  a.Latitude + (b.Latitude-a.Latitude)*frac,
		Distance:  a.Distance + (b.Distance-a.Distance)*frac,
	}
}
