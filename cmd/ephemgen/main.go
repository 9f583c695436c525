// Package main builds a SQLite ephemeris file: one row per body per day,
// computed from the built-in analytic model. The resulting file is consumed
// read-only by ephemeris.SQLiteSource.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/aristath/natal/internal/database"
	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/ephemeris"
	"github.com/aristath/natal/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	body      TEXT NOT NULL,
	jd        REAL NOT NULL,
	longitude REAL NOT NULL,
	latitude  REAL NOT NULL,
	distance  REAL NOT NULL,
	PRIMARY KEY (body, jd)
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

func main() {
	var (
		outPath  = flag.String("out", "ephemeris.db", "output database path")
		fromYear = flag.Int("from", 1900, "first year (inclusive)")
		toYear   = flag.Int("to", 2100, "last year (inclusive)")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log := logger.New(logger.Config{Level: *logLevel, Pretty: true})

	db, err := database.New(database.Config{Path: *outPath, Profile: database.ProfileBulk})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open output database")
	}
	defer db.Close()

	if _, err := db.Conn().Exec(schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	src := ephemeris.NewAnalyticSource(log)
	ctx := context.Background()

	if _, err := db.Conn().Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('model', ?)`,
		src.ModelID(),
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to record model id")
	}

	start := time.Date(*fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(*toYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	tx, err := db.Conn().Begin()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to begin transaction")
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO positions (body, jd, longitude, latitude, distance)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare insert")
	}

	days := 0
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		positions, err := src.Positions(ctx, day)
		if err != nil {
			log.Fatal().Err(err).Time("day", day).Msg("Failed to compute positions")
		}
		jd := ephemeris.JulianDay(day)
		for _, body := range domain.AllBodies {
			p := positions[body]
			if _, err := stmt.Exec(string(body), jd, p.Longitude, p.Latitude, p.Distance); err != nil {
				log.Fatal().Err(err).Str("body", string(body)).Msg("Failed to insert position")
			}
		}
		days++
		if days%36525 == 0 {
			log.Info().Int("days", days).Time("at", day).Msg("Progress")
		}
	}

	if err := stmt.Close(); err != nil {
		log.Fatal().Err(err).Msg("Failed to close statement")
	}
	if err := tx.Commit(); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit")
	}

	log.Info().
		Int("days", days).
		Int("bodies", len(domain.AllBodies)).
		Str("path", db.Path()).
		Msg("Ephemeris database built")
}
