// Package database provides SQLite connection and configuration for the
// ephemeris data file.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Profile defines configuration profiles for the ephemeris database.
type Profile string

const (
	// ProfileReadOnly - the ephemeris file as a process-lifetime, read-only handle
	ProfileReadOnly Profile = "readonly"
	// ProfileBulk - fast bulk ingestion for building the ephemeris file
	ProfileBulk Profile = "bulk"
)

// DB wraps the database connection with the profile it was opened under.
type DB struct {
	conn    *sql.DB
	path    string
	profile Profile
}

// Config holds database configuration.
type Config struct {
	Path    string
	Profile Profile
}

// New opens the database at cfg.Path with profile-specific PRAGMAs.
// Read-only handles are safe for concurrent use and are expected to be opened
// once at process start and closed at shutdown; lifecycle belongs to the caller.
func New(cfg Config) (*DB, error) {
	if cfg.Profile == "" {
		cfg.Profile = ProfileReadOnly
	}

	// file: URIs (in-memory databases in tests) bypass filesystem handling.
	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
		}
		if cfg.Profile == ProfileReadOnly {
			if _, err := os.Stat(absPath); err != nil {
				return nil, fmt.Errorf("ephemeris database not readable: %w", err)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		cfg.Path = absPath
	}

	conn, err := sql.Open("sqlite", buildConnectionString(cfg.Path, cfg.Profile))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	configureConnectionPool(conn, cfg.Profile)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, path: cfg.Path, profile: cfg.Profile}, nil
}

// buildConnectionString creates the SQLite connection string with
// profile-specific PRAGMAs.
func buildConnectionString(path string, profile Profile) string {
	connStr := path

	switch profile {
	case ProfileReadOnly:
		connStr += "?_pragma=query_only(1)" // Enforce read-only at the connection level
		connStr += "&_pragma=temp_store(MEMORY)"
	case ProfileBulk:
		connStr += "?_pragma=journal_mode(WAL)"
		connStr += "&_pragma=synchronous(OFF)" // Bulk build; the file is regenerable
		connStr += "&_pragma=temp_store(MEMORY)"
	}

	connStr += "&_pragma=cache_size(-16000)" // 16MB cache (negative = KB)
	return connStr
}

// configureConnectionPool sets up the connection pool per profile.
func configureConnectionPool(conn *sql.DB, profile Profile) {
	switch profile {
	case ProfileReadOnly:
		// Concurrent chart computations share this handle.
		conn.SetMaxOpenConns(8)
		conn.SetMaxIdleConns(4)
	case ProfileBulk:
		// Single writer.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	}
	conn.SetConnMaxLifetime(0) // Process-lifetime handle
}

// Conn exposes the underlying connection.
func (d *DB) Conn() *sql.DB { return d.conn }

// Path returns the resolved database path.
func (d *DB) Path() string { return d.path }

// Close closes the connection.
func (d *DB) Close() error { return d.conn.Close() }
