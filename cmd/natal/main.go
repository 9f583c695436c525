// Package main is a thin harness around the chart engine: it reads birth
// input JSON, computes a chart (or a synastry comparison of two charts) and
// writes the structured result. The surrounding product owns any transport;
// this binary only encodes the engine's value objects.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/aristath/natal/internal/chart"
	"github.com/aristath/natal/internal/chinese"
	"github.com/aristath/natal/internal/config"
	"github.com/aristath/natal/internal/database"
	"github.com/aristath/natal/internal/domain"
	"github.com/aristath/natal/internal/ephemeris"
	"github.com/aristath/natal/internal/synastry"
	"github.com/aristath/natal/pkg/logger"
)

func main() {
	var (
		inputPath   = flag.String("input", "-", "birth input JSON file, '-' for stdin")
		synastryRun = flag.Bool("synastry", false, "input holds {\"a\": ..., \"b\": ...}; compare the two charts")
		format      = flag.String("format", "json", "output format: json or msgpack")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	// The position source is initialized once; its handle is read-only for
	// the process lifetime.
	var src ephemeris.Source
	if cfg.EphemerisDBPath != "" {
		db, err := database.New(database.Config{
			Path:    cfg.EphemerisDBPath,
			Profile: database.ProfileReadOnly,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open ephemeris database")
		}
		defer db.Close()
		src = ephemeris.NewSQLiteSource(db, log)
	} else {
		src = ephemeris.NewAnalyticSource(log)
	}
	log.Info().Str("model", src.ModelID()).Msg("Position source ready")

	pinned, err := chinese.PinnedTable()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load pinned lunar new year table")
	}
	table, err := chinese.BuildTable(context.Background(), src, cfg.ChineseYearFrom, cfg.ChineseYearTo, pinned)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build lunar new year table")
	}

	assembler := chart.NewAssembler(cfg, src, chinese.NewDeriver(table), log)

	raw, err := readInput(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("input", *inputPath).Msg("Failed to read input")
	}

	ctx := context.Background()
	var result any
	if *synastryRun {
		var pair struct {
			A domain.BirthInput `json:"a"`
			B domain.BirthInput `json:"b"`
		}
		if err := json.Unmarshal(raw, &pair); err != nil {
			log.Fatal().Err(err).Msg("Failed to parse synastry input")
		}
		chartA, err := assembler.Compute(ctx, pair.A)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compute chart A")
		}
		chartB, err := assembler.Compute(ctx, pair.B)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compute chart B")
		}
		comparator := synastry.NewComparator(assembler.Detector(), log)
		result = comparator.Compare(chartA, chartB)
	} else {
		var input domain.BirthInput
		if err := json.Unmarshal(raw, &input); err != nil {
			log.Fatal().Err(err).Msg("Failed to parse birth input")
		}
		result, err = assembler.Compute(ctx, input)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compute chart")
		}
	}

	var out []byte
	switch *format {
	case "msgpack":
		out, err = chart.EncodeMsgpack(result)
	default:
		out, err = chart.EncodeJSON(result)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	if _, err := os.Stdout.Write(out); err != nil {
		log.Fatal().Err(err).Msg("Failed to write result")
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
