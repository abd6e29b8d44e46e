package main

import (
	"flag"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmbn-tools/navicust/codec"
	"github.com/mmbn-tools/navicust/render"
	"github.com/mmbn-tools/navicust/solver"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	problemPath := flag.String("problem", "", "path to JSON problem file")
	maxSolutions := flag.Int("max", -1, "stop after this many solutions (overrides config, 0 = unlimited)")
	renderDir := flag.String("render-dir", "", "write one PNG per solution into this directory (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *maxSolutions >= 0 {
		cfg.MaxSolutions = *maxSolutions
	}
	if *renderDir != "" {
		cfg.RenderDir = *renderDir
	}

	initLogger(cfg.LogLevel)
	session := uuid.NewString()
	log.Info().Str("session", session).Msg("NaviCust solver")

	if *problemPath == "" {
		log.Fatal().Msg("Usage: navicust -problem <file.json> [-config <file.yaml>]")
	}

	if err := run(cfg, *problemPath); err != nil {
		log.Fatal().Err(err).Msg("Solve failed")
	}
}

func initLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

func run(cfg Config, problemPath string) error {
	data, err := os.ReadFile(problemPath)
	if err != nil {
		return fmt.Errorf("failed to read problem: %w", err)
	}
	problem, err := codec.DecodeProblem(data)
	if err != nil {
		return fmt.Errorf("failed to decode problem: %w", err)
	}
	parts, err := problem.BuildParts()
	if err != nil {
		return fmt.Errorf("failed to build parts: %w", err)
	}
	settings := problem.Settings()

	var solutions iter.Seq[solver.Solution]
	switch {
	case len(problem.Constraints) > 0:
		log.Info().Int("constraints", len(problem.Constraints)).Msg("Running two-phase search")
		solutions, err = solver.SolveWithConstraints(parts, problem.BuildConstraints(), settings, problem.WantColorBug)
		if err != nil {
			return err
		}
	default:
		reqs := problem.BuildRequirements()
		log.Info().Int("requirements", len(reqs)).Msg("Running placement search")
		solutions, err = solver.Solve(parts, reqs, settings)
		if err != nil {
			return err
		}
	}

	if cfg.RenderDir != "" {
		if err := os.MkdirAll(cfg.RenderDir, 0o755); err != nil {
			return fmt.Errorf("failed to create render dir: %w", err)
		}
	}

	count := 0
	for sol := range solutions {
		line, err := codec.EncodeSolution(sol)
		if err != nil {
			return fmt.Errorf("failed to encode solution: %w", err)
		}
		fmt.Println(string(line))

		if cfg.RenderDir != "" && len(problem.Requirements) > 0 {
			path := filepath.Join(cfg.RenderDir, fmt.Sprintf("solution-%04d.png", count))
			if err := render.WritePNG(path, parts, problem.BuildRequirements(), settings, sol); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to render solution")
			}
		}

		count++
		if cfg.MaxSolutions > 0 && count >= cfg.MaxSolutions {
			log.Info().Int("count", count).Msg("Solution cap reached")
			break
		}
	}
	log.Info().Int("count", count).Msg("Search finished")
	return nil
}
