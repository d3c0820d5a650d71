package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pthm-cable/raceway/config"
	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/telemetry"
	"github.com/pthm-cable/raceway/terminal"
	"github.com/pthm-cable/raceway/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "window", "Front-end: window, tui or headless")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	races := flag.Int("races", 1, "Races to run back to back in headless mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV results, config and snapshots")
	autopilot := flag.Bool("autopilot", true, "Drive the interactive car automatically in headless mode")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")

	flag.Parse()

	os.Exit(run(*configPath, *mode, *seed, *races, *outputDir, *autopilot, *logLevel))
}

func run(configPath, mode string, seed int64, races int, outputDir string, autopilot bool, logLevel string) int {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	setupLogging(mode, outputDir, level)

	// Initialize config before anything else
	if err := config.Init(configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	g, err := game.NewGame(cfg, game.Options{Seed: seed})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}

	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		return 1
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting",
		"mode", mode,
		"seed", g.Seed(),
		"cars", cfg.Cars.Count,
		"lanes", cfg.Track.Lanes,
		"output_dir", out.Dir(),
	)

	switch mode {
	case "headless":
		err = g.RunHeadless(ctx, races, out, autopilot)
		if cerr := g.Close(); err == nil {
			err = cerr
		}
	case "tui":
		err = terminal.Run(ctx, g, out)
	case "window":
		err = ui.Run(g, out)
	default:
		slog.Error("unknown mode", "mode", mode)
		return 2
	}

	if err != nil {
		if errors.Is(err, game.ErrTeardownTimeout) {
			slog.Error("race workers did not stop; exiting", "error", err)
		} else {
			slog.Error("run failed", "error", err)
		}
		return 1
	}
	return 0
}

// setupLogging installs the default logger. Headless runs log JSON to stdout.
// The interactive front-ends own the terminal or window, so their logs go to a
// file in the output directory, or are limited to warnings on stderr.
func setupLogging(mode, outputDir string, level slog.Level) {
	if mode == "headless" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
		return
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err == nil {
			f, err := os.OpenFile(filepath.Join(outputDir, "raceway.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})))
				return
			}
		}
	}

	if mode == "tui" {
		level = max(level, slog.LevelWarn)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
