package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/display"
	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/simulator"
)

// RunCmd plays one simulation
type RunCmd struct {
	Rounds   int    `short:"n" help:"Rounds to play (overrides config)"`
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
	Output   string `short:"o" help:"Directory to export the trace into (overrides config)"`
	Format   string `short:"f" help:"Export format: json, toml or csv (overrides config)"`
	Verbose  bool   `help:"Render every round"`
	NoExport bool   `name:"no-export" help:"Skip writing the trace"`
}

func (c *RunCmd) apply(cfg *config.Config) error {
	s := cfg.Simulation
	if c.Rounds > 0 {
		s.Rounds = c.Rounds
	}
	if c.Seed != nil {
		s.Seed = *c.Seed
	}
	if c.Output != "" {
		s.OutputDir = c.Output
	}
	if c.Format != "" {
		s.Format = c.Format
	}
	if c.Verbose {
		s.Verbose = true
	}
	return cfg.Validate()
}

func (c *RunCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, cfg, logger, os.Stdout, !globals.NoColor)
}

func (c *RunCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, out io.Writer, color bool) error {
	if err := c.apply(cfg); err != nil {
		return err
	}

	simCfg, err := simulator.FromConfig(cfg)
	if err != nil {
		return err
	}
	simCfg.Logger = logger

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	logger.Info("Starting simulation",
		"rounds", simCfg.Rounds,
		"players", len(simCfg.Seats),
		"seed", simCfg.Seed)

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if result.GameOver {
		logger.Warn("Game ended early", "rounds", result.Summary.Rounds)
	}

	printer := display.NewPrinter(out, color)
	if err := printer.Header(" ♠ ♥ Blackjack ♦ ♣ "); err != nil {
		return err
	}
	if cfg.Simulation.Verbose {
		for _, rt := range result.Trace {
			if err := printer.Round(rt); err != nil {
				return err
			}
		}
	}
	if err := report.WriteSummary(out, result.Summary, result.Stats); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "\nRun %s, seed %d (%.0f rounds/s)\n", result.ID, result.Seed, result.RoundsPerSecond()); err != nil {
		return err
	}

	if c.NoExport {
		return nil
	}
	path, err := report.Export(cfg.Simulation.OutputDir, cfg.Simulation.Format, report.NewDocument(result))
	if err != nil {
		return err
	}
	logger.Info("Trace written", "path", path, "format", cfg.Simulation.Format)
	return nil
}

// BatchCmd plays many independent simulations
type BatchCmd struct {
	Runs    int    `short:"r" help:"Independent runs (overrides config)"`
	Workers int    `short:"w" help:"Runs played concurrently (overrides config)"`
	Rounds  int    `short:"n" help:"Rounds per run (overrides config)"`
	Seed    *int64 `help:"Base RNG seed (overrides config)"`
}

func (c *BatchCmd) apply(cfg *config.Config) error {
	s := cfg.Simulation
	if c.Runs > 0 {
		s.Runs = c.Runs
	}
	if c.Workers > 0 {
		s.Workers = c.Workers
	}
	if c.Rounds > 0 {
		s.Rounds = c.Rounds
	}
	if c.Seed != nil {
		s.Seed = *c.Seed
	}
	return cfg.Validate()
}

func (c *BatchCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, cfg, logger, os.Stdout)
}

func (c *BatchCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, out io.Writer) error {
	if err := c.apply(cfg); err != nil {
		return err
	}

	simCfg, err := simulator.FromConfig(cfg)
	if err != nil {
		return err
	}
	simCfg.Logger = logger

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	logger.Info("Starting batch",
		"runs", simCfg.Runs,
		"workers", simCfg.Workers,
		"rounds", simCfg.Rounds,
		"seed", simCfg.Seed)

	batch, err := sim.RunBatch(ctx)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	return report.WriteBatchSummary(out, batch)
}

// ConfigCmd prints the default configuration
type ConfigCmd struct {
	Path  string `arg:"" optional:"" help:"Write to this file instead of stdout"`
	Force bool   `help:"Overwrite an existing file"`
}

func (c *ConfigCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigCmd) run(out io.Writer) error {
	data := config.DefaultHCL()
	if c.Path == "" {
		_, err := out.Write(data)
		return err
	}

	if _, err := os.Stat(c.Path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", c.Path)
	}
	if err := fileutil.WriteFileAtomic(c.Path, data, 0o644); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Wrote %s\n", c.Path)
	return err
}
