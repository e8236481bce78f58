package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/runid"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Seat describes one player at the simulated table
type Seat struct {
	Name   string
	Kind   strategy.Kind
	Budget float64
}

// Config holds configuration for running simulations
type Config struct {
	Table   game.Config
	Seats   []Seat
	Params  strategy.Params
	Rounds  int
	Runs    int
	Seed    int64
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// FromConfig converts a loaded configuration file. A zero seed is replaced
// with a random one so the run can be reproduced from the reported seed.
func FromConfig(c *config.Config) (Config, error) {
	table, err := c.GameConfig()
	if err != nil {
		return Config{}, err
	}

	seats := make([]Seat, 0, len(c.Players))
	for _, p := range c.Players {
		kind, err := strategy.ParseKind(p.Strategy)
		if err != nil {
			return Config{}, fmt.Errorf("player %s: %w", p.Name, err)
		}
		seats = append(seats, Seat{Name: p.Name, Kind: kind, Budget: p.Budget})
	}

	seed := c.Simulation.Seed
	if seed == 0 {
		if seed, err = randutil.NewSeed(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		Table:   table,
		Seats:   seats,
		Params:  c.StrategyParams(),
		Rounds:  c.Simulation.Rounds,
		Runs:    c.Simulation.Runs,
		Seed:    seed,
		Workers: c.Simulation.Workers,
	}, nil
}

// Result is the outcome of one simulated game
type Result struct {
	ID       string
	Run      int
	Seed     int64
	Trace    []game.RoundTrace
	Summary  game.Summary
	Stats    []*statistics.Statistics
	GameOver bool
	Started  time.Time
	Duration time.Duration
}

// RoundsPerSecond reports throughput, zero when no time was measured
func (r *Result) RoundsPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Summary.Rounds) / r.Duration.Seconds()
}

// PlayerDistribution aggregates one seat's final net across batch runs
type PlayerDistribution struct {
	Name     string
	Strategy string
	Net      statistics.Sample
	Rounds   statistics.Sample
	Ruined   int
}

// RuinRate is the fraction of runs the player finished unable to bet
func (d *PlayerDistribution) RuinRate() float64 {
	if d.Net.N == 0 {
		return 0
	}
	return float64(d.Ruined) / float64(d.Net.N)
}

// Batch is the outcome of independent runs sharing one base seed
type Batch struct {
	Seed     int64
	Results  []*Result
	Players  []*PlayerDistribution
	Started  time.Time
	Duration time.Duration
}

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if err := config.Table.Validate(); err != nil {
		return nil, err
	}
	if err := config.Params.Validate(); err != nil {
		return nil, err
	}
	if len(config.Seats) == 0 {
		return nil, errors.New("simulator: no seats configured")
	}
	for _, seat := range config.Seats {
		if _, err := strategy.ParseKind(string(seat.Kind)); err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}
	if config.Rounds < 1 {
		return nil, fmt.Errorf("simulator: rounds must be positive, got %d", config.Rounds)
	}
	if config.Runs < 1 {
		config.Runs = 1
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
	}, nil
}

// Config returns the simulator configuration with defaults applied
func (s *Simulator) Config() Config {
	return s.config
}

func (s *Simulator) seatPlayers(logger *log.Logger) ([]*game.Player, error) {
	players := make([]*game.Player, 0, len(s.config.Seats))
	for _, seat := range s.config.Seats {
		strat, err := strategy.New(seat.Kind, s.config.Params, logger)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		players = append(players, game.NewPlayer(seat.Name, seat.Budget, strat))
	}
	return players, nil
}

// RunOnce plays a single game of up to Rounds rounds seeded by seed. The
// context is checked between rounds.
func (s *Simulator) RunOnce(ctx context.Context, run int, seed int64) (*Result, error) {
	logger := s.config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("run", run)

	players, err := s.seatPlayers(logger)
	if err != nil {
		return nil, err
	}

	g, err := game.NewGame(players, s.config.Table,
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	started := s.clock.Now()
	for g.Round() < s.config.Rounds && !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.RunRound(); err != nil {
			return nil, fmt.Errorf("run %d (seed %d): %w", run, seed, err)
		}
	}

	trace := g.Trace()
	stats := statistics.Collect(trace)
	for _, st := range stats {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", st.Name, err)
		}
	}

	result := &Result{
		ID:       runid.New(started, randutil.New(seed)),
		Run:      run,
		Seed:     seed,
		Trace:    trace,
		Summary:  g.Summary(),
		Stats:    stats,
		GameOver: g.IsOver(),
		Started:  started,
		Duration: s.clock.Since(started),
	}
	s.logger.Debug("Run complete", "id", result.ID, "run", run, "seed", seed, "rounds", result.Summary.Rounds, "duration", result.Duration)
	return result, nil
}

// Run plays the configured base seed once
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	return s.RunOnce(ctx, 0, s.config.Seed)
}

// RunBatch plays Runs independent games concurrently, each seeded from the
// base seed and its run index. The first error cancels the remaining runs.
// Batch results keep tallies only; traces are dropped.
func (s *Simulator) RunBatch(ctx context.Context) (*Batch, error) {
	batch := &Batch{
		Seed:    s.config.Seed,
		Results: make([]*Result, s.config.Runs),
		Started: s.clock.Now(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Runs {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.RunOnce(ctx, i, seed)
			if err != nil {
				return err
			}
			result.Trace = nil
			batch.Results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch.Players = s.distributions(batch.Results)
	batch.Duration = s.clock.Since(batch.Started)
	s.logger.Info("Batch complete", "runs", len(batch.Results), "seed", batch.Seed, "duration", batch.Duration)
	return batch, nil
}

func (s *Simulator) distributions(results []*Result) []*PlayerDistribution {
	dists := make([]*PlayerDistribution, len(s.config.Seats))
	index := make(map[string]*PlayerDistribution, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		dists[i] = &PlayerDistribution{Name: seat.Name, Strategy: string(seat.Kind)}
		index[seat.Name] = dists[i]
	}

	for _, r := range results {
		for _, ps := range r.Summary.Players {
			d, ok := index[ps.Name]
			if !ok {
				continue
			}
			d.Net.Add(ps.Net())
			d.Rounds.Add(float64(ps.RoundsPlayed))
			if ps.FinalBudget <= s.config.Table.MinimumBet {
				d.Ruined++
			}
		}
	}
	return dists
}
