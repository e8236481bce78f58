// Package config loads simulation settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/strategy"
)

// Export formats accepted by simulation.format
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatCSV  = "csv"
)

// Config represents the complete simulation configuration
type Config struct {
	Game       *GameSettings       `hcl:"game,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig      `hcl:"player,block"`
	Strategies *StrategySettings   `hcl:"strategies,block"`
}

// GameSettings contains the table rules
type GameSettings struct {
	MinimumBet       float64 `hcl:"minimum_bet,optional"`
	Decks            int     `hcl:"decks,optional"`
	MaxHands         int     `hcl:"max_hands,optional"`
	MaxDecisions     int     `hcl:"max_decisions,optional"`
	DealerHitsSoft17 bool    `hcl:"dealer_hits_soft_17,optional"`
	Reshuffle        string  `hcl:"reshuffle,optional"`
	PenetrationMin   float64 `hcl:"penetration_min,optional"`
	PenetrationMax   float64 `hcl:"penetration_max,optional"`
	ReservePerSeat   int     `hcl:"reserve_per_seat,optional"`
}

// SimulationSettings contains run and output settings
type SimulationSettings struct {
	Rounds    int    `hcl:"rounds,optional"`
	Runs      int    `hcl:"runs,optional"`
	Seed      int64  `hcl:"seed,optional"` // 0 picks a random seed
	Workers   int    `hcl:"workers,optional"`
	OutputDir string `hcl:"output_dir,optional"`
	Format    string `hcl:"format,optional"`
	Verbose   bool   `hcl:"verbose,optional"`
	LogLevel  string `hcl:"log_level,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	Name     string  `hcl:"name,label"`
	Strategy string  `hcl:"strategy"`
	Budget   float64 `hcl:"budget,optional"`
}

// StrategySettings contains per-strategy tunables
type StrategySettings struct {
	Aggressive   *AggressiveSettings   `hcl:"aggressive,block"`
	Conservative *ConservativeSettings `hcl:"conservative,block"`
	Counting     *CountingSettings     `hcl:"counting,block"`
	RuleBook     *RuleBookSettings     `hcl:"rulebook,block"`
}

type AggressiveSettings struct {
	MaxBetFraction float64 `hcl:"max_bet_fraction,optional"`
}

type ConservativeSettings struct {
	ReserveMultiple float64 `hcl:"reserve_multiple,optional"`
	StandOn         int     `hcl:"stand_on,optional"`
}

type CountingSettings struct {
	Base       string  `hcl:"base,optional"`
	Threshold  float64 `hcl:"threshold,optional"`
	Multiplier float64 `hcl:"multiplier,optional"`
}

type RuleBookSettings struct {
	BudgetFraction float64 `hcl:"budget_fraction,optional"`
	RoundTo        float64 `hcl:"round_to,optional"`
}

// DefaultBudget is the opening budget of a player that does not set one
const DefaultBudget = 1000

// Default returns the default configuration
func Default() *Config {
	table := game.DefaultConfig()
	params := strategy.DefaultParams()

	return &Config{
		Game: &GameSettings{
			MinimumBet:     table.MinimumBet,
			Decks:          table.Decks,
			MaxHands:       table.MaxHands,
			MaxDecisions:   table.MaxDecisions,
			Reshuffle:      table.Reshuffle.String(),
			PenetrationMin: table.PenetrationMin,
			PenetrationMax: table.PenetrationMax,
			ReservePerSeat: table.ReservePerSeat,
		},
		Simulation: &SimulationSettings{
			Rounds:    200,
			Runs:      1,
			Workers:   4,
			OutputDir: "out",
			Format:    FormatJSON,
			LogLevel:  "warn",
		},
		Players: []PlayerConfig{
			{Name: "Basic", Strategy: string(strategy.KindBasic), Budget: DefaultBudget},
			{Name: "Aggressive", Strategy: string(strategy.KindAggressive), Budget: DefaultBudget},
			{Name: "Conservative", Strategy: string(strategy.KindConservative), Budget: DefaultBudget},
		},
		Strategies: &StrategySettings{
			Aggressive:   &AggressiveSettings{MaxBetFraction: params.Aggressive.MaxBetFraction},
			Conservative: &ConservativeSettings{ReserveMultiple: params.Conservative.ReserveMultiple, StandOn: params.Conservative.StandOn},
			Counting: &CountingSettings{
				Base:       string(params.Counting.Base),
				Threshold:  params.Counting.Threshold,
				Multiplier: params.Counting.Multiplier,
			},
			RuleBook: &RuleBookSettings{BudgetFraction: params.RuleBook.BudgetFraction, RoundTo: params.RuleBook.RoundTo},
		},
	}
}

// Load reads and validates an HCL file, returning the defaults when the
// file does not exist
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes and validates HCL source; filename is used in diagnostics
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills zero values from Default
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	} else {
		g, d := c.Game, defaults.Game
		setDefault(&g.MinimumBet, d.MinimumBet)
		setDefault(&g.Decks, d.Decks)
		setDefault(&g.MaxHands, d.MaxHands)
		setDefault(&g.MaxDecisions, d.MaxDecisions)
		setDefault(&g.Reshuffle, d.Reshuffle)
		setDefault(&g.PenetrationMin, d.PenetrationMin)
		setDefault(&g.PenetrationMax, d.PenetrationMax)
		setDefault(&g.ReservePerSeat, d.ReservePerSeat)
	}

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	} else {
		s, d := c.Simulation, defaults.Simulation
		setDefault(&s.Rounds, d.Rounds)
		setDefault(&s.Runs, d.Runs)
		setDefault(&s.Workers, d.Workers)
		setDefault(&s.OutputDir, d.OutputDir)
		setDefault(&s.Format, d.Format)
		setDefault(&s.LogLevel, d.LogLevel)
	}

	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}
	for i := range c.Players {
		setDefault(&c.Players[i].Budget, DefaultBudget)
	}

	if c.Strategies == nil {
		c.Strategies = defaults.Strategies
		return
	}
	st, d := c.Strategies, defaults.Strategies
	if st.Aggressive == nil {
		st.Aggressive = d.Aggressive
	}
	setDefault(&st.Aggressive.MaxBetFraction, d.Aggressive.MaxBetFraction)
	if st.Conservative == nil {
		st.Conservative = d.Conservative
	}
	setDefault(&st.Conservative.ReserveMultiple, d.Conservative.ReserveMultiple)
	setDefault(&st.Conservative.StandOn, d.Conservative.StandOn)
	if st.Counting == nil {
		st.Counting = d.Counting
	}
	setDefault(&st.Counting.Base, d.Counting.Base)
	setDefault(&st.Counting.Threshold, d.Counting.Threshold)
	setDefault(&st.Counting.Multiplier, d.Counting.Multiplier)
	if st.RuleBook == nil {
		st.RuleBook = d.RuleBook
	}
	setDefault(&st.RuleBook.BudgetFraction, d.RuleBook.BudgetFraction)
	setDefault(&st.RuleBook.RoundTo, d.RuleBook.RoundTo)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.GameConfig(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	s := c.Simulation
	if s.Rounds < 1 {
		return fmt.Errorf("simulation: rounds must be positive, got %d", s.Rounds)
	}
	if s.Runs < 1 {
		return fmt.Errorf("simulation: runs must be positive, got %d", s.Runs)
	}
	if s.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive, got %d", s.Workers)
	}
	switch s.Format {
	case FormatJSON, FormatTOML, FormatCSV:
	default:
		return fmt.Errorf("simulation: invalid format: %s", s.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if _, err := strategy.ParseKind(p.Strategy); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
		if p.Budget <= 0 {
			return fmt.Errorf("player %s: budget must be positive", p.Name)
		}
	}

	if err := c.StrategyParams().Validate(); err != nil {
		return fmt.Errorf("strategies: %w", err)
	}
	return nil
}

// GameConfig converts the game block into engine rules
func (c *Config) GameConfig() (game.Config, error) {
	g := c.Game
	policy, err := game.ParseReshufflePolicy(g.Reshuffle)
	if err != nil {
		return game.Config{}, err
	}

	cfg := game.Config{
		MinimumBet:     g.MinimumBet,
		Decks:          g.Decks,
		MaxHands:       g.MaxHands,
		MaxDecisions:   g.MaxDecisions,
		HitSoft17:      g.DealerHitsSoft17,
		Reshuffle:      policy,
		PenetrationMin: g.PenetrationMin,
		PenetrationMax: g.PenetrationMax,
		ReservePerSeat: g.ReservePerSeat,
	}
	return cfg, cfg.Validate()
}

// StrategyParams converts the strategies block
func (c *Config) StrategyParams() strategy.Params {
	s := c.Strategies
	return strategy.Params{
		Aggressive:   strategy.AggressiveParams{MaxBetFraction: s.Aggressive.MaxBetFraction},
		Conservative: strategy.ConservativeParams{ReserveMultiple: s.Conservative.ReserveMultiple, StandOn: s.Conservative.StandOn},
		Counting: strategy.CountingParams{
			Base:       strategy.Kind(strings.ToLower(s.Counting.Base)),
			Threshold:  s.Counting.Threshold,
			Multiplier: s.Counting.Multiplier,
		},
		RuleBook: strategy.RuleBookParams{BudgetFraction: s.RuleBook.BudgetFraction, RoundTo: s.RuleBook.RoundTo},
	}
}

// LogLevel parses simulation.log_level
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Simulation.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level: %s", c.Simulation.LogLevel)
	}
	return level, nil
}

// DefaultHCL renders the default configuration as HCL
func DefaultHCL() []byte {
	return Encode(Default())
}

// Encode renders c as HCL
func Encode(c *Config) []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return hclwrite.Format(f.Bytes())
}
