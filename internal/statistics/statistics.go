// Package statistics derives per-player analytics from round traces.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjacksim/internal/game"
)

// Sample accumulates observations for mean, spread and percentiles
type Sample struct {
	N      int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Kept for median/percentile calculation
}

// Add records one observation
func (s *Sample) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(math.Max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median observation
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the interpolated value at p (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Min returns the smallest observation
func (s *Sample) Min() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.sorted()[0]
}

// Max returns the largest observation
func (s *Sample) Max() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.sorted()[len(s.Values)-1]
}

// RoundResult is one player's round reduced to the figures analytics need
type RoundResult struct {
	SatOut      bool
	Net         float64 // budget change reported by the engine
	Wagered     float64
	Budget      float64
	Hands       int
	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Busts       int
	DoubleDowns int
	Splits      int

	// Outcome nets, recomputed per hand from bets and results
	WinNet       float64
	BlackjackNet float64
	LossNet      float64
}

// FromPlayerTrace reduces a traced round
func FromPlayerTrace(pt game.PlayerTrace) RoundResult {
	r := RoundResult{
		SatOut:  pt.SatOut,
		Net:     pt.Net,
		Wagered: pt.Bet,
		Budget:  pt.Budget,
		Hands:   len(pt.Hands),
	}
	if len(pt.Hands) > 1 {
		r.Splits = len(pt.Hands) - 1
	}

	for _, h := range pt.Hands {
		if h.DoubleDown {
			r.DoubleDowns++
		}
		if h.Bust {
			r.Busts++
		}
		switch h.Result {
		case game.ResultWin:
			r.Wins++
			if h.Blackjack {
				r.Blackjacks++
				r.BlackjackNet += h.Bet * (game.BlackjackPayout - 1)
			} else {
				r.WinNet += h.Bet * (game.WinPayout - 1)
			}
		case game.ResultLose:
			r.Losses++
			r.LossNet -= h.Bet
		case game.ResultPush:
			r.Pushes++
		}
	}
	return r
}

// Statistics tracks one player's results across a simulation
type Statistics struct {
	Name     string
	Strategy string

	// Round nets for every round the player bet in
	Rounds Sample
	SatOut int

	Hands       int
	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Busts       int
	DoubleDowns int
	Splits      int

	Wagered      float64
	WinNet       float64
	BlackjackNet float64
	LossNet      float64
	AllNet       float64 // Sum of engine round nets, for the ledger check

	LargestWin   float64
	LargestLoss  float64 // most negative round net
	MaxWinStreak int
	FinalBudget  float64

	streak int
}

// Add incorporates one round
func (s *Statistics) Add(r RoundResult) {
	s.FinalBudget = r.Budget
	if r.SatOut {
		s.SatOut++
		s.streak = 0
		return
	}

	s.Rounds.Add(r.Net)
	s.Hands += r.Hands
	s.Wins += r.Wins
	s.Losses += r.Losses
	s.Pushes += r.Pushes
	s.Blackjacks += r.Blackjacks
	s.Busts += r.Busts
	s.DoubleDowns += r.DoubleDowns
	s.Splits += r.Splits

	s.Wagered += r.Wagered
	s.WinNet += r.WinNet
	s.BlackjackNet += r.BlackjackNet
	s.LossNet += r.LossNet
	s.AllNet += r.Net

	s.LargestWin = math.Max(s.LargestWin, r.Net)
	s.LargestLoss = math.Min(s.LargestLoss, r.Net)

	if r.Net > 0 {
		s.streak++
		s.MaxWinStreak = max(s.MaxWinStreak, s.streak)
	} else {
		s.streak = 0
	}
}

func (s *Statistics) rate(n int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(n) / float64(s.Hands)
}

// WinRate returns the share of hands won
func (s *Statistics) WinRate() float64 { return s.rate(s.Wins) }

// LossRate returns the share of hands lost
func (s *Statistics) LossRate() float64 { return s.rate(s.Losses) }

// PushRate returns the share of hands pushed
func (s *Statistics) PushRate() float64 { return s.rate(s.Pushes) }

// ReturnOnWager returns the net result per unit staked
func (s *Statistics) ReturnOnWager() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.AllNet / s.Wagered
}

// IsLedgerBalanced checks the engine's round nets against the nets implied
// by each hand's bet and result
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.WinNet-s.BlackjackNet-s.LossNet) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch for %s: AllNet=%.6f, WinNet=%.6f, BlackjackNet=%.6f, LossNet=%.6f",
			s.Name, s.AllNet, s.WinNet, s.BlackjackNet, s.LossNet)
	}
	if s.Wins+s.Losses+s.Pushes != s.Hands {
		return fmt.Errorf("results (%d) do not match hands (%d) for %s",
			s.Wins+s.Losses+s.Pushes, s.Hands, s.Name)
	}
	if s.Blackjacks > s.Wins {
		return fmt.Errorf("blackjacks (%d) exceed wins (%d) for %s", s.Blackjacks, s.Wins, s.Name)
	}
	if len(s.Rounds.Values) != s.Rounds.N {
		return fmt.Errorf("values array length (%d) does not match rounds (%d)",
			len(s.Rounds.Values), s.Rounds.N)
	}
	return nil
}

// Collect builds statistics for every player in the trace, in seat order
func Collect(trace []game.RoundTrace) []*Statistics {
	var out []*Statistics
	index := make(map[string]*Statistics)
	for _, rt := range trace {
		for _, pt := range rt.Players {
			s, ok := index[pt.Name]
			if !ok {
				s = &Statistics{Name: pt.Name, Strategy: pt.Strategy}
				index[pt.Name] = s
				out = append(out, s)
			}
			s.Add(FromPlayerTrace(pt))
		}
	}
	return out
}
