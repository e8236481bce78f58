package game

// Summary is the outcome of RunSimulation
type Summary struct {
	Rounds  int             `json:"rounds" toml:"rounds"`
	Players []PlayerSummary `json:"players" toml:"players"`
}

// PlayerSummary tallies one player's hands across the trace
type PlayerSummary struct {
	Name          string  `json:"name" toml:"name"`
	Strategy      string  `json:"strategy" toml:"strategy"`
	InitialBudget float64 `json:"initial_budget" toml:"initial_budget"`
	FinalBudget   float64 `json:"final_budget" toml:"final_budget"`
	RoundsPlayed  int     `json:"rounds_played" toml:"rounds_played"`
	Hands         int     `json:"hands" toml:"hands"`
	Wins          int     `json:"wins" toml:"wins"`
	Losses        int     `json:"losses" toml:"losses"`
	Pushes        int     `json:"pushes" toml:"pushes"`
	Blackjacks    int     `json:"blackjacks" toml:"blackjacks"`
}

// Net returns the change in budget over the simulation
func (ps PlayerSummary) Net() float64 {
	return ps.FinalBudget - ps.InitialBudget
}

// Summarize tallies a trace. initial maps player names to opening budgets;
// players missing from it report zero.
func Summarize(trace []RoundTrace, initial map[string]float64) Summary {
	s := Summary{Rounds: len(trace)}
	if len(trace) == 0 {
		return s
	}

	index := make(map[string]int)
	for _, rt := range trace {
		for _, pt := range rt.Players {
			i, ok := index[pt.Name]
			if !ok {
				i = len(s.Players)
				index[pt.Name] = i
				s.Players = append(s.Players, PlayerSummary{
					Name:          pt.Name,
					Strategy:      pt.Strategy,
					InitialBudget: initial[pt.Name],
				})
			}
			ps := &s.Players[i]
			ps.FinalBudget = pt.Budget
			if !pt.SatOut {
				ps.RoundsPlayed++
			}
			for _, h := range pt.Hands {
				ps.Hands++
				switch h.Result {
				case ResultWin:
					ps.Wins++
				case ResultLose:
					ps.Losses++
				case ResultPush:
					ps.Pushes++
				}
				if h.Blackjack && h.Result == ResultWin {
					ps.Blackjacks++
				}
			}
		}
	}
	return s
}
