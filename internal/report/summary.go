package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
)

// WriteSummary outputs a human-readable summary of one simulation. stats may
// be nil, in which case only the per-player totals are printed.
func WriteSummary(w io.Writer, summary game.Summary, stats []*statistics.Statistics) error {
	var sb strings.Builder

	sb.WriteString("\nBlackjack Simulation Report\n")
	sb.WriteString("===========================\n")
	sb.WriteString(fmt.Sprintf("Rounds: %d\n", summary.Rounds))
	sb.WriteString("\n")

	sb.WriteString("Results\n")
	sb.WriteString("-------\n")
	if len(summary.Players) == 0 {
		sb.WriteString("No rounds played\n")
	}
	for _, ps := range summary.Players {
		sb.WriteString(fmt.Sprintf("%s (%s): %.2f -> %.2f (net %+.2f)\n",
			ps.Name, ps.Strategy, ps.InitialBudget, ps.FinalBudget, ps.Net()))
		sb.WriteString(fmt.Sprintf("  Rounds played: %d, hands: %d\n", ps.RoundsPlayed, ps.Hands))
		sb.WriteString(fmt.Sprintf("  Wins: %d (%.1f%%), Losses: %d (%.1f%%), Pushes: %d (%.1f%%), Blackjacks: %d\n",
			ps.Wins, percent(ps.Wins, ps.Hands),
			ps.Losses, percent(ps.Losses, ps.Hands),
			ps.Pushes, percent(ps.Pushes, ps.Hands),
			ps.Blackjacks))
	}

	if len(stats) > 0 {
		sb.WriteString("\nAnalysis\n")
		sb.WriteString("--------\n")
		for _, st := range stats {
			sb.WriteString(fmt.Sprintf("%s: mean %+.2f/round (sd %.2f), wagered %.2f, return %.2f%%\n",
				st.Name, st.Rounds.Mean(), st.Rounds.StdDev(), st.Wagered, st.ReturnOnWager()*100))
			sb.WriteString(fmt.Sprintf("  Busts: %d, double downs: %d, splits: %d, sat out: %d\n",
				st.Busts, st.DoubleDowns, st.Splits, st.SatOut))
			sb.WriteString(fmt.Sprintf("  Largest win: %+.2f, largest loss: %+.2f, best streak: %d\n",
				st.LargestWin, st.LargestLoss, st.MaxWinStreak))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteBatchSummary outputs the distribution of final nets across a batch
func WriteBatchSummary(w io.Writer, batch *simulator.Batch) error {
	var sb strings.Builder

	sb.WriteString("\nBlackjack Batch Report\n")
	sb.WriteString("======================\n")
	sb.WriteString(fmt.Sprintf("Runs: %d\n", len(batch.Results)))
	sb.WriteString(fmt.Sprintf("Seed: %d\n", batch.Seed))
	sb.WriteString(fmt.Sprintf("Duration: %.1fs\n", batch.Duration.Seconds()))
	sb.WriteString("\n")

	sb.WriteString("Final net per run\n")
	sb.WriteString("-----------------\n")
	for _, d := range batch.Players {
		low, high := d.Net.ConfidenceInterval95()
		sb.WriteString(fmt.Sprintf("%s (%s)\n", d.Name, d.Strategy))
		sb.WriteString(fmt.Sprintf("  Mean: %+.2f  Median: %+.2f  Std Dev: %.2f\n",
			d.Net.Mean(), d.Net.Median(), d.Net.StdDev()))
		sb.WriteString(fmt.Sprintf("  95%% CI: [%+.2f, %+.2f]\n", low, high))
		sb.WriteString(fmt.Sprintf("  Percentiles: P5=%+.2f, P25=%+.2f, P75=%+.2f, P95=%+.2f\n",
			d.Net.Percentile(0.05), d.Net.Percentile(0.25), d.Net.Percentile(0.75), d.Net.Percentile(0.95)))
		sb.WriteString(fmt.Sprintf("  Range: [%+.2f, %+.2f]  Avg rounds played: %.1f\n",
			d.Net.Min(), d.Net.Max(), d.Rounds.Mean()))
		sb.WriteString(fmt.Sprintf("  Ruined: %d of %d (%.1f%%)\n", d.Ruined, d.Net.N, d.RuinRate()*100))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
