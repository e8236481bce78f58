// Package report exports simulation traces and renders plain-text summaries.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/simulator"
)

// Metadata describes the run that produced a document
type Metadata struct {
	ID              string    `json:"id" toml:"id"`
	Seed            int64     `json:"seed" toml:"seed"`
	Run             int       `json:"run" toml:"run"`
	Rounds          int       `json:"rounds" toml:"rounds"`
	GameOver        bool      `json:"game_over" toml:"game_over"`
	StartTime       time.Time `json:"start_time" toml:"start_time"`
	DurationSeconds float64   `json:"duration_seconds" toml:"duration_seconds"`
	RoundsPerSecond float64   `json:"rounds_per_second" toml:"rounds_per_second"`
}

// Document is the exported form of one simulation
type Document struct {
	Metadata Metadata          `json:"metadata" toml:"metadata"`
	Summary  game.Summary      `json:"summary" toml:"summary"`
	Rounds   []game.RoundTrace `json:"rounds" toml:"rounds"`
}

// NewDocument builds the export document for a single run
func NewDocument(r *simulator.Result) *Document {
	return &Document{
		Metadata: Metadata{
			ID:              r.ID,
			Seed:            r.Seed,
			Run:             r.Run,
			Rounds:          r.Summary.Rounds,
			GameOver:        r.GameOver,
			StartTime:       r.Started,
			DurationSeconds: r.Duration.Seconds(),
			RoundsPerSecond: r.RoundsPerSecond(),
		},
		Summary: r.Summary,
		Rounds:  r.Trace,
	}
}

// EncodeJSON writes v as indented JSON
func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// EncodeTOML writes v as TOML
func EncodeTOML(w io.Writer, v any) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(v)
}

var handColumns = []string{
	"round", "player", "strategy", "hand", "cards", "decisions", "bet", "value",
	"soft", "blackjack", "double_down", "ace_split", "bust", "result",
	"dealer_cards", "dealer_value", "dealer_bust", "budget", "round_net",
	"running_count", "true_count", "warnings",
}

// EncodeHandsCSV flattens the trace into one row per hand. Players who sat a
// round out contribute no rows for it.
func EncodeHandsCSV(w io.Writer, rounds []game.RoundTrace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(handColumns); err != nil {
		return err
	}

	for _, rt := range rounds {
		dealerCards := notation(rt.Dealer.Cards)
		for _, pt := range rt.Players {
			for i, h := range pt.Hands {
				decisions := make([]string, len(h.Decisions))
				for j, d := range h.Decisions {
					decisions[j] = d.Action.String()
				}
				row := []string{
					strconv.Itoa(rt.Round),
					pt.Name,
					pt.Strategy,
					strconv.Itoa(i + 1),
					notation(h.Cards),
					strings.Join(decisions, ";"),
					formatFloat(h.Bet),
					strconv.Itoa(h.Value),
					strconv.FormatBool(h.Soft),
					strconv.FormatBool(h.Blackjack),
					strconv.FormatBool(h.DoubleDown),
					strconv.FormatBool(h.AceSplit),
					strconv.FormatBool(h.Bust),
					h.Result.String(),
					dealerCards,
					strconv.Itoa(rt.Dealer.Value),
					strconv.FormatBool(rt.Dealer.Bust),
					formatFloat(pt.Budget),
					formatFloat(pt.Net),
					strconv.Itoa(rt.Shoe.RunningCount),
					strconv.Itoa(rt.Shoe.TrueCount),
					strings.Join(h.Warnings, ";"),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func notation(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Notation()
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteJSON writes doc to path atomically
func WriteJSON(path string, doc *Document) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return EncodeJSON(w, doc)
	})
}

// WriteTOML writes doc to path atomically
func WriteTOML(path string, doc *Document) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return EncodeTOML(w, doc)
	})
}

// WriteHandsCSV writes the per-hand rows of rounds to path atomically
func WriteHandsCSV(path string, rounds []game.RoundTrace) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return EncodeHandsCSV(w, rounds)
	})
}

// Export writes doc into dir in the given format and returns the file path
func Export(dir, format string, doc *Document) (string, error) {
	if err := fileutil.EnsureDir(dir); err != nil {
		return "", err
	}

	name := fmt.Sprintf("blackjack-%d.%s", doc.Metadata.Seed, format)
	path := filepath.Join(dir, name)

	var err error
	switch format {
	case config.FormatJSON:
		err = WriteJSON(path, doc)
	case config.FormatTOML:
		err = WriteTOML(path, doc)
	case config.FormatCSV:
		err = WriteHandsCSV(path, doc.Rounds)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}
