package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	ConfigFile string `name:"config" short:"c" env:"BLACKJACK_CONFIG" default:"blackjack.hcl" help:"HCL configuration file (defaults apply when missing)"`
	Debug      bool   `help:"Enable debug logging"`
	NoColor    bool   `name:"no-color" help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Run a single simulation and export its trace"`
	Batch   BatchCmd         `cmd:"" help:"Run independent simulations and report the spread of results"`
	Init    ConfigCmd        `cmd:"" name:"config" help:"Print or write the default configuration"`
}

// load reads the configuration file and builds the logger it asks for
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	if g.Debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return cfg, logger, nil
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack round simulator with pluggable player strategies"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
}

func main() {
	// A missing .env is fine; it only seeds env-backed flags.
	_ = godotenv.Load()

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		log.Fatal("Failed to build command line", "error", err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
