package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func parse(t *testing.T, args ...string) (*CLI, string) {
	t.Helper()
	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx.Command()
}

func TestParse_Run(t *testing.T) {
	cli, cmd := parse(t, "-c", "table.hcl", "--debug", "run", "-n", "50", "--seed", "7", "-f", "csv", "--verbose")

	assert.Equal(t, "run", cmd)
	assert.Equal(t, "table.hcl", cli.ConfigFile)
	assert.True(t, cli.Debug)
	assert.Equal(t, 50, cli.Run.Rounds)
	require.NotNil(t, cli.Run.Seed)
	assert.Equal(t, int64(7), *cli.Run.Seed)
	assert.Equal(t, "csv", cli.Run.Format)
	assert.True(t, cli.Run.Verbose)
}

func TestParse_Batch(t *testing.T) {
	cli, cmd := parse(t, "batch", "-r", "20", "-w", "8", "--no-color")

	assert.Equal(t, "batch", cmd)
	assert.Equal(t, 20, cli.Batch.Runs)
	assert.Equal(t, 8, cli.Batch.Workers)
	assert.Nil(t, cli.Batch.Seed)
	assert.True(t, cli.NoColor)
	assert.Equal(t, "blackjack.hcl", cli.ConfigFile)
}

func TestParse_ConfigFromEnv(t *testing.T) {
	t.Setenv("BLACKJACK_CONFIG", "from-env.hcl")

	cli, cmd := parse(t, "config")
	assert.Equal(t, "config", cmd)
	assert.Equal(t, "from-env.hcl", cli.ConfigFile)
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seed := int64(11)
	cmd := RunCmd{Rounds: 20, Seed: &seed, Output: dir, Format: "toml", Verbose: true}

	var out bytes.Buffer
	require.NoError(t, cmd.run(context.Background(), config.Default(), quietLogger(), &out, false))

	assert.Contains(t, out.String(), "Blackjack Simulation Report")
	assert.Contains(t, out.String(), "Round 1")
	assert.Contains(t, out.String(), "seed 11")
	assert.FileExists(t, filepath.Join(dir, "blackjack-11.toml"))
}

func TestRunCmd_NoExport(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	seed := int64(3)
	cmd := RunCmd{Rounds: 5, Seed: &seed, Output: dir, NoExport: true}

	var out bytes.Buffer
	require.NoError(t, cmd.run(context.Background(), config.Default(), quietLogger(), &out, false))
	assert.NotContains(t, out.String(), "Round 1", "rounds are only rendered when verbose")
	assert.NoDirExists(t, dir)
}

func TestRunCmd_InvalidFormat(t *testing.T) {
	t.Parallel()

	cmd := RunCmd{Format: "xml", NoExport: true}
	err := cmd.run(context.Background(), config.Default(), quietLogger(), io.Discard, false)
	require.Error(t, err)
}

func TestBatchCmd(t *testing.T) {
	t.Parallel()

	seed := int64(5)
	cmd := BatchCmd{Runs: 3, Workers: 2, Rounds: 10, Seed: &seed}

	var out bytes.Buffer
	require.NoError(t, cmd.run(context.Background(), config.Default(), quietLogger(), &out))
	assert.Contains(t, out.String(), "Runs: 3")
	assert.Contains(t, out.String(), "Basic (basic)")
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, (&ConfigCmd{}).run(&out))
	assert.Equal(t, string(config.DefaultHCL()), out.String())

	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	cmd := ConfigCmd{Path: path}
	require.NoError(t, cmd.run(io.Discard))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	require.Error(t, cmd.run(io.Discard), "refuses to overwrite")
	cmd.Force = true
	require.NoError(t, cmd.run(io.Discard))

	_, err = os.Stat(path)
	require.NoError(t, err)
}
