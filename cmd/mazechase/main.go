// mazechase runs the maze chase simulation in the terminal.
//
// Usage:
//
//	mazechase list               - List playable variants
//	mazechase play <variant>     - Play a variant
//	mazechase menu               - Pick a variant interactively
//	mazechase simulate <variant> - Run a headless autopilot game
//	mazechase serve              - Start SSH server for remote play
//	mazechase scores <variant>   - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.mazechase/scores.db)
//	--config <path>       - Load settings from a YAML file
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/games/mazechase"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// appConfig is loaded once before any command runs.
var appConfig config.Config

// logFile is closed on exit when logging goes to a file.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - a ghost chase arcade game in your terminal",
	Long: `Maze Chase is a tick-driven maze game with four chasing ghosts,
energizers and bonus fruit, played directly in your terminal.

Available commands:
  list      - Show all playable variants
  play      - Play a specific variant directly
  menu      - Interactive variant picker
  simulate  - Run a headless autopilot game and report the result
  serve     - Start SSH server for remote play
  scores    - View high scores

Examples:
  mazechase list
  mazechase play pacman
  mazechase play mspacman --difficulty easy
  mazechase simulate pacman --seed 42 --ticks 20000
  mazechase serve --ssh :2222
  mazechase scores pacman`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config, default 60)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.mazechase/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the config file, applies command line overrides and
// hands the result to the game package.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	for name, vc := range cfg.Variants {
		config.ApplyPreset(&vc, preset)
		cfg.Variants[name] = vc
	}

	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Simulation.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	if err := setupLogging(cfg.Log, interactive(cmd)); err != nil {
		return err
	}

	appConfig = cfg
	mazechase.Configure(cfg)
	log.Debug("config loaded", "tick_rate", cfg.Simulation.TickRate, "difficulty", preset)
	return nil
}

// interactive reports whether the command takes over the terminal, in
// which case logs on stderr would corrupt the screen.
func interactive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "play", "menu":
		return true
	}
	return false
}

func setupLogging(lc config.LogConfig, tui bool) error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	switch {
	case lc.File != "":
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		log.SetOutput(f)
	case tui:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return nil
}
