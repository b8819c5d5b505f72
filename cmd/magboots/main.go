// magboots is a terminal platformer about magnetic boots.
//
// Usage:
//
//	magboots                     - Level select menu
//	magboots play [level]        - Play the campaign, optionally from a level
//	magboots list                - List available levels
//	magboots records [level]     - Show recorded runs
//	magboots validate <file>...  - Check level files
//	magboots sim <level>         - Run a level headless with scripted input
//	magboots export <level> <f>  - Write a level to a file
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Reserved seed passed to the game
//	--db <path>          - Set database path (default: ~/.magboots/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/magboots/internal/core"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Shared by play and the menu
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "magboots",
	Short: "Magboots - a magnetic boots platformer for your terminal",
	Long: `Magboots is a terminal platformer. Switch your boots on to stick to
magnetic floors, walls and ceilings, and ride magnets across gaps.

Running magboots with no command opens the level select.

Examples:
  magboots
  magboots play
  magboots play foundry --difficulty hard
  magboots list --levels-dir ./levels
  magboots sim tutorial --ticks 600 --script "Right*120 Jump Right*60"`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "Seed passed to the game")
	pf.StringVar(&flagDBPath, "db", "~/.magboots/runs.db", "Path to runs database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Directory of extra level files")

	addGameFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(exportCmd)
}

// addGameFlags registers the flags that shape a game session.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// defaultLogFile receives logs while the terminal UI owns the screen.
const defaultLogFile = "~/.magboots/magboots.log"

// newLogger builds the command logger. Batch commands log to stderr;
// interactive ones log to defaultLogFile so nothing draws over the UI.
// --log-file always wins.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	path := flagLogFile
	if path == "" && interactive {
		path = defaultLogFile
	}
	if path != "" {
		f, err := openLogFile(path)
		switch {
		case err == nil:
			w, closer = f, func() { f.Close() }
		case flagLogFile != "":
			return nil, nil, err
		default:
			w = io.Discard
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "magboots",
		Level:           level,
	})
	return logger, closer, nil
}

func openLogFile(path string) (*os.File, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //#nosec G304 -- path comes from the user
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// difficultyName is what gets stored with a run.
func difficultyName() string {
	if flagDifficulty == "" {
		return "default"
	}
	return strings.ToLower(flagDifficulty)
}
