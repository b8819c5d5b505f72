package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/magboots/internal/config"
	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/games/magboots"
	"github.com/vovakirdan/magboots/internal/platform/tui"
	"github.com/vovakirdan/magboots/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Play the campaign from the first level, or from the given level ID.

Controls:
  Left/Right, A/D  - Move
  Up/Down, W/S     - Climb on magnetic walls
  Space            - Jump
  M/E              - Toggle boots
  P/Esc            - Pause
  R                - Restart level
  Enter            - Next level
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Campaign starts at the lowest difficulty
  normal - Starts at 30% difficulty
  hard   - Starts at 70% difficulty
  fixed  - No progression between levels

Examples:
  magboots play
  magboots play foundry
  magboots play --difficulty hard
  magboots play --config ./my-magboots.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func parsePreset() (config.DifficultyPreset, error) {
	if flagDifficulty == "" {
		return "", nil
	}
	preset, ok := config.ParsePreset(strings.ToLower(flagDifficulty))
	if !ok {
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}
	return preset, nil
}

// openStore opens the runs database. The game still works without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs will not be saved", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// recorder avoids handing the model a typed nil store.
func recorder(store *storage.Store) tui.RunRecorder {
	if store == nil {
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	preset, err := parsePreset()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	start := ""
	if len(args) == 1 {
		start = args[0]
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return playSession(runtimeConfig(), start, preset, store, logger)
}

// playSession runs one game until the player quits.
func playSession(cfg core.RuntimeConfig, start string, preset config.DifficultyPreset, store *storage.Store, logger *log.Logger) error {
	game := magboots.New(magboots.Options{
		ConfigPath: flagConfig,
		Preset:     preset,
		LevelsDir:  flagLevelsDir,
		StartLevel: start,
		Logger:     logger,
	})

	err := tui.Run(game, cfg, tui.Options{
		Store:      recorder(store),
		Difficulty: difficultyName(),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if loadErr := game.Err(); loadErr != nil {
		return loadErr
	}
	return nil
}
