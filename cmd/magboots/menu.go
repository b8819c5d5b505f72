package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magboots/internal/level"
	"github.com/vovakirdan/magboots/internal/platform/tui"
)

// runMenu loops between the level select, the game and the records screen
// until the player quits.
func runMenu(_ *cobra.Command, _ []string) error {
	preset, err := parsePreset()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	levels, err := level.NewLoader(flagLevelsDir, logger).Catalog()
	if err != nil {
		return err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	var best tui.BestTimes
	var source tui.RunSource
	if store != nil {
		best, source = store, store
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(levels, best, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsRecord:
			goBack, err := tui.RunRecords(source, ids, cfg.TickRate, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil
			}

		default:
			if err := playSession(cfg, res.LevelID, preset, store, logger); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
