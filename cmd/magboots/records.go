package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magboots/internal/level"
	"github.com/vovakirdan/magboots/internal/platform/tui"
	"github.com/vovakirdan/magboots/internal/storage"
)

var (
	flagRecordsLimit int
	flagRecordsTUI   bool
	flagRecordsClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show recorded runs",
	Long: `Display the best runs of a level, or a summary of every played level
when no level is given.

Examples:
  magboots records
  magboots records tutorial --limit 5
  magboots records --tui
  magboots records demo --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagRecordsTUI, "tui", false, "Browse records interactively")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete the runs of the level, or all runs")
}

func runRecords(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	switch {
	case flagRecordsClear:
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		if levelID == "" {
			fmt.Println("Cleared all runs.")
		} else {
			fmt.Printf("Cleared runs of %s.\n", levelID)
		}
		return nil

	case flagRecordsTUI:
		return browseRecords(store, levelID)

	case levelID != "":
		return printBestRuns(store, levelID)
	}
	return printLevelStats(store)
}

func browseRecords(store *storage.Store, levelID string) error {
	ids := []string{levelID}
	if levelID == "" {
		var err error
		if ids, err = level.NewLoader(flagLevelsDir, nil).ListIDs(); err != nil {
			return err
		}
	}
	cfg := runtimeConfig()
	_, err := tui.RunRecords(store, ids, cfg.TickRate, cfg.ScreenW, cfg.ScreenH)
	return err
}

func printBestRuns(store *storage.Store, levelID string) error {
	runs, err := store.BestRuns(levelID, flagRecordsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n\n", levelID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'magboots play %s' to set the first time!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-9s  %-6s  %-5s  %-10s  %s\n", "Rank", "Score", "Time", "Deaths", "Jumps", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-7s  %-9s  %-6s  %-5s  %-10s  %s\n", "----", "-----", "----", "------", "-----", "----------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-9s  %-6d  %-5d  %-10s  %s\n",
			i+1, r.Score, seconds(r.Ticks), r.Deaths, r.Jumps, r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelStats(store *storage.Store) error {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids, err := level.NewLoader(flagLevelsDir, nil).ListIDs()
	if err != nil {
		return err
	}
	// Campaign order first, then anything only the database knows about.
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for id := range stats {
		if !seen[id] {
			ids = append(ids, id)
		}
	}

	fmt.Printf("  %-12s  %-4s  %-7s  %-9s  %-10s  %s\n", "Level", "Runs", "Best", "Fastest", "Avg deaths", "Last played")
	fmt.Printf("  %-12s  %-4s  %-7s  %-9s  %-10s  %s\n", "-----", "----", "----", "-------", "----------", "-----------")
	for _, id := range ids {
		st, ok := stats[id]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-4d  %-7d  %-9s  %-10.1f  %s\n",
			id, st.Runs, st.BestScore, seconds(st.BestTicks), st.AvgDeaths,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func seconds(ticks int) string {
	rate := flagFPS
	if rate <= 0 {
		rate = 60
	}
	return fmt.Sprintf("%.2fs", float64(ticks)/float64(rate))
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Parse and validate level files (.json, .yaml, .yml). Every problem
in a file is reported. Exits non-zero if any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var errInvalidLevels = errors.New("some levels are invalid")

func runValidate(_ *cobra.Command, args []string) error {
	loader := level.NewLoader("", nil)
	return validateFiles(loader, args, os.Stdout)
}

func validateFiles(loader *level.Loader, paths []string, w io.Writer) error {
	bad := 0
	for _, path := range paths {
		lvl, err := loader.LoadFile(path)
		if err != nil {
			bad++
			fmt.Fprintf(w, "FAIL %s\n     %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%s: %d platforms, %d magnets)\n",
			path, lvl.ID, len(lvl.Platforms), len(lvl.Magnets))
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d: %w", bad, len(paths), errInvalidLevels)
	}
	return nil
}
