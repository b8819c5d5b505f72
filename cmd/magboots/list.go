package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magboots/internal/level"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available levels",
	Long: `Shows the built-in campaign followed by levels found in --levels-dir.
A directory level with a built-in ID replaces that level.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	levels, err := level.NewLoader(flagLevelsDir, logger).Catalog()
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, lvl := range levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-24s  %-9s  %s\n", "#", maxIDLen, "ID", "Name", "Size", "Source")
	fmt.Printf("  %-3s  %-*s  %-24s  %-9s  %s\n", "-", maxIDLen, "--", "----", "----", "------")
	for i, lvl := range levels {
		source := "built-in"
		if lvl.FilePath != "" {
			source = lvl.FilePath
		}
		size := fmt.Sprintf("%.0fx%.0f", lvl.Width, lvl.Height)
		fmt.Printf("  %-3d  %-*s  %-24s  %-9s  %s\n", i+1, maxIDLen, lvl.ID, lvl.Name, size, source)
	}

	fmt.Println()
	fmt.Println("Run 'magboots play <id>' to start from a level.")
	return nil
}
