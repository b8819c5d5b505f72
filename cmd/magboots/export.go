package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magboots/internal/level"
)

var exportCmd = &cobra.Command{
	Use:   "export <level> <path>",
	Short: "Write a level to a file",
	Long: `Write a level from the catalog to a file. The extension picks the
format (.json, .yaml, .yml). Useful as a starting point for new levels.

Examples:
  magboots export tutorial ./levels/my-level.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func runExport(_ *cobra.Command, args []string) error {
	lvl, err := level.NewLoader(flagLevelsDir, nil).LoadByID(args[0])
	if err != nil {
		return err
	}
	if err := level.Save(lvl, args[1]); err != nil {
		return err
	}
	fmt.Printf("Wrote %s to %s\n", lvl.ID, args[1])
	return nil
}
