package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/games/magboots"
)

var (
	flagSimTicks  int
	flagSimScript string
	flagSimEvery  int
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run a level headless with scripted input",
	Long: `Step a level without a terminal and print the game state.

The script is a list of actions separated by spaces or commas. Join
simultaneous actions with '+' and repeat with '*N'. 'Idle' is a tick
without input. When the script runs out the remaining ticks are idle.

Actions: Left, Right, Up, Down, Jump, ToggleBoots, Pause, Restart, Confirm

Examples:
  magboots sim tutorial --ticks 300
  magboots sim demo --script "Right*90 Right+Jump Right*60 ToggleBoots" --every 10`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Ticks to simulate")
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Input script")
	simCmd.Flags().IntVar(&flagSimEvery, "every", 60, "Print a state line every N ticks, 0 for the last only")
	addGameFlags(simCmd)
}

func runSim(_ *cobra.Command, args []string) error {
	preset, err := parsePreset()
	if err != nil {
		return err
	}
	frames, err := magboots.ParseScript(flagSimScript)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	game := magboots.New(magboots.Options{
		ConfigPath: flagConfig,
		Preset:     preset,
		LevelsDir:  flagLevelsDir,
		StartLevel: args[0],
		Logger:     logger,
	})
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	game.Reset(cfg)
	if err := game.Err(); err != nil {
		return err
	}
	if snap := game.Snapshot(); snap.LevelID != args[0] {
		return fmt.Errorf("level %q not found", args[0])
	}

	return simulate(game, frames, flagSimTicks, flagSimEvery, os.Stdout)
}

// simulate steps game for ticks ticks and writes state lines to w.
func simulate(game *magboots.Game, frames []core.InputFrame, ticks, every int, w io.Writer) error {
	idle := core.NewInputFrame()
	for i := range ticks {
		in := idle
		if i < len(frames) {
			in = frames[i]
		}
		res := game.Step(in)
		for _, e := range res.Events {
			if e == core.EventDied || e == core.EventLevelComplete {
				fmt.Fprintf(w, "tick %d: %s\n", i+1, eventName(e))
			}
		}
		if every > 0 && (i+1)%every == 0 {
			printSnapshot(w, game.Snapshot())
		}
		if res.State.Won {
			break
		}
	}

	snap := game.Snapshot()
	if every <= 0 || snap.Tick%uint64(every) != 0 { //#nosec G115 -- every is positive here
		printSnapshot(w, snap)
	}
	fmt.Fprintf(w, "hash %016x\n", snap.Hash())
	return nil
}

func printSnapshot(w io.Writer, s magboots.Snapshot) {
	fmt.Fprintf(w, "%6d %-9s pos=(%.1f, %.1f) vel=(%.1f, %.1f) %-8s %-10s boots=%t jumps=%d deaths=%d\n",
		s.Tick, s.State, s.X, s.Y, s.VX, s.VY, s.BodyState, s.Orientation, s.BootsActive, s.JumpCount, s.Deaths)
}

func eventName(e core.Event) string {
	switch e {
	case core.EventDied:
		return "died"
	case core.EventLevelComplete:
		return "level complete"
	}
	return "event"
}
