// Package magboots runs the magnetic boots platformer: it owns the campaign,
// steps the physics body through the current level each tick, and tracks
// deaths, jumps and scoring. It renders into a core.Screen and never touches
// the terminal directly.
package magboots

import (
	"errors"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magboots/internal/config"
	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/level"
	"github.com/vovakirdan/magboots/internal/physics"
)

// Play states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateWon      = "won"      // Goal reached, waiting for Confirm
	StateComplete = "complete" // Last level of the campaign finished
	StateNoLevels = "nolevels" // Nothing could be loaded
)

// ErrNoLevels is reported when the catalog is empty.
var ErrNoLevels = errors.New("magboots: no levels available")

// Options configures a Game. The zero value plays the built-in campaign
// with the default configuration.
type Options struct {
	ConfigPath string                  // Custom config file, empty for the search order
	Preset     config.DifficultyPreset // Empty keeps the loaded difficulty
	LevelsDir  string                  // Extra level directory, may be empty
	StartLevel string                  // Level ID to start at, empty for the first
	Levels     []level.Level           // Replaces the catalog when non-empty
	Logger     *log.Logger
}

// Game implements the magboots game logic.
type Game struct {
	opts   Options
	logger *log.Logger

	runtime    core.RuntimeConfig
	cfg        config.MagbootsConfig
	difficulty *config.DifficultyManager

	levels []level.Level
	stage  int
	world  *level.World

	stepper *physics.Stepper
	body    *physics.Body
	report  physics.Report

	state      string
	tick       uint64 // Ticks simulated since Reset
	ticks      int    // Ticks in the current attempt
	deaths     int
	jumps      int
	score      int // Score of the last completed level
	totalScore int
	loadErr    error
}

// New creates a game with the given options. Reset must be called before
// the first Step.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger, state: StateNoLevels}
}

// ID returns the identifier runs are stored under.
func (g *Game) ID() string {
	return "magboots"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Magboots"
}

// Reset loads configuration and levels and starts the first stage.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.tick = 0
	g.totalScore = 0
	g.score = 0
	g.loadErr = nil

	cfg, err := config.LoadMagboots(g.opts.ConfigPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultMagbootsConfig()
	}
	if g.opts.Preset != "" {
		config.ApplyMagbootsPreset(&cfg, g.opts.Preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.levels = g.opts.Levels
	if len(g.levels) == 0 {
		g.levels, err = level.NewLoader(g.opts.LevelsDir, g.logger).Catalog()
		if err != nil {
			g.fail(err)
			return
		}
	}
	if len(g.levels) == 0 {
		g.fail(ErrNoLevels)
		return
	}

	g.loadStage(g.startStage())
}

func (g *Game) fail(err error) {
	g.loadErr = err
	g.state = StateNoLevels
	g.world = nil
	g.body = nil
	g.logger.Error("cannot start", "err", err)
}

func (g *Game) startStage() int {
	if g.opts.StartLevel == "" {
		return 0
	}
	for i, lvl := range g.levels {
		if lvl.ID == g.opts.StartLevel {
			return i
		}
	}
	g.logger.Warn("unknown start level, starting from the first", "level", g.opts.StartLevel)
	return 0
}

// loadStage builds the world and body for levels[stage] with the tuning of
// that campaign stage.
func (g *Game) loadStage(stage int) {
	g.stage = stage
	lvl := g.levels[stage]

	params := g.difficulty.Tune(g.cfg.Physics.PhysicsParams(), stage)
	g.stepper = physics.NewStepper(params)
	g.world = level.NewWorld(lvl, g.cfg.World.BroadPhaseCell)
	g.body = physics.NewBody(g.world.SpawnPoint(), g.cfg.Player.PlayerSize())
	g.resetAttempt()
	g.state = StatePlaying

	g.logger.Info("level loaded",
		"level", lvl.ID,
		"stage", stage,
		"surfaces", len(lvl.Platforms),
		"magnets", len(lvl.Magnets),
		"difficulty", g.difficulty.Level(stage))
}

func (g *Game) resetAttempt() {
	g.ticks = 0
	g.deaths = 0
	g.jumps = 0
	g.report = physics.Report{}
}

// restart puts the current level back to its initial state.
func (g *Game) restart() {
	g.world.Reset()
	g.body.Respawn(g.world.SpawnPoint())
	g.resetAttempt()
	g.state = StatePlaying
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == StateNoLevels {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		if g.state == StateComplete {
			g.totalScore = 0
			g.loadStage(0)
		} else {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePlaying:
			g.state = StatePaused
		case StatePaused:
			g.state = StatePlaying
		}
	}

	switch g.state {
	case StateWon:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.loadStage(g.stage + 1)
		}
		return core.StepResult{State: g.State()}
	case StatePaused, StateComplete:
		return core.StepResult{State: g.State()}
	}

	events := g.simulate(in)
	return core.StepResult{State: g.State(), Events: events}
}

// simulate runs one physics tick and the level rules on top of it. A tick
// longer than the stepper's MaxStep is split into equal sub-steps so moving
// platforms and the body advance together.
func (g *Game) simulate(in core.InputFrame) []core.Event {
	dt := g.runtime.TickDuration()
	g.tick++
	g.ticks++

	steps := subSteps(dt, g.stepper.Params().MaxStep)
	h := dt / float64(steps)

	var events []core.Event
	input := physics.Capture(frameInput{in})
	for i := range steps {
		if i == 1 {
			// Edge-triggered actions fire once per tick.
			input.Jump, input.ToggleBoots = false, false
		}
		g.world.Update(h)
		rep := g.stepper.Step(g.body, input, g.world, h)
		g.report = rep
		events = append(events, g.stepEvents(rep)...)
	}

	if g.world.GoalReached(g.body.Rect()) {
		return append(events, g.complete()...)
	}

	if g.body.Position[1] > g.levels[g.stage].Height+g.cfg.World.KillMargin {
		g.deaths++
		g.body.Respawn(g.world.SpawnPoint())
		g.logger.Debug("player died", "level", g.levels[g.stage].ID, "deaths", g.deaths)
		events = append(events, core.EventDied)
	}
	return events
}

// stepEvents turns a physics report into game events and counts jumps.
func (g *Game) stepEvents(rep physics.Report) []core.Event {
	var events []core.Event
	if rep.Jumped {
		g.jumps++
		events = append(events, core.EventJump)
	}
	if rep.BootsToggled {
		events = append(events, core.EventBootsToggled)
	}
	if rep.Transitioned() {
		switch rep.To {
		case physics.Sticking:
			events = append(events, core.EventStuck)
		case physics.Grounded:
			events = append(events, core.EventLanded)
		}
	}
	return events
}

// subSteps returns how many pieces dt must be cut into so none exceeds maxStep.
func subSteps(dt, maxStep float64) int {
	if !(maxStep > 0) || dt <= maxStep {
		return 1
	}
	return int(math.Ceil(dt / maxStep))
}

func (g *Game) complete() []core.Event {
	g.score = Score(g.cfg.Scoring, g.ticks, g.deaths)
	g.totalScore += g.score
	g.state = StateWon

	g.logger.Info("level complete",
		"level", g.levels[g.stage].ID,
		"ticks", g.ticks,
		"deaths", g.deaths,
		"jumps", g.jumps,
		"score", g.score)

	events := []core.Event{core.EventLevelComplete}
	if g.stage+1 >= len(g.levels) {
		g.state = StateComplete
		events = append(events, core.EventCampaignComplete)
	}
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		Ticks:    g.ticks,
		Deaths:   g.deaths,
		Jumps:    g.jumps,
		Paused:   g.state == StatePaused,
		Won:      g.state == StateWon || g.state == StateComplete,
		Complete: g.state == StateComplete,
		GameOver: g.state == StateNoLevels,
	}
	if g.state != StateNoLevels {
		st.LevelID = g.levels[g.stage].ID
	}
	return st
}

// Err returns why the game could not start, or nil.
func (g *Game) Err() error {
	return g.loadErr
}

// Body returns the player's physics snapshot.
func (g *Game) Body() physics.Snapshot {
	if g.body == nil {
		return physics.Snapshot{}
	}
	return g.body.Snapshot()
}

// Params returns the physics tuning of the current stage.
func (g *Game) Params() physics.Params {
	if g.stepper == nil {
		return physics.Params{}
	}
	return g.stepper.Params()
}

// World returns the running level, or nil before a successful Reset.
func (g *Game) World() *level.World {
	return g.world
}

// TotalScore returns the sum of all completed levels since Reset.
func (g *Game) TotalScore() int {
	return g.totalScore
}
