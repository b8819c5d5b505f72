package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/storage"
)

// Game is what the model drives. Games contain pure logic with no Bubble Tea
// dependency; the model handles input mapping, timing, and display.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// RunRecorder persists completed levels. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(r storage.Run) (storage.Run, error)
}

var _ RunRecorder = (*storage.Store)(nil)

// Options configures the game model.
type Options struct {
	Store      RunRecorder // May be nil to skip saving
	Difficulty string      // Stored with each run
	Logger     *log.Logger
	HoldTicks  int // Movement hold window, 0 for the default
}

// helpRows is the height of the help bar under the playfield.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	holds      *holdTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	saved      int // Runs recorded this session
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		holds:      newHoldTracker(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
	}
	m.game.Reset(m.gameConfig())
	m.gameState = m.game.State()
	return m
}

// gameConfig is the runtime config with the help bar taken off the height.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpRows, 0)
	return cfg
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case isMovement(action):
		m.holds.Press(action)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation step with the input gathered since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.holds.Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Has(core.EventLevelComplete) {
		m.recordRun(result.State)
	}
	if result.State.Won || result.State.Paused {
		m.holds.Release()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun saves a completed level. Failures are logged and play continues.
func (m *Model) recordRun(st core.GameState) {
	if m.opts.Store == nil {
		return
	}
	run, err := m.opts.Store.SaveRun(storage.Run{
		LevelID:    st.LevelID,
		Ticks:      st.Ticks,
		Deaths:     st.Deaths,
		Jumps:      st.Jumps,
		Score:      st.Score,
		Difficulty: m.opts.Difficulty,
	})
	if err != nil {
		m.logger.Error("cannot save run", "level", st.LevelID, "err", err)
		return
	}
	m.saved++
	m.logger.Info("run saved", "run", run.RunID, "level", run.LevelID, "score", run.Score)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".magboots", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the playfield with the help bar below it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.help.ShowAll {
		return helpStyle.Render(m.help.View(m.keys))
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Saved returns how many runs were recorded.
func (m Model) Saved() int {
	return m.saved
}

// Run starts the Bubble Tea program with the given game.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
