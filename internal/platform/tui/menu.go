package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/level"
)

// BestTimes reports the fastest recorded completion of a level.
// *storage.Store implements it.
type BestTimes interface {
	BestTicks(levelID string) (int, bool, error)
}

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	Stage   int
	LevelID string
	Name    string
	Best    string // Formatted best time, empty when unplayed
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the level select.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	quitting    bool
	selected    *MenuItem
	openRecords bool
}

// NewMenuModel lists the campaign levels with their best times. best may be nil.
func NewMenuModel(levels []level.Level, best BestTimes, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(levels))
	for i, lvl := range levels {
		item := MenuItem{Stage: i, LevelID: lvl.ID, Name: lvl.Name}
		if item.Name == "" {
			item.Name = lvl.ID
		}
		if best != nil {
			if ticks, ok, err := best.BestTicks(lvl.ID); err == nil && ok {
				item.Best = formatTicks(ticks, cfg.TickRate)
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A G B O O T S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No levels found", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%d. %-20s", item.Stage+1, item.Name)
		if item.Best != "" {
			line += menuBestStyle.Render("  best " + item.Best)
		} else {
			line += menuBestStyle.Render("  --")
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("↑/↓ navigate  enter play  tab records  q quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells only.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// formatTicks renders a tick count as seconds.
func formatTicks(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	return fmt.Sprintf("%.2fs", float64(ticks)/float64(tickRate))
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Stage       int
	LevelID     string
	Config      core.RuntimeConfig
	WantsRecord bool
	Quit        bool
}

func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.openRecords:
		res.WantsRecord = true
	case m.selected != nil:
		res.Stage = m.selected.Stage
		res.LevelID = m.selected.LevelID
	default:
		res.Quit = true
	}
	return res
}

// RunMenu runs the level select and returns the choice.
func RunMenu(levels []level.Level, best BestTimes, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(levels, best, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
