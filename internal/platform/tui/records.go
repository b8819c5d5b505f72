package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magboots/internal/storage"
)

// maxRecords is how many runs are loaded per level.
const maxRecords = 100

// RunSource lists the best runs of a level. *storage.Store implements it.
type RunSource interface {
	BestRuns(levelID string, limit int) ([]storage.Run, error)
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	recordsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle    = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	tableBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// RecordsModel is the Bubble Tea model for browsing saved runs by level.
type RecordsModel struct {
	levels   []string
	cursor   int
	source   RunSource
	tickRate int
	runs     []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RecordsKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewRecordsModel creates a records screen over the given level IDs.
func NewRecordsModel(source RunSource, levels []string, tickRate, width, height int) RecordsModel {
	m := RecordsModel{
		levels:   levels,
		source:   source,
		tickRate: tickRate,
		help:     help.New(),
		keys:     DefaultRecordsKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 9},
		{Title: "Deaths", Width: 7},
		{Title: "Jumps", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches the runs of the selected level.
func (m *RecordsModel) load() {
	m.runs, m.loadErr = nil, nil
	if m.source != nil && len(m.levels) > 0 {
		m.runs, m.loadErr = m.source.BestRuns(m.levels[m.cursor], maxRecords)
	}
	m.table.SetRows(recordRows(m.runs, m.tickRate))
	m.table.GotoTop()
}

func recordRows(runs []storage.Run, tickRate int) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			formatTicks(r.Ticks, tickRate),
			fmt.Sprintf("%d", r.Deaths),
			fmt.Sprintf("%d", r.Jumps),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.shift(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(recordRows(m.runs, m.tickRate))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// shift moves the level tab by d, wrapping around.
func (m *RecordsModel) shift(d int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = (m.cursor + d + len(m.levels)) % len(m.levels)
	m.load()
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(recordsTitleStyle.Render("RECORDS"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.levels))
	for i, id := range m.levels {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(id)
		} else {
			tabs[i] = tabStyle.Render(id)
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.levels) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.levels[m.cursor])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	var content string
	switch {
	case m.loadErr != nil:
		content = emptyStyle.Render("Cannot load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		content = emptyStyle.Render("No runs recorded yet.\nFinish the level to set a time!")
	default:
		content = m.table.View()
	}
	b.WriteString(centerText(tableBoxStyle.Render(content), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunRecords shows the records screen. It returns true when the user asked to
// go back rather than quit.
func RunRecords(source RunSource, levels []string, tickRate, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRecordsModel(source, levels, tickRate, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.back, nil
}
