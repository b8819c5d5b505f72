package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/level"
	"github.com/vovakirdan/magboots/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	frames   []core.InputFrame
	complete bool
	state    core.GameState
	resets   int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{LevelID: "demo"}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.state.Ticks++
	res := core.StepResult{State: g.state}
	if g.complete {
		res.State.Won = true
		res.State.Score = 1500
		res.Events = append(res.Events, core.EventLevelComplete)
	}
	return res
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

type fakeRecorder struct {
	runs []storage.Run
	err  error
}

func (r *fakeRecorder) SaveRun(run storage.Run) (storage.Run, error) {
	if r.err != nil {
		return run, r.err
	}
	run.RunID = "id"
	r.runs = append(r.runs, run)
	return run, nil
}

func TestMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('a'), core.ActionLeft},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('s'), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{runeKey('m'), core.ActionToggleBoots},
		{runeKey('e'), core.ActionToggleBoots},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHoldTracker(t *testing.T) {
	h := newHoldTracker(3)
	h.Press(core.ActionLeft)

	for i := range 3 {
		f := core.NewInputFrame()
		h.Apply(&f)
		if !f.Has(core.ActionLeft) {
			t.Fatalf("tick %d: left should still be held", i)
		}
	}

	f := core.NewInputFrame()
	h.Apply(&f)
	if f.Has(core.ActionLeft) {
		t.Error("left should expire after the hold window")
	}
}

func TestHoldTrackerOpposite(t *testing.T) {
	h := newHoldTracker(0)
	if h.ticks != defaultHoldTicks {
		t.Errorf("ticks = %d, expected default %d", h.ticks, defaultHoldTicks)
	}

	h.Press(core.ActionLeft)
	h.Press(core.ActionRight)
	f := core.NewInputFrame()
	h.Apply(&f)
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("pressing right should cancel left, frame = %v", f.Actions)
	}

	h.Release()
	f.Clear()
	h.Apply(&f)
	if !f.Empty() {
		t.Error("Release should drop every held action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRecords},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModelTickAppliesInput(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, core.DefaultConfig(), Options{HoldTicks: 2})
	if game.resets != 1 {
		t.Fatalf("NewModel should reset the game once, got %d", game.resets)
	}

	next, _ := m.Update(runeKey('d'))
	next, _ = next.Update(runeKey('m'))
	next, _ = next.Update(TickMsg{})
	next, _ = next.Update(TickMsg{})
	next.Update(TickMsg{})

	if len(game.frames) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(game.frames))
	}
	first := game.frames[0]
	if !first.Has(core.ActionRight) || !first.Has(core.ActionToggleBoots) {
		t.Errorf("first frame = %v, expected right and boots", first.Actions)
	}
	if game.frames[1].Has(core.ActionToggleBoots) {
		t.Error("boots toggle should only last one tick")
	}
	if !game.frames[1].Has(core.ActionRight) {
		t.Error("right should be held for the second tick")
	}
	if game.frames[2].Has(core.ActionRight) {
		t.Error("right should expire after the hold window")
	}
}

func TestModelRecordsCompletedLevel(t *testing.T) {
	game := &fakeGame{complete: true}
	rec := &fakeRecorder{}
	m := NewModel(game, core.DefaultConfig(), Options{Store: rec, Difficulty: "hard"})

	next, _ := m.Update(TickMsg{})
	if len(rec.runs) != 1 {
		t.Fatalf("expected one saved run, got %d", len(rec.runs))
	}
	run := rec.runs[0]
	if run.LevelID != "demo" || run.Score != 1500 || run.Difficulty != "hard" {
		t.Errorf("saved run = %+v", run)
	}
	if next.(Model).Saved() != 1 {
		t.Errorf("Saved() = %d, expected 1", next.(Model).Saved())
	}

	rec.err = errors.New("disk full")
	next, _ = next.Update(TickMsg{})
	if next.(Model).Saved() != 1 {
		t.Error("a failed save should not be counted")
	}
}

func TestModelQuitAndResize(t *testing.T) {
	m := NewModel(&fakeGame{}, core.DefaultConfig(), Options{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model := next.(Model)
	if model.screen.Width() != 100 || model.screen.Height() != 30-helpRows {
		t.Errorf("screen = %dx%d after resize", model.screen.Width(), model.screen.Height())
	}
	if !strings.HasPrefix(model.View(), "fake") {
		t.Error("View should start with the rendered game")
	}

	next, cmd := model.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 1, '@', core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "@") {
		t.Errorf("line 1 = %q, expected the player glyph", lines[1])
	}
}

type fakeBest map[string]int

func (b fakeBest) BestTicks(id string) (int, bool, error) {
	t, ok := b[id]
	return t, ok, nil
}

func TestMenuSelect(t *testing.T) {
	levels := []level.Level{{ID: "tutorial", Name: "Tutorial"}, {ID: "demo"}}
	m := NewMenuModel(levels, fakeBest{"tutorial": 90}, core.DefaultConfig())

	if m.items[0].Best != "1.50s" {
		t.Errorf("best = %q, expected 1.50s", m.items[0].Best)
	}
	if m.items[1].Name != "demo" || m.items[1].Best != "" {
		t.Errorf("unplayed item = %+v", m.items[1])
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := next.(MenuModel).result()
	if res.Quit || res.Stage != 1 || res.LevelID != "demo" {
		t.Errorf("result = %+v, expected stage 1 demo", res)
	}
}

func TestFormatTicks(t *testing.T) {
	if got := formatTicks(150, 60); got != "2.50s" {
		t.Errorf("formatTicks(150, 60) = %q", got)
	}
	if got := formatTicks(60, 0); got != "1.00s" {
		t.Errorf("formatTicks with zero rate = %q", got)
	}
}

type fakeSource map[string][]storage.Run

func (s fakeSource) BestRuns(id string, _ int) ([]storage.Run, error) {
	return s[id], nil
}

func TestRecordsSwitchLevel(t *testing.T) {
	src := fakeSource{"demo": {{LevelID: "demo", Score: 10, Ticks: 60}}}
	m := NewRecordsModel(src, []string{"tutorial", "demo"}, 60, 80, 24)
	if len(m.runs) != 0 {
		t.Fatalf("tutorial should have no runs, got %d", len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := next.(RecordsModel)
	if rm.cursor != 1 || len(rm.runs) != 1 {
		t.Errorf("cursor = %d runs = %d after tab", rm.cursor, len(rm.runs))
	}

	next, _ = rm.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if c := next.(RecordsModel).cursor; c != 1 {
		t.Errorf("cursor = %d, expected wrap to 1", c)
	}

	rows := recordRows(rm.runs, 60)
	if rows[0][0] != "#1" || rows[0][2] != "1.00s" {
		t.Errorf("row = %v", rows[0])
	}
}
