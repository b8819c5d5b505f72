package magboots

import (
	"fmt"
	"math"

	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/physics"
)

// Visual characters for rendering
const (
	SolidGlyph    = '█'
	MagneticGlyph = '▓'
	MovingGlyph   = '='
	GoalGlyph     = '▒'
	AttractGlyph  = '+'
	RepelGlyph    = '-'
	OffGlyph      = 'o'
	FieldGlyph    = '·'
	PlayerGlyph   = '@'
	BootsGlyph    = '#'
)

// Minimum screen size for a playable view
const (
	minScreenW = 24
	minScreenH = 8
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// camera maps world pixels to screen cells.
type camera struct {
	x, y   float64 // World position of the playfield's top-left corner
	cw, ch float64 // World pixels per cell
}

// newCamera centers the view on focus and keeps it inside the level when the
// level is larger than the view.
func newCamera(focus physics.Vec2, levelW, levelH float64, cols, rows int, cw, ch float64) camera {
	if cw <= 0 {
		cw = 16
	}
	if ch <= 0 {
		ch = 32
	}
	viewW, viewH := float64(cols)*cw, float64(rows)*ch
	return camera{
		x:  follow(focus[0], viewW, levelW),
		y:  follow(focus[1], viewH, levelH),
		cw: cw,
		ch: ch,
	}
}

func follow(focus, view, extent float64) float64 {
	if extent <= view {
		return (extent - view) / 2
	}
	return physics.ClampF(focus-view/2, 0, extent-view)
}

// cell returns the screen cell containing world point p.
func (c camera) cell(p physics.Vec2) (int, int) {
	col := int(math.Floor((p[0] - c.x) / c.cw))
	row := int(math.Floor((p[1]-c.y)/c.ch)) + hudRows
	return col, row
}

// rect returns the cells covered by r. Anything with a positive size covers
// at least one cell.
func (c camera) rect(r physics.Rect) core.Rect {
	x0 := int(math.Floor((r.X - c.x) / c.cw))
	y0 := int(math.Floor((r.Y - c.y) / c.ch))
	x1 := int(math.Ceil((r.Right() - c.x) / c.cw))
	y1 := int(math.Ceil((r.Bottom() - c.y) / c.ch))
	return core.NewRect(x0, y0+hudRows, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == StateNoLevels {
		dst.DrawTextCentered(dst.Height()/2-1, "No levels to play", core.ColorBrightRed)
		if g.loadErr != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.loadErr.Error(), core.ColorGray)
		}
		return
	}
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawText(0, 0, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	lvl := g.levels[g.stage]
	body := g.body.Snapshot()
	cam := newCamera(body.Rect().Center(), lvl.Width, lvl.Height,
		dst.Width(), dst.Height()-hudRows, g.cfg.World.CellWidth, g.cfg.World.CellHeight)

	g.renderMagnets(dst, cam)
	dst.DrawRect(cam.rect(lvl.Goal), GoalGlyph, core.ColorBrightGreen)
	g.renderPlatforms(dst, cam)
	renderPlayer(dst, cam, body)
	g.renderHUD(dst)

	switch g.state {
	case StatePaused:
		g.renderBanner(dst, "PAUSED", "P to resume  R to restart", core.ColorBrightYellow)
	case StateWon:
		g.renderBanner(dst, fmt.Sprintf("LEVEL COMPLETE  score %d", g.score), "Enter to continue", core.ColorBrightGreen)
	case StateComplete:
		g.renderBanner(dst, fmt.Sprintf("CAMPAIGN COMPLETE  total %d", g.totalScore), "R to play again", core.ColorBrightGreen)
	}
}

func (g *Game) renderPlatforms(dst *core.Screen, cam camera) {
	for i, s := range g.world.Surfaces() {
		glyph, color := SolidGlyph, core.ColorGray
		switch {
		case g.levels[g.stage].Platforms[i].Moving:
			glyph, color = MovingGlyph, core.ColorYellow
			if s.Magnetic {
				color = core.ColorBrightCyan
			}
		case s.Magnetic:
			glyph, color = MagneticGlyph, core.ColorCyan
		}
		dst.DrawRect(cam.rect(s.Rect), glyph, color)
	}
}

// renderMagnets draws each magnet and a dotted ring at the edge of its field.
func (g *Game) renderMagnets(dst *core.Screen, cam camera) {
	const ringSteps = 48

	for _, m := range g.world.Magnets() {
		glyph, color := AttractGlyph, core.ColorBrightBlue
		if m.Polarity == physics.Repel {
			glyph, color = RepelGlyph, core.ColorBrightRed
		}
		if !m.Active {
			glyph, color = OffGlyph, core.ColorGray
		} else {
			for i := range ringSteps {
				a := 2 * math.Pi * float64(i) / ringSteps
				p := m.Position.Add(physics.V(math.Cos(a), math.Sin(a)).Mul(m.Range))
				x, y := cam.cell(p)
				if y >= hudRows {
					dst.SetColor(x, y, FieldGlyph, color)
				}
			}
		}
		x, y := cam.cell(m.Position)
		if y >= hudRows {
			dst.SetColor(x, y, glyph, color)
		}
	}
}

// renderPlayer fills the body's cells and marks the side its boots face.
func renderPlayer(dst *core.Screen, cam camera, body physics.Snapshot) {
	r := cam.rect(body.Rect()).Clip(core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows))
	if r.Empty() {
		return
	}

	color := core.ColorBrightWhite
	if body.State == physics.Sticking {
		color = core.ColorBrightMagenta
	}
	dst.DrawRect(r, PlayerGlyph, color)
	if !body.BootsActive {
		return
	}

	bootsColor := core.ColorMagenta
	switch body.Orientation {
	case physics.Ceiling:
		dst.DrawRect(core.NewRect(r.X, r.Y, r.W, 1), BootsGlyph, bootsColor)
	case physics.WallLeft:
		dst.DrawRect(core.NewRect(r.X, r.Y, 1, r.H), BootsGlyph, bootsColor)
	case physics.WallRight:
		dst.DrawRect(core.NewRect(r.Right()-1, r.Y, 1, r.H), BootsGlyph, bootsColor)
	default:
		dst.DrawRect(core.NewRect(r.X, r.Bottom()-1, r.W, 1), BootsGlyph, bootsColor)
	}
}

// renderHUD draws the level name, timer, counters and boots status.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.levels[g.stage]
	body := g.body.Snapshot()

	name := lvl.Name
	if name == "" {
		name = lvl.ID
	}
	dst.DrawTextColor(1, 0, fmt.Sprintf("%d/%d %s", g.stage+1, len(g.levels), name), core.ColorBrightWhite)

	stats := fmt.Sprintf("%5.1fs  deaths %d  air %d/%d",
		float64(g.ticks)*g.runtime.TickDuration(), g.deaths, body.JumpCount, physics.MaxAirJumps)
	dst.DrawTextCentered(0, stats, core.ColorWhite)

	boots, color := "BOOTS OFF", core.ColorGray
	if body.BootsActive {
		boots, color = "BOOTS ON", core.ColorBrightCyan
	}
	status := fmt.Sprintf("%s %s", boots, body.State)
	if body.State == physics.Sticking {
		status = fmt.Sprintf("%s %s", boots, body.Orientation)
	}
	dst.DrawTextColor(dst.Width()-len(status)-1, 0, status, color)
}

func (g *Game) renderBanner(dst *core.Screen, title, hint string, color core.Color) {
	mid := dst.Height() / 2
	width := max(len(title), len(hint)) + 4
	box := core.NewRect((dst.Width()-width)/2, mid-2, width, 5)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextCentered(mid-1, title, color)
	dst.DrawTextCentered(mid+1, hint, core.ColorGray)
}
