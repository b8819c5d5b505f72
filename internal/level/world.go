package level

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/magboots/internal/physics"
)

// progressRate converts a platform Speed into path fraction per second.
const progressRate = 0.6

// World is the mutable runtime instance of a Level. It implements
// physics.LevelProvider, physics.BoundedLevel and physics.MagnetIndex.
//
// World is not safe for concurrent use; the game loop owns it and mutates it
// only between physics steps.
type World struct {
	level     Level
	platforms []platformState
	magnets   []magnetState
	static    *grid
	moving    []int
	fields    *grid
	clock     float64
}

type platformState struct {
	Platform
	rect      physics.Rect
	progress  float64 // 0 at start, 1 at End
	direction float64
	velocity  physics.Vec2
}

type magnetState struct {
	Magnet
	timer float64
}

// NewWorld builds the runtime world for lvl. cellSize is the broad-phase
// cell edge; zero uses DefaultCellSize.
func NewWorld(lvl Level, cellSize float64) *World {
	w := &World{
		level:  lvl,
		static: newGrid(cellSize),
		fields: newGrid(cellSize),
	}
	w.Reset()
	return w
}

// Reset restores every platform and magnet to its initial state.
func (w *World) Reset() {
	w.clock = 0
	w.platforms = make([]platformState, len(w.level.Platforms))
	w.moving = w.moving[:0]
	w.static = newGrid(w.static.size)
	for i, p := range w.level.Platforms {
		w.platforms[i] = platformState{Platform: p, rect: p.Rect, direction: 1}
		if p.Moving {
			w.moving = append(w.moving, i)
		} else {
			w.static.insert(i, p.Rect)
		}
	}

	w.magnets = make([]magnetState, len(w.level.Magnets))
	w.fields = newGrid(w.fields.size)
	for i, m := range w.level.Magnets {
		w.magnets[i] = magnetState{Magnet: m}
		w.fields.insert(i, physics.R(m.Position[0]-m.Range, m.Position[1]-m.Range, 2*m.Range, 2*m.Range))
	}
}

// Level returns the definition the world was built from.
func (w *World) Level() Level {
	return w.level
}

// Clock returns the simulated seconds since the last Reset.
func (w *World) Clock() float64 {
	return w.clock
}

// Update advances moving platforms and cycling magnets by dt seconds.
func (w *World) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	w.clock += dt

	for _, idx := range w.moving {
		p := &w.platforms[idx]
		p.progress += p.Speed * progressRate * p.direction * dt
		if p.progress >= 1 {
			p.progress = 1
			p.direction = -1
		} else if p.progress <= 0 {
			p.progress = 0
			p.direction = 1
		}

		start := p.Rect.Min()
		pos := start.Add(p.End.Sub(start).Mul(p.progress))
		p.velocity = pos.Sub(p.rect.Min()).Mul(1 / dt)
		p.rect.X, p.rect.Y = pos[0], pos[1]
	}

	for i := range w.magnets {
		m := &w.magnets[i]
		if m.Period <= 0 {
			continue
		}
		m.timer += dt
		for m.timer >= m.Period {
			m.timer -= m.Period
			m.Active = !m.Active
		}
	}
}

// NearbySurfaces returns the static platforms sharing a broad-phase cell with
// area plus every moving platform overlapping it, in declaration order.
func (w *World) NearbySurfaces(area physics.Rect) []physics.SurfaceSpec {
	idx := w.static.query(area)
	for _, m := range w.moving {
		if w.platforms[m].rect.Intersects(area) {
			idx = append(idx, m)
		}
	}
	sort.Ints(idx)

	out := make([]physics.SurfaceSpec, 0, len(idx))
	for _, i := range idx {
		out = append(out, w.platforms[i].spec())
	}
	return out
}

// Surfaces returns every platform at its current position.
func (w *World) Surfaces() []physics.SurfaceSpec {
	out := make([]physics.SurfaceSpec, len(w.platforms))
	for i := range w.platforms {
		out[i] = w.platforms[i].spec()
	}
	return out
}

// ActiveMagnets returns the magnets currently emitting a field.
func (w *World) ActiveMagnets() []physics.MagnetSpec {
	var out []physics.MagnetSpec
	for _, m := range w.magnets {
		if m.Active {
			out = append(out, m.Spec())
		}
	}
	return out
}

// MagnetsNear returns the active magnets whose field reaches point.
func (w *World) MagnetsNear(point physics.Vec2) []physics.MagnetSpec {
	var out []physics.MagnetSpec
	for _, i := range w.fields.query(physics.R(point[0], point[1], 0, 0)) {
		m := w.magnets[i]
		if m.Active && m.Spec().InRange(point) {
			out = append(out, m.Spec())
		}
	}
	return out
}

// Magnets returns every magnet with its current state, for display.
func (w *World) Magnets() []Magnet {
	out := make([]Magnet, len(w.magnets))
	for i, m := range w.magnets {
		out[i] = m.Magnet
	}
	return out
}

// SpawnPoint returns the player start.
func (w *World) SpawnPoint() physics.Vec2 {
	return w.level.Spawn
}

// LevelBounds confines bodies to the level rectangle.
func (w *World) LevelBounds() physics.Rect {
	return w.level.Bounds()
}

// GoalReached reports whether r overlaps the goal zone.
func (w *World) GoalReached(r physics.Rect) bool {
	return r.Intersects(w.level.Goal)
}

// ToggleMagnet switches a magnet on or off and returns its new state.
func (w *World) ToggleMagnet(id string) (bool, error) {
	m, err := w.magnet(id)
	if err != nil {
		return false, err
	}
	m.Active = !m.Active
	return m.Active, nil
}

// SetPolarity changes the polarity of a magnet.
func (w *World) SetPolarity(id string, p physics.Polarity) error {
	m, err := w.magnet(id)
	if err != nil {
		return err
	}
	m.Polarity = p
	return nil
}

func (w *World) magnet(id string) (*magnetState, error) {
	for i := range w.magnets {
		if w.magnets[i].ID == id {
			return &w.magnets[i], nil
		}
	}
	return nil, fmt.Errorf("magnet %q: %w", id, ErrNotFound)
}

func (p *platformState) spec() physics.SurfaceSpec {
	return physics.SurfaceSpec{
		ID:          p.ID,
		Rect:        p.rect,
		Magnetic:    p.Magnetic,
		Orientation: p.Orientation,
		Velocity:    p.velocity,
	}
}
