// Package level provides level definitions, loading and the runtime world the
// physics core queries for geometry and magnetic fields.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/magboots/internal/level/formats"
	"github.com/vovakirdan/magboots/internal/physics"
)

// ErrNotFound is returned when a level or magnet ID is unknown.
var ErrNotFound = errors.New("not found")

// Defaults for fields a level file may omit.
const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultGoalSize      = 50
	DefaultPlatformSpeed = 2.0
)

// Level is a complete, validated level definition.
type Level struct {
	ID        string
	Name      string
	Width     float64
	Height    float64
	Spawn     physics.Vec2 // Top-left of the player's box
	Goal      physics.Rect
	Platforms []Platform
	Magnets   []Magnet
	FilePath  string // Empty for built-in levels
}

// Platform is a piece of solid geometry. A moving platform ping-pongs
// between its Rect position and End.
type Platform struct {
	ID          string
	Rect        physics.Rect
	Magnetic    bool
	Orientation physics.Orientation
	Moving      bool
	End         physics.Vec2
	Speed       float64 // 1.0 crosses the path in about 1.7 s
}

// Magnet is a field source placed in the level.
type Magnet struct {
	ID       string
	Position physics.Vec2
	Polarity physics.Polarity
	Range    float64
	Strength float64
	Active   bool
	Period   float64 // Seconds between automatic on/off switches, 0 for never
}

// Spec returns the physics view of the magnet.
func (m Magnet) Spec() physics.MagnetSpec {
	return physics.MagnetSpec{
		Position: m.Position,
		Polarity: m.Polarity,
		Range:    m.Range,
		Strength: m.Strength,
	}
}

// Bounds returns the level rectangle anchored at the origin.
func (l *Level) Bounds() physics.Rect {
	return physics.R(0, 0, l.Width, l.Height)
}

// FromDocument converts a parsed document into a level, applying defaults
// and validating the result.
func FromDocument(doc formats.Document, id string) (Level, error) {
	var errs []error

	lvl := Level{
		ID:     doc.ID,
		Name:   doc.Name,
		Width:  doc.Width,
		Height: doc.Height,
	}
	if lvl.ID == "" {
		lvl.ID = id
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}
	if lvl.Width == 0 {
		lvl.Width = DefaultWidth
	}
	if lvl.Height == 0 {
		lvl.Height = DefaultHeight
	}

	spawn, err := pair("player_start", doc.PlayerStart, physics.V(100, 100))
	errs = append(errs, err)
	goalPos, err := pair("goal_position", doc.GoalPos, physics.V(700, 500))
	errs = append(errs, err)
	goalSize, err := pair("goal_size", doc.GoalSize, physics.V(DefaultGoalSize, DefaultGoalSize))
	errs = append(errs, err)

	lvl.Spawn = spawn
	lvl.Goal = physics.R(goalPos[0], goalPos[1], goalSize[0], goalSize[1])

	for i, p := range doc.Platforms {
		o, err := physics.ParseOrientation(p.Orientation)
		if err != nil {
			errs = append(errs, fmt.Errorf("platform %d: %w", i, err))
		}
		plat := Platform{
			ID:          p.ID,
			Rect:        physics.R(p.X, p.Y, p.Width, p.Height),
			Magnetic:    p.Magnetic,
			Orientation: o,
			Moving:      p.Moving,
			End:         physics.V(p.EndX, p.EndY),
			Speed:       p.Speed,
		}
		if plat.ID == "" {
			plat.ID = fmt.Sprintf("platform-%d", i)
		}
		if plat.Moving && plat.Speed == 0 {
			plat.Speed = DefaultPlatformSpeed
		}
		lvl.Platforms = append(lvl.Platforms, plat)
	}

	for i, m := range doc.Magnets {
		pol, err := physics.ParsePolarity(m.Polarity)
		if err != nil {
			errs = append(errs, fmt.Errorf("magnet %d: %w", i, err))
		}
		mag := Magnet{
			ID:       m.ID,
			Position: physics.V(m.X, m.Y),
			Polarity: pol,
			Range:    m.Range,
			Strength: m.Strength,
			Active:   m.IsActive(),
			Period:   m.Period,
		}
		if mag.ID == "" {
			mag.ID = fmt.Sprintf("magnet-%d", i)
		}
		lvl.Magnets = append(lvl.Magnets, mag)
	}

	if err := errors.Join(errs...); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", lvl.ID, err)
	}
	if err := Validate(lvl); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// ToDocument converts a level back into its on-disk shape.
func ToDocument(l Level) formats.Document {
	doc := formats.Document{
		ID:          l.ID,
		Name:        l.Name,
		Width:       l.Width,
		Height:      l.Height,
		PlayerStart: []float64{l.Spawn[0], l.Spawn[1]},
		GoalPos:     []float64{l.Goal.X, l.Goal.Y},
		GoalSize:    []float64{l.Goal.W, l.Goal.H},
	}
	for _, p := range l.Platforms {
		e := formats.PlatformEntry{
			ID:          p.ID,
			X:           p.Rect.X,
			Y:           p.Rect.Y,
			Width:       p.Rect.W,
			Height:      p.Rect.H,
			Magnetic:    p.Magnetic,
		}
		if p.Orientation != physics.OrientationNone {
			e.Orientation = p.Orientation.String()
		}
		if p.Moving {
			e.Moving = true
			e.EndX, e.EndY = p.End[0], p.End[1]
			e.Speed = p.Speed
		}
		doc.Platforms = append(doc.Platforms, e)
	}
	for _, m := range l.Magnets {
		active := m.Active
		doc.Magnets = append(doc.Magnets, formats.MagnetEntry{
			ID:       m.ID,
			X:        m.Position[0],
			Y:        m.Position[1],
			Polarity: m.Polarity.String(),
			Range:    m.Range,
			Strength: m.Strength,
			Active:   &active,
			Period:   m.Period,
		})
	}
	return doc
}

// Validate checks a level for configurations the physics core must never see.
// All problems are reported together.
func Validate(l Level) error {
	var errs []error

	if l.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if !(l.Width > 0) || !(l.Height > 0) {
		errs = append(errs, fmt.Errorf("size %vx%v must be positive", l.Width, l.Height))
	}
	if !finite(l.Spawn[0], l.Spawn[1]) {
		errs = append(errs, errors.New("player_start is not finite"))
	}
	if !(l.Goal.W > 0) || !(l.Goal.H > 0) {
		errs = append(errs, errors.New("goal size must be positive"))
	}

	seen := make(map[string]bool)
	for i, p := range l.Platforms {
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("platform %d: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true

		if !finite(p.Rect.X, p.Rect.Y, p.End[0], p.End[1]) || !(p.Rect.W > 0) || !(p.Rect.H > 0) {
			errs = append(errs, fmt.Errorf("platform %q: rect %v must be finite with positive size", p.ID, p.Rect))
		}
		if p.Moving && !(p.Speed > 0) {
			errs = append(errs, fmt.Errorf("platform %q: speed must be positive", p.ID))
		}
	}

	for i, m := range l.Magnets {
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("magnet %d: duplicate id %q", i, m.ID))
		}
		seen[m.ID] = true

		if !(m.Range > 0) || math.IsInf(m.Range, 0) {
			errs = append(errs, fmt.Errorf("magnet %q: range must be positive", m.ID))
		}
		if !finite(m.Position[0], m.Position[1], m.Strength) {
			errs = append(errs, fmt.Errorf("magnet %q: position and strength must be finite", m.ID))
		}
		if m.Period < 0 {
			errs = append(errs, fmt.Errorf("magnet %q: period must not be negative", m.ID))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("level %s: %w", l.ID, err)
	}
	return nil
}

func pair(name string, v []float64, def physics.Vec2) (physics.Vec2, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return physics.V(v[0], v[1]), nil
	default:
		return def, fmt.Errorf("%s: want 2 numbers, got %d", name, len(v))
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
