package physics

import (
	"fmt"
	"math"
)

// Polarity decides whether a magnet pulls bodies in or pushes them away.
type Polarity int

const (
	Attract Polarity = iota
	Repel
)

// String returns the level-file name of the polarity.
func (p Polarity) String() string {
	if p == Repel {
		return "repel"
	}
	return "attract"
}

// ParsePolarity parses a level-file polarity name. Empty means attract.
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "", "attract":
		return Attract, nil
	case "repel":
		return Repel, nil
	default:
		return Attract, fmt.Errorf("unknown polarity %q", s)
	}
}

// MagnetSpec is a standalone field source. Range must be positive; the level
// loader rejects anything else before it reaches the core.
type MagnetSpec struct {
	Position Vec2
	Polarity Polarity
	Range    float64 // Effective radius in px
	Strength float64 // Peak acceleration in px/s²; sign is ignored
}

// ForceAt returns the acceleration this magnet applies at point.
//
// The field has finite support: zero at or beyond Range, and
// |Strength|*(1-d/Range)^2 inside it. The falloff is quadratic to zero at the
// boundary, not inverse-square, so the force is bounded everywhere. A point
// exactly on the source has no direction and gets zero. Bodies whose boots are
// off do not interact with fields.
func (m MagnetSpec) ForceAt(point Vec2, bootsActive bool) Vec2 {
	if !bootsActive || m.Range <= 0 {
		return Vec2{}
	}

	d := Distance(point, m.Position)
	if d >= m.Range || d == 0 {
		return Vec2{}
	}

	falloff := 1 - d/m.Range
	magnitude := math.Abs(m.Strength) * falloff * falloff

	dir := Normalize(m.Position.Sub(point))
	if m.Polarity == Repel {
		dir = dir.Mul(-1)
	}
	return dir.Mul(magnitude)
}

// InRange reports whether point lies strictly inside the field.
func (m MagnetSpec) InRange(point Vec2) bool {
	return Distance(point, m.Position) < m.Range
}

// FieldForce sums the contributions of all magnets at point.
func FieldForce(magnets []MagnetSpec, point Vec2, bootsActive bool) Vec2 {
	var total Vec2
	if !bootsActive {
		return total
	}
	for _, m := range magnets {
		total = total.Add(m.ForceAt(point, bootsActive))
	}
	return total
}
