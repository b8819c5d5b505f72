package physics

import "fmt"

// Orientation describes which face of a surface a body is attached to.
// It fixes the tangent (along-surface) and normal (away-from-surface) axes.
type Orientation int

const (
	OrientationNone Orientation = iota // Unset hint; inferred from contact
	Floor                              // Standing on top of a surface
	WallLeft                           // Wall on the body's left
	WallRight                          // Wall on the body's right
	Ceiling                            // Hanging below a surface
)

// String returns the level-file name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Floor:
		return "floor"
	case WallLeft:
		return "wall_left"
	case WallRight:
		return "wall_right"
	case Ceiling:
		return "ceiling"
	default:
		return "none"
	}
}

// ParseOrientation parses a level-file orientation name.
// An empty string yields OrientationNone.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "":
		return OrientationNone, nil
	case "floor":
		return Floor, nil
	case "wall_left":
		return WallLeft, nil
	case "wall_right":
		return WallRight, nil
	case "ceiling":
		return Ceiling, nil
	default:
		return OrientationNone, fmt.Errorf("unknown orientation %q", s)
	}
}

// Normal returns the unit vector pointing away from the attached surface,
// i.e. the direction a jump launches the body.
func (o Orientation) Normal() Vec2 {
	switch o {
	case Ceiling:
		return Vec2{0, 1}
	case WallLeft:
		return Vec2{1, 0}
	case WallRight:
		return Vec2{-1, 0}
	default:
		return Vec2{0, -1}
	}
}

// Tangent returns the unit vector "forward" along the attached surface.
// Floors and ceilings run to screen-right, walls run upward.
func (o Orientation) Tangent() Vec2 {
	switch o {
	case WallLeft, WallRight:
		return Vec2{0, -1}
	default:
		return Vec2{1, 0}
	}
}

// OrientationFromNormal infers the orientation from a contact normal
// (the direction the body was pushed out of the surface).
func OrientationFromNormal(n Vec2) Orientation {
	switch {
	case n[1] > 0:
		return Ceiling
	case n[0] > 0:
		return WallLeft
	case n[0] < 0:
		return WallRight
	default:
		return Floor
	}
}

// SurfaceFrame maps raw input into the surface frame of o: tangent is the
// component along the surface, normal the component away from it.
func SurfaceFrame(o Orientation, raw Vec2) (tangent, normal float64) {
	return raw.Dot(o.Tangent()), raw.Dot(o.Normal())
}

// FromSurfaceFrame is the inverse of SurfaceFrame.
func FromSurfaceFrame(o Orientation, tangent, normal float64) Vec2 {
	return o.Tangent().Mul(tangent).Add(o.Normal().Mul(normal))
}
