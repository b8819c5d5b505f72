package physics

import "math"

// SurfaceSpec is a piece of level geometry as seen by the core.
// Moving platforms share this shape; the Level Provider owns their position
// and reports their current velocity so supported bodies can ride along.
type SurfaceSpec struct {
	ID          string
	Rect        Rect
	Magnetic    bool
	Orientation Orientation // Attachment hint, may be OrientationNone
	Velocity    Vec2        // px/s, zero for static geometry
}

// Contact records one resolved overlap.
type Contact struct {
	Surface SurfaceSpec
	Normal  Vec2 // Unit vector the body was pushed along
}

// Resolution is the outcome of resolving a body against its candidates.
type Resolution struct {
	Rect     Rect
	Velocity Vec2
	Contacts []Contact
}

// Contact returns the first contact, if any.
func (r Resolution) Contact() (Contact, bool) {
	if len(r.Contacts) == 0 {
		return Contact{}, false
	}
	return r.Contacts[0], true
}

// Touched reports whether any contact was recorded.
func (r Resolution) Touched() bool {
	return len(r.Contacts) > 0
}

// Resolve pushes rect out of every overlapping candidate.
//
// Candidates are tested in the order supplied and each test sees the rect as
// corrected by the previous ones, so corner outcomes depend on that order.
// Per overlap the axis with the smaller absolute penetration wins; equal
// depths resolve vertically so diagonal corner hits land on floors and
// ceilings. The velocity component along the resolved axis is zeroed.
func Resolve(rect Rect, velocity Vec2, candidates []SurfaceSpec) Resolution {
	res := Resolution{Rect: rect, Velocity: velocity}

	for _, s := range candidates {
		if !res.Rect.Intersects(s.Rect) {
			continue
		}

		p := res.Rect.Penetration(s.Rect)

		// Snap to the edge so the corrected rect only touches the surface.
		var normal Vec2
		if math.Abs(p[0]) < math.Abs(p[1]) {
			normal = Vec2{sign(p[0]), 0}
			if normal[0] < 0 {
				res.Rect.X = s.Rect.X - res.Rect.W
			} else {
				res.Rect.X = s.Rect.Right()
			}
			res.Velocity[0] = 0
		} else {
			normal = Vec2{0, sign(p[1])}
			if normal[1] < 0 {
				res.Rect.Y = s.Rect.Y - res.Rect.H
			} else {
				res.Rect.Y = s.Rect.Bottom()
			}
			res.Velocity[1] = 0
		}

		res.Contacts = append(res.Contacts, Contact{Surface: s, Normal: normal})
	}

	return res
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
