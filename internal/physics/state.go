package physics

import "math"

// toggleBoots flips the boots. Switching them off releases an attached body.
func (b *Body) toggleBoots() {
	b.BootsActive = !b.BootsActive
	if !b.BootsActive && b.State == Sticking {
		b.fall()
	}
}

// jump applies a jump impulse if one is available and reports whether it did.
//
// From a floor or an attached surface the launch is along the surface normal
// and does not spend the aerial budget. Airborne, each jump spends one unit of
// the budget and launches straight up.
func (b *Body) jump(p Params) bool {
	switch b.State {
	case Grounded, Sticking:
		o := b.Orientation
		if b.State == Grounded {
			o = Floor
		}
		tangent, _ := SurfaceFrame(o, b.Velocity)
		b.Velocity = FromSurfaceFrame(o, tangent, p.JumpImpulse)
		b.fall()
		return true
	default:
		if b.JumpCount >= MaxAirJumps {
			return false
		}
		b.Velocity[1] = -p.JumpImpulse
		b.JumpCount++
		return true
	}
}

// derive re-evaluates the traversal state from this tick's contacts.
func (b *Body) derive(res Resolution, nearby []SurfaceSpec, p Params) {
	if b.BootsActive {
		if c, ok := b.pickMagnetic(res.Contacts); ok {
			b.stickTo(c, p.AttachTolerance)
			return
		}
		if b.State == Sticking {
			if s, ok := b.attachment(nearby, p.AttachTolerance); ok {
				b.SupportID = s.ID
				return
			}
		}
	}

	// Magnetic floors with boots on were taken above, so any upward contact
	// left here supports the body.
	for _, c := range res.Contacts {
		if c.Normal[1] < 0 {
			b.land(c.Surface)
			return
		}
	}

	b.fall()
}

// pickMagnetic selects the magnetic contact to attach to. An attached body
// prefers a surface in a new orientation so walking into a magnetic wall
// climbs it.
func (b *Body) pickMagnetic(contacts []Contact) (Contact, bool) {
	var first Contact
	found := false
	for _, c := range contacts {
		if !c.Surface.Magnetic {
			continue
		}
		if b.State == Sticking && OrientationFromNormal(c.Normal) != b.Orientation {
			return c, true
		}
		if !found {
			first, found = c, true
		}
	}
	return first, found
}

// stickTo attaches the body to c. Entering attachment, or changing surface
// orientation, stops the body.
func (b *Body) stickTo(c Contact, tolerance float64) {
	o := OrientationFromNormal(c.Normal)
	if hint := c.Surface.Orientation; hint != OrientationNone && hint != o {
		if onFace(b.Rect(), c.Surface.Rect, hint, tolerance) {
			o = hint
		}
	}

	if b.State != Sticking || b.Orientation != o {
		b.Velocity = Vec2{}
	}
	b.State = Sticking
	b.Orientation = o
	b.JumpCount = 0
	b.SupportID = c.Surface.ID
}

// attachment finds a magnetic surface whose face for the current orientation
// is within tolerance of the body.
func (b *Body) attachment(nearby []SurfaceSpec, tolerance float64) (SurfaceSpec, bool) {
	rect := b.Rect()
	for _, s := range nearby {
		if s.Magnetic && onFace(rect, s.Rect, b.Orientation, tolerance) {
			return s, true
		}
	}
	return SurfaceSpec{}, false
}

// onFace reports whether body sits against the face of surface that o
// attaches to: the gap is within tolerance and the two overlap along the face.
func onFace(body, surface Rect, o Orientation, tolerance float64) bool {
	overlapX := body.X < surface.Right() && body.Right() > surface.X
	overlapY := body.Y < surface.Bottom() && body.Bottom() > surface.Y

	switch o {
	case Floor:
		return overlapX && math.Abs(body.Bottom()-surface.Y) <= tolerance
	case Ceiling:
		return overlapX && math.Abs(body.Y-surface.Bottom()) <= tolerance
	case WallLeft:
		return overlapY && math.Abs(body.X-surface.Right()) <= tolerance
	case WallRight:
		return overlapY && math.Abs(body.Right()-surface.X) <= tolerance
	default:
		return false
	}
}

func (b *Body) land(s SurfaceSpec) {
	b.State = Grounded
	b.Orientation = Floor
	b.JumpCount = 0
	b.SupportID = s.ID
}

func (b *Body) fall() {
	b.State = Falling
	b.Orientation = Floor
	b.SupportID = ""
}
