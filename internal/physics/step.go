package physics

import "math"

// Report summarizes what a single step did to a body.
type Report struct {
	From         State
	To           State
	Jumped       bool
	BootsToggled bool
	Contacts     int
	SupportID    string
	Clamped      bool // dt exceeded MaxStep and was shortened
}

// Transitioned reports whether the step changed the traversal state.
func (r Report) Transitioned() bool {
	return r.From != r.To
}

// Stepper advances bodies through the simulation. It holds no per-body state,
// so one Stepper can drive any number of bodies sequentially.
type Stepper struct {
	params Params
}

// NewStepper creates a stepper. Zero or negative tuning values fall back to
// DefaultParams field by field.
func NewStepper(p Params) *Stepper {
	d := DefaultParams()
	if p.Gravity <= 0 {
		p.Gravity = d.Gravity
	}
	if p.MaxFallSpeed <= 0 {
		p.MaxFallSpeed = d.MaxFallSpeed
	}
	if p.MoveSpeed <= 0 {
		p.MoveSpeed = d.MoveSpeed
	}
	if p.JumpImpulse <= 0 {
		p.JumpImpulse = d.JumpImpulse
	}
	if p.StickForce <= 0 {
		p.StickForce = d.StickForce
	}
	if p.AttachTolerance <= 0 {
		p.AttachTolerance = d.AttachTolerance
	}
	if p.AirResistance <= 0 || p.AirResistance > 1 {
		p.AirResistance = d.AirResistance
	}
	if p.MaxStep <= 0 {
		p.MaxStep = d.MaxStep
	}
	return &Stepper{params: p}
}

// Params returns the effective tuning.
func (s *Stepper) Params() Params {
	return s.params
}

// Step advances b by dt seconds.
//
// The order is fixed: boots toggle, forces, velocity integration, movement
// control, jump, position integration (including the ride on a moving
// support), collision resolution, state derivation and finally the level
// bounds. Step never fails: a non-positive dt leaves the body untouched and
// a non-finite result is discarded.
func (s *Stepper) Step(b *Body, in Input, level LevelProvider, dt float64) Report {
	if b == nil {
		return Report{}
	}
	rep := Report{From: b.State, To: b.State, SupportID: b.SupportID}
	if level == nil || !(dt > 0) {
		return rep
	}
	if dt > s.params.MaxStep {
		dt = s.params.MaxStep
		rep.Clamped = true
	}

	in.Move = clampMove(in.Move)
	prevPos, prevRect := b.Position, b.Rect()

	if in.ToggleBoots {
		b.toggleBoots()
		rep.BootsToggled = true
	}

	// Forces
	b.Velocity = b.Velocity.Add(s.acceleration(b, level).Mul(dt))
	if b.Velocity[1] > s.params.MaxFallSpeed {
		b.Velocity[1] = s.params.MaxFallSpeed
	}
	s.steer(b, in.Move, dt)
	if in.Jump {
		rep.Jumped = b.jump(s.params)
	}

	// Position, carried by the support if it moves
	carry := s.supportVelocity(b, level)
	b.Position = b.Position.Add(b.Velocity.Add(carry).Mul(dt))

	// Collision
	area := prevRect.Union(b.Rect()).Expand(s.params.AttachTolerance)
	nearby := level.NearbySurfaces(area)
	res := Resolve(b.Rect(), b.Velocity, nearby)
	b.Position = res.Rect.Min()
	b.Velocity = res.Velocity
	b.derive(res, nearby, s.params)

	if bl, ok := level.(BoundedLevel); ok {
		ClampToBounds(b, bl.LevelBounds())
	}

	if !IsFinite(b.Position) || !IsFinite(b.Velocity) {
		b.Position = prevPos
		b.Velocity = Vec2{}
	}

	rep.To = b.State
	rep.Contacts = len(res.Contacts)
	rep.SupportID = b.SupportID
	return rep
}

// StepAll advances each body with the matching input. Bodies are stepped
// sequentially in slice order; missing inputs count as idle.
func (s *Stepper) StepAll(bodies []*Body, inputs []Input, level LevelProvider, dt float64) []Report {
	reports := make([]Report, len(bodies))
	for i, b := range bodies {
		var in Input
		if i < len(inputs) {
			in = inputs[i]
		}
		reports[i] = s.Step(b, in, level, dt)
	}
	return reports
}

// acceleration sums the forces acting on b. An attached body is pinned to its
// surface instead of falling; fields only reach a free body wearing active
// boots.
func (s *Stepper) acceleration(b *Body, level LevelProvider) Vec2 {
	if b.State == Sticking {
		return b.Orientation.Normal().Mul(-s.params.StickForce)
	}

	a := Vec2{0, s.params.Gravity}
	if b.BootsActive {
		c := b.Center()
		a = a.Add(FieldForce(magnetsFor(level, c), c, true))
	}
	return a
}

// steer applies movement input along the current surface frame. Input sets
// the tangent speed directly; without input a supported body stops and an
// airborne one loses speed to air resistance. The normal component is left
// to forces and jumps.
func (s *Stepper) steer(b *Body, move Vec2, dt float64) {
	o := b.frame()
	want, _ := SurfaceFrame(o, move)
	tangent, normal := SurfaceFrame(o, b.Velocity)

	switch {
	case want != 0:
		tangent = want * s.params.MoveSpeed
		if want > 0 {
			b.Facing = FacingForward
		} else {
			b.Facing = FacingBack
		}
	case b.State == Falling:
		tangent *= math.Pow(s.params.AirResistance, dt)
	default:
		tangent = 0
	}

	b.Velocity = FromSurfaceFrame(o, tangent, normal)
}

// supportVelocity returns the velocity of the surface b stands on or is
// attached to, or zero when it is airborne or the support is static.
func (s *Stepper) supportVelocity(b *Body, level LevelProvider) Vec2 {
	if b.State == Falling || b.SupportID == "" {
		return Vec2{}
	}
	for _, sf := range level.NearbySurfaces(b.Rect().Expand(s.params.AttachTolerance)) {
		if sf.ID == b.SupportID {
			return sf.Velocity
		}
	}
	return Vec2{}
}

// ClampToBounds keeps b inside bounds horizontally and from above. The bottom
// stays open so bodies can fall out of the level.
func ClampToBounds(b *Body, bounds Rect) {
	if b.Position[0] < bounds.X {
		b.Position[0] = bounds.X
		b.Velocity[0] = math.Max(b.Velocity[0], 0)
	}
	if b.Position[0]+b.Size[0] > bounds.Right() {
		b.Position[0] = bounds.Right() - b.Size[0]
		b.Velocity[0] = math.Min(b.Velocity[0], 0)
	}
	if b.Position[1] < bounds.Y {
		b.Position[1] = bounds.Y
		b.Velocity[1] = math.Max(b.Velocity[1], 0)
	}
}
