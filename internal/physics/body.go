package physics

// State is the traversal state of a body.
type State int

const (
	Falling  State = iota // Airborne, gravity applies
	Grounded              // Standing on a floor, gravity applies
	Sticking              // Attached to a magnetic surface, gravity suspended
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Sticking:
		return "sticking"
	default:
		return "falling"
	}
}

// Facing is the last direction of tangent input.
type Facing int

const (
	FacingForward Facing = 1
	FacingBack    Facing = -1
)

// Body is a simulated playable entity. Only this package mutates it.
type Body struct {
	Position    Vec2 // Top-left of the bounding box
	Size        Vec2
	Velocity    Vec2
	Orientation Orientation
	State       State
	BootsActive bool
	JumpCount   int
	Facing      Facing
	SupportID   string // Surface currently stood on or attached to
}

// NewBody creates a body at spawn, falling, with boots switched on.
func NewBody(spawn, size Vec2) *Body {
	b := &Body{Size: size}
	b.Respawn(spawn)
	return b
}

// Respawn resets all traversal state and places the body at spawn.
func (b *Body) Respawn(spawn Vec2) {
	b.Position = spawn
	b.Velocity = Vec2{}
	b.Orientation = Floor
	b.State = Falling
	b.BootsActive = true
	b.JumpCount = 0
	b.Facing = FacingForward
	b.SupportID = ""
}

// Rect returns the bounding box.
func (b *Body) Rect() Rect {
	return Rect{X: b.Position[0], Y: b.Position[1], W: b.Size[0], H: b.Size[1]}
}

// Center returns the center of the bounding box; fields are sampled here.
func (b *Body) Center() Vec2 {
	return b.Rect().Center()
}

// Snapshot is the read-only view handed to presentation each tick.
type Snapshot struct {
	Position    Vec2
	Size        Vec2
	Velocity    Vec2
	Orientation Orientation
	State       State
	BootsActive bool
	JumpCount   int
	Facing      Facing
}

// Snapshot copies the presentation-relevant fields.
func (b *Body) Snapshot() Snapshot {
	return Snapshot{
		Position:    b.Position,
		Size:        b.Size,
		Velocity:    b.Velocity,
		Orientation: b.Orientation,
		State:       b.State,
		BootsActive: b.BootsActive,
		JumpCount:   b.JumpCount,
		Facing:      b.Facing,
	}
}

// Rect returns the snapshot's bounding box.
func (s Snapshot) Rect() Rect {
	return Rect{X: s.Position[0], Y: s.Position[1], W: s.Size[0], H: s.Size[1]}
}

// frame is the orientation movement input is interpreted in.
// Only an attached body uses its surface frame.
func (b *Body) frame() Orientation {
	if b.State == Sticking {
		return b.Orientation
	}
	return Floor
}
