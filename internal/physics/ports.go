package physics

// LevelProvider supplies geometry and field sources. All calls are read-only
// and synchronous; none may mutate core state.
type LevelProvider interface {
	// NearbySurfaces returns the broad-phase candidates for area.
	// The core runs the exact overlap test only on these.
	NearbySurfaces(area Rect) []SurfaceSpec

	// ActiveMagnets returns every magnet currently emitting a field.
	ActiveMagnets() []MagnetSpec

	// SpawnPoint is the top-left position a body starts from.
	SpawnPoint() Vec2
}

// BoundedLevel is implemented by levels that confine bodies horizontally
// and from above.
type BoundedLevel interface {
	LevelBounds() Rect
}

// MagnetIndex is an optional spatial query. When a level implements it the
// step only sums magnets whose field can reach point.
type MagnetIndex interface {
	MagnetsNear(point Vec2) []MagnetSpec
}

// InputProvider is polled once per tick to build an Input snapshot.
type InputProvider interface {
	// MovementVector returns raw intent, each component in [-1, 1].
	// X grows to screen-right, Y grows downward.
	MovementVector() Vec2
	// JumpPressedThisTick is edge-triggered.
	JumpPressedThisTick() bool
	// BootsTogglePressedThisTick is edge-triggered.
	BootsTogglePressedThisTick() bool
}

// Input is the immutable intent for one tick.
type Input struct {
	Move        Vec2
	Jump        bool
	ToggleBoots bool
}

// Capture polls p once and clamps the movement vector into [-1, 1].
func Capture(p InputProvider) Input {
	if p == nil {
		return Input{}
	}
	return Input{
		Move:        clampMove(p.MovementVector()),
		Jump:        p.JumpPressedThisTick(),
		ToggleBoots: p.BootsTogglePressedThisTick(),
	}
}

func clampMove(v Vec2) Vec2 {
	if !IsFinite(v) {
		return Vec2{}
	}
	return Vec2{ClampF(v[0], -1, 1), ClampF(v[1], -1, 1)}
}

// magnetsFor picks the magnets relevant to point.
func magnetsFor(level LevelProvider, point Vec2) []MagnetSpec {
	if idx, ok := level.(MagnetIndex); ok {
		return idx.MagnetsNear(point)
	}
	return level.ActiveMagnets()
}
