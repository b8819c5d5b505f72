package physics

// MaxAirJumps is the aerial jump budget. It is a rule of the game, not tuning,
// so no preset or difficulty stage changes it.
const MaxAirJumps = 2

// Params holds the tunable constants of the simulation.
// Distances are world pixels, times are seconds.
type Params struct {
	Gravity         float64 // Downward acceleration while not sticking (px/s²)
	MaxFallSpeed    float64 // Terminal downward speed (px/s)
	MoveSpeed       float64 // Target tangent speed under full input (px/s)
	JumpImpulse     float64 // Speed along the surface normal after a jump (px/s)
	StickForce      float64 // Pin acceleration toward the attached surface (px/s²)
	AttachTolerance float64 // Max gap to a magnetic face that still counts as attached (px)
	AirResistance   float64 // Fraction of tangent speed kept per second without input
	MaxStep         float64 // Largest dt integrated in one call (s)
}

// DefaultParams returns the tuning used by the built-in levels.
func DefaultParams() Params {
	return Params{
		Gravity:         1800,
		MaxFallSpeed:    900,
		MoveSpeed:       280,
		JumpImpulse:     620,
		StickForce:      240,
		AttachTolerance: 10,
		AirResistance:   0.15,
		MaxStep:         0.05,
	}
}
