package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

// testLevel hands every surface to the resolver.
type testLevel struct {
	surfaces []SurfaceSpec
	magnets  []MagnetSpec
	spawn    Vec2
}

func (l *testLevel) NearbySurfaces(Rect) []SurfaceSpec { return l.surfaces }
func (l *testLevel) ActiveMagnets() []MagnetSpec { return l.magnets }
func (l *testLevel) SpawnPoint() Vec2 { return l.spawn }

type boundedTestLevel struct {
	testLevel
	bounds Rect
}

func (l *boundedTestLevel) LevelBounds() Rect { return l.bounds }

type scriptedInput struct {
	move   Vec2
	jump   bool
	toggle bool
}

func (s scriptedInput) MovementVector() Vec2 { return s.move }
func (s scriptedInput) JumpPressedThisTick() bool { return s.jump }
func (s scriptedInput) BootsTogglePressedThisTick() bool { return s.toggle }

func TestCapture(t *testing.T) {
	in := Capture(scriptedInput{move: V(5, -3), jump: true})
	assert.Equal(t, V(1, -1), in.Move)
	assert.True(t, in.Jump)
	assert.False(t, in.ToggleBoots)

	assert.Equal(t, Input{}, Capture(nil))
	assert.Equal(t, Vec2{}, Capture(scriptedInput{move: V(math.NaN(), 1)}).Move)
}

func TestNewStepperFillsDefaults(t *testing.T) {
	s := NewStepper(Params{Gravity: 1000, AttachTolerance: -1})
	p := s.Params()

	assert.Equal(t, 1000.0, p.Gravity)
	assert.Equal(t, DefaultParams().MoveSpeed, p.MoveSpeed)
	assert.Equal(t, DefaultParams().MaxStep, p.MaxStep)
	assert.Equal(t, DefaultParams().AttachTolerance, p.AttachTolerance)
}

func TestStepGroundJumpIsFree(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{surfaces: []SurfaceSpec{{ID: "floor", Rect: R(0, 100, 400, 20)}}}
	b := NewBody(V(50, 80), V(20, 20))
	b.State = Grounded
	b.BootsActive = false

	rep := s.Step(b, Input{Jump: true}, level, tick)

	assert.True(t, rep.Jumped)
	assert.Equal(t, Grounded, rep.From)
	assert.Equal(t, Falling, rep.To)
	assert.True(t, rep.Transitioned())
	assert.Equal(t, Falling, b.State)
	assert.Equal(t, -s.Params().JumpImpulse, b.Velocity[1])
	assert.Less(t, b.Position[1], 80.0)
	assert.Equal(t, 0, b.JumpCount)
}

func TestStepStickingOnLeftWallMovesAlongWall(t *testing.T) {
	s := NewStepper(DefaultParams())
	wall := SurfaceSpec{ID: "wall", Rect: R(0, 0, 50, 500), Magnetic: true, Orientation: WallLeft}
	level := &testLevel{surfaces: []SurfaceSpec{wall}}
	b := NewBody(V(50, 200), V(20, 40))
	b.State = Sticking
	b.Orientation = WallLeft

	for i := 0; i < 10; i++ {
		s.Step(b, Input{Move: V(0, -1)}, level, tick)
	}

	assert.Equal(t, Sticking, b.State)
	assert.Equal(t, WallLeft, b.Orientation)
	assert.InDelta(t, 50.0, b.Position[0], 1e-9, "stays against the wall")
	assert.InDelta(t, 200-10*s.Params().MoveSpeed*tick, b.Position[1], 1e-6)
	assert.Equal(t, 0.0, b.Velocity[0])
	assert.Equal(t, FacingForward, b.Facing)
}

func TestStepLandsAndResetsJumps(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{surfaces: []SurfaceSpec{{ID: "floor", Rect: R(0, 200, 400, 20)}}}
	b := NewBody(V(50, 100), V(20, 20))
	b.JumpCount = 2

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		rep := s.Step(b, Input{}, level, tick)
		landed = rep.To == Grounded
	}

	require.True(t, landed)
	assert.Equal(t, 0, b.JumpCount)
	assert.Equal(t, 180.0, b.Position[1])
	assert.Equal(t, 0.0, b.Velocity[1])
	assert.Equal(t, "floor", b.SupportID)
}

func TestStepFallingOntoMagneticFloor(t *testing.T) {
	floor := SurfaceSpec{ID: "mag", Rect: R(0, 200, 400, 20), Magnetic: true, Orientation: Floor}

	tests := []struct {
		name     string
		boots    bool
		expected State
	}{
		{"boots on", true, Sticking},
		{"boots off", false, Grounded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepper(DefaultParams())
			level := &testLevel{surfaces: []SurfaceSpec{floor}}
			b := NewBody(V(50, 100), V(20, 20))
			b.BootsActive = tt.boots

			for i := 0; i < 120; i++ {
				s.Step(b, Input{}, level, tick)
			}

			assert.Equal(t, tt.expected, b.State)
			assert.Equal(t, Floor, b.Orientation)
			assert.InDelta(t, 180.0, b.Position[1], 1e-9)
		})
	}
}

func TestStepToggleBootsOffWhileSticking(t *testing.T) {
	tests := []struct {
		name        string
		surface     Rect
		start       Vec2
		orientation Orientation
	}{
		{"ceiling", R(0, 0, 400, 20), V(50, 20), Ceiling},
		{"left wall", R(0, 0, 50, 500), V(50, 200), WallLeft},
		{"right wall", R(300, 0, 50, 500), V(280, 200), WallRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepper(DefaultParams())
			level := &testLevel{surfaces: []SurfaceSpec{{ID: "s", Rect: tt.surface, Magnetic: true}}}
			b := NewBody(tt.start, V(20, 20))
			b.State = Sticking
			b.Orientation = tt.orientation

			rep := s.Step(b, Input{ToggleBoots: true}, level, tick)

			assert.True(t, rep.BootsToggled)
			assert.Equal(t, Sticking, rep.From)
			assert.Equal(t, Falling, rep.To)
			assert.False(t, b.BootsActive)
			assert.Greater(t, b.Velocity[1], 0.0, "gravity is back")
		})
	}
}

func TestStepToggleBootsOffOnMagneticFloorGrounds(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{surfaces: []SurfaceSpec{{ID: "mag", Rect: R(0, 100, 400, 20), Magnetic: true}}}
	b := NewBody(V(50, 80), V(20, 20))
	b.State = Sticking

	rep := s.Step(b, Input{ToggleBoots: true}, level, tick)

	assert.Equal(t, Grounded, rep.To)
	assert.NotEqual(t, Sticking, b.State)
}

func TestStepStickingHoldsWithoutInput(t *testing.T) {
	s := NewStepper(DefaultParams())
	ceiling := SurfaceSpec{ID: "c", Rect: R(0, 0, 400, 20), Magnetic: true, Orientation: Ceiling}
	level := &testLevel{
		surfaces: []SurfaceSpec{ceiling},
		magnets:  []MagnetSpec{{Position: V(60, 300), Polarity: Attract, Range: 400, Strength: 5000}},
	}
	b := NewBody(V(50, 20), V(20, 20))
	b.State = Sticking
	b.Orientation = Ceiling

	for i := 0; i < 120; i++ {
		s.Step(b, Input{}, level, tick)
	}

	assert.Equal(t, Sticking, b.State, "fields do not pull an attached body")
	assert.Equal(t, Ceiling, b.Orientation)
	assert.InDelta(t, 20.0, b.Position[1], 1e-9)
	assert.InDelta(t, 50.0, b.Position[0], 1e-9)
}

func TestStepWalkingOffMagneticEdgeFalls(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{surfaces: []SurfaceSpec{{ID: "ledge", Rect: R(0, 100, 100, 20), Magnetic: true}}}
	b := NewBody(V(70, 80), V(20, 20))
	b.State = Sticking

	for i := 0; i < 30; i++ {
		s.Step(b, Input{Move: V(1, 0)}, level, tick)
	}

	assert.Equal(t, Falling, b.State)
	assert.Greater(t, b.Position[1], 80.0)
}

func TestStepWalkingIntoMagneticWallClimbs(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{surfaces: []SurfaceSpec{
		{ID: "floor", Rect: R(0, 100, 400, 20), Magnetic: true, Orientation: Floor},
		{ID: "wall", Rect: R(200, 0, 20, 100), Magnetic: true, Orientation: WallRight},
	}}
	b := NewBody(V(150, 80), V(20, 20))
	b.State = Sticking

	for i := 0; i < 30; i++ {
		s.Step(b, Input{Move: V(1, 0)}, level, tick)
	}
	require.Equal(t, WallRight, b.Orientation)
	assert.Equal(t, Sticking, b.State)
	assert.InDelta(t, 180.0, b.Position[0], 1e-9)

	for i := 0; i < 10; i++ {
		s.Step(b, Input{Move: V(0, -1)}, level, tick)
	}
	assert.Equal(t, Sticking, b.State)
	assert.Less(t, b.Position[1], 80.0, "climbing up the wall")
}

func TestStepAirJumpsAreBounded(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{}
	b := NewBody(V(0, 0), V(20, 20))

	jumps := 0
	for i := 0; i < 10; i++ {
		rep := s.Step(b, Input{Jump: true}, level, tick)
		if rep.Jumped {
			jumps++
		}
		assert.LessOrEqual(t, b.JumpCount, 2)
	}

	assert.Equal(t, 2, jumps)
	assert.Equal(t, 2, b.JumpCount)
}

func TestStepFieldPullsFreeBody(t *testing.T) {
	magnet := MagnetSpec{Position: V(100, 10), Polarity: Attract, Range: 200, Strength: 3000}

	s := NewStepper(DefaultParams())
	on := NewBody(V(0, 0), V(20, 20))
	off := NewBody(V(0, 0), V(20, 20))
	off.BootsActive = false

	level := &testLevel{magnets: []MagnetSpec{magnet}}
	s.Step(on, Input{}, level, tick)
	s.Step(off, Input{}, level, tick)

	assert.Greater(t, on.Velocity[0], 0.0)
	assert.Equal(t, 0.0, off.Velocity[0])
}

func TestStepAirResistance(t *testing.T) {
	s := NewStepper(DefaultParams())
	b := NewBody(V(0, 0), V(20, 20))
	b.Velocity = V(200, 0)

	s.Step(b, Input{}, &testLevel{}, tick)

	assert.Less(t, b.Velocity[0], 200.0)
	assert.Greater(t, b.Velocity[0], 0.0)
}

func TestStepDegenerateDt(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{}

	for _, dt := range []float64{0, -1, math.NaN()} {
		b := NewBody(V(10, 10), V(20, 20))
		b.Velocity = V(5, 5)
		rep := s.Step(b, Input{Jump: true, ToggleBoots: true}, level, dt)

		assert.Equal(t, V(10, 10), b.Position, "dt %v", dt)
		assert.Equal(t, V(5, 5), b.Velocity)
		assert.True(t, b.BootsActive)
		assert.False(t, rep.Jumped)
	}

	b := NewBody(V(10, 10), V(20, 20))
	rep := s.Step(b, Input{}, level, 5)
	assert.True(t, rep.Clamped)
	assert.InDelta(t, s.Params().Gravity*s.Params().MaxStep, b.Velocity[1], 1e-9)

	assert.Equal(t, Report{}, s.Step(nil, Input{}, level, tick))
}

func TestStepDiscardsNonFiniteResult(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{magnets: []MagnetSpec{
		{Position: V(100, 10), Range: 500, Strength: math.Inf(1)},
	}}
	b := NewBody(V(10, 10), V(20, 20))

	s.Step(b, Input{}, level, tick)

	assert.True(t, IsFinite(b.Position))
	assert.True(t, IsFinite(b.Velocity))
	assert.Equal(t, V(10, 10), b.Position)
}

func TestStepRidesMovingSupport(t *testing.T) {
	s := NewStepper(DefaultParams())
	lift := SurfaceSpec{ID: "lift", Rect: R(0, 100, 200, 20), Velocity: V(60, 0)}
	level := &testLevel{surfaces: []SurfaceSpec{lift}}
	b := NewBody(V(50, 80), V(20, 20))
	b.State = Grounded
	b.SupportID = "lift"

	s.Step(b, Input{}, level, tick)

	assert.Equal(t, Grounded, b.State)
	assert.InDelta(t, 51.0, b.Position[0], 1e-9)
	assert.Equal(t, 0.0, b.Velocity[0], "carry does not become own velocity")
}

func TestStepClampsToLevelBounds(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &boundedTestLevel{bounds: R(0, 0, 400, 300)}

	b := NewBody(V(395, 50), V(20, 20))
	s.Step(b, Input{Move: V(1, 0)}, level, tick)
	assert.Equal(t, 380.0, b.Position[0])
	assert.Equal(t, 0.0, b.Velocity[0])

	top := NewBody(V(50, 2), V(20, 20))
	top.Velocity = V(0, -600)
	s.Step(top, Input{}, level, tick)
	assert.Equal(t, 0.0, top.Position[1])

	below := NewBody(V(50, 400), V(20, 20))
	s.Step(below, Input{}, level, tick)
	assert.Greater(t, below.Position[1], 400.0, "the bottom stays open")
}

func TestStepAll(t *testing.T) {
	s := NewStepper(DefaultParams())
	level := &testLevel{surfaces: []SurfaceSpec{{ID: "floor", Rect: R(0, 100, 400, 20)}}}
	a := NewBody(V(10, 80), V(20, 20))
	a.State = Grounded
	b := NewBody(V(100, 80), V(20, 20))
	b.State = Grounded

	reports := s.StepAll([]*Body{a, b}, []Input{{Move: V(1, 0)}}, level, tick)

	require.Len(t, reports, 2)
	assert.Greater(t, a.Position[0], 10.0)
	assert.Equal(t, 100.0, b.Position[0], "missing input is idle")
}

func TestStepDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewStepper(DefaultParams())
		level := &testLevel{
			surfaces: []SurfaceSpec{
				{ID: "ground", Rect: R(0, 400, 800, 40)},
				{ID: "wall", Rect: R(600, 100, 30, 300), Magnetic: true, Orientation: WallRight},
				{ID: "roof", Rect: R(200, 80, 300, 20), Magnetic: true, Orientation: Ceiling},
			},
			magnets: []MagnetSpec{{Position: V(300, 250), Polarity: Repel, Range: 120, Strength: 2500}},
		}
		b := NewBody(V(50, 300), V(20, 30))
		for i := 0; i < 600; i++ {
			in := Input{Move: V(1, 0)}
			if i%45 == 0 {
				in.Jump = true
			}
			if i%200 == 199 {
				in.ToggleBoots = true
			}
			if i > 300 {
				in.Move = V(0, -1)
			}
			s.Step(b, in, level, tick)
		}
		return b.Snapshot()
	}

	assert.Equal(t, run(), run())
}
