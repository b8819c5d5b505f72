package level

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/magboots/internal/level/formats"
	"github.com/vovakirdan/magboots/internal/physics"
)

// Compile-time checks that World satisfies the physics ports.
var (
	_ physics.LevelProvider = (*World)(nil)
	_ physics.BoundedLevel  = (*World)(nil)
	_ physics.MagnetIndex   = (*World)(nil)
)

func testLevel() Level {
	return Level{
		ID:     "test",
		Width:  1000,
		Height: 600,
		Spawn:  physics.V(10, 10),
		Goal:   physics.R(900, 100, 50, 50),
		Platforms: []Platform{
			{ID: "left", Rect: physics.R(0, 500, 200, 20)},
			{ID: "right", Rect: physics.R(800, 500, 200, 20), Magnetic: true},
			{ID: "lift", Rect: physics.R(300, 500, 100, 20), Moving: true, End: physics.V(300, 300), Speed: 1},
		},
		Magnets: []Magnet{
			{ID: "a", Position: physics.V(100, 100), Range: 50, Strength: 100, Active: true},
			{ID: "b", Position: physics.V(600, 100), Range: 80, Strength: 100, Active: false},
			{ID: "c", Position: physics.V(600, 400), Range: 80, Strength: 100, Active: true, Period: 1},
		},
	}
}

func ids(surfaces []physics.SurfaceSpec) []string {
	out := make([]string, len(surfaces))
	for i, s := range surfaces {
		out[i] = s.ID
	}
	return out
}

func TestNearbySurfaces(t *testing.T) {
	w := NewWorld(testLevel(), 100)

	assert.Equal(t, []string{"left"}, ids(w.NearbySurfaces(physics.R(50, 480, 20, 20))))
	assert.Equal(t, []string{"right"}, ids(w.NearbySurfaces(physics.R(850, 480, 20, 20))))
	assert.Empty(t, w.NearbySurfaces(physics.R(500, 100, 20, 20)))
	assert.Equal(t, []string{"left", "lift"}, ids(w.NearbySurfaces(physics.R(150, 480, 200, 40))))
	assert.Len(t, w.Surfaces(), 3)
}

func TestNearbySurfacesIsSuperset(t *testing.T) {
	w := NewWorld(testLevel(), 64)
	all := w.Surfaces()

	for x := -50.0; x < 1050; x += 37 {
		for y := 250.0; y < 560; y += 23 {
			area := physics.R(x, y, 32, 48)
			near := ids(w.NearbySurfaces(area))
			for _, s := range all {
				if s.Rect.Intersects(area) {
					assert.Contains(t, near, s.ID, "area %v", area)
				}
			}
		}
	}
}

func TestMovingPlatformPingPong(t *testing.T) {
	w := NewWorld(testLevel(), 0)
	dt := 1.0 / 60

	w.Update(dt)
	lift := w.Surfaces()[2]
	assert.Less(t, lift.Rect.Y, 500.0)
	assert.InDelta(t, -200*progressRate, lift.Velocity[1], 1e-6)
	assert.Equal(t, 0.0, lift.Velocity[0])

	// 1/0.6 s reaches the end; keep going and it comes back.
	for i := 0; i < 110; i++ {
		w.Update(dt)
	}
	lift = w.Surfaces()[2]
	assert.Greater(t, lift.Velocity[1], 0.0, "heading back down")
	assert.GreaterOrEqual(t, lift.Rect.Y, 300.0)

	for i := 0; i < 1000; i++ {
		w.Update(dt)
		y := w.Surfaces()[2].Rect.Y
		require.GreaterOrEqual(t, y, 300.0)
		require.LessOrEqual(t, y, 500.0)
	}

	w.Reset()
	assert.Equal(t, physics.R(300, 500, 100, 20), w.Surfaces()[2].Rect)
	assert.Equal(t, 0.0, w.Clock())
}

func TestMagnetQueries(t *testing.T) {
	w := NewWorld(testLevel(), 100)

	active := w.ActiveMagnets()
	require.Len(t, active, 2)

	near := w.MagnetsNear(physics.V(120, 110))
	require.Len(t, near, 1)
	assert.Equal(t, physics.V(100, 100), near[0].Position)

	assert.Empty(t, w.MagnetsNear(physics.V(600, 110)), "inactive magnet")
	assert.Empty(t, w.MagnetsNear(physics.V(300, 300)))
}

func TestToggleMagnetAndPolarity(t *testing.T) {
	w := NewWorld(testLevel(), 100)

	on, err := w.ToggleMagnet("b")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, w.MagnetsNear(physics.V(600, 110)), 1)

	require.NoError(t, w.SetPolarity("b", physics.Repel))
	assert.Equal(t, physics.Repel, w.MagnetsNear(physics.V(600, 110))[0].Polarity)

	_, err = w.ToggleMagnet("zzz")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(w.SetPolarity("zzz", physics.Attract), ErrNotFound))

	w.Reset()
	assert.Empty(t, w.MagnetsNear(physics.V(600, 110)))
}

func TestCyclingMagnet(t *testing.T) {
	w := NewWorld(testLevel(), 100)
	point := physics.V(600, 420)

	require.Len(t, w.MagnetsNear(point), 1)
	w.Update(0.5)
	assert.Len(t, w.MagnetsNear(point), 1)
	w.Update(0.5)
	assert.Empty(t, w.MagnetsNear(point))
	w.Update(1)
	assert.Len(t, w.MagnetsNear(point), 1)
}

func TestGoalAndBounds(t *testing.T) {
	w := NewWorld(testLevel(), 100)

	assert.True(t, w.GoalReached(physics.R(880, 120, 32, 48)))
	assert.False(t, w.GoalReached(physics.R(10, 10, 32, 48)))
	assert.Equal(t, physics.R(0, 0, 1000, 600), w.LevelBounds())
	assert.Equal(t, physics.V(10, 10), w.SpawnPoint())
}

func TestWorldDrivesPhysics(t *testing.T) {
	w := NewWorld(testLevel(), 100)
	s := physics.NewStepper(physics.DefaultParams())
	b := physics.NewBody(physics.V(320, 400), physics.V(32, 48))
	b.BootsActive = false

	dt := 1.0 / 60
	for i := 0; i < 30; i++ {
		w.Update(dt)
		s.Step(b, physics.Input{}, w, dt)
	}

	lift := w.Surfaces()[2]
	assert.Equal(t, physics.Grounded, b.State)
	assert.Equal(t, "lift", b.SupportID)
	assert.InDelta(t, lift.Rect.Y-b.Size[1], b.Position[1], 1.0, "rides the lift")
}

func TestUnhintedWallInfersOrientation(t *testing.T) {
	lvl, err := FromDocument(formats.Document{
		ID:     "wall",
		Width:  1000,
		Height: 3000,
		Platforms: []formats.PlatformEntry{
			{ID: "wall", X: 200, Y: 0, Width: 20, Height: 3000, Magnetic: true},
		},
	}, "wall")
	require.NoError(t, err)
	require.Equal(t, physics.OrientationNone, lvl.Platforms[0].Orientation)

	w := NewWorld(lvl, 0)
	s := physics.NewStepper(physics.DefaultParams())
	b := physics.NewBody(physics.V(150, 100), physics.V(20, 20))

	dt := 1.0 / 60
	for i := 0; i < 120 && b.State != physics.Sticking; i++ {
		w.Update(dt)
		s.Step(b, physics.Input{Move: physics.V(1, 0)}, w, dt)
	}

	require.Equal(t, physics.Sticking, b.State)
	assert.Equal(t, physics.WallRight, b.Orientation, "wall is to the right of the body")
	assert.Equal(t, "wall", b.SupportID)
}
