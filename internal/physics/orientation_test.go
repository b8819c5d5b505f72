package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceFrame(t *testing.T) {
	tests := []struct {
		name        string
		orientation Orientation
		raw         Vec2
		tangent     float64
		normal      float64
	}{
		{"floor right", Floor, V(1, 0), 1, 0},
		{"floor up is away", Floor, V(0, -1), 0, 1},
		{"ceiling right", Ceiling, V(1, 0), 1, 0},
		{"ceiling down is away", Ceiling, V(0, 1), 0, 1},
		{"left wall up is forward", WallLeft, V(0, -1), 1, 0},
		{"left wall right is away", WallLeft, V(1, 0), 0, 1},
		{"right wall down is back", WallRight, V(0, 1), -1, 0},
		{"right wall left is away", WallRight, V(-1, 0), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tan, norm := SurfaceFrame(tt.orientation, tt.raw)
			assert.InDelta(t, tt.tangent, tan, 1e-12)
			assert.InDelta(t, tt.normal, norm, 1e-12)

			back := FromSurfaceFrame(tt.orientation, tan, norm)
			assert.InDelta(t, tt.raw[0], back[0], 1e-12)
			assert.InDelta(t, tt.raw[1], back[1], 1e-12)
		})
	}
}

func TestOrientationFromNormal(t *testing.T) {
	assert.Equal(t, Floor, OrientationFromNormal(V(0, -1)))
	assert.Equal(t, Ceiling, OrientationFromNormal(V(0, 1)))
	assert.Equal(t, WallLeft, OrientationFromNormal(V(1, 0)))
	assert.Equal(t, WallRight, OrientationFromNormal(V(-1, 0)))

	for _, o := range []Orientation{Floor, Ceiling, WallLeft, WallRight} {
		assert.Equal(t, o, OrientationFromNormal(o.Normal()), o.String())
	}
}

func TestParseOrientation(t *testing.T) {
	for _, o := range []Orientation{Floor, Ceiling, WallLeft, WallRight} {
		parsed, err := ParseOrientation(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}

	none, err := ParseOrientation("")
	require.NoError(t, err)
	assert.Equal(t, OrientationNone, none)

	_, err = ParseOrientation("sideways")
	assert.Error(t, err)
}
