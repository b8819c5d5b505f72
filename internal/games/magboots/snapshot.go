package magboots

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is the complete observable game state, used for determinism
// checks and for the headless simulator's trace.
type Snapshot struct {
	Tick        uint64
	Stage       int
	LevelID     string
	State       string
	X, Y        float64
	VX, VY      float64
	BodyState   string
	Orientation string
	BootsActive bool
	JumpCount   int
	Deaths      int
	Jumps       int
	Score       int
	Clock       float64
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		Stage:  g.stage,
		State:  g.state,
		Deaths: g.deaths,
		Jumps:  g.jumps,
		Score:  g.totalScore,
	}
	if g.body == nil || g.world == nil {
		return snap
	}

	b := g.body.Snapshot()
	snap.LevelID = g.levels[g.stage].ID
	snap.X, snap.Y = b.Position[0], b.Position[1]
	snap.VX, snap.VY = b.Velocity[0], b.Velocity[1]
	snap.BodyState = b.State.String()
	snap.Orientation = b.Orientation.String()
	snap.BootsActive = b.BootsActive
	snap.JumpCount = b.JumpCount
	snap.Clock = g.world.Clock()
	return snap
}

// Hash returns a hash of the snapshot for determinism testing. Floats are
// hashed by their bit patterns, so any divergence shows.
func (snap *Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 128)
	buf = binary.LittleEndian.AppendUint64(buf, snap.Tick)
	for _, s := range []string{snap.LevelID, snap.State, snap.BodyState, snap.Orientation} {
		buf = append(buf, s...)
		buf = append(buf, 0)
	}
	for _, f := range []float64{snap.X, snap.Y, snap.VX, snap.VY, snap.Clock} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	for _, n := range []int{snap.Stage, snap.JumpCount, snap.Deaths, snap.Jumps, snap.Score} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(n)) //#nosec G115 -- hash input
	}
	if snap.BootsActive {
		buf = append(buf, 1)
	}
	return xxhash.Sum64(buf)
}
