package magboots

import (
	"github.com/vovakirdan/magboots/internal/core"
	"github.com/vovakirdan/magboots/internal/physics"
)

// frameInput exposes one tick of platform actions as a physics.InputProvider.
type frameInput struct {
	frame core.InputFrame
}

var _ physics.InputProvider = frameInput{}

// MovementVector maps held direction actions to a unit intent vector.
// Opposite directions cancel.
func (f frameInput) MovementVector() physics.Vec2 {
	return physics.V(
		axis(f.frame, core.ActionLeft, core.ActionRight),
		axis(f.frame, core.ActionUp, core.ActionDown),
	)
}

func (f frameInput) JumpPressedThisTick() bool {
	return f.frame.Has(core.ActionJump)
}

func (f frameInput) BootsTogglePressedThisTick() bool {
	return f.frame.Has(core.ActionToggleBoots)
}

func axis(f core.InputFrame, negative, positive core.Action) float64 {
	var v float64
	if f.Has(negative) {
		v--
	}
	if f.Has(positive) {
		v++
	}
	return v
}
