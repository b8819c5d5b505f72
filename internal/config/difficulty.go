package config

import (
	"math"

	"github.com/vovakirdan/magboots/internal/physics"
)

// Floor below which difficulty scaling stops removing help.
const (
	minAttachTolerance = 2.0
)

// DifficultyManager calculates tuning for a campaign stage.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for a campaign stage,
// where stage 0 is the first level played.
func (d *DifficultyManager) Level(stage int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "campaign" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(stage)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Tune scales base parameters for a campaign stage: gravity grows while
// attach tolerance shrinks. The air jump budget is fixed.
func (d *DifficultyManager) Tune(base physics.Params, stage int) physics.Params {
	level := d.Level(stage)
	s := d.cfg.Scaling

	p := base
	p.Gravity = base.Gravity * (1.0 + level*s.GravityMultiplier)

	p.AttachTolerance = base.AttachTolerance - level*s.ToleranceReduction
	if p.AttachTolerance < minAttachTolerance {
		p.AttachTolerance = math.Min(base.AttachTolerance, minAttachTolerance)
	}
	return p
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
