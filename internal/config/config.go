// Package config provides YAML-based game configuration loading and
// difficulty management for magboots.
package config

import "github.com/vovakirdan/magboots/internal/physics"

// MagbootsConfig contains all configuration for the game.
type MagbootsConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	World      WorldConfig      `yaml:"world"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the simulation tuning. Distances are world pixels,
// times are seconds.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	MoveSpeed       float64 `yaml:"move_speed"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	StickForce      float64 `yaml:"stick_force"`
	AttachTolerance float64 `yaml:"attach_tolerance"`
	AirResistance   float64 `yaml:"air_resistance"` // Fraction of drift kept per second
	MaxStep         float64 `yaml:"max_step"`
}

// PlayerConfig defines the player's bounding box.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WorldConfig defines level-independent world settings.
type WorldConfig struct {
	KillMargin     float64 `yaml:"kill_margin"`      // Depth below the level bottom that kills
	CellWidth      float64 `yaml:"cell_width"`       // World pixels per terminal column
	CellHeight     float64 `yaml:"cell_height"`      // World pixels per terminal row
	BroadPhaseCell float64 `yaml:"broad_phase_cell"` // Collision grid cell edge
}

// ScoringConfig defines how completed runs are scored.
type ScoringConfig struct {
	ParTicks     int `yaml:"par_ticks"`     // Ticks a run may take before losing points
	DeathPenalty int `yaml:"death_penalty"` // Points lost per death
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases through the campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "campaign" or "none"
	MaxAt int    `yaml:"max_at"` // Campaign stage at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier  float64 `yaml:"gravity_multiplier"`  // Added to the gravity factor at max difficulty
	ToleranceReduction float64 `yaml:"tolerance_reduction"` // Attach tolerance removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// PhysicsParams converts the physics section into simulation parameters.
func (c PhysicsConfig) PhysicsParams() physics.Params {
	return physics.Params{
		Gravity:         c.Gravity,
		MaxFallSpeed:    c.MaxFallSpeed,
		MoveSpeed:       c.MoveSpeed,
		JumpImpulse:     c.JumpImpulse,
		StickForce:      c.StickForce,
		AttachTolerance: c.AttachTolerance,
		AirResistance:   c.AirResistance,
		MaxStep:         c.MaxStep,
	}
}

// PlayerSize returns the player's bounding box size.
func (c PlayerConfig) PlayerSize() physics.Vec2 {
	return physics.V(c.Width, c.Height)
}
