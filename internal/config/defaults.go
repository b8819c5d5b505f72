package config

import (
	_ "embed"
)

//go:embed defaults/magboots.yaml
var defaultMagbootsYAML []byte

// DefaultMagbootsConfig returns the default configuration.
func DefaultMagbootsConfig() MagbootsConfig {
	return MagbootsConfig{
		Physics: PhysicsConfig{
			Gravity:         1800,
			MaxFallSpeed:    900,
			MoveSpeed:       280,
			JumpImpulse:     620,
			StickForce:      240,
			AttachTolerance: 10,
			AirResistance:   0.15,
			MaxStep:         0.05,
		},
		Player: PlayerConfig{
			Width:  32,
			Height: 48,
		},
		World: WorldConfig{
			KillMargin:     100,
			CellWidth:      16,
			CellHeight:     32,
			BroadPhaseCell: 128,
		},
		Scoring: ScoringConfig{
			ParTicks:     1800,
			DeathPenalty: 300,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "campaign",
				MaxAt: 3,
			},
			Scaling: ScalingConfig{
				GravityMultiplier:  0.25,
				ToleranceReduction: 6,
			},
		},
	}
}
