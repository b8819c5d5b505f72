package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name searched for in every config directory.
const configFile = "magboots.yaml"

// LoadMagboots loads the game configuration.
// Search order: customPath -> ~/.magboots/configs/magboots.yaml -> ./configs/magboots.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets.
func LoadMagboots(customPath string) (MagbootsConfig, error) {
	cfg := DefaultMagbootsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultMagbootsConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultMagbootsConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultMagbootsConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMagbootsYAML, &cfg); err != nil {
		return DefaultMagbootsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".magboots", "configs", filename)
}

// ApplyMagbootsPreset modifies the config based on a difficulty preset.
func ApplyMagbootsPreset(cfg *MagbootsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the base tuning on top of the progression
	switch preset {
	case DifficultyEasy:
		cfg.Physics.AttachTolerance = 14
		cfg.Scoring.DeathPenalty = 100
	case DifficultyHard:
		cfg.Physics.AttachTolerance = 6
		cfg.Physics.JumpImpulse *= 0.9
		cfg.Scoring.DeathPenalty = 500
	}
}
