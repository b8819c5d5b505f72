// Package formats provides pluggable level file format parsers.
// Every format decodes into the same Document; the level package turns a
// Document into a validated level.
package formats

import "fmt"

// Document is the on-disk shape of a level, shared by all formats.
// Points and sizes are [x, y] / [w, h] pairs in world pixels.
type Document struct {
	ID          string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string          `yaml:"name" json:"name"`
	Width       float64         `yaml:"width" json:"width"`
	Height      float64         `yaml:"height" json:"height"`
	PlayerStart []float64       `yaml:"player_start,flow" json:"player_start"`
	GoalPos     []float64       `yaml:"goal_position,flow" json:"goal_position"`
	GoalSize    []float64       `yaml:"goal_size,flow,omitempty" json:"goal_size,omitempty"`
	Platforms   []PlatformEntry `yaml:"platforms" json:"platforms"`
	Magnets     []MagnetEntry   `yaml:"magnets,omitempty" json:"magnets,omitempty"`
}

// PlatformEntry is a static or moving platform.
type PlatformEntry struct {
	ID          string  `yaml:"id,omitempty" json:"id,omitempty"`
	X           float64 `yaml:"x" json:"x"`
	Y           float64 `yaml:"y" json:"y"`
	Width       float64 `yaml:"width" json:"width"`
	Height      float64 `yaml:"height" json:"height"`
	Magnetic    bool    `yaml:"is_magnetic" json:"is_magnetic"`
	Orientation string  `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	Moving      bool    `yaml:"moving,omitempty" json:"moving,omitempty"`
	EndX        float64 `yaml:"end_x,omitempty" json:"end_x,omitempty"`
	EndY        float64 `yaml:"end_y,omitempty" json:"end_y,omitempty"`
	Speed       float64 `yaml:"speed,omitempty" json:"speed,omitempty"`
}

// MagnetEntry is a standalone field source. Active defaults to true.
type MagnetEntry struct {
	ID       string  `yaml:"id,omitempty" json:"id,omitempty"`
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
	Polarity string  `yaml:"polarity,omitempty" json:"polarity,omitempty"`
	Range    float64 `yaml:"range" json:"range"`
	Strength float64 `yaml:"strength" json:"strength"`
	Active   *bool   `yaml:"active,omitempty" json:"active,omitempty"`
	Period   float64 `yaml:"period,omitempty" json:"period,omitempty"` // Seconds between on/off switches
}

// IsActive reports the entry's initial state.
func (m MagnetEntry) IsActive() bool {
	return m.Active == nil || *m.Active
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (Document, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Document{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// Encode routes doc to the encoder for ext.
func Encode(doc Document, ext string) ([]byte, error) {
	switch ext {
	case ".yaml", ".yml":
		return EncodeYAML(doc)
	case ".json":
		return EncodeJSON(doc)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
