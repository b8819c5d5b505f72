package level

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/vovakirdan/magboots/internal/level/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Campaign is the order built-in levels are played in.
var Campaign = []string{"tutorial", "demo", "foundry"}

// Builtin parses the embedded levels in campaign order.
func Builtin() ([]Level, error) {
	levels := make([]Level, 0, len(Campaign))
	for _, id := range Campaign {
		name := path.Join("builtin", id+".yaml")
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("level: reading built-in %s: %w", id, err)
		}

		doc, err := formats.Parse(data, strings.ToLower(path.Ext(name)))
		if err != nil {
			return nil, fmt.Errorf("level: parsing built-in %s: %w", id, err)
		}
		lvl, err := FromDocument(doc, id)
		if err != nil {
			return nil, fmt.Errorf("level: built-in %s: %w", id, err)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
