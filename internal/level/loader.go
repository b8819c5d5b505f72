package level

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/magboots/internal/level/formats"
)

// Loader handles loading levels from a directory. Built-in levels are always
// available; directory levels with the same ID replace them.
type Loader struct {
	Root   string // Optional directory of level files
	Logger *log.Logger
}

// NewLoader creates a new level loader. root may be empty.
func NewLoader(root string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{Root: root, Logger: logger}
}

// LoadAll recursively scans Root and loads all level files.
// Invalid files are logged and skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	if l.Root == "" {
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", l.Root, err)
	}

	// The group only bounds concurrency. Each worker records its own result
	// so one bad file never hides another, and logging stays in path order.
	loaded := make([]*Level, len(paths))
	errs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			lvl, err := l.LoadFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			loaded[i] = &lvl
			return nil
		})
	}
	g.Wait()

	for i, err := range errs {
		if err != nil {
			l.Logger.Warn("skipping level file", "path", paths[i], "err", err)
		}
	}

	levels := make([]Level, 0, len(loaded))
	for _, lvl := range loaded {
		if lvl != nil {
			levels = append(levels, *lvl)
		}
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads and validates a single level file. The file name without
// extension is the ID unless the file sets one.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("level: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	doc, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("level: parsing file %s: %w", path, err)
	}

	lvl, err := FromDocument(doc, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return Level{}, fmt.Errorf("level: %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// Catalog returns the built-in campaign followed by directory levels.
// A directory level whose ID matches a built-in one takes its place.
func (l *Loader) Catalog() ([]Level, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	custom, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(builtin))
	for i, lvl := range builtin {
		index[lvl.ID] = i
	}

	out := builtin
	for _, lvl := range custom {
		if i, ok := index[lvl.ID]; ok {
			l.Logger.Debug("level overrides built-in", "level", lvl.ID, "path", lvl.FilePath)
			out[i] = lvl
			continue
		}
		out = append(out, lvl)
	}
	return out, nil
}

// LoadByID loads a specific level by ID from the catalog.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.Catalog()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level %q: %w", id, ErrNotFound)
}

// ListIDs returns all catalog IDs in campaign order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.Catalog()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Save writes lvl to path in the format implied by its extension.
func Save(lvl Level, path string) error {
	data, err := formats.Encode(ToDocument(lvl), strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return fmt.Errorf("level: encoding %s: %w", lvl.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- level files are not secret
		return fmt.Errorf("level: writing %s: %w", path, err)
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
