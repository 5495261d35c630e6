package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/san-kum/orbitsim/internal/nbody"
)

// Store writes run bundles under a base directory. Each bundle is a
// directory holding metadata.json, trajectories.csv and orbits.svg. Nothing
// is read back.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes a bundle for h and returns its directory.
func (s *Store) Save(meta Meta, h *nbody.History) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Preset, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, "metadata.json"), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, "trajectories.csv"), func(f *os.File) error {
		return WriteCSV(f, h)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, "orbits.svg"), func(f *os.File) error {
		return WriteSVG(f, h, 800, 800)
	}); err != nil {
		return "", err
	}

	return runDir, nil
}

// writeFile creates path and hands it to write, keeping the first error.
func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// Options tunes WriteFile.
type Options struct {
	// Fit sizes gif and canvas views to the whole run instead of ±3 AU.
	Fit bool
	// Canvas writes svg as braille dots, as the terminal player draws it,
	// instead of vector paths.
	Canvas bool
}

// WriteFile exports h to path in the given format: csv, json, svg or gif.
func WriteFile(path, format string, meta Meta, h *nbody.History, opts Options) error {
	if !slices.Contains(Formats(), format) {
		return fmt.Errorf("export: unknown format %q", format)
	}
	return writeFile(path, func(f *os.File) error {
		switch format {
		case "csv":
			return WriteCSV(f, h)
		case "json":
			return WriteJSON(f, meta, h)
		case "svg":
			if opts.Canvas {
				return WriteCanvasSVG(f, h, GIFOptions{Fit: opts.Fit})
			}
			return WriteSVG(f, h, 800, 800)
		default:
			return WriteGIF(f, h, GIFOptions{Fit: opts.Fit})
		}
	})
}

// Formats lists the formats accepted by WriteFile.
func Formats() []string {
	return []string{"csv", "json", "svg", "gif"}
}
