// Package export writes generated calendar files to disk in the formats a
// workshop needs: the SVG documents themselves, DXF copies, a printable PDF
// guide with QR tile labels and an XLSX bill of materials.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/seasoncut/internal/model"
	"github.com/piwi3910/seasoncut/internal/svg"
)

// SaveFile writes the SVG document of f into dir and returns the full path.
func SaveFile(dir string, f model.LaserCutFile) (string, error) {
	if f.Filename == "" {
		return "", fmt.Errorf("file has no name")
	}
	path := filepath.Join(dir, f.Filename)
	if err := os.WriteFile(path, []byte(f.SVG), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", f.Filename, err)
	}
	return path, nil
}

// Saver writes a set of generated files one after another.
type Saver struct {
	// Delay is waited between two consecutive files, not before the first.
	Delay time.Duration
	// OnSaved, if set, is called after each file is written.
	OnSaved func(path string)
}

// NewSaver returns a saver with the given delay between files.
func NewSaver(delay time.Duration) *Saver {
	return &Saver{Delay: delay}
}

// SaveAll creates dir if needed and writes every file in order. It stops at
// the first write error or when ctx is cancelled, returning the paths
// written so far.
func (s *Saver) SaveAll(ctx context.Context, dir string, files []model.LaserCutFile) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for i, f := range files {
		if i > 0 && s.Delay > 0 {
			timer := time.NewTimer(s.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return written, ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}

		path, err := SaveFile(dir, f)
		if err != nil {
			return written, err
		}
		written = append(written, path)
		if s.OnSaved != nil {
			s.OnSaved(path)
		}
	}
	return written, nil
}

// CheckFile re-reads a written document and confirms it parses and matches
// the size recorded on the file.
func CheckFile(path string, f model.LaserCutFile) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", path, err)
	}
	summary, err := svg.Inspect(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", f.Filename, err)
	}
	if summary.ViewBox[2] != f.Width || summary.ViewBox[3] != f.Height {
		return fmt.Errorf("%s: viewBox %vx%v does not match %vx%v",
			f.Filename, summary.ViewBox[2], summary.ViewBox[3], f.Width, f.Height)
	}
	return nil
}
