package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/seasoncut/internal/gcode"
	"github.com/piwi3910/seasoncut/internal/model"
)

// Extras selects the companion outputs written next to the SVG files.
type Extras struct {
	DXF   bool
	GCode bool
	PDF   bool
	BOM   bool
	Laser model.LaserSettings
}

// ExtrasFromConfig reads the export toggles and laser settings of cfg.
func ExtrasFromConfig(cfg model.AppConfig) Extras {
	return Extras{
		DXF:   cfg.ExportDXF,
		GCode: cfg.ExportGCode,
		PDF:   cfg.ExportPDF,
		BOM:   cfg.ExportBOM,
		Laser: cfg.Laser,
	}
}

// Any reports whether at least one extra output is selected.
func (e Extras) Any() bool {
	return e.DXF || e.GCode || e.PDF || e.BOM
}

// GuidePDFFilename is the name of the printable guide for opts.
func GuidePDFFilename(opts model.LaserCutOptions) string {
	return fmt.Sprintf("seasoncut-guide-%sinch-%s.pdf", opts.Size, opts.Material)
}

// BOMFilename is the name of the bill of materials workbook for opts.
func BOMFilename(opts model.LaserCutOptions) string {
	return fmt.Sprintf("seasoncut-bom-%sinch-%s.xlsx", opts.Size, opts.Material)
}

// WriteExtras writes the selected companion outputs into dir, in file order:
// DXF and GCode per cut file, then the PDF guide and the BOM. It returns the
// paths written before the first error.
func WriteExtras(dir string, opts model.LaserCutOptions, files []model.LaserCutFile, ex Extras) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	segments := ex.Laser.CurveSegments
	if segments <= 0 {
		segments = DefaultCurveSegments
	}
	var codes map[string]string
	if ex.GCode {
		codes = gcode.New(ex.Laser).GenerateAll(files)
	}

	var written []string
	for _, f := range files {
		if !f.IsCutFile() {
			continue
		}
		if ex.DXF {
			path := filepath.Join(dir, DXFFilename(f))
			if err := WriteDXF(path, f, segments); err != nil {
				return written, err
			}
			written = append(written, path)
		}
		if ex.GCode {
			name := gcode.Filename(f)
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(codes[name]), 0644); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
			}
			written = append(written, path)
		}
	}

	if ex.PDF {
		path := filepath.Join(dir, GuidePDFFilename(opts))
		if err := ExportGuidePDF(path, opts, files); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if ex.BOM {
		path := filepath.Join(dir, BOMFilename(opts))
		if err := ExportBOM(path, opts, files); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
