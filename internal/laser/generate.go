package laser

import (
	"fmt"

	"github.com/jbeda/geom"
	"github.com/piwi3910/seasoncut/internal/geometry"
	"github.com/piwi3910/seasoncut/internal/model"
)

// GenerateLaserCutFiles builds every output file for one calendar in the
// fixed order frame, tiles, diffuser, back panel and, when requested, the
// assembly guide. It never fails; see Generate for validated input.
func GenerateLaserCutFiles(opts model.LaserCutOptions) []model.LaserCutFile {
	g := geometry.Plan(opts)

	files := []model.LaserCutFile{
		BuildFrame(g, opts),
		BuildTileSheet(g, opts),
		BuildLEDDiffuser(g, opts),
		BuildBackPanel(g, opts),
	}
	if opts.IncludeAssemblyGuide {
		files = append(files, BuildAssemblyGuide(opts))
	}
	return files
}

// Generate validates the options before generating the files.
func Generate(opts model.LaserCutOptions) ([]model.LaserCutFile, error) {
	if err := model.ValidateOptions(opts); err != nil {
		return nil, err
	}
	return GenerateLaserCutFiles(opts), nil
}

// GenerateMainFrame builds only the frame file.
func GenerateMainFrame(opts model.LaserCutOptions) model.LaserCutFile {
	return BuildFrame(geometry.Plan(opts), opts)
}

// GenerateTileSheet builds only the tile sheet file.
func GenerateTileSheet(opts model.LaserCutOptions) model.LaserCutFile {
	return BuildTileSheet(geometry.Plan(opts), opts)
}

// GenerateLEDDiffuser builds only the diffuser file.
func GenerateLEDDiffuser(opts model.LaserCutOptions) model.LaserCutFile {
	return BuildLEDDiffuser(geometry.Plan(opts), opts)
}

// GenerateBackPanel builds only the back panel file.
func GenerateBackPanel(opts model.LaserCutOptions) model.LaserCutFile {
	return BuildBackPanel(geometry.Plan(opts), opts)
}

// boundsTolerance absorbs floating point noise from curve flattening.
const boundsTolerance = 1e-6

// CheckBounds verifies that every cut path of a laser file stays inside the
// file's own document. Printable files are not checked.
func CheckBounds(f model.LaserCutFile) error {
	if !f.IsCutFile() {
		return nil
	}
	cut := f.Layer(model.LayerCut)
	if cut == nil {
		return nil
	}

	plate := geom.Rect{
		Min: geom.Coord{X: -boundsTolerance, Y: -boundsTolerance},
		Max: geom.Coord{X: f.Width + boundsTolerance, Y: f.Height + boundsTolerance},
	}
	for i, p := range cut.Paths {
		b := p.Bounds()
		if !plate.ContainsRect(b) {
			return fmt.Errorf("%s: cut path %d spans (%.3f, %.3f)-(%.3f, %.3f), outside %.3f x %.3f mm",
				f.Filename, i, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, f.Width, f.Height)
		}
	}
	return nil
}

// CheckAll runs CheckBounds on every file and returns the first failure.
func CheckAll(files []model.LaserCutFile) error {
	for _, f := range files {
		if err := CheckBounds(f); err != nil {
			return err
		}
	}
	return nil
}
