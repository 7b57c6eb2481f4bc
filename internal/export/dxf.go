package export

import (
	"fmt"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/seasoncut/internal/model"
)

// DefaultCurveSegments is the number of straight segments a full circle is
// flattened into for DXF output.
const DefaultCurveSegments = 64

// dxfLayers maps SVG layers to DXF layer names and ACI colours.
var dxfLayers = []struct {
	name  model.LayerName
	dxf   string
	color color.ColorNumber
}{
	{model.LayerCut, "CUT", color.Red},
	{model.LayerEngrave, "ENGRAVE", color.Blue},
	{model.LayerScore, "SCORE", color.Green},
}

// DXFLayerName returns the DXF layer a laser layer is written to.
func DXFLayerName(name model.LayerName) string {
	for _, l := range dxfLayers {
		if l.name == name {
			return l.dxf
		}
	}
	return strings.ToUpper(string(name))
}

// DXFFilename returns the DXF counterpart of an SVG filename.
func DXFFilename(f model.LaserCutFile) string {
	return strings.TrimSuffix(f.Filename, ".svg") + ".dxf"
}

// WriteDXF writes the layers of f as a DXF drawing. Paths are flattened into
// LWPOLYLINE entities and text labels become TEXT entities. SVG's downward Y
// axis is flipped so the drawing reads the same way up in CAD software.
func WriteDXF(path string, f model.LaserCutFile, segments int) error {
	if segments <= 0 {
		segments = DefaultCurveSegments
	}

	d := dxf.NewDrawing()
	for _, l := range dxfLayers {
		if _, err := d.AddLayer(l.dxf, l.color, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("failed to add DXF layer %s: %w", l.dxf, err)
		}
	}

	flip := func(y float64) float64 { return f.Height - y }

	for _, layer := range f.Layers {
		if err := d.ChangeLayer(DXFLayerName(layer.Name)); err != nil {
			return fmt.Errorf("failed to select DXF layer: %w", err)
		}

		for _, p := range layer.Paths {
			for _, pl := range p.Flatten(segments) {
				if len(pl.Points) < 2 {
					continue
				}
				vertices := make([][]float64, len(pl.Points))
				for i, pt := range pl.Points {
					vertices[i] = []float64{pt.X, flip(pt.Y)}
				}
				if _, err := d.LwPolyline(pl.Closed, vertices...); err != nil {
					return fmt.Errorf("failed to add polyline: %w", err)
				}
			}
		}

		for _, t := range layer.Texts {
			if _, err := d.Text(t.Content, t.X, flip(t.Y), 0, t.Size); err != nil {
				return fmt.Errorf("failed to add text %q: %w", t.Content, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}
