package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/seasoncut/internal/model"
)

// DXFResult is what ReadDXF found in a drawing.
type DXFResult struct {
	Outlines []model.Outline
	Texts    int
	Errors   []string
	Warnings []string
}

// Bounds returns the bounding box over every outline.
func (r DXFResult) Bounds() (min, max model.Point2D) {
	var all model.Outline
	for _, o := range r.Outlines {
		all = append(all, o...)
	}
	return all.BoundingBox()
}

// ReadDXF reads a drawing back into outlines in drawing coordinates.
// LWPOLYLINEs (including bulged segments) and CIRCLEs become outlines;
// loose LINEs are reported as a warning since SeasonCut never writes them.
func ReadDXF(path string) DXFResult {
	result := DXFResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	lines := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 2 {
				result.Outlines = append(result.Outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
			}
		case *entity.Circle:
			result.Outlines = append(result.Outlines, circleToOutline(e, 64))
		case *entity.Text:
			result.Texts++
		case *entity.Line:
			lines++
		}
	}

	if lines > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d loose LINE entities", lines))
	}
	if len(result.Outlines) == 0 {
		result.Errors = append(result.Errors, "No shapes found in DXF file")
	}
	return result
}

// lwPolylineToOutline converts a LWPOLYLINE to points, interpolating arcs
// where a vertex carries a bulge.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline
	n := len(lw.Vertices)

	for i := 0; i < n; i++ {
		v := lw.Vertices[i]
		current := model.Point2D{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 {
			outline = append(outline, current)
			continue
		}

		next := lw.Vertices[(i+1)%n]
		arc := bulgeArcPoints(current, model.Point2D{X: next[0], Y: next[1]}, bulge, 32)
		outline = append(outline, arc[:len(arc)-1]...)
	}
	return outline
}

// bulgeArcPoints generates points along the arc between p1 and p2 whose
// bulge is the tangent of a quarter of the included angle.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) model.Outline {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return model.Outline{p1, p2}
	}

	sweep := 4 * math.Atan(bulge) // signed, positive is counter-clockwise
	radius := chord / (2 * math.Sin(math.Abs(sweep)/2))

	// Centre lies on the chord bisector, to the left for positive bulges.
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	d := math.Sqrt(math.Max(radius*radius-chord*chord/4, 0))
	if math.Abs(sweep) > math.Pi {
		d = -d
	}
	sign := 1.0
	if bulge < 0 {
		sign = -1
	}
	cx := mx - sign*d*dy/chord
	cy := my + sign*d*dx/chord

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	pts := make(model.Outline, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		a := start + sweep*float64(i)/float64(numSegments)
		pts = append(pts, model.Point2D{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	pts[numSegments] = p2
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, numSegments int) model.Outline {
	outline := make(model.Outline, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		outline[i] = model.Point2D{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return outline
}
