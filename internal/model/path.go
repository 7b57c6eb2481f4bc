package model

import (
	"math"
	"strings"

	"github.com/jbeda/geom"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline is an ordered sequence of points.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Length returns the total length of the polyline through the points.
func (o Outline) Length() float64 {
	var total float64
	for i := 1; i < len(o); i++ {
		total += math.Hypot(o[i].X-o[i-1].X, o[i].Y-o[i-1].Y)
	}
	return total
}

// Polyline is one flattened subpath.
type Polyline struct {
	Points Outline
	Closed bool
}

// Length returns the burn length of the polyline, including the closing
// segment for closed polylines.
func (pl Polyline) Length() float64 {
	n := len(pl.Points)
	l := pl.Points.Length()
	if pl.Closed && n > 1 {
		l += math.Hypot(pl.Points[0].X-pl.Points[n-1].X, pl.Points[0].Y-pl.Points[n-1].Y)
	}
	return l
}

// PathOp is an SVG path command letter. Only absolute commands are used.
type PathOp byte

const (
	OpMove  PathOp = 'M'
	OpLine  PathOp = 'L'
	OpQuad  PathOp = 'Q'
	OpArc   PathOp = 'A'
	OpClose PathOp = 'Z'
)

// PathCmd is a single path command and its arguments in SVG order.
type PathCmd struct {
	Op   PathOp
	Args []float64
}

// Path is a vector path that can be written as SVG path data or flattened
// into polylines for DXF and gcode output.
type Path struct {
	Cmds []PathCmd
}

func (p *Path) add(op PathOp, args ...float64) *Path {
	p.Cmds = append(p.Cmds, PathCmd{Op: op, Args: args})
	return p
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path { return p.add(OpMove, x, y) }

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path { return p.add(OpLine, x, y) }

// QuadTo adds a quadratic Bezier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path { return p.add(OpQuad, cx, cy, x, y) }

// ArcTo adds a circular arc of radius r ending at (x, y).
func (p *Path) ArcTo(r float64, largeArc, sweep bool, x, y float64) *Path {
	return p.add(OpArc, r, r, 0, boolFlag(largeArc), boolFlag(sweep), x, y)
}

// Close joins the subpath back to its start.
func (p *Path) Close() *Path { return p.add(OpClose) }

func boolFlag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// D returns the SVG path data, e.g. "M 10 0 L 498 0 Z".
func (p Path) D() string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(FormatNumber(a))
		}
	}
	return b.String()
}

// Flatten converts the path into polylines. Curves are split into segments
// pieces (arcs proportionally to their sweep). Subpaths consisting of a single
// moveto produce no polyline.
func (p Path) Flatten(segments int) []Polyline {
	if segments < 2 {
		segments = 2
	}
	var out []Polyline
	var cur Polyline
	var pos, start Point2D

	flush := func() {
		if len(cur.Points) >= 2 {
			out = append(out, cur)
		}
		cur = Polyline{}
	}

	for _, c := range p.Cmds {
		switch c.Op {
		case OpMove:
			flush()
			pos = Point2D{X: c.Args[0], Y: c.Args[1]}
			start = pos
			cur.Points = Outline{pos}
		case OpLine:
			pos = Point2D{X: c.Args[0], Y: c.Args[1]}
			cur.Points = append(cur.Points, pos)
		case OpQuad:
			ctrl := Point2D{X: c.Args[0], Y: c.Args[1]}
			end := Point2D{X: c.Args[2], Y: c.Args[3]}
			for i := 1; i <= segments; i++ {
				t := float64(i) / float64(segments)
				u := 1 - t
				cur.Points = append(cur.Points, Point2D{
					X: u*u*pos.X + 2*u*t*ctrl.X + t*t*end.X,
					Y: u*u*pos.Y + 2*u*t*ctrl.Y + t*t*end.Y,
				})
			}
			pos = end
		case OpArc:
			end := Point2D{X: c.Args[5], Y: c.Args[6]}
			cur.Points = append(cur.Points, arcPoints(pos, end, c.Args[0], c.Args[3] != 0, c.Args[4] != 0, segments)...)
			pos = end
		case OpClose:
			cur.Closed = true
			if n := len(cur.Points); n > 1 && cur.Points[n-1] == start {
				cur.Points = cur.Points[:n-1]
			}
			pos = start
			flush()
			cur.Points = Outline{pos}
		}
	}
	flush()
	return out
}

// arcPoints interpolates a circular arc from p1 to p2, excluding p1. It
// follows the SVG endpoint parameterisation with rx == ry and no rotation.
func arcPoints(p1, p2 Point2D, r float64, largeArc, sweep bool, segments int) []Point2D {
	hx := (p1.X - p2.X) / 2
	hy := (p1.Y - p2.Y) / 2
	d2 := hx*hx + hy*hy
	if d2 == 0 || r == 0 {
		return []Point2D{p2}
	}
	r = math.Abs(r)
	if r*r < d2 {
		r = math.Sqrt(d2)
	}

	k := math.Sqrt(math.Max(0, (r*r-d2)/d2))
	if largeArc == sweep {
		k = -k
	}
	cx := (p1.X+p2.X)/2 + k*hy
	cy := (p1.Y+p2.Y)/2 - k*hx

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	delta := math.Atan2(p2.Y-cy, p2.X-cx) - start
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Ceil(float64(segments) * math.Abs(delta) / (2 * math.Pi)))
	if n < 2 {
		n = 2
	}
	pts := make([]Point2D, 0, n)
	for i := 1; i < n; i++ {
		a := start + delta*float64(i)/float64(n)
		pts = append(pts, Point2D{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return append(pts, p2)
}

// Bounds returns the bounding rectangle of every point the path visits.
func (p Path) Bounds() geom.Rect {
	var r geom.Rect
	first := true
	visit := func(pt Point2D) {
		c := geom.Coord{X: pt.X, Y: pt.Y}
		if first {
			r = geom.Rect{Min: c, Max: c}
			first = false
			return
		}
		r.ExpandToContainCoord(c)
	}
	for _, c := range p.Cmds {
		if c.Op == OpMove {
			visit(Point2D{X: c.Args[0], Y: c.Args[1]})
		}
	}
	for _, pl := range p.Flatten(64) {
		for _, pt := range pl.Points {
			visit(pt)
		}
	}
	return r
}
