package svg

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type svgRoot struct {
	XMLName xml.Name   `xml:"svg"`
	Width   string     `xml:"width,attr"`
	Height  string     `xml:"height,attr"`
	ViewBox string     `xml:"viewBox,attr"`
	Title   string     `xml:"title"`
	Desc    string     `xml:"desc"`
	Groups  []svgGroup `xml:"g"`
}

type svgGroup struct {
	ID          string    `xml:"id,attr"`
	Stroke      string    `xml:"stroke,attr"`
	StrokeWidth string    `xml:"stroke-width,attr"`
	Fill        string    `xml:"fill,attr"`
	Paths       []svgPath `xml:"path"`
	Texts       []svgText `xml:"text"`
}

type svgPath struct {
	D string `xml:"d,attr"`
}

type svgText struct {
	Content string `xml:",chardata"`
}

// LayerSummary describes one <g> layer of a parsed document.
type LayerSummary struct {
	ID          string
	Stroke      string
	StrokeWidth string
	Fill        string
	Paths       []string // path data in document order
	Texts       []string
}

// Summary is what Inspect reports about a document.
type Summary struct {
	Namespace string
	Width     string // including the unit suffix, e.g. "508mm"
	Height    string
	ViewBox   [4]float64
	Title     string
	Layers    []LayerSummary
}

// Layer returns the summary for the layer with the given id, or nil.
func (s *Summary) Layer(id string) *LayerSummary {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			return &s.Layers[i]
		}
	}
	return nil
}

// Inspect parses a generated document. It fails on malformed XML, a missing
// svg root, or a viewBox that is not four numbers.
func Inspect(doc string) (Summary, error) {
	if !strings.HasPrefix(doc, XMLDeclaration) {
		return Summary{}, fmt.Errorf("missing XML declaration")
	}

	var root svgRoot
	if err := xml.Unmarshal([]byte(doc), &root); err != nil {
		return Summary{}, fmt.Errorf("failed to parse SVG: %w", err)
	}

	s := Summary{
		Namespace: root.XMLName.Space,
		Width:     root.Width,
		Height:    root.Height,
		Title:     root.Title,
	}

	fields := strings.Fields(root.ViewBox)
	if len(fields) != 4 {
		return Summary{}, fmt.Errorf("invalid viewBox %q", root.ViewBox)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Summary{}, fmt.Errorf("invalid viewBox %q: %w", root.ViewBox, err)
		}
		s.ViewBox[i] = v
	}

	for _, g := range root.Groups {
		ls := LayerSummary{
			ID:          g.ID,
			Stroke:      g.Stroke,
			StrokeWidth: g.StrokeWidth,
			Fill:        g.Fill,
		}
		for _, p := range g.Paths {
			ls.Paths = append(ls.Paths, p.D)
		}
		for _, t := range g.Texts {
			ls.Texts = append(ls.Texts, t.Content)
		}
		s.Layers = append(s.Layers, ls)
	}
	return s, nil
}
