package model

// LayerName identifies the laser operation applied to a layer.
type LayerName string

const (
	LayerCut     LayerName = "cut"
	LayerEngrave LayerName = "engrave"
	LayerScore   LayerName = "score" // reserved, no part emits it
)

// Layer stroke colours. Laser software maps these to operations, so they
// must never change.
const (
	ColorCut     = "#FF0000"
	ColorEngrave = "#0000FF"
	ColorScore   = "#00FF00"
)

// HairlineStroke is the stroke width of every layer, thin enough that laser
// software treats the geometry as vectors rather than filled regions.
const HairlineStroke = 0.1

// Color returns the conventional stroke colour of the layer.
func (n LayerName) Color() string {
	switch n {
	case LayerCut:
		return ColorCut
	case LayerEngrave:
		return ColorEngrave
	case LayerScore:
		return ColorScore
	default:
		return ColorCut
	}
}

// TextLabel is a filled text annotation placed at a centre point.
type TextLabel struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
	Size    float64 `json:"size"` // font size in mm
}

// SVGLayer groups the paths and labels that share one laser operation.
type SVGLayer struct {
	Name        LayerName   `json:"name"`
	Color       string      `json:"color"`
	StrokeWidth float64     `json:"stroke_width"`
	Paths       []Path      `json:"-"`
	Texts       []TextLabel `json:"texts,omitempty"`
}

// NewLayer returns an empty layer with the colour and stroke bound to name.
func NewLayer(name LayerName) SVGLayer {
	return SVGLayer{
		Name:        name,
		Color:       name.Color(),
		StrokeWidth: HairlineStroke,
	}
}

// AddPath appends a path to the layer.
func (l *SVGLayer) AddPath(p Path) {
	l.Paths = append(l.Paths, p)
}

// AddText appends a text label to the layer.
func (l *SVGLayer) AddText(x, y float64, content string, size float64) {
	l.Texts = append(l.Texts, TextLabel{X: x, Y: y, Content: content, Size: size})
}

// PartKind identifies which physical part a file describes.
type PartKind string

const (
	PartFrame         PartKind = "frame"
	PartTiles         PartKind = "tiles"
	PartDiffuser      PartKind = "diffuser"
	PartBackPanel     PartKind = "back"
	PartAssemblyGuide PartKind = "assembly"
)

// LaserCutFile is one generated output document.
type LaserCutFile struct {
	Filename    string     `json:"filename"`
	SVG         string     `json:"svg"`
	Description string     `json:"description"`
	Part        PartKind   `json:"part"`
	Width       float64    `json:"width"`  // document width in mm
	Height      float64    `json:"height"` // document height in mm
	Pieces      int        `json:"pieces"` // physical pieces cut from this file
	Layers      []SVGLayer `json:"-"`
}

// Layer returns the layer with the given name, or nil.
func (f *LaserCutFile) Layer(name LayerName) *SVGLayer {
	for i := range f.Layers {
		if f.Layers[i].Name == name {
			return &f.Layers[i]
		}
	}
	return nil
}

// IsCutFile reports whether the file is meant for the laser rather than for
// printing.
func (f LaserCutFile) IsCutFile() bool {
	return f.Part != PartAssemblyGuide
}
