package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seasoncut/internal/model"
)

// Layer colours on screen follow the laser colour convention.
var layerColors = map[model.LayerName]color.NRGBA{
	model.LayerCut:     {R: 255, G: 0, B: 0, A: 255},
	model.LayerEngrave: {R: 0, G: 0, B: 255, A: 255},
	model.LayerScore:   {R: 0, G: 200, B: 0, A: 255},
}

var colorSheet = color.NRGBA{R: 230, G: 210, B: 175, A: 255} // light wood

const sheetMargin = 10

// SheetCanvas draws one generated file the way the laser sees it: every
// layer flattened to polylines in its conventional colour.
type SheetCanvas struct {
	widget.BaseWidget
	file      model.LaserCutFile
	segments  int
	maxWidth  float32
	maxHeight float32
}

// NewSheetCanvas creates a preview of f that fits inside maxW x maxH.
func NewSheetCanvas(f model.LaserCutFile, segments int, maxW, maxH float32) *SheetCanvas {
	sc := &SheetCanvas{
		file:      f,
		segments:  segments,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetFile swaps the previewed file.
func (sc *SheetCanvas) SetFile(f model.LaserCutFile) {
	sc.file = f
	sc.Refresh()
}

func (sc *SheetCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newSheetCanvasRenderer(sc)
}

type sheetCanvasRenderer struct {
	sc      *SheetCanvas
	objects []fyne.CanvasObject
}

func newSheetCanvasRenderer(sc *SheetCanvas) *sheetCanvasRenderer {
	r := &sheetCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *sheetCanvasRenderer) scale() float32 {
	f := r.sc.file
	return fitScale(float32(f.Width), float32(f.Height), r.sc.maxWidth, r.sc.maxHeight, sheetMargin)
}

func (r *sheetCanvasRenderer) rebuild() {
	r.objects = nil

	f := r.sc.file
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	scale := r.scale()
	origin := fyne.NewPos(sheetMargin, sheetMargin)

	bg := canvas.NewRectangle(colorSheet)
	bg.Resize(fyne.NewSize(float32(f.Width)*scale, float32(f.Height)*scale))
	bg.Move(origin)
	r.objects = append(r.objects, bg)

	at := func(p model.Point2D) fyne.Position {
		return fyne.NewPos(float32(p.X)*scale+origin.X, float32(p.Y)*scale+origin.Y)
	}

	for _, layer := range f.Layers {
		col, ok := layerColors[layer.Name]
		if !ok {
			col = layerColors[model.LayerCut]
		}
		for _, p := range layer.Paths {
			for _, pl := range p.Flatten(r.sc.segments) {
				pts := pl.Points
				for i := 1; i < len(pts); i++ {
					r.addLine(col, at(pts[i-1]), at(pts[i]))
				}
				if pl.Closed && len(pts) > 2 {
					r.addLine(col, at(pts[len(pts)-1]), at(pts[0]))
				}
			}
		}
		for _, t := range layer.Texts {
			size := float32(t.Size) * scale
			if size < 6 {
				continue
			}
			text := canvas.NewText(t.Content, col)
			text.TextSize = size
			text.Alignment = fyne.TextAlignCenter
			ts := text.MinSize()
			pos := at(model.Point2D{X: t.X, Y: t.Y})
			text.Move(fyne.NewPos(pos.X-ts.Width/2, pos.Y-ts.Height/2))
			r.objects = append(r.objects, text)
		}
	}
}

func (r *sheetCanvasRenderer) addLine(col color.NRGBA, from, to fyne.Position) {
	line := canvas.NewLine(col)
	line.StrokeWidth = 1
	line.Position1 = from
	line.Position2 = to
	r.objects = append(r.objects, line)
}

func (r *sheetCanvasRenderer) Layout(size fyne.Size)        {}
func (r *sheetCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.sc) }
func (r *sheetCanvasRenderer) Destroy()                     {}
func (r *sheetCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *sheetCanvasRenderer) MinSize() fyne.Size {
	f := r.sc.file
	if f.Width <= 0 || f.Height <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale := r.scale()
	return fyne.NewSize(float32(f.Width)*scale+sheetMargin*2, float32(f.Height)*scale+sheetMargin*2)
}
