package widgets

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seasoncut/internal/gcode"
	"github.com/piwi3910/seasoncut/internal/model"
)

// Toolpath colors for different move types.
var (
	colorRapid  = color.NRGBA{R: 120, G: 120, B: 120, A: 160}
	colorTravel = color.NRGBA{R: 180, G: 180, B: 0, A: 180}
	colorBurn   = color.NRGBA{R: 255, G: 60, B: 60, A: 230}
)

// GCodePreview renders laser moves parsed back from generated GCode on top
// of the work area. GCode Y points up, so the preview flips it back.
type GCodePreview struct {
	widget.BaseWidget
	moves     []gcode.GCodeMove
	workW     float64
	workH     float64
	maxWidth  float32
	maxHeight float32
}

// NewGCodePreview creates a preview of moves on a workW x workH area.
func NewGCodePreview(moves []gcode.GCodeMove, workW, workH float64, maxW, maxH float32) *GCodePreview {
	gp := &GCodePreview{
		moves:     moves,
		workW:     workW,
		workH:     workH,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	gp.ExtendBaseWidget(gp)
	return gp
}

// CreateRenderer implements fyne.Widget.
func (gp *GCodePreview) CreateRenderer() fyne.WidgetRenderer {
	r := &gcodePreviewRenderer{gp: gp}
	r.rebuild()
	return r
}

type gcodePreviewRenderer struct {
	gp      *GCodePreview
	objects []fyne.CanvasObject
}

func (r *gcodePreviewRenderer) scale() float32 {
	return fitScale(float32(r.gp.workW), float32(r.gp.workH), r.gp.maxWidth, r.gp.maxHeight, sheetMargin)
}

func (r *gcodePreviewRenderer) rebuild() {
	r.objects = nil
	gp := r.gp
	if gp.workW <= 0 || gp.workH <= 0 {
		return
	}
	scale := r.scale()

	bg := canvas.NewRectangle(colorSheet)
	bg.Resize(fyne.NewSize(float32(gp.workW)*scale, float32(gp.workH)*scale))
	bg.Move(fyne.NewPos(sheetMargin, sheetMargin))
	r.objects = append(r.objects, bg)

	at := func(x, y float64) fyne.Position {
		return fyne.NewPos(float32(x)*scale+sheetMargin, float32(gp.workH-y)*scale+sheetMargin)
	}

	for _, m := range gp.moves {
		if math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY) < 0.01 {
			continue
		}
		var line *canvas.Line
		switch m.Type {
		case gcode.MoveBurn:
			line = canvas.NewLine(colorBurn)
			line.StrokeWidth = 1.5
		case gcode.MoveTravel:
			line = canvas.NewLine(colorTravel)
			line.StrokeWidth = 1
		default:
			line = canvas.NewLine(colorRapid)
			line.StrokeWidth = 0.5
		}
		line.Position1 = at(m.FromX, m.FromY)
		line.Position2 = at(m.ToX, m.ToY)
		r.objects = append(r.objects, line)
	}
}

func (r *gcodePreviewRenderer) Layout(size fyne.Size)        {}
func (r *gcodePreviewRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.gp) }
func (r *gcodePreviewRenderer) Destroy()                     {}
func (r *gcodePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *gcodePreviewRenderer) MinSize() fyne.Size {
	gp := r.gp
	if gp.workW <= 0 || gp.workH <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale := r.scale()
	return fyne.NewSize(float32(gp.workW)*scale+sheetMargin*2, float32(gp.workH)*scale+sheetMargin*2)
}

// RenderGCodePreview builds the toolpath view for one file's GCode along with
// a one-line summary of burn length and estimated time.
func RenderGCodePreview(f model.LaserCutFile, settings model.LaserSettings, code string) fyne.CanvasObject {
	moves := gcode.ParseGCode(code)
	sum := gcode.Summarize(moves, settings.RapidFeed)

	summary := widget.NewLabel(fmt.Sprintf(
		"%d burns, %.0f mm burned, %.0f mm travel, about %s",
		sum.Burns, sum.BurnLength, sum.TravelLength, sum.Duration.Round(time.Second),
	))
	preview := NewGCodePreview(moves, f.Width, f.Height, 700, 450)
	return container.NewBorder(summary, nil, nil, nil, container.NewScroll(preview))
}
