package laser

import (
	"fmt"

	"github.com/piwi3910/seasoncut/internal/geometry"
	"github.com/piwi3910/seasoncut/internal/model"
)

// The assembly guide is a print canvas, not a physical part, so its size does
// not depend on the options.
const (
	GuideWidth  = 400.0
	GuideHeight = 600.0
)

// Exploded view layout, bottom of the stack first.
const (
	stackTop       = 260.0
	stackPitch     = 60.0
	stackBoxX      = 100.0
	stackBoxWidth  = 200.0
	stackBoxHeight = 30.0
)

// StackOrder lists the physical layers from the wall outwards.
var StackOrder = []string{"Back Panel", "LED Layer", "Diffuser", "Frame", "Tiles"}

// AssemblySteps returns the instruction list for the given options.
func AssemblySteps(opts model.LaserCutOptions) []string {
	grid := opts.TileGridSize
	return []string{
		"1. Mount the LED strip on the back panel along the engraved alignment marks",
		"2. Route the power cable through the slot at the bottom of the back panel",
		"3. Lay the LED diffuser over the LEDs, matching the outer edges",
		fmt.Sprintf("4. Place the %s-inch %s frame on top and fix it through the corner holes",
			opts.Size, opts.Material),
		fmt.Sprintf("5. Insert the %d numbered tiles (%s) into the frame slots in order",
			grid.Total(), grid),
	}
}

// BuildAssemblyGuide builds the printable step-by-step guide with an exploded
// view of the layer stack. It only has an engrave layer.
func BuildAssemblyGuide(opts model.LaserCutOptions) model.LaserCutFile {
	engrave := model.NewLayer(model.LayerEngrave)
	cx := GuideWidth / 2

	engrave.AddText(cx, 40, "MICROSEASONS CALENDAR", 16)
	engrave.AddText(cx, 60, "Assembly Guide", 10)
	engrave.AddText(cx, 80, fmt.Sprintf("%s-inch %s calendar, %s tile grid, %smm stock",
		opts.Size, opts.Material, opts.TileGridSize, model.FormatNumber(opts.Thickness)), 6)

	for i, step := range AssemblySteps(opts) {
		engrave.AddText(cx, 110+float64(i)*16, step, 6)
	}

	engrave.AddText(cx, stackTop-30, "Exploded view", 8)
	for i, name := range StackOrder {
		y := stackTop + float64(i)*stackPitch
		engrave.AddPath(geometry.Rect(stackBoxX, y, stackBoxWidth, stackBoxHeight))
		engrave.AddText(cx, y+stackBoxHeight/2+3, name, 8)
	}

	filename := fmt.Sprintf("assembly-guide-%sinch.svg", opts.Size)
	return newFile(model.PartAssemblyGuide, filename, "Assembly guide with step-by-step instructions",
		GuideWidth, GuideHeight, 0, []model.SVGLayer{engrave})
}
