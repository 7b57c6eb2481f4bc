// Package laser builds the laser-cut documents for every physical part of
// the microseasons calendar.
package laser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/seasoncut/internal/geometry"
	"github.com/piwi3910/seasoncut/internal/model"
	"github.com/piwi3910/seasoncut/internal/svg"
)

// Frame engraving layout.
const (
	frameTitle         = "MICROSEASONS"
	frameTitleY        = 28.0
	frameTitleSize     = 8.0
	frameMaterialInset = 12.0 // material label baseline above the bottom edge
	frameMaterialSize  = 4.0
	frameBorderInset   = 5.0
)

// Back panel cable slot, centred horizontally.
const (
	cableSlotWidth  = 40.0
	cableSlotHeight = 10.0
	cableSlotBottom = 20.0 // gap between the slot and the bottom edge
)

const tileNumberSize = 4.0

func newFile(part model.PartKind, filename, description string, width, height float64, pieces int, layers []model.SVGLayer) model.LaserCutFile {
	return model.LaserCutFile{
		Filename:    filename,
		SVG:         svg.Document(width, height, layers),
		Description: description,
		Part:        part,
		Width:       width,
		Height:      height,
		Pieces:      pieces,
		Layers:      layers,
	}
}

// BuildFrame builds the main frame: outer silhouette, one slot per tile and
// optional mounting holes, plus the engraved title, material and border.
func BuildFrame(g geometry.PlateGeometry, opts model.LaserCutOptions) model.LaserCutFile {
	cut := model.NewLayer(model.LayerCut)
	cut.AddPath(g.Outline())

	half := model.SlotClearance / 2
	for _, c := range g.Cells() {
		cut.AddPath(geometry.Rect(c.X+half, c.Y, c.Width-model.SlotClearance, c.Height))
	}

	if opts.IncludeMountingHoles {
		for _, h := range g.MountingHoles() {
			cut.AddPath(geometry.Circle(h.X, h.Y, model.MountingRadius))
		}
	}

	engrave := model.NewLayer(model.LayerEngrave)
	engrave.AddText(g.Width/2, frameTitleY, frameTitle, frameTitleSize)
	engrave.AddText(g.Width/2, g.Height-frameMaterialInset, strings.ToUpper(string(opts.Material)), frameMaterialSize)
	engrave.AddPath(geometry.Rect(frameBorderInset, frameBorderInset,
		g.Width-2*frameBorderInset, g.Height-2*frameBorderInset))

	filename := fmt.Sprintf("calendar-frame-%sinch-%s.svg", opts.Size, opts.Material)
	desc := fmt.Sprintf("Main frame with %d tile slots (%smm deep) - %s\" %s",
		opts.TileGridSize.Total(), model.FormatNumber(g.SlotDepth), opts.Size, opts.Material.Label())
	return newFile(model.PartFrame, filename, desc, g.Width, g.Height, 1, []model.SVGLayer{cut, engrave})
}

// BuildTileSheet nests every tile on an independent sheet, TilesPerRow wide.
// Each tile gets a notched outline, a centre LED hole and an engraved number.
func BuildTileSheet(g geometry.PlateGeometry, opts model.LaserCutOptions) model.LaserCutFile {
	sheet := g.Sheet
	cut := model.NewLayer(model.LayerCut)
	engrave := model.NewLayer(model.LayerEngrave)

	for _, c := range g.Cells() {
		o := sheet.Origin(c.Index)
		cut.AddPath(geometry.NotchedTile(o.X, o.Y, sheet.TileWidth, sheet.TileHeight))
		cut.AddPath(geometry.Circle(o.X+sheet.TileWidth/2, o.Y+sheet.TileHeight/2, model.TileLEDRadius))
		engrave.AddPath(geometry.TextPathPlaceholder(strconv.Itoa(c.Number()),
			o.X+sheet.TileWidth/2, o.Y+sheet.TileHeight*0.8, tileNumberSize))
	}

	total := opts.TileGridSize.Total()
	filename := fmt.Sprintf("calendar-tiles-%s-%s.svg", opts.TileGridSize, opts.Material)
	desc := fmt.Sprintf("%d individual tiles (%s grid), %d per row for efficient nesting",
		total, opts.TileGridSize, geometry.TilesPerRow)
	return newFile(model.PartTiles, filename, desc, sheet.Width, sheet.Height, total, []model.SVGLayer{cut, engrave})
}

// BuildLEDDiffuser builds the diffuser: the frame silhouette with one LED hole
// per tile cell centre. It has no engrave layer.
func BuildLEDDiffuser(g geometry.PlateGeometry, opts model.LaserCutOptions) model.LaserCutFile {
	cut := model.NewLayer(model.LayerCut)
	cut.AddPath(g.Outline())
	for _, c := range g.Cells() {
		ctr := c.Center()
		cut.AddPath(geometry.Circle(ctr.X, ctr.Y, model.DiffuserLEDRadius))
	}

	filename := fmt.Sprintf("led-diffuser-%sinch.svg", opts.Size)
	desc := fmt.Sprintf("LED diffuser layer with %d LED holes", opts.TileGridSize.Total())
	return newFile(model.PartDiffuser, filename, desc, g.Width, g.Height, 1, []model.SVGLayer{cut})
}

// BuildBackPanel builds the back panel: frame silhouette and cable slot, with
// engraved LED alignment marks and mounting hole guides.
func BuildBackPanel(g geometry.PlateGeometry, opts model.LaserCutOptions) model.LaserCutFile {
	cut := model.NewLayer(model.LayerCut)
	cut.AddPath(g.Outline())
	cut.AddPath(geometry.Rect(g.Width/2-cableSlotWidth/2, g.Height-cableSlotBottom-cableSlotHeight,
		cableSlotWidth, cableSlotHeight))

	engrave := model.NewLayer(model.LayerEngrave)
	for _, c := range g.Cells() {
		ctr := c.Center()
		engrave.AddPath(geometry.Crosshair(ctr.X, ctr.Y, geometry.CrosshairArm))
	}
	for _, h := range g.MountingHoles() {
		engrave.AddPath(geometry.Circle(h.X, h.Y, model.MountingRadius))
	}

	filename := fmt.Sprintf("back-panel-%sinch-%s.svg", opts.Size, opts.Material)
	desc := "Back panel with LED alignment marks and cable management slot"
	return newFile(model.PartBackPanel, filename, desc, g.Width, g.Height, 1, []model.SVGLayer{cut, engrave})
}
