// Package geometry turns calendar options into physical plate dimensions and
// the tile, slot and hole positions every part is built from.
//
// The planner never fails: a grid that does not fit the plate yields
// degenerate but well-formed geometry. Use model.ValidateOptions to reject
// such input before planning.
package geometry

import (
	"math"

	"github.com/piwi3910/seasoncut/internal/model"
)

// Tile sheet nesting constants.
const (
	TilesPerRow  = 4
	TileSpacing  = 5.0 // gap between tiles and around the sheet edge
	NotchWidth   = 2.0 // orientation notch cut from each tile's top-left corner
	NotchHeight  = 1.0
	CrosshairArm = 3.0 // half length of a back panel alignment mark
)

// Cell is one tile position in the calendar grid.
type Cell struct {
	Row    int
	Col    int
	Index  int // row-major, 0-based
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the midpoint of the cell, where its LED sits.
func (c Cell) Center() model.Point2D {
	return model.Point2D{X: c.X + c.Width/2, Y: c.Y + c.Height/2}
}

// Number returns the 1-based tile number engraved for assembly.
func (c Cell) Number() int {
	return c.Index + 1
}

// TileSheet is the independent nesting sheet the loose tiles are cut from.
type TileSheet struct {
	Count      int
	Rows       int
	TileWidth  float64
	TileHeight float64
	Width      float64
	Height     float64
}

// Origin returns the top-left corner of the tile at the given sheet index.
func (s TileSheet) Origin(index int) model.Point2D {
	row := index / TilesPerRow
	col := index % TilesPerRow
	return model.Point2D{
		X: TileSpacing + float64(col)*(s.TileWidth+TileSpacing),
		Y: TileSpacing + float64(row)*(s.TileHeight+TileSpacing),
	}
}

// PlateGeometry is computed once per generation run and shared by every
// part builder so stacked layers register against each other.
type PlateGeometry struct {
	Width      float64
	Height     float64
	Rows       int
	Cols       int
	TileWidth  float64 // grid cell width on the plate
	TileHeight float64
	SlotDepth  float64
	Sheet      TileSheet
}

// Plan derives all placement numbers from the options.
func Plan(opts model.LaserCutOptions) PlateGeometry {
	width := float64(opts.Size.Inches()) * model.MMPerInch
	height := width * model.AspectRatio
	rows, cols := opts.TileGridSize.Rows, opts.TileGridSize.Cols

	g := PlateGeometry{
		Width:      width,
		Height:     height,
		Rows:       rows,
		Cols:       cols,
		TileWidth:  (width - 2*model.PlateMargin) / float64(cols),
		TileHeight: (height - 2*model.PlateMargin) / float64(rows),
		SlotDepth:  opts.Thickness * model.SlotDepthFactor,
	}

	count := opts.TileGridSize.Total()
	if count < 0 {
		count = 0
	}
	sheet := TileSheet{
		Count:      count,
		Rows:       int(math.Ceil(float64(count) / TilesPerRow)),
		TileWidth:  g.TileWidth - model.SlotClearance,
		TileHeight: g.TileHeight - model.SlotClearance,
	}
	sheet.Width = TilesPerRow*(sheet.TileWidth+TileSpacing) + TileSpacing
	sheet.Height = float64(sheet.Rows)*(sheet.TileHeight+TileSpacing) + TileSpacing
	g.Sheet = sheet

	return g
}

// Cell returns the grid cell at row, col.
func (g PlateGeometry) Cell(row, col int) Cell {
	return Cell{
		Row:    row,
		Col:    col,
		Index:  row*g.Cols + col,
		X:      model.PlateMargin + float64(col)*g.TileWidth,
		Y:      model.PlateMargin + float64(row)*g.TileHeight,
		Width:  g.TileWidth,
		Height: g.TileHeight,
	}
}

// Cells returns every grid cell in row-major order.
func (g PlateGeometry) Cells() []Cell {
	if g.Rows <= 0 || g.Cols <= 0 {
		return nil
	}
	cells := make([]Cell, 0, g.Rows*g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cells = append(cells, g.Cell(row, col))
		}
	}
	return cells
}

// MountingHoles returns the four corner hole centres: top-left, top-right,
// bottom-left, bottom-right.
func (g PlateGeometry) MountingHoles() []model.Point2D {
	in := model.MountingInset
	return []model.Point2D{
		{X: in, Y: in},
		{X: g.Width - in, Y: in},
		{X: in, Y: g.Height - in},
		{X: g.Width - in, Y: g.Height - in},
	}
}

// Outline returns the rounded outer silhouette shared by the frame, the
// diffuser and the back panel.
func (g PlateGeometry) Outline() model.Path {
	return RoundedRect(0, 0, g.Width, g.Height, model.CornerRadius)
}
