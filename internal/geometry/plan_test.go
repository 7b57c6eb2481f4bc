package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/seasoncut/internal/model"
)

func TestPlan_Default20Inch(t *testing.T) {
	g := Plan(model.DefaultLaserCutOptions())

	assert.InDelta(t, 508.0, g.Width, 1e-9)
	assert.InDelta(t, 381.0, g.Height, 1e-9)
	assert.Equal(t, 12, g.Rows)
	assert.Equal(t, 6, g.Cols)
	assert.InDelta(t, 428.0/6, g.TileWidth, 1e-9)
	assert.InDelta(t, 301.0/12, g.TileHeight, 1e-9)
	assert.InDelta(t, 1.5, g.SlotDepth, 1e-9, "slot depth is half the 3mm thickness")
}

func TestPlan_AspectRatioForAllSizes(t *testing.T) {
	for _, size := range model.Sizes {
		opts := model.DefaultLaserCutOptions()
		opts.Size = size
		g := Plan(opts)

		assert.InDelta(t, float64(size.Inches())*25.4, g.Width, 1e-9, "size %s", size)
		assert.InDelta(t, g.Width*0.75, g.Height, 1e-9, "size %s", size)
	}
}

func TestPlan_TileSheet(t *testing.T) {
	g := Plan(model.DefaultLaserCutOptions())
	s := g.Sheet

	assert.Equal(t, 72, s.Count)
	assert.Equal(t, 18, s.Rows, "72 tiles at 4 per row")
	assert.InDelta(t, g.TileWidth-2, s.TileWidth, 1e-9)
	assert.InDelta(t, g.TileHeight-2, s.TileHeight, 1e-9)
	assert.InDelta(t, 4*(s.TileWidth+5)+5, s.Width, 1e-9)
	assert.InDelta(t, 18*(s.TileHeight+5)+5, s.Height, 1e-9)
}

func TestPlan_TileSheetPartialRow(t *testing.T) {
	opts := model.DefaultLaserCutOptions()
	opts.TileGridSize = model.TileGrid{Rows: 3, Cols: 3}
	s := Plan(opts).Sheet

	assert.Equal(t, 9, s.Count)
	assert.Equal(t, 3, s.Rows, "9 tiles need ceil(9/4) rows")
}

func TestTileSheet_Origin(t *testing.T) {
	s := TileSheet{TileWidth: 20, TileHeight: 10}

	assert.Equal(t, model.Point2D{X: 5, Y: 5}, s.Origin(0))
	assert.Equal(t, model.Point2D{X: 80, Y: 5}, s.Origin(3))
	assert.Equal(t, model.Point2D{X: 5, Y: 20}, s.Origin(4))
	assert.Equal(t, model.Point2D{X: 30, Y: 35}, s.Origin(9))
}

func TestCells_RowMajor(t *testing.T) {
	opts := model.DefaultLaserCutOptions()
	opts.TileGridSize = model.TileGrid{Rows: 2, Cols: 3}
	g := Plan(opts)

	cells := g.Cells()
	require.Len(t, cells, 6)
	for i, c := range cells {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, i+1, c.Number())
		assert.Equal(t, i/3, c.Row)
		assert.Equal(t, i%3, c.Col)
	}

	first := cells[0]
	assert.InDelta(t, 40.0, first.X, 1e-9)
	assert.InDelta(t, 40.0, first.Y, 1e-9)

	last := cells[5]
	assert.InDelta(t, g.Width-40, last.X+last.Width, 1e-9, "grid ends at the right margin")
	assert.InDelta(t, g.Height-40, last.Y+last.Height, 1e-9, "grid ends at the bottom margin")
}

func TestCell_Center(t *testing.T) {
	c := Cell{X: 40, Y: 40, Width: 20, Height: 10}
	assert.Equal(t, model.Point2D{X: 50, Y: 45}, c.Center())
}

func TestCells_EmptyGrid(t *testing.T) {
	opts := model.DefaultLaserCutOptions()
	opts.TileGridSize = model.TileGrid{}
	g := Plan(opts)

	assert.Empty(t, g.Cells())
	assert.Equal(t, 0, g.Sheet.Rows)
}

func TestPlan_OversizedGridIsDegenerateNotPanicking(t *testing.T) {
	opts := model.DefaultLaserCutOptions()
	opts.Size = model.Size16
	opts.TileGridSize = model.TileGrid{Rows: 200, Cols: 200}
	g := Plan(opts)

	assert.Less(t, g.TileWidth, model.SlotClearance)
	assert.Less(t, g.Sheet.TileWidth, 0.0, "tile footprint goes negative instead of failing")
	assert.Len(t, g.Cells(), 40000)
}

func TestMountingHoles(t *testing.T) {
	g := Plan(model.DefaultLaserCutOptions())
	holes := g.MountingHoles()

	require.Len(t, holes, 4)
	assert.Equal(t, model.Point2D{X: 20, Y: 20}, holes[0])
	assert.InDelta(t, 488.0, holes[1].X, 1e-9)
	assert.InDelta(t, 361.0, holes[2].Y, 1e-9)
	assert.InDelta(t, 488.0, holes[3].X, 1e-9)
	assert.InDelta(t, 361.0, holes[3].Y, 1e-9)
}

func TestOutline_Deterministic(t *testing.T) {
	g := Plan(model.DefaultLaserCutOptions())
	assert.Equal(t, g.Outline().D(), Plan(model.DefaultLaserCutOptions()).Outline().D())
	assert.Equal(t, "M 10 0 L 498 0 Q 508 0 508 10 L 508 371 Q 508 381 498 381 L 10 381 Q 0 381 0 371 L 0 10 Q 0 0 10 0 Z",
		g.Outline().D())
}

func TestOutline_Bounds(t *testing.T) {
	g := Plan(model.DefaultLaserCutOptions())
	b := g.Outline().Bounds()

	assert.InDelta(t, 0.0, b.Min.X, 1e-9)
	assert.InDelta(t, 0.0, b.Min.Y, 1e-9)
	assert.InDelta(t, g.Width, b.Max.X, 1e-9)
	assert.InDelta(t, g.Height, b.Max.Y, 1e-9)
	assert.False(t, math.IsNaN(b.Max.X))
}
