package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Physical constants shared by every part of the calendar. All lengths are mm.
const (
	MMPerInch   = 25.4
	AspectRatio = 0.75 // height = width * AspectRatio

	PlateMargin       = 40.0 // border between the plate edge and the tile grid, per side
	CornerRadius      = 10.0 // outer silhouette corner radius
	SlotClearance     = 2.0  // total width clearance between a tile and its slot
	SlotDepthFactor   = 0.5  // slot depth = thickness * SlotDepthFactor
	MountingInset     = 20.0 // corner hole distance from each edge
	MountingRadius    = 3.0
	TileLEDRadius     = 2.5
	DiffuserLEDRadius = 3.0 // oversized against TileLEDRadius for mounting variance

	// Kerf is the width removed by the beam. It is reported to the operator
	// as a laser setting and never applied to the generated geometry.
	Kerf = 0.2
)

// Size is the nominal diagonal of the calendar in inches.
type Size string

const (
	Size16 Size = "16"
	Size20 Size = "20"
	Size24 Size = "24"
)

// Sizes lists the supported calendar sizes in UI order.
var Sizes = []Size{Size16, Size20, Size24}

// Inches returns the numeric size. Unparseable sizes yield 0.
func (s Size) Inches() int {
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return 0
	}
	return n
}

func (s Size) Valid() bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Material is the wood species. It is engraved on the frame and used in
// filenames; it never changes geometry.
type Material string

const (
	MaterialWalnut Material = "walnut"
	MaterialMaple  Material = "maple"
	MaterialOak    Material = "oak"
)

// Materials lists the supported wood species in UI order.
var Materials = []Material{MaterialWalnut, MaterialMaple, MaterialOak}

func (m Material) Valid() bool {
	for _, v := range Materials {
		if v == m {
			return true
		}
	}
	return false
}

// Label returns the material name capitalised for display ("Walnut").
func (m Material) Label() string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

// TileGrid is the number of individually addressable calendar tiles.
type TileGrid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Total returns Rows * Cols.
func (g TileGrid) Total() int {
	return g.Rows * g.Cols
}

func (g TileGrid) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// LaserCutOptions describes one calendar to manufacture.
type LaserCutOptions struct {
	Size                 Size     `json:"size"`
	Material             Material `json:"material"`
	Thickness            float64  `json:"thickness"` // material thickness in mm
	IncludeAssemblyGuide bool     `json:"include_assembly_guide"`
	IncludeMountingHoles bool     `json:"include_mounting_holes"`
	TileGridSize         TileGrid `json:"tile_grid_size"`
}

// DefaultLaserCutOptions returns a 20" walnut calendar with one tile per
// microseason (12 x 6 = 72).
func DefaultLaserCutOptions() LaserCutOptions {
	return LaserCutOptions{
		Size:                 Size20,
		Material:             MaterialWalnut,
		Thickness:            3.0,
		IncludeAssemblyGuide: true,
		IncludeMountingHoles: true,
		TileGridSize:         TileGrid{Rows: 12, Cols: 6},
	}
}

// FormatNumber renders a coordinate with the shortest decimal representation
// that round-trips, so 508 prints as "508" and 428/6 as "71.33333333333333".
func FormatNumber(f float64) string {
	if f == 0 {
		return "0" // avoids "-0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
