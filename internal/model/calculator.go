package model

// MaterialEstimate summarises the stock needed to cut one calendar.
type MaterialEstimate struct {
	SheetArea      float64 `json:"sheet_area"`       // Total sheet area of all cut files (sq mm)
	TotalBoardFeet float64 `json:"total_board_feet"` // SheetArea in board feet at the given thickness
	Volume         float64 `json:"volume"`           // cubic mm
	Sheets         int     `json:"sheets"`           // number of cut files
	Pieces         int     `json:"pieces"`           // physical pieces produced
	Kerf           float64 `json:"kerf"`             // Kerf noted for the operator
}

// sqmmPerBoardFoot is the area of one board foot (144 sq in) at one inch
// thickness, in square millimeters.
const sqmmPerBoardFoot = 92903.04

// EstimateMaterial computes the stock consumed by the cut files. Printable
// files such as the assembly guide are ignored.
func EstimateMaterial(files []LaserCutFile, thickness float64) MaterialEstimate {
	est := MaterialEstimate{Kerf: Kerf}
	for _, f := range files {
		if !f.IsCutFile() {
			continue
		}
		est.Sheets++
		est.Pieces += f.Pieces
		est.SheetArea += f.Width * f.Height
	}
	est.Volume = est.SheetArea * thickness
	// Board feet are nominally one inch thick.
	est.TotalBoardFeet = est.SheetArea / sqmmPerBoardFoot * (thickness / MMPerInch)
	return est
}
