package model

import (
	"math"
	"testing"
)

func TestEstimateMaterial(t *testing.T) {
	files := []LaserCutFile{
		{Part: PartFrame, Width: 100, Height: 50, Pieces: 1},
		{Part: PartTiles, Width: 20, Height: 10, Pieces: 8},
		{Part: PartAssemblyGuide, Width: 400, Height: 600},
	}
	est := EstimateMaterial(files, 25.4)

	if est.Sheets != 2 {
		t.Errorf("expected 2 sheets, got %d", est.Sheets)
	}
	if est.Pieces != 9 {
		t.Errorf("expected 9 pieces, got %d", est.Pieces)
	}
	if est.SheetArea != 5200 {
		t.Errorf("expected 5200 sq mm, got %f", est.SheetArea)
	}
	if math.Abs(est.TotalBoardFeet-5200/sqmmPerBoardFoot) > 1e-9 {
		t.Errorf("one inch stock should give plain board feet, got %f", est.TotalBoardFeet)
	}
	if est.Kerf != Kerf {
		t.Errorf("expected kerf %f, got %f", Kerf, est.Kerf)
	}
}

func TestEstimateMaterial_ThinStock(t *testing.T) {
	files := []LaserCutFile{{Part: PartFrame, Width: 508, Height: 381, Pieces: 1}}
	est := EstimateMaterial(files, 3)

	if est.Volume != 508*381*3 {
		t.Errorf("expected volume %d, got %f", 508*381*3, est.Volume)
	}
	// 3mm stock is 3/25.4 of a nominal board foot per unit area.
	want := 508 * 381 / sqmmPerBoardFoot * 3 / MMPerInch
	if math.Abs(est.TotalBoardFeet-want) > 1e-9 {
		t.Errorf("expected %f board feet, got %f", want, est.TotalBoardFeet)
	}
}

func TestEstimateMaterial_NoCutFiles(t *testing.T) {
	est := EstimateMaterial([]LaserCutFile{{Part: PartAssemblyGuide, Width: 400, Height: 600}}, 3)
	if est.Sheets != 0 || est.SheetArea != 0 || est.TotalBoardFeet != 0 {
		t.Errorf("printable files should not count as stock, got %+v", est)
	}
}
