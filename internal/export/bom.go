package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/seasoncut/internal/model"
)

// BOMSheet is the name of the worksheet written by ExportBOM.
const BOMSheet = "Bill of Materials"

var bomHeaders = []interface{}{
	"File", "Part", "Description", "Width (mm)", "Height (mm)", "Pieces", "Area (mm²)", "Layers",
}

// ExportBOM writes an XLSX bill of materials with one row per generated file
// followed by the stock estimate for the chosen material.
func ExportBOM(path string, opts model.LaserCutOptions, files []model.LaserCutFile) error {
	if len(files) == 0 {
		return fmt.Errorf("no files for bill of materials")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BOMSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(BOMSheet, "A1", &bomHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(BOMSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, file := range files {
		var layers []string
		for _, l := range file.Layers {
			layers = append(layers, string(l.Name))
		}
		values := []interface{}{
			file.Filename,
			string(file.Part),
			file.Description,
			file.Width,
			file.Height,
			file.Pieces,
			file.Width * file.Height,
			strings.Join(layers, ", "),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(BOMSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	est := model.EstimateMaterial(files, opts.Thickness)
	row++
	summary := [][]interface{}{
		{"Material", opts.Material.Label()},
		{"Thickness (mm)", opts.Thickness},
		{"Sheets", est.Sheets},
		{"Pieces", est.Pieces},
		{"Sheet area (mm²)", est.SheetArea},
		{"Board feet", est.TotalBoardFeet},
		{"Kerf (mm)", est.Kerf},
	}
	for _, values := range summary {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(BOMSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		row++
	}

	widths := map[string]float64{"A": 38, "B": 10, "C": 60, "H": 16}
	for col, w := range widths {
		if err := f.SetColWidth(BOMSheet, col, col, w); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
