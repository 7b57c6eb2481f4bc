package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/seasoncut/internal/geometry"
	"github.com/piwi3910/seasoncut/internal/laser"
	"github.com/piwi3910/seasoncut/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// layerSwatches mirrors the SVG colour convention for the legend.
var layerSwatches = []struct {
	r, g, b int
	label   string
}{
	{255, 0, 0, "Red (#FF0000): cut through"},
	{0, 0, 255, "Blue (#0000FF): engrave"},
	{0, 255, 0, "Green (#00FF00): score (not used)"},
}

// ExportGuidePDF writes a printable workshop guide: an overview page with the
// options, laser settings and file list, a frame layout page, the assembly
// steps and one sheet of QR tile labels per 30 tiles.
func ExportGuidePDF(path string, opts model.LaserCutOptions, files []model.LaserCutFile) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to document")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderOverviewPage(pdf, opts, files)

	pdf.AddPage()
	renderLayoutPage(pdf, geometry.Plan(opts), opts)

	labels := CollectTileLabels(opts)
	if len(labels) > 0 {
		if err := addLabelPages(pdf, labels); err != nil {
			return err
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderOverviewPage(pdf *fpdf.Fpdf, opts model.LaserCutOptions, files []model.LaserCutFile) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Microseasons Calendar", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	y = sectionTitle(pdf, y, "Configuration")
	rows := []struct{ label, value string }{
		{"Size", fmt.Sprintf("%s inch (%s x %s mm)", opts.Size,
			model.FormatNumber(float64(opts.Size.Inches())*model.MMPerInch),
			model.FormatNumber(float64(opts.Size.Inches())*model.MMPerInch*model.AspectRatio))},
		{"Material", fmt.Sprintf("%s, %s mm", opts.Material.Label(), model.FormatNumber(opts.Thickness))},
		{"Tile grid", fmt.Sprintf("%s (%d tiles)", opts.TileGridSize, opts.TileGridSize.Total())},
		{"Mounting holes", yesNo(opts.IncludeMountingHoles)},
		{"Assembly guide", yesNo(opts.IncludeAssemblyGuide)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(100, 6, r.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 4
	y = sectionTitle(pdf, y, "Laser settings")
	pdf.SetFont("Helvetica", "", 9)
	for _, s := range layerSwatches {
		pdf.SetFillColor(s.r, s.g, s.b)
		pdf.Rect(marginLeft+5, y+1, 4, 4, "F")
		pdf.SetXY(marginLeft+11, y)
		pdf.CellFormat(120, 6, s.label, "", 0, "L", false, 0, "")
		y += 6
	}
	pdf.SetXY(marginLeft+5, y)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Kerf: %s mm (not compensated in the drawings)",
		model.FormatNumber(model.Kerf)), "", 0, "L", false, 0, "")
	y += 10

	y = sectionTitle(pdf, y, "Files")
	colWidths := []float64{70, 25, 15, 70}
	headers := []string{"File", "Size (mm)", "Pcs", "Description"}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 7)
	for i, f := range files {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			f.Filename,
			fmt.Sprintf("%.0f x %.0f", f.Width, f.Height),
			fmt.Sprintf("%d", f.Pieces),
			truncate(pdf, f.Description, colWidths[3]-2),
		}
		x = marginLeft
		for j, c := range cells {
			pdf.SetXY(x, y)
			align := "C"
			if j == 0 || j == 3 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], 6, c, "1", 0, align, true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	est := model.EstimateMaterial(files, opts.Thickness)
	y += 6
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Stock needed: %d sheets, %.0f mm², %.2f board feet",
		est.Sheets, est.SheetArea, est.TotalBoardFeet), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by SeasonCut", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderLayoutPage draws the frame to scale with its tile cells, numbered in
// assembly order, followed by the assembly steps.
func renderLayoutPage(pdf *fpdf.Fpdf, g geometry.PlateGeometry, opts model.LaserCutOptions) {
	y := sectionTitle(pdf, marginTop, "Frame layout")

	drawHeight := 120.0
	scale := math.Min(contentWidth/g.Width, drawHeight/g.Height)
	canvasW := g.Width * scale
	canvasH := g.Height * scale
	offsetX := marginLeft + (contentWidth-canvasW)/2
	offsetY := y + 2

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	cells := g.Cells()
	pdf.SetLineWidth(0.2)
	pdf.SetFillColor(255, 250, 235)
	for _, c := range cells {
		pdf.Rect(offsetX+c.X*scale, offsetY+c.Y*scale, c.Width*scale, c.Height*scale, "FD")
	}

	if len(cells) > 0 {
		cw := cells[0].Width * scale
		ch := cells[0].Height * scale
		if cw > 5 && ch > 3 {
			pdf.SetFont("Helvetica", "", math.Min(7, ch*1.5))
			for _, c := range cells {
				ctr := c.Center()
				pdf.SetXY(offsetX+ctr.X*scale-cw/2, offsetY+ctr.Y*scale-1.5)
				pdf.CellFormat(cw, 3, fmt.Sprintf("%d", c.Number()), "", 0, "C", false, 0, "")
			}
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(offsetX, offsetY+canvasH+1)
	pdf.CellFormat(canvasW, 4, fmt.Sprintf("%s x %s mm, slot depth %s mm",
		model.FormatNumber(g.Width), model.FormatNumber(g.Height), model.FormatNumber(g.SlotDepth)),
		"", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y = offsetY + canvasH + 12
	y = sectionTitle(pdf, y, "Assembly")
	pdf.SetFont("Helvetica", "", 10)
	for _, step := range laser.AssemblySteps(opts) {
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(contentWidth-5, 5, step, "", "L", false)
		y = pdf.GetY() + 2
	}

	y += 4
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft+5, y)
	pdf.CellFormat(contentWidth, 6, "Stack, from the wall outwards:", "", 0, "L", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 10)
	for i, name := range laser.StackOrder {
		pdf.SetXY(marginLeft+10, y)
		pdf.CellFormat(contentWidth, 5, fmt.Sprintf("%d. %s", i+1, name), "", 0, "L", false, 0, "")
		y += 6
	}
}

func sectionTitle(pdf *fpdf.Fpdf, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, title, "", 0, "L", false, 0, "")
	return y + 9
}

// truncate shortens s with an ellipsis until it fits width at the current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
