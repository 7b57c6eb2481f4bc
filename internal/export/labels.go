package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/seasoncut/internal/geometry"
	"github.com/piwi3910/seasoncut/internal/model"
)

// TileLabel holds the data encoded into each tile label's QR code.
type TileLabel struct {
	Tile     int     `json:"tile"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Grid     string  `json:"grid"`
	Size     string  `json:"size"`
	Material string  `json:"material"`
	Width    float64 `json:"width_mm"`
	Height   float64 `json:"height_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectTileLabels returns one label per tile in assembly order.
func CollectTileLabels(opts model.LaserCutOptions) []TileLabel {
	g := geometry.Plan(opts)
	var labels []TileLabel
	for _, c := range g.Cells() {
		labels = append(labels, TileLabel{
			Tile:     c.Number(),
			Row:      c.Row + 1,
			Col:      c.Col + 1,
			Grid:     opts.TileGridSize.String(),
			Size:     string(opts.Size),
			Material: string(opts.Material),
			Width:    g.Sheet.TileWidth,
			Height:   g.Sheet.TileHeight,
		})
	}
	return labels
}

// addLabelPages appends Avery label pages for every tile to pdf.
func addLabelPages(pdf *fpdf.Fpdf, labels []TileLabel) error {
	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for tile %d: %w", label.Tile, err)
		}
	}
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info TileLabel) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_tile_%d", info.Tile)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2,
		qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("Tile %d", info.Tile), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Row %d, column %d of %s", info.Row, info.Col, info.Grid),
		"", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+10)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%.1f x %.1f mm, %s\" %s", info.Width, info.Height, info.Size, info.Material),
		"", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
