package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/seasoncut/internal/export"
	"github.com/piwi3910/seasoncut/internal/laser"
	"github.com/piwi3910/seasoncut/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,Size,Material\nA,20,oak\nB,16,maple\n", ','},
		{"semicolon", "Name;Size;Material\nA;20;oak\nB;16;maple\n", ';'},
		{"tab", "Name\tSize\tMaterial\nA\t20\toak\n", '\t'},
		{"pipe", "Name|Size|Material\nA|20|oak\n", '|'},
	}
	for _, tt := range tests {
		if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_Aliases(t *testing.T) {
	row := []string{"Calendar", "Wood", "Inches", "Columns", "Rows", "Thickness (mm)", "Mounting Holes"}
	m, isHeader := DetectColumns(row)
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if m.Name != 0 || m.Material != 1 || m.Size != 2 || m.Cols != 3 || m.Rows != 4 || m.Thickness != 5 || m.Holes != 6 {
		t.Errorf("unexpected mapping %+v", m)
	}
	if m.Guide != -1 {
		t.Errorf("expected no guide column, got %d", m.Guide)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	m, isHeader := DetectColumns([]string{"Kitchen", "20", "oak", "3", "12", "6"})
	if isHeader {
		t.Error("data row should not be detected as a header")
	}
	if m != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", m)
	}
}

// ─── Import Tests ──────────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := `Name,Size,Material,Thickness,Rows,Cols,Guide,Holes
Kitchen,24,Oak,4,12,6,no,yes
Studio,16in,maple,3mm,10,5,yes,no
`
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.DefaultLaserCutOptions())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}

	k := result.Jobs[0]
	if k.Name != "Kitchen" || k.Options.Size != model.Size24 || k.Options.Material != model.MaterialOak {
		t.Errorf("unexpected first job %+v", k)
	}
	if k.Options.Thickness != 4 || k.Options.IncludeAssemblyGuide || !k.Options.IncludeMountingHoles {
		t.Errorf("unexpected first job options %+v", k.Options)
	}

	s := result.Jobs[1].Options
	if s.Size != model.Size16 || s.Thickness != 3 || s.TileGridSize != (model.TileGrid{Rows: 10, Cols: 5}) {
		t.Errorf("unexpected second job options %+v", s)
	}
	if !s.IncludeAssemblyGuide || s.IncludeMountingHoles {
		t.Errorf("unexpected second job flags %+v", s)
	}
}

func TestImportCSVFromReader_DefaultsFillGaps(t *testing.T) {
	defaults := model.DefaultLaserCutOptions()
	data := "Name,Material\nHall,maple\n,\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', defaults)
	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d (errors %v)", len(result.Jobs), result.Errors)
	}
	opts := result.Jobs[0].Options
	if opts.Size != defaults.Size || opts.TileGridSize != defaults.TileGridSize {
		t.Errorf("missing cells should keep defaults, got %+v", opts)
	}
	if opts.Material != model.MaterialMaple {
		t.Errorf("expected maple, got %s", opts.Material)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Kitchen,20,walnut,3,12,6\n,24,oak,3,6,12\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.DefaultLaserCutOptions())

	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d (errors %v)", len(result.Jobs), result.Errors)
	}
	if result.Jobs[1].Name != "Calendar 2" {
		t.Errorf("expected generated name, got %q", result.Jobs[1].Name)
	}
	if result.Jobs[1].Options.TileGridSize.String() != "6x12" {
		t.Errorf("expected 6x12 grid, got %s", result.Jobs[1].Options.TileGridSize)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := `Name,Size,Material,Thickness,Rows,Cols,Holes
Good,20,walnut,3,12,6,yes
BadSize,18,walnut,3,12,6,yes
BadRows,20,walnut,3,many,6,yes
BadWood,20,pine,3,12,6,maybe
`
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.DefaultLaserCutOptions())

	if len(result.Jobs) != 1 || result.Jobs[0].Name != "Good" {
		t.Fatalf("expected only the good row, got %+v", result.Jobs)
	}
	all := strings.Join(result.Errors, "\n")
	for _, want := range []string{"Line 3", "unsupported size", "Line 4: Invalid rows 'many'", "Line 5", "unsupported material"} {
		if !strings.Contains(all, want) {
			t.Errorf("expected %q in errors:\n%s", want, all)
		}
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "Line 5: Unknown holes value 'maybe'") {
		t.Errorf("expected flag warning, got %v", result.Warnings)
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	data := "Name;Size;Material\nA;20;oak\nB;24;walnut\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path, model.DefaultLaserCutOptions())
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d (errors %v)", len(result.Jobs), result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_Missing(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"), model.DefaultLaserCutOptions())
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Size", "Material", "Rows", "Cols"},
		{"Lobby", "24", "oak", 12, 6},
		{"Office", "16", "maple", 9, 8},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result := ImportFile(path, model.DefaultLaserCutOptions())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}
	if got := result.Jobs[1].Options.TileGridSize.Total(); got != 72 {
		t.Errorf("expected 72 tiles, got %d", got)
	}
}

// ─── DXF Tests ─────────────────────────────────────────────

func TestReadDXF_GeneratedDiffuser(t *testing.T) {
	diffuser := laser.GenerateLEDDiffuser(model.DefaultLaserCutOptions())
	path := filepath.Join(t.TempDir(), export.DXFFilename(diffuser))
	if err := export.WriteDXF(path, diffuser, 32); err != nil {
		t.Fatal(err)
	}

	result := ReadDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Outlines) != 1+72 {
		t.Errorf("expected outline and 72 holes, got %d", len(result.Outlines))
	}
	min, max := result.Bounds()
	if min.X < -1e-6 || min.Y < -1e-6 || max.X > diffuser.Width+1e-6 || max.Y > diffuser.Height+1e-6 {
		t.Errorf("drawing escapes the plate: %v-%v", min, max)
	}
}

func TestReadDXF_BulgeAndCircle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.dxf")
	d := dxf.NewDrawing()
	if _, err := d.AddLayer("CUT", color.Red, table.LT_CONTINUOUS, true); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Circle(50, 50, 0, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Line(0, 0, 0, 10, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ReadDXF(path)
	if len(result.Outlines) != 1 {
		t.Fatalf("expected the circle only, got %d outlines", len(result.Outlines))
	}
	min, max := result.Outlines[0].BoundingBox()
	if min.X < 39.99 || max.X > 60.01 || min.Y < 39.99 || max.Y > 60.01 {
		t.Errorf("unexpected circle bounds %v-%v", min, max)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning for the loose line, got %v", result.Warnings)
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	pts := bulgeArcPoints(model.Point2D{X: 1, Y: 0}, model.Point2D{X: -1, Y: 0}, 1, 8)
	mid := pts[4]
	if mid.X > 1e-9 || mid.X < -1e-9 || mid.Y < 1-1e-9 || mid.Y > 1+1e-9 {
		t.Errorf("counter-clockwise semicircle should pass through (0, 1), got %v", mid)
	}
	if pts[8] != (model.Point2D{X: -1, Y: 0}) {
		t.Errorf("arc should end at its endpoint, got %v", pts[8])
	}
}
