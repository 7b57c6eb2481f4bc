package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/seasoncut/internal/gcode"
	"github.com/piwi3910/seasoncut/internal/laser"
	"github.com/piwi3910/seasoncut/internal/model"
)

func testFiles(t *testing.T) (model.LaserCutOptions, []model.LaserCutFile) {
	t.Helper()
	opts := model.DefaultLaserCutOptions()
	files, err := laser.Generate(opts)
	require.NoError(t, err)
	return opts, files
}

func TestSaveFile(t *testing.T) {
	_, files := testFiles(t)
	dir := t.TempDir()

	path, err := SaveFile(dir, files[0])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "calendar-frame-20inch-walnut.svg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, files[0].SVG, string(data))
	assert.NoError(t, CheckFile(path, files[0]))
}

func TestSaveFile_NoName(t *testing.T) {
	_, err := SaveFile(t.TempDir(), model.LaserCutFile{SVG: "<svg/>"})
	assert.Error(t, err)
}

func TestCheckFile_Mismatch(t *testing.T) {
	_, files := testFiles(t)
	dir := t.TempDir()
	path, err := SaveFile(dir, files[0])
	require.NoError(t, err)

	other := files[0]
	other.Width = 1
	assert.Error(t, CheckFile(path, other))

	require.NoError(t, os.WriteFile(path, []byte("not svg"), 0644))
	assert.Error(t, CheckFile(path, files[0]))
}

func TestSaverSaveAll(t *testing.T) {
	_, files := testFiles(t)
	dir := filepath.Join(t.TempDir(), "out")

	var seen []string
	s := NewSaver(0)
	s.OnSaved = func(path string) { seen = append(seen, path) }

	written, err := s.SaveAll(context.Background(), dir, files)
	require.NoError(t, err)
	require.Len(t, written, len(files))
	assert.Equal(t, written, seen)

	for i, f := range files {
		assert.Equal(t, f.Filename, filepath.Base(written[i]), "files are written in order")
		assert.FileExists(t, written[i])
	}
}

func TestSaverSaveAll_Delay(t *testing.T) {
	_, files := testFiles(t)
	s := NewSaver(20 * time.Millisecond)

	start := time.Now()
	written, err := s.SaveAll(context.Background(), t.TempDir(), files[:3])
	require.NoError(t, err)
	assert.Len(t, written, 3)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond, "two gaps between three files")
}

func TestSaverSaveAll_Cancelled(t *testing.T) {
	_, files := testFiles(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := NewSaver(time.Hour)
	s.OnSaved = func(string) { cancel() }

	written, err := s.SaveAll(ctx, t.TempDir(), files)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, written, 1, "cancellation stops before the second file")
}

func TestSaverSaveAll_CancelledBeforeStart(t *testing.T) {
	_, files := testFiles(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	written, err := NewSaver(0).SaveAll(ctx, t.TempDir(), files)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}

func TestWriteDXF_RoundTrip(t *testing.T) {
	opts := model.DefaultLaserCutOptions()
	opts.IncludeMountingHoles = false
	frame := laser.GenerateMainFrame(opts)
	path := filepath.Join(t.TempDir(), DXFFilename(frame))

	require.NoError(t, WriteDXF(path, frame, 32))
	assert.True(t, strings.HasSuffix(path, "calendar-frame-20inch-walnut.dxf"))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var polylines []*entity.LwPolyline
	texts := 0
	for _, e := range drawing.Entities() {
		switch v := e.(type) {
		case *entity.LwPolyline:
			polylines = append(polylines, v)
		case *entity.Text:
			texts++
		}
	}

	// Outline, 72 slots and the engraved border.
	assert.Len(t, polylines, 1+72+1)
	assert.Equal(t, 2, texts)

	// The first slot starts at SVG (41, 40), which is 381-40 in DXF space.
	slot := polylines[1]
	require.NotEmpty(t, slot.Vertices)
	assert.InDelta(t, 41.0, slot.Vertices[0][0], 1e-9)
	assert.InDelta(t, 341.0, slot.Vertices[0][1], 1e-9)

	for _, pl := range polylines {
		for _, v := range pl.Vertices {
			assert.GreaterOrEqual(t, v[0], -1e-6)
			assert.LessOrEqual(t, v[0], frame.Width+1e-6)
			assert.GreaterOrEqual(t, v[1], -1e-6)
			assert.LessOrEqual(t, v[1], frame.Height+1e-6)
		}
	}
}

func TestWriteDXF_SkipsPlaceholderText(t *testing.T) {
	tiles := laser.GenerateTileSheet(model.DefaultLaserCutOptions())
	path := filepath.Join(t.TempDir(), DXFFilename(tiles))
	require.NoError(t, WriteDXF(path, tiles, 0))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	polylines := 0
	for _, e := range drawing.Entities() {
		if _, ok := e.(*entity.LwPolyline); ok {
			polylines++
		}
	}
	// Move-only number placeholders carry no geometry.
	assert.Equal(t, 72*2, polylines)
}

func TestDXFLayerName(t *testing.T) {
	assert.Equal(t, "CUT", DXFLayerName(model.LayerCut))
	assert.Equal(t, "ENGRAVE", DXFLayerName(model.LayerEngrave))
	assert.Equal(t, "SCORE", DXFLayerName(model.LayerScore))
}

func TestCollectTileLabels(t *testing.T) {
	opts := model.DefaultLaserCutOptions()
	labels := CollectTileLabels(opts)
	require.Len(t, labels, 72)

	first, last := labels[0], labels[71]
	assert.Equal(t, 1, first.Tile)
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, 1, first.Col)
	assert.Equal(t, 72, last.Tile)
	assert.Equal(t, 12, last.Row)
	assert.Equal(t, 6, last.Col)
	assert.Equal(t, "12x6", first.Grid)

	data, err := json.Marshal(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tile":1`)
	assert.Contains(t, string(data), `"material":"walnut"`)
}

func TestExportGuidePDF_CreatesFile(t *testing.T) {
	opts, files := testFiles(t)
	path := filepath.Join(t.TempDir(), "guide.pdf")

	require.NoError(t, ExportGuidePDF(path, opts, files))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestExportGuidePDF_NoFiles(t *testing.T) {
	err := ExportGuidePDF(filepath.Join(t.TempDir(), "empty.pdf"), model.DefaultLaserCutOptions(), nil)
	assert.Error(t, err)
}

func TestExportBOM(t *testing.T) {
	opts, files := testFiles(t)
	path := filepath.Join(t.TempDir(), "bom.xlsx")
	require.NoError(t, ExportBOM(path, opts, files))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BOMSheet}, f.GetSheetList())
	rows, err := f.GetRows(BOMSheet)
	require.NoError(t, err)

	require.Greater(t, len(rows), len(files))
	assert.Equal(t, "File", rows[0][0])
	for i, file := range files {
		assert.Equal(t, file.Filename, rows[i+1][0])
		assert.Equal(t, string(file.Part), rows[i+1][1])
	}

	var material string
	for _, r := range rows {
		if len(r) >= 2 && r[0] == "Material" {
			material = r[1]
		}
	}
	assert.Equal(t, "Walnut", material)
}

func TestExportBOM_NoFiles(t *testing.T) {
	assert.Error(t, ExportBOM(filepath.Join(t.TempDir(), "bom.xlsx"), model.DefaultLaserCutOptions(), nil))
}

func TestWriteExtras(t *testing.T) {
	opts, files := testFiles(t)
	dir := filepath.Join(t.TempDir(), "out")

	ex := Extras{DXF: true, GCode: true, PDF: true, BOM: true, Laser: model.DefaultLaserSettings()}
	written, err := WriteExtras(dir, opts, files, ex)
	require.NoError(t, err)

	// Four cut files times DXF and GCode, then the guide and the BOM.
	require.Len(t, written, 4*2+2)
	assert.Equal(t, filepath.Join(dir, "calendar-frame-20inch-walnut.dxf"), written[0])
	assert.Equal(t, filepath.Join(dir, "calendar-frame-20inch-walnut.gcode"), written[1])
	assert.Equal(t, filepath.Join(dir, "seasoncut-guide-20inch-walnut.pdf"), written[8])
	assert.Equal(t, filepath.Join(dir, "seasoncut-bom-20inch-walnut.xlsx"), written[9])
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}

	code, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(code), "; SeasonCut laser GCode - calendar-frame-20inch-walnut.svg"))
}

func TestWriteExtras_GCodeMatchesGenerator(t *testing.T) {
	opts, files := testFiles(t)
	dir := t.TempDir()

	ex := Extras{GCode: true, Laser: model.DefaultLaserSettings()}
	written, err := WriteExtras(dir, opts, files, ex)
	require.NoError(t, err)

	codes := gcode.New(ex.Laser).GenerateAll(files)
	require.Len(t, written, len(codes))
	for _, path := range written {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, codes[filepath.Base(path)], string(data), path)
	}
}

func TestWriteExtras_NoneSelected(t *testing.T) {
	opts, files := testFiles(t)
	ex := ExtrasFromConfig(model.DefaultAppConfig())
	assert.False(t, ex.Any())

	written, err := WriteExtras(t.TempDir(), opts, files, ex)
	require.NoError(t, err)
	assert.Empty(t, written)
}
