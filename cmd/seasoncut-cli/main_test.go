package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/seasoncut/internal/model"
	"github.com/piwi3910/seasoncut/internal/project"
)

// baseArgs points config and jobs at a temp dir so tests never touch ~/.seasoncut.
func baseArgs(t *testing.T) (string, []string) {
	t.Helper()
	tmp := t.TempDir()
	return tmp, []string{
		"-config", filepath.Join(tmp, "config.json"),
		"-jobs", filepath.Join(tmp, "jobs.json"),
	}
}

func TestRun_WritesEverything(t *testing.T) {
	tmp, args := baseArgs(t)
	out := filepath.Join(tmp, "out")
	args = append(args, "-out", out, "-check", "-dxf", "-gcode", "-pdf", "-bom")

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), args, &stdout))

	for _, name := range []string{
		"calendar-frame-20inch-walnut.svg",
		"calendar-tiles-12x6-walnut.svg",
		"led-diffuser-20inch.svg",
		"back-panel-20inch-walnut.svg",
		"assembly-guide-20inch.svg",
		"calendar-frame-20inch-walnut.dxf",
		"led-diffuser-20inch.gcode",
		"seasoncut-guide-20inch-walnut.pdf",
		"seasoncut-bom-20inch-walnut.xlsx",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	_, err := os.Stat(filepath.Join(out, "assembly-guide-20inch.dxf"))
	assert.True(t, os.IsNotExist(err), "the guide is not a cut file")

	assert.Contains(t, stdout.String(), "20\" Walnut, 3 mm, 12x6 grid: 4 sheets")
	assert.Contains(t, stdout.String(), "Set kerf to 0.2 mm")
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	tmp, args := baseArgs(t)

	cfg := model.DefaultAppConfig()
	cfg.DefaultOptions.Material = model.MaterialMaple
	cfg.OutputDir = filepath.Join(tmp, "configured")
	cfg.ExportDXF = true
	require.NoError(t, project.SaveAppConfig(filepath.Join(tmp, "config.json"), cfg))

	args = append(args, "-size", "16", "-guide=false", "-dxf=false")
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), args, &stdout))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.Contains(t, names, "calendar-frame-16inch-maple.svg")
	assert.Len(t, names, 4)
	for _, name := range names {
		assert.NotEqual(t, ".dxf", filepath.Ext(name), "-dxf=false should win over the config")
	}
}

func TestApply_ExplicitFalseDisablesConfiguredExtras(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.ExportDXF = true
	cfg.ExportGCode = true
	cfg.ExportPDF = true
	cfg.ExportBOM = true
	cfg.CheckOutputs = true

	c, err := parseFlags([]string{"-dxf=false", "-pdf=false", "-check=false"}, &bytes.Buffer{})
	require.NoError(t, err)
	rc := c.apply(cfg)

	assert.False(t, rc.extras.DXF)
	assert.False(t, rc.extras.PDF)
	assert.False(t, rc.check)
	assert.True(t, rc.extras.GCode, "unset flags keep the configured value")
	assert.True(t, rc.extras.BOM)
}

func TestApply_UnsetFlagsKeepConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.OutputDir = "from-config"
	cfg.CheckOutputs = false

	c, err := parseFlags(nil, &bytes.Buffer{})
	require.NoError(t, err)
	rc := c.apply(cfg)

	assert.Equal(t, cfg.DefaultOptions, rc.opts)
	assert.Equal(t, "from-config", rc.out)
	assert.Equal(t, time.Duration(0), rc.delay)
	assert.False(t, rc.check)
	assert.False(t, rc.extras.Any())
}

func TestRun_InvalidOptions(t *testing.T) {
	tmp, args := baseArgs(t)
	args = append(args, "-size", "18", "-out", filepath.Join(tmp, "out"))

	err := run(context.Background(), args, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidOptions))
	assert.NoDirExists(t, filepath.Join(tmp, "out"))
}

func TestRun_UnexpectedArgument(t *testing.T) {
	_, args := baseArgs(t)
	args = append(args, "extra")
	assert.Error(t, run(context.Background(), args, &bytes.Buffer{}))
}

func TestRun_Cancelled(t *testing.T) {
	tmp, args := baseArgs(t)
	args = append(args, "-out", filepath.Join(tmp, "out"), "-delay", time.Hour.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, args, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SaveJob(t *testing.T) {
	tmp, args := baseArgs(t)
	args = append(args, "-out", filepath.Join(tmp, "out"), "-material", "Oak", "-save-job", "Hallway")

	require.NoError(t, run(context.Background(), args, &bytes.Buffer{}))
	// Saving again under the same name replaces the job.
	require.NoError(t, run(context.Background(), append(args, "-rows", "9", "-cols", "8"), &bytes.Buffer{}))

	store, err := project.LoadJobs(filepath.Join(tmp, "jobs.json"))
	require.NoError(t, err)
	require.Len(t, store.Jobs, 1)
	assert.Equal(t, "Hallway", store.Jobs[0].Name)
	assert.Equal(t, model.MaterialOak, store.Jobs[0].Options.Material)
	assert.Equal(t, model.TileGrid{Rows: 9, Cols: 8}, store.Jobs[0].Options.TileGridSize)
}

func TestRun_Batch(t *testing.T) {
	tmp, args := baseArgs(t)
	csvPath := filepath.Join(tmp, "calendars.csv")
	data := "Name,Size,Material,Rows,Cols\nKitchen Wall,24,oak,12,6\nBad,18,oak,12,6\nStudio,16,maple,10,5\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0644))

	out := filepath.Join(tmp, "batch")
	args = append(args, "-batch", csvPath, "-out", out)
	var stdout bytes.Buffer
	err := run(context.Background(), args, &stdout)

	require.Error(t, err, "skipped rows are reported")
	assert.Contains(t, err.Error(), "1 rows skipped")
	assert.FileExists(t, filepath.Join(out, "01-kitchen-wall", "calendar-frame-24inch-oak.svg"))
	assert.FileExists(t, filepath.Join(out, "02-studio", "calendar-tiles-10x5-maple.svg"))
	assert.Contains(t, stdout.String(), "Kitchen Wall -> ")
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Kitchen Wall":   "kitchen-wall",
		"  Mom's 2026! ": "mom-s-2026",
		"***":            "calendar",
		"Hall--Way":      "hall-way",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}
