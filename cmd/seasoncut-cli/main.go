// Command seasoncut-cli generates the laser-cut files of a microseasons
// calendar without the desktop UI.
//
// Usage:
//
//	seasoncut-cli -size 24 -material oak -rows 12 -cols 6 -out laser-files -dxf -pdf
//	seasoncut-cli -batch calendars.csv -out batch -gcode -bom
//
// Flags left unset fall back to ~/.seasoncut/config.json (see -config).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/piwi3910/seasoncut/internal/export"
	"github.com/piwi3910/seasoncut/internal/importer"
	"github.com/piwi3910/seasoncut/internal/laser"
	"github.com/piwi3910/seasoncut/internal/model"
	"github.com/piwi3910/seasoncut/internal/project"
)

func main() {
	log.SetPrefix("seasoncut: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

// cliFlags holds the parsed command line. Only flags the user actually set
// override the config file.
type cliFlags struct {
	size      string
	material  string
	thickness float64
	rows      int
	cols      int
	guide     bool
	holes     bool
	out       string
	dxf       bool
	gcode     bool
	pdf       bool
	bom       bool
	batch     string
	delay     time.Duration
	check     bool
	config    string
	jobs      string
	saveJob   string
	set       map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var c cliFlags
	fs := flag.NewFlagSet("seasoncut-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&c.size, "size", "", "calendar size in inches: 16, 20 or 24")
	fs.StringVar(&c.material, "material", "", "wood species: walnut, maple or oak")
	fs.Float64Var(&c.thickness, "thickness", 0, "material thickness in mm")
	fs.IntVar(&c.rows, "rows", 0, "tile grid rows")
	fs.IntVar(&c.cols, "cols", 0, "tile grid columns")
	fs.BoolVar(&c.guide, "guide", true, "include the assembly guide")
	fs.BoolVar(&c.holes, "holes", true, "include mounting holes")
	fs.StringVar(&c.out, "out", "", "output directory")
	fs.BoolVar(&c.dxf, "dxf", false, "also write DXF copies of the cut files")
	fs.BoolVar(&c.gcode, "gcode", false, "also write laser GCode for the cut files")
	fs.BoolVar(&c.pdf, "pdf", false, "also write the printable PDF guide with tile labels")
	fs.BoolVar(&c.bom, "bom", false, "also write an XLSX bill of materials")
	fs.StringVar(&c.batch, "batch", "", "CSV or XLSX file of calendars to generate")
	fs.DurationVar(&c.delay, "delay", 0, "pause between consecutive files")
	fs.BoolVar(&c.check, "check", false, "verify bounds and read every written file back")
	fs.StringVar(&c.config, "config", project.DefaultConfigPath(), "config file")
	fs.StringVar(&c.jobs, "jobs", project.DefaultJobsPath(), "saved jobs file")
	fs.StringVar(&c.saveJob, "save-job", "", "save the options as a named job")

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() > 0 {
		return c, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	c.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	return c, nil
}

// runConfig is the effective configuration of one run.
type runConfig struct {
	opts   model.LaserCutOptions
	delay  time.Duration
	extras export.Extras
	out    string
	check  bool
}

// apply merges the flags the user set over the configured defaults.
func (c cliFlags) apply(cfg model.AppConfig) runConfig {
	opts := cfg.DefaultOptions
	if c.set["size"] {
		opts.Size = model.Size(c.size)
	}
	if c.set["material"] {
		opts.Material = model.Material(strings.ToLower(c.material))
	}
	if c.set["thickness"] {
		opts.Thickness = c.thickness
	}
	if c.set["rows"] {
		opts.TileGridSize.Rows = c.rows
	}
	if c.set["cols"] {
		opts.TileGridSize.Cols = c.cols
	}
	if c.set["guide"] {
		opts.IncludeAssemblyGuide = c.guide
	}
	if c.set["holes"] {
		opts.IncludeMountingHoles = c.holes
	}

	// The CLI writes without a pause unless asked.
	delay := time.Duration(0)
	if c.set["delay"] {
		delay = c.delay
	}

	ex := export.ExtrasFromConfig(cfg)
	if c.set["dxf"] {
		ex.DXF = c.dxf
	}
	if c.set["gcode"] {
		ex.GCode = c.gcode
	}
	if c.set["pdf"] {
		ex.PDF = c.pdf
	}
	if c.set["bom"] {
		ex.BOM = c.bom
	}
	check := cfg.CheckOutputs
	if c.set["check"] {
		check = c.check
	}

	out := cfg.OutputDir
	if c.set["out"] || out == "" {
		out = c.out
	}
	if out == "" {
		out = "laser-files"
	}
	return runConfig{opts: opts, delay: delay, extras: ex, out: out, check: check}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	c, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := project.LoadAppConfig(c.config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	rc := c.apply(cfg)

	if c.batch != "" {
		return runBatch(ctx, c.batch, cfg.DefaultOptions, rc.out, rc.delay, rc.extras, rc.check, stdout)
	}

	if err := model.ValidateOptions(rc.opts); err != nil {
		return err
	}
	if err := writeCalendar(ctx, rc.opts, rc.out, rc.delay, rc.extras, rc.check, stdout); err != nil {
		return err
	}

	if c.saveJob != "" {
		if err := saveJob(c.jobs, c.saveJob, rc.opts); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved job %q to %s\n", c.saveJob, c.jobs)
	}
	return nil
}

// writeCalendar generates one calendar into dir and prints a summary.
func writeCalendar(ctx context.Context, opts model.LaserCutOptions, dir string, delay time.Duration, ex export.Extras, check bool, stdout io.Writer) error {
	files, err := laser.Generate(opts)
	if err != nil {
		return err
	}
	if check {
		if err := laser.CheckAll(files); err != nil {
			return err
		}
	}

	saver := export.NewSaver(delay)
	saver.OnSaved = func(path string) { fmt.Fprintf(stdout, "  wrote %s\n", path) }
	written, err := saver.SaveAll(ctx, dir, files)
	if err != nil {
		return fmt.Errorf("saved %d of %d files: %w", len(written), len(files), err)
	}
	if check {
		for i, path := range written {
			if err := export.CheckFile(path, files[i]); err != nil {
				return err
			}
		}
	}

	extra, err := export.WriteExtras(dir, opts, files, ex)
	if err != nil {
		return err
	}
	for _, path := range extra {
		fmt.Fprintf(stdout, "  wrote %s\n", path)
		if check && strings.HasSuffix(path, ".dxf") {
			if err := checkDXF(path, files); err != nil {
				return err
			}
		}
	}

	est := model.EstimateMaterial(files, opts.Thickness)
	fmt.Fprintf(stdout, "%s\" %s, %s mm, %s grid: %d sheets, %d pieces, %.2f board feet\n",
		opts.Size, opts.Material.Label(), model.FormatNumber(opts.Thickness), opts.TileGridSize,
		est.Sheets, est.Pieces, est.TotalBoardFeet)
	fmt.Fprintf(stdout, "Set kerf to %.1f mm in your laser software; it is not compensated in the files.\n", est.Kerf)
	return nil
}

// checkDXF reads a written DXF back and confirms it stays on its plate.
func checkDXF(path string, files []model.LaserCutFile) error {
	result := importer.ReadDXF(path)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%s: %s", path, strings.Join(result.Errors, "; "))
	}
	for _, f := range files {
		if export.DXFFilename(f) != filepath.Base(path) {
			continue
		}
		min, max := result.Bounds()
		const tol = 1e-6
		if min.X < -tol || min.Y < -tol || max.X > f.Width+tol || max.Y > f.Height+tol {
			return fmt.Errorf("%s: drawing spans (%.3f, %.3f)-(%.3f, %.3f), outside %v x %v mm",
				path, min.X, min.Y, max.X, max.Y, f.Width, f.Height)
		}
	}
	return nil
}

// runBatch generates every calendar in a spreadsheet into its own folder.
// Rows with errors are reported and skipped.
func runBatch(ctx context.Context, path string, defaults model.LaserCutOptions, out string, delay time.Duration, ex export.Extras, check bool, stdout io.Writer) error {
	result := importer.ImportFile(path, defaults)
	for _, w := range result.Warnings {
		log.Printf("%s: %s", filepath.Base(path), w)
	}
	for _, e := range result.Errors {
		log.Printf("%s: %s", filepath.Base(path), e)
	}
	if len(result.Jobs) == 0 {
		return fmt.Errorf("%s: no calendars to generate", path)
	}

	for i, j := range result.Jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		dir := filepath.Join(out, fmt.Sprintf("%02d-%s", i+1, slug(j.Name)))
		fmt.Fprintf(stdout, "%s -> %s\n", j.Name, dir)
		if err := writeCalendar(ctx, j.Options, dir, delay, ex, check, stdout); err != nil {
			return fmt.Errorf("%s: %w", j.Name, err)
		}
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d rows skipped with errors", len(result.Errors))
	}
	return nil
}

// saveJob adds or replaces a job by name in the jobs file.
func saveJob(path, name string, opts model.LaserCutOptions) error {
	store, err := project.LoadJobs(path)
	if err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	if existing := store.FindByName(name); existing != nil {
		existing.Options = opts
	} else {
		store.Add(model.NewJob(name, opts))
	}
	if err := project.SaveJobs(path, store); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	return nil
}

// slug turns a job name into a folder name.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "calendar"
	}
	return s
}
