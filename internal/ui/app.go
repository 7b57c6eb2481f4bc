package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/seasoncut/internal/export"
	"github.com/piwi3910/seasoncut/internal/gcode"
	"github.com/piwi3910/seasoncut/internal/importer"
	"github.com/piwi3910/seasoncut/internal/laser"
	"github.com/piwi3910/seasoncut/internal/model"
	"github.com/piwi3910/seasoncut/internal/project"
	"github.com/piwi3910/seasoncut/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	config  model.AppConfig
	theme   *SeasonCutTheme
	jobs    model.JobStore
	history *History

	options  model.LaserCutOptions
	jobName  string
	files    []model.LaserCutFile
	selected int

	cancelSave context.CancelFunc

	// UI references for dynamic updates
	tabs           *container.AppTabs
	sizeSelect     *widget.Select
	materialSelect *widget.Select
	thicknessEntry *widget.Entry
	rowsEntry      *widget.Entry
	colsEntry      *widget.Entry
	guideCheck     *widget.Check
	holesCheck     *widget.Check
	fileList       *widget.List
	preview        *widgets.SheetCanvas
	toolpath       *fyne.Container
	summary        *fyne.Container
	status         *widget.Label
	progress       *widget.ProgressBar

	// loading suppresses change callbacks while the form is filled in code.
	loading bool
}

// NewApp loads the persisted config and jobs and returns the application
// state. Load failures fall back to defaults and are logged.
func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("config: %v, using defaults", err)
		cfg = model.DefaultAppConfig()
	}
	jobs, err := project.LoadJobs(project.DefaultJobsPath())
	if err != nil {
		log.Printf("jobs: %v", err)
		jobs = model.NewJobStore()
	}

	a := &App{
		app:     application,
		window:  window,
		config:  cfg,
		jobs:    jobs,
		history: NewHistory(),
		options: cfg.DefaultOptions,
	}
	a.theme = NewSeasonCutTheme(cfg)
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Calendar", func() {
			a.applyOptions("New Calendar", a.config.DefaultOptions, "")
		}),
		fyne.NewMenuItem("Saved Jobs...", func() {
			a.showJobsDialog()
		}),
		fyne.NewMenuItem("Save as Job...", func() {
			a.saveAsJob()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Batch (CSV/Excel)...", func() {
			a.importBatch()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save All Files...", func() {
			a.saveAllFiles()
		}),
		fyne.NewMenuItem("Export PDF Guide...", func() {
			a.exportSingle(export.GuidePDFFilename(a.options), func(path string) error {
				return export.ExportGuidePDF(path, a.options, a.files)
			})
		}),
		fyne.NewMenuItem("Export Bill of Materials...", func() {
			a.exportSingle(export.BOMFilename(a.options), func(path string) error {
				return export.ExportBOM(path, a.options, a.files)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { a.undo() }),
		fyne.NewMenuItem("Redo", func() { a.redo() }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Regenerate", func() { a.regenerate() }),
		fyne.NewMenuItem("Laser Settings...", func() { a.showLaserSettingsDialog() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() { a.showSettingsDialog() }),
		fyne.NewMenuItem("Backup and Restore...", func() { a.showImportExportDialog() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() { a.showAboutDialog() }),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About SeasonCut",
		"SeasonCut - Microseasons Calendar Laser Files\n\n"+
			"Generates the frame, tile sheet, LED diffuser and back panel\n"+
			"of a 72-season wall calendar as layered SVG, with DXF,\n"+
			"laser GCode, a printable guide and a bill of materials.\n\n"+
			"Red cuts through, blue engraves. Kerf is not compensated.",
		a.window,
	)
}

// Build constructs the main window content.
func (a *App) Build() fyne.CanvasObject {
	a.status = widget.NewLabel("")
	a.progress = widget.NewProgressBar()
	a.progress.Hide()

	a.preview = widgets.NewSheetCanvas(model.LaserCutFile{}, a.config.Laser.CurveSegments, 760, 520)
	a.toolpath = container.NewStack()
	a.summary = container.NewVBox()

	a.tabs = container.NewAppTabs(
		container.NewTabItem("Preview", a.buildPreviewPanel()),
		container.NewTabItem("Toolpath", a.toolpath),
		container.NewTabItem("Summary", container.NewVScroll(a.summary)),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(*container.TabItem) { a.refreshTabs() }

	content := container.NewBorder(
		a.buildToolbar(),
		container.NewBorder(nil, nil, nil, a.progress, a.status),
		a.buildOptionsPanel(),
		nil,
		a.tabs,
	)

	a.loadOptionsIntoForm()
	a.regenerate()
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

func (a *App) buildToolbar() fyne.CanvasObject {
	return container.NewHBox(
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "New calendar", func() {
			a.applyOptions("New Calendar", a.config.DefaultOptions, "")
		}),
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Saved jobs", a.showJobsDialog),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save all files", a.saveAllFiles),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Regenerate", a.regenerate),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Laser settings", a.showLaserSettingsDialog),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.InfoIcon(), "About", a.showAboutDialog),
	)
}

// ─── Options Panel ─────────────────────────────────────────

func (a *App) buildOptionsPanel() fyne.CanvasObject {
	sizes := make([]string, len(model.Sizes))
	for i, s := range model.Sizes {
		sizes[i] = string(s)
	}
	a.sizeSelect = widget.NewSelect(sizes, func(v string) {
		a.changeOption("Change Size", func(o *model.LaserCutOptions) { o.Size = model.Size(v) })
	})

	materials := make([]string, len(model.Materials))
	for i, m := range model.Materials {
		materials[i] = string(m)
	}
	a.materialSelect = widget.NewSelect(materials, func(v string) {
		a.changeOption("Change Material", func(o *model.LaserCutOptions) { o.Material = model.Material(v) })
	})

	a.thicknessEntry = widget.NewEntry()
	a.thicknessEntry.OnSubmitted = func(text string) {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			a.setStatus(fmt.Sprintf("Invalid thickness %q", text))
			return
		}
		a.changeOption("Change Thickness", func(o *model.LaserCutOptions) { o.Thickness = v })
	}

	intSubmit := func(label string, dst func(o *model.LaserCutOptions) *int) func(string) {
		return func(text string) {
			v, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				a.setStatus(fmt.Sprintf("Invalid %s %q", strings.ToLower(label), text))
				return
			}
			a.changeOption("Change "+label, func(o *model.LaserCutOptions) { *dst(o) = v })
		}
	}
	a.rowsEntry = widget.NewEntry()
	a.rowsEntry.OnSubmitted = intSubmit("Rows", func(o *model.LaserCutOptions) *int { return &o.TileGridSize.Rows })
	a.colsEntry = widget.NewEntry()
	a.colsEntry.OnSubmitted = intSubmit("Columns", func(o *model.LaserCutOptions) *int { return &o.TileGridSize.Cols })

	a.guideCheck = widget.NewCheck("Assembly guide", func(b bool) {
		a.changeOption("Toggle Guide", func(o *model.LaserCutOptions) { o.IncludeAssemblyGuide = b })
	})
	a.holesCheck = widget.NewCheck("Mounting holes", func(b bool) {
		a.changeOption("Toggle Holes", func(o *model.LaserCutOptions) { o.IncludeMountingHoles = b })
	})

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		// Entries apply on Enter; the button applies all three at once.
		a.submitEntries()
	})

	form := container.NewGridWithColumns(2,
		widget.NewLabel("Size (in)"), a.sizeSelect,
		widget.NewLabel("Material"), a.materialSelect,
		widget.NewLabel("Thickness (mm)"), a.thicknessEntry,
		widget.NewLabel("Rows"), a.rowsEntry,
		widget.NewLabel("Columns"), a.colsEntry,
	)

	return container.NewVBox(
		widget.NewLabelWithStyle("Calendar", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		a.guideCheck,
		a.holesCheck,
		applyBtn,
	)
}

// submitEntries applies the text entries in one history step.
func (a *App) submitEntries() {
	thickness, err := strconv.ParseFloat(strings.TrimSpace(a.thicknessEntry.Text), 64)
	if err != nil {
		a.setStatus(fmt.Sprintf("Invalid thickness %q", a.thicknessEntry.Text))
		return
	}
	rows, err := strconv.Atoi(strings.TrimSpace(a.rowsEntry.Text))
	if err != nil {
		a.setStatus(fmt.Sprintf("Invalid rows %q", a.rowsEntry.Text))
		return
	}
	cols, err := strconv.Atoi(strings.TrimSpace(a.colsEntry.Text))
	if err != nil {
		a.setStatus(fmt.Sprintf("Invalid columns %q", a.colsEntry.Text))
		return
	}
	a.changeOption("Edit Options", func(o *model.LaserCutOptions) {
		o.Thickness = thickness
		o.TileGridSize = model.TileGrid{Rows: rows, Cols: cols}
	})
}

// changeOption records the current options for undo, applies fn and
// regenerates. Unchanged options leave the history untouched.
func (a *App) changeOption(label string, fn func(o *model.LaserCutOptions)) {
	if a.loading {
		return
	}
	next := a.options
	fn(&next)
	if next == a.options {
		return
	}
	a.history.Push(MakeSnapshot(a.options, a.jobName, label))
	a.options = next
	a.regenerate()
}

// applyOptions replaces the whole option set as one undoable step.
func (a *App) applyOptions(label string, opts model.LaserCutOptions, jobName string) {
	a.history.Push(MakeSnapshot(a.options, a.jobName, label))
	a.options = opts
	a.jobName = jobName
	a.loadOptionsIntoForm()
	a.regenerate()
}

func (a *App) loadOptionsIntoForm() {
	a.loading = true
	defer func() { a.loading = false }()

	a.sizeSelect.SetSelected(string(a.options.Size))
	a.materialSelect.SetSelected(string(a.options.Material))
	a.thicknessEntry.SetText(model.FormatNumber(a.options.Thickness))
	a.rowsEntry.SetText(strconv.Itoa(a.options.TileGridSize.Rows))
	a.colsEntry.SetText(strconv.Itoa(a.options.TileGridSize.Cols))
	a.guideCheck.SetChecked(a.options.IncludeAssemblyGuide)
	a.holesCheck.SetChecked(a.options.IncludeMountingHoles)
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.options, a.jobName, "Undo"))
	if !ok {
		a.setStatus("Nothing to undo")
		return
	}
	a.restore(s)
	a.setStatus("Undid " + s.Label)
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.options, a.jobName, "Redo"))
	if !ok {
		a.setStatus("Nothing to redo")
		return
	}
	a.restore(s)
}

func (a *App) restore(s Snapshot) {
	a.options = s.Options
	a.jobName = s.JobName
	a.loadOptionsIntoForm()
	a.regenerate()
}

// ─── Generation and Preview ────────────────────────────────

// regenerate validates the options and rebuilds every file. Invalid options
// clear the file list and show the problems in the status line.
func (a *App) regenerate() {
	files, err := laser.Generate(a.options)
	if err != nil {
		a.files = nil
		a.setStatus(strings.ReplaceAll(err.Error(), "\n", "; "))
		a.refreshFiles()
		return
	}
	if a.config.CheckOutputs {
		if err := laser.CheckAll(files); err != nil {
			log.Printf("bounds check: %v", err)
			a.setStatus(err.Error())
		}
	}
	a.files = files
	if a.selected >= len(files) {
		a.selected = 0
	}

	est := model.EstimateMaterial(files, a.options.Thickness)
	name := a.jobName
	if name == "" {
		name = "Untitled"
	}
	a.setStatus(fmt.Sprintf("%s: %d files, %d pieces, %.2f board feet",
		name, len(files), est.Pieces, est.TotalBoardFeet))
	a.refreshFiles()
}

func (a *App) buildPreviewPanel() fyne.CanvasObject {
	a.fileList = widget.NewList(
		func() int { return len(a.files) },
		func() fyne.CanvasObject {
			return container.NewVBox(
				widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(a.files) {
				return
			}
			f := a.files[id]
			box := obj.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(f.Filename)
			box.Objects[1].(*widget.Label).SetText(fmt.Sprintf("%s x %s mm  %s",
				model.FormatNumber(f.Width), model.FormatNumber(f.Height), f.Description))
		},
	)
	a.fileList.OnSelected = func(id widget.ListItemID) {
		a.selected = id
		a.refreshTabs()
	}

	split := container.NewHSplit(a.fileList, container.NewScroll(a.preview))
	split.SetOffset(0.3)
	return split
}

func (a *App) refreshFiles() {
	if a.fileList == nil {
		return
	}
	a.fileList.Refresh()
	if len(a.files) > 0 {
		a.fileList.Select(a.selected)
	}
	a.refreshTabs()
}

// refreshTabs redraws whichever views depend on the selected file.
func (a *App) refreshTabs() {
	if len(a.files) == 0 {
		a.preview.SetFile(model.LaserCutFile{})
		a.toolpath.Objects = []fyne.CanvasObject{widget.NewLabel("No files generated.")}
		a.toolpath.Refresh()
		a.refreshSummary()
		return
	}
	f := a.files[a.selected]
	a.preview.SetFile(f)

	if f.IsCutFile() {
		code := gcode.New(a.config.Laser).Generate(f)
		a.toolpath.Objects = []fyne.CanvasObject{widgets.RenderGCodePreview(f, a.config.Laser, code)}
	} else {
		a.toolpath.Objects = []fyne.CanvasObject{widget.NewLabel("The assembly guide is printed, not cut.")}
	}
	a.toolpath.Refresh()
	a.refreshSummary()
}

func (a *App) refreshSummary() {
	a.summary.RemoveAll()
	if len(a.files) == 0 {
		a.summary.Add(widget.NewLabel("Fix the options to generate files."))
		a.summary.Refresh()
		return
	}

	est := model.EstimateMaterial(a.files, a.options.Thickness)
	bold := fyne.TextStyle{Bold: true}
	a.summary.Add(widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, bold))
	a.summary.Add(container.NewGridWithColumns(2,
		widget.NewLabel("Stock"), widget.NewLabel(fmt.Sprintf("%s, %s mm",
			a.options.Material.Label(), model.FormatNumber(a.options.Thickness))),
		widget.NewLabel("Sheets"), widget.NewLabel(strconv.Itoa(est.Sheets)),
		widget.NewLabel("Pieces"), widget.NewLabel(strconv.Itoa(est.Pieces)),
		widget.NewLabel("Area"), widget.NewLabel(fmt.Sprintf("%.0f sq mm", est.SheetArea)),
		widget.NewLabel("Board feet"), widget.NewLabel(fmt.Sprintf("%.2f", est.TotalBoardFeet)),
		widget.NewLabel("Kerf"), widget.NewLabel(fmt.Sprintf("%.1f mm (set in the laser software)", est.Kerf)),
	))

	a.summary.Add(widget.NewSeparator())
	a.summary.Add(widget.NewLabelWithStyle("Assembly", fyne.TextAlignLeading, bold))
	for i, step := range laser.AssemblySteps(a.options) {
		a.summary.Add(widget.NewLabel(fmt.Sprintf("%d. %s", i+1, step)))
	}
	a.summary.Refresh()
}

func (a *App) setStatus(msg string) {
	if a.status != nil {
		a.status.SetText(msg)
	}
}

// ─── Saving and Exports ────────────────────────────────────

// saveAllFiles asks for a folder and writes every SVG there one after
// another, followed by the extras enabled in the preferences.
func (a *App) saveAllFiles() {
	if len(a.files) == 0 {
		dialog.ShowInformation("Nothing to save", "Fix the calendar options first.", a.window)
		return
	}
	if a.cancelSave != nil {
		dialog.ShowConfirm("Saving", "A save is still running. Cancel it?", func(ok bool) {
			if ok && a.cancelSave != nil {
				a.cancelSave()
			}
		}, a.window)
		return
	}

	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if uri == nil {
			return
		}
		a.startSave(uri.Path())
	}, a.window)
}

func (a *App) startSave(dir string) {
	files := append([]model.LaserCutFile(nil), a.files...)
	opts := a.options
	extras := export.ExtrasFromConfig(a.config)
	check := a.config.CheckOutputs

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelSave = cancel
	a.progress.SetValue(0)
	a.progress.Show()

	saved := 0
	saver := export.NewSaver(a.config.SaveDelay())
	saver.OnSaved = func(path string) {
		saved++
		n := saved
		fyne.Do(func() {
			a.progress.SetValue(float64(n) / float64(len(files)))
			a.setStatus("Saved " + path)
		})
	}

	go func() {
		written, err := saver.SaveAll(ctx, dir, files)
		if err == nil && check {
			for i, path := range written {
				if err = export.CheckFile(path, files[i]); err != nil {
					break
				}
			}
		}
		var extra []string
		if err == nil && extras.Any() {
			extra, err = export.WriteExtras(dir, opts, files, extras)
		}

		fyne.Do(func() {
			a.cancelSave = nil
			cancel()
			a.progress.Hide()
			if err != nil {
				log.Printf("save: %v", err)
				dialog.ShowError(fmt.Errorf("saved %d of %d files: %w", len(written), len(files), err), a.window)
				return
			}
			a.config.OutputDir = dir
			if err := a.saveConfig(); err != nil {
				log.Printf("config: %v", err)
			}
			dialog.ShowInformation("Save Complete",
				fmt.Sprintf("Wrote %d files and %d extras to:\n%s", len(written), len(extra), dir), a.window)
		})
	}()
}

// exportSingle asks for a destination and runs write with its path.
func (a *App) exportSingle(defaultName string, write func(path string) error) {
	if len(a.files) == 0 {
		dialog.ShowInformation("Nothing to export", "Fix the calendar options first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Batch Import ──────────────────────────────────────────

func (a *App) importBatch() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(importer.ImportFile(path, a.config.DefaultOptions))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx", ".xlsm"}))
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(result.Errors, "\n")), a.window)
	}
	for _, w := range result.Warnings {
		log.Printf("import: %s", w)
	}
	if len(result.Jobs) == 0 {
		return
	}

	for _, j := range result.Jobs {
		a.jobs.Add(j)
	}
	if err := a.saveJobs(); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	msg := fmt.Sprintf("Imported %d calendars into saved jobs.", len(result.Jobs))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\n%d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
