package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seasoncut/internal/model"
	"github.com/piwi3910/seasoncut/internal/project"
)

// showSettingsDialog edits the application preferences: theme, output
// folder, save pacing and which extras Save All writes.
func (a *App) showSettingsDialog() {
	cfg := a.config

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	outputEntry := widget.NewEntry()
	outputEntry.SetText(cfg.OutputDir)
	outputEntry.OnChanged = func(text string) { cfg.OutputDir = text }

	delayEntry := widget.NewEntry()
	delayEntry.SetText(strconv.Itoa(cfg.SaveDelayMS))
	delayEntry.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil && v >= 0 {
			cfg.SaveDelayMS = v
		}
	}

	check := func(val *bool) *widget.Check {
		c := widget.NewCheck("", func(b bool) { *val = b })
		c.Checked = *val
		return c
	}

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Output Folder", outputEntry),
		widget.NewFormItem("Delay Between Files (ms)", delayEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Write DXF Copies", check(&cfg.ExportDXF)),
		widget.NewFormItem("Write Laser GCode", check(&cfg.ExportGCode)),
		widget.NewFormItem("Write PDF Guide", check(&cfg.ExportPDF)),
		widget.NewFormItem("Write Bill of Materials", check(&cfg.ExportBOM)),
		widget.NewFormItem("Check Files After Writing", check(&cfg.CheckOutputs)),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.theme.Apply(cfg)
			a.app.Settings().SetTheme(a.theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(480, 420))
	d.Show()
}

// showImportExportDialog backs up or restores preferences and saved jobs.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.jobs); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings and %d jobs exported to:\n%s", len(a.jobs.Jobs), path), a.window)
			}
		}, a.window)
		d.SetFileName("seasoncut-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing replaces your preferences and saved jobs.\n\nContinue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.restoreBackup(backup)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export preferences and saved jobs to a backup file,\nor restore a previous backup."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)

	d := dialog.NewCustom("Backup and Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(420, 220))
	d.Show()
}

func (a *App) restoreBackup(backup project.BackupData) {
	a.config = backup.Config
	a.jobs = backup.Jobs
	if a.jobs.Jobs == nil {
		a.jobs = model.NewJobStore()
	}
	a.theme.Apply(a.config)
	a.app.Settings().SetTheme(a.theme)

	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
		return
	}
	if err := a.saveJobs(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported jobs: %w", err), a.window)
		return
	}
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Restored %d jobs from the backup created at %s.", len(a.jobs.Jobs), backup.CreatedAt), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

// saveJobs persists the saved jobs to disk.
func (a *App) saveJobs() error {
	return project.SaveJobs(project.DefaultJobsPath(), a.jobs)
}
