package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seasoncut/internal/model"
)

// ─── Saved Jobs Dialog ─────────────────────────────────────

// showJobsDialog lists saved calendars. Loading a job replaces the current
// options as one undoable step.
func (a *App) showJobsDialog() {
	jobList := container.NewVBox()
	var d dialog.Dialog
	var refreshList func()

	refreshList = func() {
		jobList.RemoveAll()

		if len(a.jobs.Jobs) == 0 {
			jobList.Add(widget.NewLabel("No saved jobs. Use File > Save as Job or import a batch."))
			return
		}

		bold := fyne.TextStyle{Bold: true}
		jobList.Add(container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Grid", fyne.TextAlignLeading, bold),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		jobList.Add(widget.NewSeparator())

		for i := range a.jobs.Jobs {
			j := a.jobs.Jobs[i]
			jobList.Add(container.NewGridWithColumns(6,
				widget.NewLabel(j.Name),
				widget.NewLabel(string(j.Options.Size)+"\""),
				widget.NewLabel(j.Options.Material.Label()),
				widget.NewLabel(j.Options.TileGridSize.String()),
				widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
					a.openJob(j)
					d.Hide()
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.jobs.Remove(j.ID)
					if err := a.saveJobs(); err != nil {
						dialog.ShowError(err, a.window)
					}
					refreshList()
				}),
			))
		}
	}
	refreshList()

	saveBtn := widget.NewButtonWithIcon("Save Current as Job", theme.ContentAddIcon(), func() {
		a.saveAsJob()
		d.Hide()
	})

	content := container.NewBorder(
		container.NewHBox(saveBtn, layout.NewSpacer()),
		nil, nil, nil,
		container.NewVScroll(jobList),
	)

	d = dialog.NewCustom("Saved Jobs", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

func (a *App) openJob(j model.Job) {
	a.applyOptions("Open "+j.Name, j.Options, j.Name)
	a.config.AddRecentJob(j.ID)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(err, a.window)
	}
}

// saveAsJob stores the current options under a name. An existing job with
// the same name is overwritten.
func (a *App) saveAsJob() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Job name")
	nameEntry.SetText(a.jobName)

	form := dialog.NewForm("Save as Job", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("job name is required"), a.window)
				return
			}
			var id string
			if existing := a.jobs.FindByName(nameEntry.Text); existing != nil {
				existing.Options = a.options
				id = existing.ID
			} else {
				j := model.NewJob(nameEntry.Text, a.options)
				a.jobs.Add(j)
				id = j.ID
			}
			a.jobName = nameEntry.Text
			a.config.AddRecentJob(id)

			if err := a.saveJobs(); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(err, a.window)
			}
			a.regenerate()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 160))
	form.Show()
}
