package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seasoncut/internal/model"
)

// showLaserSettingsDialog edits the machine settings used for GCode and the
// toolpath preview. They are stored in the app config, not per job.
func (a *App) showLaserSettingsDialog() {
	s := a.config.Laser

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(model.FormatNumber(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	profileSelect := widget.NewSelect(model.GetLaserProfileNames(), func(selected string) {
		s.Profile = selected
	})
	profileSelect.SetSelected(s.Profile)
	profileInfo := widget.NewLabel(model.GetLaserProfile(s.Profile).Description)
	profileSelect.OnChanged = func(selected string) {
		s.Profile = selected
		profileInfo.SetText(model.GetLaserProfile(selected).Description)
	}

	profileSection := widget.NewCard("Controller", "",
		container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Profile"), profileSelect),
			profileInfo,
		))

	cutSection := widget.NewCard("Cut Layer", "Red paths, through the stock",
		container.NewGridWithColumns(2,
			widget.NewLabel("Power (S)"), intEntry(&s.CutPower),
			widget.NewLabel("Feed (mm/min)"), floatEntry(&s.CutFeed),
			widget.NewLabel("Passes"), intEntry(&s.CutPasses),
		))

	engraveSection := widget.NewCard("Engrave Layer", "Blue paths, surface only",
		container.NewGridWithColumns(2,
			widget.NewLabel("Power (S)"), intEntry(&s.EngravePower),
			widget.NewLabel("Feed (mm/min)"), floatEntry(&s.EngraveFeed),
		))

	motionSection := widget.NewCard("Motion", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Rapid Feed (mm/min)"), floatEntry(&s.RapidFeed),
			widget.NewLabel("Curve Segments"), intEntry(&s.CurveSegments),
		))

	content := container.NewVScroll(container.NewVBox(
		profileSection, cutSection, engraveSection, motionSection,
		widget.NewLabel(fmt.Sprintf("Kerf is %.1f mm and is not compensated.", model.Kerf)),
	))

	d := dialog.NewCustomConfirm("Laser Settings", "Save", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if s.CutPasses < 1 || s.CutFeed <= 0 || s.EngraveFeed <= 0 || s.CurveSegments < 4 {
			dialog.ShowError(fmt.Errorf("passes must be at least 1, feeds positive and curve segments at least 4"), a.window)
			return
		}
		a.config.Laser = s
		if err := a.saveConfig(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
		}
		a.refreshTabs()
	}, a.window)
	d.Resize(fyne.NewSize(460, 560))
	d.Show()
}
