// SeasonCut - Microseasons Calendar Laser Files
//
// A desktop application that previews and writes the laser-cut parts of an
// LED back-lit microseasons wall calendar.
//
// Build:
//   go build -o seasoncut ./cmd/seasoncut
//
// Using fyne-cross for packaging:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/seasoncut/internal/ui"
)

func main() {
	log.SetPrefix("seasoncut: ")
	log.SetFlags(0)

	application := app.NewWithID("com.piwi3910.seasoncut")
	window := application.NewWindow("SeasonCut - Microseasons Calendar Laser Files")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()
	window.ShowAndRun()
}
