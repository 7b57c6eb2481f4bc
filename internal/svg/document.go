// Package svg serializes laser layers into SVG documents and reads them back.
package svg

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/piwi3910/seasoncut/internal/model"
)

// Document prolog and metadata. Laser software configuration relies on the
// colour legend, so these strings are part of the output contract.
const (
	XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
	Namespace      = "http://www.w3.org/2000/svg"
	Title          = "Microseasons Calendar - Laser Cut File"
	Legend         = "Red (#FF0000): Cut lines | Blue (#0000FF): Engrave | Green (#00FF00): Score"
	FontFamily     = "Arial, sans-serif"
)

// Document renders layers into a complete SVG document whose user units are
// millimeters. It performs no validation: path data is written verbatim.
func Document(width, height float64, layers []model.SVGLayer) string {
	w := model.FormatNumber(width)
	h := model.FormatNumber(height)

	var b strings.Builder
	b.WriteString(XMLDeclaration + "\n")
	b.WriteString(fmt.Sprintf(`<svg xmlns="%s" version="1.1" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		Namespace, w, h, w, h))
	b.WriteString("  <title>" + Title + "</title>\n")
	b.WriteString("  <desc>" + Legend + "</desc>\n")

	for _, layer := range layers {
		writeLayer(&b, layer)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeLayer(b *strings.Builder, layer model.SVGLayer) {
	b.WriteString(fmt.Sprintf(`  <g id="%s" stroke="%s" stroke-width="%s" fill="none">`+"\n",
		layer.Name, layer.Color, model.FormatNumber(layer.StrokeWidth)))

	for _, p := range layer.Paths {
		b.WriteString(`    <path d="` + p.D() + `"/>` + "\n")
	}

	for _, t := range layer.Texts {
		b.WriteString(fmt.Sprintf(`    <text x="%s" y="%s" font-size="%s" font-family="%s" text-anchor="middle" fill="%s" stroke="none">%s</text>`+"\n",
			model.FormatNumber(t.X), model.FormatNumber(t.Y), model.FormatNumber(t.Size),
			FontFamily, layer.Color, escapeText(t.Content)))
	}

	b.WriteString("  </g>\n")
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s)) // strings.Builder never fails
	return b.String()
}
