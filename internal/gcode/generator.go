// Package gcode turns laser-cut files into machine GCode for diode and CO2
// lasers running Grbl or Marlin, and reads GCode back for inspection.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/seasoncut/internal/model"
)

// Generator produces laser GCode from a generated calendar file.
type Generator struct {
	Settings model.LaserSettings
	profile  model.LaserProfile
}

func New(settings model.LaserSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetLaserProfile(settings.Profile),
	}
}

// Filename returns the GCode counterpart of an SVG filename.
func Filename(f model.LaserCutFile) string {
	return strings.TrimSuffix(f.Filename, ".svg") + ".gcode"
}

// Generate produces GCode for one file. The engrave layer runs first so cut
// parts are still held by the sheet while it is etched. Machine Y points up,
// so document coordinates are flipped against the file height.
func (g *Generator) Generate(f model.LaserCutFile) string {
	var b strings.Builder

	g.writeHeader(&b, f)

	if l := f.Layer(model.LayerEngrave); l != nil {
		g.writeLayer(&b, f, l, g.Settings.EngravePower, g.Settings.EngraveFeed, 1)
	}
	if l := f.Layer(model.LayerCut); l != nil {
		passes := g.Settings.CutPasses
		if passes < 1 {
			passes = 1
		}
		g.writeLayer(&b, f, l, g.Settings.CutPower, g.Settings.CutFeed, passes)
	}

	g.writeFooter(&b)
	return b.String()
}

// GenerateAll produces GCode for every laser file, keyed by GCode filename.
// Printable files such as the assembly guide are skipped.
func (g *Generator) GenerateAll(files []model.LaserCutFile) map[string]string {
	codes := make(map[string]string)
	for _, f := range files {
		if !f.IsCutFile() {
			continue
		}
		codes[Filename(f)] = g.Generate(f)
	}
	return codes
}

func (g *Generator) writeHeader(b *strings.Builder, f model.LaserCutFile) {
	p := g.profile
	s := g.Settings

	b.WriteString(g.comment(fmt.Sprintf("SeasonCut laser GCode - %s", f.Filename)))
	b.WriteString(g.comment(f.Description))
	b.WriteString(g.comment(fmt.Sprintf("Work area: %.1f x %.1f mm", f.Width, f.Height)))
	b.WriteString(g.comment(fmt.Sprintf("Cut: S%d at %.0f mm/min, %d passes", s.CutPower, s.CutFeed, s.CutPasses)))
	b.WriteString(g.comment(fmt.Sprintf("Engrave: S%d at %.0f mm/min", s.EngravePower, s.EngraveFeed)))
	b.WriteString(g.comment(fmt.Sprintf("Kerf: %.1f mm, not compensated", model.Kerf)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString(p.LaserOff + "\n")
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

func (g *Generator) writeLayer(b *strings.Builder, f model.LaserCutFile, l *model.SVGLayer, power int, feed float64, passes int) {
	p := g.profile
	segments := g.Settings.CurveSegments
	if segments <= 0 {
		segments = 32
	}

	b.WriteString(g.comment(fmt.Sprintf("--- Layer %s (%s): %d paths ---", l.Name, l.Color, len(l.Paths))))

	for i, path := range l.Paths {
		polys := path.Flatten(segments)
		if len(polys) == 0 {
			continue
		}
		b.WriteString(g.comment(fmt.Sprintf("Path %d", i+1)))

		for _, pl := range polys {
			if len(pl.Points) < 2 {
				continue
			}
			for pass := 1; pass <= passes; pass++ {
				if passes > 1 {
					b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d", pass, passes)))
				}
				start := pl.Points[0]
				b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(start.X), g.format(f.Height-start.Y)))
				b.WriteString(fmt.Sprintf(p.LaserOn+"\n", power))
				for _, pt := range pl.Points[1:] {
					g.writeFeed(b, pt, f.Height, feed)
				}
				if pl.Closed {
					g.writeFeed(b, start, f.Height, feed)
				}
				b.WriteString(p.LaserOff + "\n")
			}
		}
	}

	for _, t := range l.Texts {
		b.WriteString(g.comment(fmt.Sprintf("Skipped text %q at X%s Y%s (convert to paths in your laser software)",
			t.Content, g.format(t.X), g.format(f.Height-t.Y))))
	}
	b.WriteString("\n")
}

func (g *Generator) writeFeed(b *strings.Builder, pt model.Point2D, height, feed float64) {
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
		g.format(pt.X), g.format(height-pt.Y), g.format(feed)))
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	s := fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
	if strings.Trim(s, "-0.") == "" {
		return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, 0.0)
	}
	return s
}
