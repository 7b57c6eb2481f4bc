package geometry

import "github.com/piwi3910/seasoncut/internal/model"

// RoundedRect returns a closed rectangle whose corners are quadratic curves
// of radius r.
func RoundedRect(x, y, w, h, r float64) model.Path {
	var p model.Path
	p.MoveTo(x+r, y).
		LineTo(x+w-r, y).
		QuadTo(x+w, y, x+w, y+r).
		LineTo(x+w, y+h-r).
		QuadTo(x+w, y+h, x+w-r, y+h).
		LineTo(x+r, y+h).
		QuadTo(x, y+h, x, y+h-r).
		LineTo(x, y+r).
		QuadTo(x, y, x+r, y).
		Close()
	return p
}

// Rect returns a closed axis-aligned rectangle.
func Rect(x, y, w, h float64) model.Path {
	var p model.Path
	p.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
	return p
}

// Circle returns a closed circle made of two half arcs.
func Circle(cx, cy, r float64) model.Path {
	var p model.Path
	p.MoveTo(cx-r, cy).
		ArcTo(r, true, false, cx+r, cy).
		ArcTo(r, true, false, cx-r, cy).
		Close()
	return p
}

// Crosshair returns two open strokes crossing at (cx, cy).
func Crosshair(cx, cy, arm float64) model.Path {
	var p model.Path
	p.MoveTo(cx-arm, cy).
		LineTo(cx+arm, cy).
		MoveTo(cx, cy-arm).
		LineTo(cx, cy+arm)
	return p
}

// NotchedTile returns a tile outline with a NotchWidth x NotchHeight notch
// removed from its top-left corner so tiles have a visible orientation.
func NotchedTile(x, y, w, h float64) model.Path {
	var p model.Path
	p.MoveTo(x+NotchWidth, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		LineTo(x, y+NotchHeight).
		LineTo(x+NotchWidth, y+NotchHeight).
		Close()
	return p
}

// TextPathPlaceholder stands in for text converted to engrave outlines. It
// only positions the pen at (x, y) and draws no glyphs; text and size are
// accepted so a real glyph renderer can replace it without touching callers.
func TextPathPlaceholder(text string, x, y, size float64) model.Path {
	var p model.Path
	p.MoveTo(x, y)
	return p
}
