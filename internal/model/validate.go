package model

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every problem ValidateOptions reports.
var ErrInvalidOptions = errors.New("invalid laser cut options")

// ValidateOptions reports every problem that would make the generated
// geometry physically meaningless. Generation itself never validates; callers
// that take user input run this first.
func ValidateOptions(opts LaserCutOptions) error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidOptions}, args...)...))
	}

	if !opts.Size.Valid() {
		invalid("unsupported size %q (want 16, 20 or 24)", opts.Size)
	}
	if !opts.Material.Valid() {
		invalid("unsupported material %q (want walnut, maple or oak)", opts.Material)
	}
	if opts.Thickness <= 0 {
		invalid("thickness must be positive, got %g mm", opts.Thickness)
	}
	rows, cols := opts.TileGridSize.Rows, opts.TileGridSize.Cols
	if rows <= 0 || cols <= 0 {
		invalid("tile grid must be at least 1x1, got %s", opts.TileGridSize)
	}

	// Cell size only makes sense once the size and grid are usable.
	if opts.Size.Valid() && rows > 0 && cols > 0 {
		width := float64(opts.Size.Inches()) * MMPerInch
		height := width * AspectRatio
		cellW := (width - 2*PlateMargin) / float64(cols)
		cellH := (height - 2*PlateMargin) / float64(rows)
		if cellW <= SlotClearance || cellH <= SlotClearance {
			invalid("a %s grid does not fit a %s\" plate (cell %.2f x %.2f mm)",
				opts.TileGridSize, opts.Size, cellW, cellH)
		}
	}

	return errors.Join(errs...)
}
