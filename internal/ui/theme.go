// Package ui provides the SeasonCut desktop application.
//
// This file defines a compact Fyne theme with a forced light or dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/seasoncut/internal/model"
)

// SeasonCutTheme wraps the default Fyne theme with compact sizing. When
// forced is false the variant requested by the system is used.
type SeasonCutTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	forced  bool
}

// NewSeasonCutTheme builds the theme selected by cfg.Theme.
func NewSeasonCutTheme(cfg model.AppConfig) *SeasonCutTheme {
	t := &SeasonCutTheme{base: theme.DefaultTheme()}
	t.Apply(cfg)
	return t
}

// Apply updates the variant from cfg.Theme ("light", "dark" or "system").
func (t *SeasonCutTheme) Apply(cfg model.AppConfig) {
	dark, forced := cfg.DarkMode()
	t.forced = forced
	t.variant = theme.VariantLight
	if dark {
		t.variant = theme.VariantDark
	}
}

func (t *SeasonCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *SeasonCutTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *SeasonCutTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *SeasonCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
