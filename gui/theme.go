//go:build !nogui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ringTheme leaves the corners around the ring transparent and sizes text
// for the slice labels.
type ringTheme struct{}

func (ringTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground:
		return color.Transparent
	case theme.ColorNameForeground:
		return colorLabel
	case theme.ColorNameHover, theme.ColorNameFocus:
		return colorHover
	}
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}

func (ringTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (ringTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (ringTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return labelSize
	case theme.SizeNamePadding, theme.SizeNameInnerPadding:
		return 0
	}
	return theme.DefaultTheme().Size(name)
}
