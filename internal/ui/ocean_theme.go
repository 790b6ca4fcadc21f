package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Ocean palette
var (
	OceanDeepBlue     = color.NRGBA{R: 0x0a, G: 0x19, B: 0x2f, A: 0xff}
	OceanDark         = color.NRGBA{R: 0x11, G: 0x22, B: 0x40, A: 0xff}
	OceanAccent       = color.NRGBA{R: 0x23, G: 0x35, B: 0x54, A: 0xff}
	OceanButton       = color.NRGBA{R: 0x1e, G: 0x3a, B: 0x5c, A: 0xff}
	OceanButtonActive = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	OceanText         = color.NRGBA{R: 0xe0, G: 0xe6, B: 0xed, A: 0xff}
	OceanHighlight    = color.NRGBA{R: 0x64, G: 0xff, B: 0xda, A: 0xff}
	OceanError        = color.NRGBA{R: 0xff, G: 0x53, B: 0x70, A: 0xff}
)

// OceanTheme is a compact dark blue theme. It ignores the system light/dark variant.
type OceanTheme struct{}

// NewOceanTheme creates the ocean theme
func NewOceanTheme() fyne.Theme {
	return &OceanTheme{}
}

// Color returns theme colors
func (t *OceanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return OceanDeepBlue
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return OceanDark
	case theme.ColorNameButton:
		return OceanButton
	case theme.ColorNameHover, theme.ColorNameSelection, theme.ColorNameSeparator:
		return OceanAccent
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return OceanButtonActive
	case theme.ColorNamePressed, theme.ColorNameSuccess:
		return OceanHighlight
	case theme.ColorNameForeground:
		return OceanText
	case theme.ColorNameError:
		return OceanError
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *OceanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *OceanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *OceanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
