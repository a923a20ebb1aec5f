package main

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes: Mocha for dark, Latte for light
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

type theme struct {
	name string

	text    lipgloss.Color
	subtext lipgloss.Color
	muted   lipgloss.Color
	surface lipgloss.Color
	base    lipgloss.Color

	red      lipgloss.Color
	green    lipgloss.Color
	yellow   lipgloss.Color
	blue     lipgloss.Color
	mauve    lipgloss.Color
	peach    lipgloss.Color
	teal     lipgloss.Color
	lavender lipgloss.Color
}

var darkTheme = theme{
	name:     "dark",
	text:     "#cdd6f4",
	subtext:  "#a6adc8",
	muted:    "#7f849c",
	surface:  "#313244",
	base:     "#1e1e2e",
	red:      "#f38ba8",
	green:    "#a6e3a1",
	yellow:   "#f9e2af",
	blue:     "#89b4fa",
	mauve:    "#cba6f7",
	peach:    "#fab387",
	teal:     "#94e2d5",
	lavender: "#b4befe",
}

var lightTheme = theme{
	name:     "light",
	text:     "#4c4f69",
	subtext:  "#6c6f85",
	muted:    "#8c8fa1",
	surface:  "#ccd0da",
	base:     "#eff1f5",
	red:      "#d20f39",
	green:    "#40a02b",
	yellow:   "#df8e1d",
	blue:     "#1e66f5",
	mauve:    "#8839ef",
	peach:    "#fe640b",
	teal:     "#179299",
	lavender: "#7287fd",
}

func themeByName(name string) theme {
	if name == "dark" {
		return darkTheme
	}
	return lightTheme
}

// ---------------------------------------------------------------------------
// Semantic accessors
// ---------------------------------------------------------------------------

// The brand leans on red: leakage is the product's whole story.
func (t theme) loss() lipgloss.Color    { return t.red }
func (t theme) success() lipgloss.Color { return t.green }
func (t theme) warning() lipgloss.Color { return t.yellow }
func (t theme) accent() lipgloss.Color  { return t.red }

// ---------------------------------------------------------------------------
// Category glyphs
// ---------------------------------------------------------------------------

type categoryStyle struct {
	glyph string
	color lipgloss.Color
}

// categoryStyles maps the backend's open category enumeration to a terminal
// glyph and accent color.
func (t theme) categoryStyles() map[string]categoryStyle {
	return map[string]categoryStyle{
		"Tax":     {glyph: "▤", color: t.blue},
		"Energy":  {glyph: "↯", color: t.yellow},
		"HR":      {glyph: "◉", color: t.green},
		"Digital": {glyph: "◎", color: t.mauve},
		"Export":  {glyph: "⇗", color: t.teal},
		"Finance": {glyph: "€", color: t.peach},
	}
}

// categoryStyle resolves a category to its glyph mapping. Unrecognized
// categories deterministically fall back to the Tax mapping, never an error.
func (t theme) categoryStyle(category string) categoryStyle {
	styles := t.categoryStyles()
	if cs, ok := styles[category]; ok {
		return cs
	}
	return styles["Tax"]
}
