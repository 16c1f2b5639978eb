package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultAccent = "#7D56F4"
	colorHelp     = "#626262"
)

// styles holds the skin-independent styles of the footer.
var styles = SkinPalette(defaultAccent)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	help   lipgloss.Style
	accent lipgloss.Style
	active lipgloss.Style
	dim    lipgloss.Style
	cursor lipgloss.Style
}

// SkinPalette builds the palette of a skin from its accent colour.
func SkinPalette(accent string) *Palette {
	if accent == "" {
		accent = defaultAccent
	}
	return &Palette{
		title:  NewBold(accent),
		help:   NewEm(colorHelp),
		accent: NewStyle(accent),
		active: NewBold(accent).Reverse(true),
		dim:    NewStyle(colorHelp),
		cursor: lipgloss.NewStyle().Underline(true),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
