package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/f3rmion/saju/internal/saju"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // titles
	ColorSecondary = lipgloss.Color("#4ecdc4") // subtitles
	ColorAccent    = lipgloss.Color("#ffe66d") // highlighted values
	ColorMuted     = lipgloss.Color("#666666")
	ColorText      = lipgloss.Color("#f1faee")
	ColorLabel     = lipgloss.Color("#a8dadc")
	ColorBorder    = lipgloss.Color("#3d5a80")
)

// Element colors follow the traditional five-direction palette.
var elementColors = [saju.NumElements]lipgloss.Color{
	saju.Wood:  lipgloss.Color("#6A994E"),
	saju.Fire:  lipgloss.Color("#E4572E"),
	saju.Earth: lipgloss.Color("#E9C46A"),
	saju.Metal: lipgloss.Color("#CED4DA"),
	saju.Water: lipgloss.Color("#4895EF"),
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	box      lipgloss.Style
	divider  lipgloss.Style
	element  [saju.NumElements]lipgloss.Style
}

// newStyles builds the styles on their own renderer so a plain profile
// strips every escape sequence.
func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	s := styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1),
		subtitle: r.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),
		label: r.NewStyle().
			Foreground(ColorLabel).
			Bold(true),
		value: r.NewStyle().
			Foreground(ColorText),
		accent: r.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		muted: r.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		divider: r.NewStyle().
			Foreground(ColorBorder),
	}
	for _, e := range saju.Elements() {
		s.element[e] = r.NewStyle().Foreground(elementColors[e]).Bold(true)
	}
	return s
}
