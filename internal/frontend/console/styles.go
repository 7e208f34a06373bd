package console

import "github.com/charmbracelet/lipgloss"

// Styles decorates the banners the game prints. The zero value and
// PlainStyles leave text untouched.
type Styles struct {
	enabled bool

	Banner lipgloss.Style
	Win    lipgloss.Style
	Lose   lipgloss.Style
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles { return Styles{} }

// ColorStyles returns the styles used on color terminals.
func ColorStyles() Styles {
	return Styles{
		enabled: true,
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F")).
			Bold(true),
		Lose: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true),
	}
}

// Enabled reports whether rendering decorates text.
func (s Styles) Enabled() bool { return s.enabled }

// RenderBanner decorates a room banner.
func (s Styles) RenderBanner(text string) string { return s.render(s.Banner, text) }

// RenderWin decorates the victory banner.
func (s Styles) RenderWin(text string) string { return s.render(s.Win, text) }

// RenderLose decorates the defeat banner.
func (s Styles) RenderLose(text string) string { return s.render(s.Lose, text) }

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
