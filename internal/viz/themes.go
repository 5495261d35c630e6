package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the replay view.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Orbits lipgloss.Color
	Bodies []lipgloss.Color // star first, reused cyclically
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Title:  lipgloss.Color("#00ffff"),
		Orbits: lipgloss.Color("#cccccc"),
		Bodies: []lipgloss.Color{"#ffcc00", "#3399ff", "#ff4444", "#aaaaaa"},
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#00ff88"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#88ff88"),
		Orbits: lipgloss.Color("#00cc00"),
		Bodies: []lipgloss.Color{"#ffff00", "#00ff00", "#88ff88", "#005500"},
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#00ff00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  lipgloss.Color("#ff9ff3"),
		Orbits: lipgloss.Color("#feca57"),
		Bodies: []lipgloss.Color{"#ffc048", "#5fd068", "#ff6b6b", "#8b6b8c"},
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeClassic, ThemeRetroGreen, ThemeSunset}
)

// GetTheme returns a theme by name, or the classic theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) bodyColor(i int) lipgloss.Color {
	return t.Bodies[i%len(t.Bodies)]
}

// BodyStyle is the legend style for the i-th body.
func (t Theme) BodyStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.bodyColor(i)).Bold(i == 0)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
