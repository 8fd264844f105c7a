package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the replay view.
type Theme struct {
	Name   string
	Trail  lipgloss.Color
	Ball   lipgloss.Color
	Header lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeFairway = Theme{
		Name:   "fairway",
		Trail:  lipgloss.Color("#5fd068"),
		Ball:   lipgloss.Color("#ffffff"),
		Header: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeNight = Theme{
		Name:   "night",
		Trail:  lipgloss.Color("#0077be"),
		Ball:   lipgloss.Color("#ffd700"),
		Header: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Trail:  lipgloss.Color("#cccccc"),
		Ball:   lipgloss.Color("#ffffff"),
		Header: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemeFairway,
		ThemeNight,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFairway
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
