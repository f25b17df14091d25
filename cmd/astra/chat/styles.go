package chat

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"astra/internal/emotion"
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1b1840"),
		Primary:    lipgloss.Color("#3d2e8c"),
		Accent:     lipgloss.Color("#c2185b"),
		Muted:      lipgloss.Color("#8a8aa3"),
		Border:     lipgloss.Color("#d3d0e8"),
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#ecebf7"),
		Primary:    lipgloss.Color("#b39ddb"),
		Accent:     lipgloss.Color("#f48fb1"),
		Muted:      lipgloss.Color("#6c6a86"),
		Border:     lipgloss.Color("#34305a"),
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or ASTRA_DARK_MODE.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	if os.Getenv("ASTRA_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// labelColors tints the emotion badge.
var labelColors = map[emotion.Label]lipgloss.Color{
	emotion.Joy:        lipgloss.Color("#f9a825"),
	emotion.Excitement: lipgloss.Color("#ff7043"),
	emotion.Hope:       lipgloss.Color("#66bb6a"),
	emotion.Love:       lipgloss.Color("#ec407a"),
	emotion.Gratitude:  lipgloss.Color("#8d6e63"),
	emotion.Compassion: lipgloss.Color("#26a69a"),
	emotion.Sadness:    lipgloss.Color("#5c6bc0"),
	emotion.Anger:      lipgloss.Color("#e53935"),
	emotion.Fear:       lipgloss.Color("#8e24aa"),
	emotion.Disgust:    lipgloss.Color("#7cb342"),
	emotion.Surprise:   lipgloss.Color("#29b6f6"),
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	You       lipgloss.Style
	Companion lipgloss.Style
	System    lipgloss.Style
	Input     lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles builds styles for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		You:       lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginTop(1),
		Companion: lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginTop(1),
		System:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}

// Badge renders an emotion label in its mood color.
func (s Styles) Badge(l emotion.Label) string {
	c, ok := labelColors[l]
	if !ok {
		c = s.Theme.Muted
	}
	return lipgloss.NewStyle().Foreground(c).Render(l.Emoji() + " " + string(emotion.MoodFor(l)))
}
