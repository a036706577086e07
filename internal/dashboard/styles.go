package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/slability/internal/state"
)

// Dashboard color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	ColorOnline  = lipgloss.Color("#39FF14") // Neon green
	ColorWaiting = lipgloss.Color("#FFAA00") // Electric amber
	ColorOffline = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	EndpointNameStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	statusOnlineStyle  = lipgloss.NewStyle().Foreground(ColorOnline).Bold(true)
	statusOfflineStyle = lipgloss.NewStyle().Foreground(ColorOffline).Bold(true)
	statusWaitStyle    = lipgloss.NewStyle().Foreground(ColorWaiting)
)

// StatusStyle returns the badge style for a state.
func StatusStyle(s state.State) lipgloss.Style {
	switch s {
	case state.Online:
		return statusOnlineStyle
	case state.Offline:
		return statusOfflineStyle
	default:
		return statusWaitStyle
	}
}
