package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary = lipgloss.Color("#33A8FF")
	Muted   = lipgloss.Color("#6B7280")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	AccountStyle = lipgloss.NewStyle().
			Bold(true).
			Width(14)

	StageStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(14)
)

// StatusColor maps outcome statuses and provisioning states to theme colors.
func StatusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "success", "created", "target-attached":
		return Success
	case "failed":
		return Error
	case "already-present", "rule-created":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus renders a status string with a colored bullet.
func RenderStatus(status string) string {
	c := StatusColor(status)
	bullet := lipgloss.NewStyle().Foreground(c).Render("●")
	return bullet + " " + status
}
