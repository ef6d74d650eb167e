package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shopverse-dev/shopverse/internal/checkout"
)

// Color constants for the storefront aesthetic.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// BadgeStyle renders the basket badge in the header.
	BadgeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
)

// Attempt status icon variables (pre-rendered strings).
var (
	iconConfirmed = SuccessStyle.Render("✓")
	iconFailed    = ErrorStyle.Render("✗")
	iconAwaiting  = WarningStyle.Render("▸")
	iconVerifying = WarningStyle.Render("⧖")
	iconPending   = DimStyle.Render("○")
)

// StatusIcon returns the rendered icon for a checkout attempt status.
func StatusIcon(s checkout.Status) string {
	switch s {
	case checkout.StatusConfirmed:
		return iconConfirmed
	case checkout.StatusFailed:
		return iconFailed
	case checkout.StatusAwaitingGateway:
		return iconAwaiting
	case checkout.StatusVerifying:
		return iconVerifying
	default:
		return iconPending
	}
}
