// Package style holds the colors and icons shared by the log handler and the report renderer.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/costwise/internal/core/domain"
)

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// SeverityColor maps an alert severity to its color.
func SeverityColor(s domain.Severity) lipgloss.Color {
	switch s {
	case domain.SeverityHigh:
		return Red
	case domain.SeverityMedium:
		return Yellow
	default:
		return Slate
	}
}
