// Package tui implements the Bubble Tea TUI for thinkthread.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/thinkthread/internal/core/styles"
)

// Icons and symbols.
const (
	iconDot = "•"
)

// Modal styles, built from the active palette on first use.
var (
	modalButtonStyle         lipgloss.Style
	modalButtonSelectedStyle lipgloss.Style
	modalHelpStyle           lipgloss.Style
	modalPreviewStyle        lipgloss.Style
)

func initModalStyles() {
	p := styles.CurrentPalette
	modalButtonStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 2)
	modalButtonSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 2)
	modalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	modalPreviewStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Secondary).
		PaddingLeft(1)
}
