package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/thinkthread/internal/core/notify"
	"github.com/colonyops/thinkthread/internal/core/styles"
)

const (
	notifyModalWidthPct  = 65
	notifyModalMinWidth  = 60
	notifyModalMaxHeight = 30
	notifyModalMargin    = 4
	notifyModalChrome    = 6 // title + divider + help + spacing
)

// NotificationModal displays a scrollable history of toasts.
type NotificationModal struct {
	history  *notify.History
	viewport viewport.Model
}

// NewNotificationModal creates a modal showing toast history.
func NewNotificationModal(history *notify.History, width, height int) *NotificationModal {
	modalWidth := calcNotificationModalWidth(width)
	modalHeight := min(height-notifyModalMargin, notifyModalMaxHeight)
	contentHeight := max(modalHeight-notifyModalChrome, 1)

	m := &NotificationModal{
		history:  history,
		viewport: viewport.New(max(modalWidth-4, 1), contentHeight),
	}
	m.refreshContent()
	return m
}

func (m *NotificationModal) refreshContent() {
	if m.history == nil || m.history.Count() == 0 {
		m.viewport.SetContent(styles.MutedStyle.Render("No notifications"))
		return
	}

	entries := m.history.List()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatEntry(e))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func formatEntry(e notify.Entry) string {
	ts := styles.MutedStyle.Render(e.CreatedAt.Format("15:04:05"))
	icon, _ := toastDecor(e.Kind)

	text := e.Title
	if e.Message != "" {
		text += ": " + e.Message
	}

	status := "active"
	if !e.Active() {
		status = string(e.Outcome)
	}

	return fmt.Sprintf("%s %s %s %s", ts, icon, text, styles.MutedStyle.Render("("+status+")"))
}

// Update forwards scroll keys to the viewport.
func (m *NotificationModal) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// Clear deletes all entries and refreshes the view.
func (m *NotificationModal) Clear() {
	if m.history != nil {
		m.history.Clear()
	}
	m.refreshContent()
}

// Overlay renders the modal centered in the screen.
func (m *NotificationModal) Overlay(width, height int) string {
	modalWidth := calcNotificationModalWidth(width)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.MutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.DividerStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Notifications"+scrollInfo),
		divider,
		m.viewport.View(),
		modalHelpStyle.Render("[j/k] scroll  [D] clear all  [esc] close"),
	)

	modal := styles.ModalStyle.Width(modalWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

func calcNotificationModalWidth(termWidth int) int {
	available := max(termWidth-notifyModalMargin, 1)
	target := termWidth * notifyModalWidthPct / 100
	return min(max(target, notifyModalMinWidth), available)
}
