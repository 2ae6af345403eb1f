package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/thinkthread/internal/core/styles"
)

const headerHeight = 2

// View renders the screen.
func (m Model) View() string {
	var content string

	switch m.state {
	case stateShowingNotifications:
		content = m.notifications.Overlay(m.width, m.height)
	case stateConfirmingDelete:
		content = m.prompt.Overlay(m.renderScreen(), m.width, m.height, m.keys)
	default:
		content = m.renderScreen()
	}

	return m.toastView.Overlay(content, m.width, m.height)
}

func (m Model) renderScreen() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("ThinkThread")

	section := "Feed"
	if m.source == sourceMine {
		section = "My posts"
	}
	switch m.state {
	case stateDetail:
		section = "Post"
	case stateComposing:
		section = "New post"
	case stateCommenting:
		section = "Comment"
	}

	user := "not signed in"
	if sess := m.app.Session(); sess.Authenticated() {
		user = styles.IconProfile + " " + sess.User().DisplayName()
	}

	left := title + styles.MutedStyle.Render(" "+iconDot+" "+section)
	if m.busy > 0 {
		left += " " + m.spinner.View()
	}
	right := styles.MutedStyle.Render(user)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right
	divider := styles.DividerStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return line + "\n" + divider
}

func (m Model) renderBody() string {
	height := m.bodyHeight()

	var body string
	switch m.state {
	case stateComposing, stateCommenting:
		if m.form != nil {
			body = m.form.View()
		}
	case stateDetail:
		body = m.detail.View()
	default:
		body, _ = renderList(m.app.Posts(), m.cursor, m.offset, height, m.cardContext())
	}

	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(body)
}

func (m Model) renderFooter() string {
	return styles.HelpStyle.Render(m.help.View(m.keys))
}

// bodyHeight is the space left between the header and the help footer.
func (m Model) bodyHeight() int {
	footer := 1
	if m.help.ShowAll {
		footer = 5
	}
	return max(m.height-headerHeight-footer, 1)
}
