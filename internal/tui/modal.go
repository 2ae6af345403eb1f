package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/styles"
)

const (
	promptMaxPreview = 48
	promptMinPreview = 12
)

type promptOutcome int

const (
	promptOpen promptOutcome = iota
	promptConfirmed
	promptCancelled
)

// DeletePrompt asks before one of the user's posts is deleted. It shows the
// post so the user can tell which one is going away. The zero value is hidden.
type DeletePrompt struct {
	post     feed.Post
	age      string
	visible  bool
	onCancel bool
}

// NewDeletePrompt opens a prompt for p with the delete button selected.
func NewDeletePrompt(p feed.Post, now time.Time) DeletePrompt {
	return DeletePrompt{
		post:    p,
		age:     feed.TimeAgo(now, p.CreatedAt),
		visible: true,
	}
}

func (d DeletePrompt) Visible() bool { return d.visible }

// PostID is the post the prompt is about.
func (d DeletePrompt) PostID() string { return d.post.ID }

// Handle applies a key press. Keys outside the confirm bindings leave the
// prompt open.
func (d *DeletePrompt) Handle(msg tea.KeyMsg, keys KeyMap) promptOutcome {
	switch {
	case key.Matches(msg, keys.ConfirmToggle):
		d.onCancel = !d.onCancel
	case key.Matches(msg, keys.ConfirmCancel):
		return promptCancelled
	case key.Matches(msg, keys.ConfirmYes):
		return promptConfirmed
	case key.Matches(msg, keys.ConfirmAccept):
		if d.onCancel {
			return promptCancelled
		}
		return promptConfirmed
	}
	return promptOpen
}

func (d DeletePrompt) preview(width int) string {
	caption := strings.Join(strings.Fields(d.post.Caption), " ")
	if d.post.Image != "" {
		caption = strings.TrimSpace("[image] " + caption)
	}
	if caption == "" {
		caption = "(no caption)"
	}

	meta := fmt.Sprintf("%s %s %d likes %s %d comments",
		d.age, iconDot, d.post.LikeCount(), iconDot, len(d.post.Comments))

	return modalPreviewStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		ansi.Truncate(caption, width, "…"),
		styles.MutedStyle.Render(meta),
	))
}

// Overlay renders the prompt centered over the screen, replacing background.
func (d DeletePrompt) Overlay(background string, width, height int, keys KeyMap) string {
	if !d.visible {
		return background
	}

	deleteBtn, cancelBtn := modalButtonSelectedStyle, modalButtonStyle
	if d.onCancel {
		deleteBtn, cancelBtn = modalButtonStyle, modalButtonSelectedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		deleteBtn.Render("Delete"), "  ", cancelBtn.Render("Cancel"))

	hints := make([]string, 0, 4)
	for _, b := range []key.Binding{keys.ConfirmToggle, keys.ConfirmAccept, keys.ConfirmYes, keys.ConfirmCancel} {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}

	previewWidth := max(min(promptMaxPreview, width-12), promptMinPreview)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete post"),
		"",
		"Delete this post? This cannot be undone.",
		"",
		d.preview(previewWidth),
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		modalHelpStyle.Render(strings.Join(hints, "  ")),
	)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content),
	)
}
