package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/thinkthread/internal/core/media"
	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/core/validate"
)

// formKeyMap lets esc abort a form as well as ctrl+c.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

func (m Model) formWidth() int {
	return max(min(m.width-4, 80), 20)
}

func (m Model) openComposer() (Model, tea.Cmd) {
	if !m.app.Session().Authenticated() {
		m.app.Toasts().Warning("Not signed in", "Run 'thinkthread login' first")
		return m, nil
	}

	m.draft.caption = ""
	m.draft.image = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What do you want to talk about?").
				CharLimit(3000).
				Value(&m.draft.caption),
			huh.NewInput().
				Title("Image").
				Description("Optional path or glob matching one image (max 5MB)").
				Placeholder("photos/*.png").
				Value(&m.draft.image).
				Validate(validateImagePath),
		),
	).WithWidth(m.formWidth()).
		WithKeyMap(formKeyMap()).
		WithTheme(styles.FormTheme()).
		WithShowHelp(true)

	m.returnTo = m.state
	m.state = stateComposing
	return m, m.form.Init()
}

func (m Model) openCommenter() (Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		return m, nil
	}
	if !m.app.Session().Authenticated() {
		m.app.Toasts().Warning("Not signed in", "Run 'thinkthread login' first")
		return m, nil
	}

	m.draft.comment = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Comment on " + p.Author.DisplayName() + "'s post").
				Value(&m.draft.comment).
				Validate(validate.Required),
		),
	).WithWidth(m.formWidth()).
		WithKeyMap(formKeyMap()).
		WithTheme(styles.FormTheme()).
		WithShowHelp(true)

	m.returnTo = m.state
	m.targetID = p.ID
	m.state = stateCommenting
	return m, m.form.Init()
}

// validateImagePath accepts an empty value or a pattern resolving to one
// valid image.
func validateImagePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := media.Select(s)
	return err
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.form = nil
		m.state = m.returnState()
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	submitted := m.state
	m.form = nil
	m.state = m.returnState()

	switch submitted {
	case stateComposing:
		caption := strings.TrimSpace(m.draft.caption)
		image := strings.TrimSpace(m.draft.image)
		m.cursor, m.offset = 0, 0
		return m.startOp(opCreate, func(ctx context.Context) error {
			_, err := m.app.CreatePost(ctx, caption, image)
			return err
		})
	case stateCommenting:
		postID := m.targetID
		text := strings.TrimSpace(m.draft.comment)
		return m.startOp(opComment, func(ctx context.Context) error {
			_, err := m.app.Comment(ctx, postID, text)
			return err
		})
	}
	return m, nil
}
