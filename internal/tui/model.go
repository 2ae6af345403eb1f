package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/logging"
	"github.com/colonyops/thinkthread/internal/core/notify"
	"github.com/colonyops/thinkthread/internal/core/toast"
	"github.com/colonyops/thinkthread/internal/social"
)

// UIState represents the current screen of the TUI.
type UIState int

const (
	stateFeed UIState = iota
	stateDetail
	stateComposing
	stateCommenting
	stateConfirmingDelete
	stateShowingNotifications
)

// feedSource selects which posts the feed shows.
type feedSource int

const (
	sourceAll feedSource = iota
	sourceMine
)

// Operation names carried by opDoneMsg.
const (
	opLoad    = "load"
	opCreate  = "create"
	opDelete  = "delete"
	opLike    = "like"
	opComment = "comment"
)

// opDoneMsg reports the end of a background operation. Failures have already
// been shown as toasts by the social layer.
type opDoneMsg struct {
	op  string
	err error
}

// draft holds form values. It lives on the heap so huh fields keep pointing
// at it while the Model is copied through Update.
type draft struct {
	caption string
	image   string
	comment string
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx     context.Context
	app     *social.App
	history *notify.History
	keys    KeyMap
	help    help.Model
	logger  zerolog.Logger

	bridge    *ToastBridge
	toastView *ToastView
	spinner   spinner.Model
	spinning  bool
	busy      int

	state    UIState
	returnTo UIState
	source   feedSource
	cursor   int
	offset   int
	targetID string

	detail        viewport.Model
	renderer      *detailRenderer
	prompt        DeletePrompt
	notifications *NotificationModal
	form          *huh.Form
	draft         *draft

	width  int
	height int
	now    func() time.Time
}

// New creates the TUI model. Call Close when the program exits.
func New(ctx context.Context, app *social.App, history *notify.History) Model {
	initModalStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		app:       app,
		history:   history,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		logger:    logging.Component("tui"),
		bridge:    NewToastBridge(app.Toasts()),
		toastView: NewToastView(app.Toasts()),
		spinner:   sp,
		spinning:  true,
		busy:      1,
		detail:    viewport.New(80, 20),
		renderer:  newDetailRenderer(),
		draft:     &draft{},
		width:     80,
		height:    24,
		now:       time.Now,
	}
}

// Close detaches the model from the toast manager.
func (m Model) Close() {
	m.bridge.Close()
}

// Init starts listening for toasts and loads the feed. New accounts for the
// initial load in busy and spinning.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.bridge.WaitForSignal(),
		m.runOp(opLoad, m.loadFn()),
		m.spinner.Tick,
	)
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	switch next.state {
	case stateDetail:
		next.refreshDetail()
	case stateFeed:
		// Keep the cursor on screen.
		_, next.offset = renderList(next.app.Posts(), next.cursor, next.offset, next.bodyHeight(), next.cardContext())
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail.Width = msg.Width
		m.detail.Height = max(m.bodyHeight(), 1)
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-4, 80))
		}
		return m, nil

	case toastsChangedMsg:
		return m.handleToastsChanged()

	case opDoneMsg:
		return m.handleOpDone(msg)

	case spinner.TickMsg:
		if m.busy == 0 && !m.hasLoadingToast() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.toastView.SetLoadingIcon(m.spinner.View())
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleToastsChanged() (Model, tea.Cmd) {
	events := m.bridge.Drain()
	cmds := []tea.Cmd{m.bridge.WaitForSignal()}

	for _, ev := range events {
		if ev.Type == toast.EventAdded && ev.Notification.Kind == toast.KindLoading {
			var tick tea.Cmd
			m, tick = m.ensureSpinner()
			cmds = append(cmds, tick)
		}
	}

	if m.notifications != nil {
		m.notifications.refreshContent()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleOpDone(msg opDoneMsg) (Model, tea.Cmd) {
	m.busy = max(m.busy-1, 0)
	if msg.err != nil {
		m.logger.Debug().Err(msg.err).Str("op", msg.op).Msg("operation finished with error")
	}

	if msg.op == opDelete && msg.err == nil && m.state == stateDetail {
		m.state = stateFeed
	}
	m.clampCursor()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case stateComposing, stateCommenting:
		return m.updateForm(msg)
	case stateConfirmingDelete:
		return m.handleConfirmKey(msg)
	case stateShowingNotifications:
		return m.handleNotificationsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.DismissToast):
		if active := m.app.Toasts().Active(); len(active) > 0 {
			m.app.Toasts().Dismiss(active[len(active)-1].ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.DismissAll):
		m.app.Toasts().DismissAll()
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.notifications = NewNotificationModal(m.history, m.width, m.height)
		m.state = stateShowingNotifications
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Compose):
		return m.openComposer()
	case key.Matches(msg, m.keys.Refresh):
		return m.startOp(opLoad, m.loadFn())
	}

	if m.state == stateDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleFeedKey(msg)
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selected(); ok {
			m.targetID = p.ID
			m.state = stateDetail
			m.detail.GotoTop()
		}
	case key.Matches(msg, m.keys.Mine):
		if m.source == sourceAll {
			m.source = sourceMine
		} else {
			m.source = sourceAll
		}
		m.cursor, m.offset = 0, 0
		return m.startOp(opLoad, m.loadFn())
	case key.Matches(msg, m.keys.Like):
		return m.like()
	case key.Matches(msg, m.keys.Comment):
		return m.openCommenter()
	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = stateFeed
		return m, nil
	case key.Matches(msg, m.keys.Like):
		return m.like()
	case key.Matches(msg, m.keys.Comment):
		return m.openCommenter()
	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	outcome := m.prompt.Handle(msg, m.keys)
	if outcome == promptOpen {
		return m, nil
	}

	id := m.prompt.PostID()
	m.prompt = DeletePrompt{}
	m.state = m.returnState()
	if outcome == promptCancelled {
		return m, nil
	}
	return m.startOp(opDelete, func(ctx context.Context) error {
		return m.app.DeletePost(ctx, id)
	})
}

func (m Model) handleNotificationsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History), key.Matches(msg, m.keys.Quit):
		m.notifications = nil
		m.state = stateFeed
		return m, nil
	case key.Matches(msg, m.keys.ClearHistory):
		m.notifications.Clear()
		return m, nil
	}
	return m, m.notifications.Update(msg)
}

// returnState is the screen to go back to after a modal or form closes. The
// detail view is only restored while its post still exists.
func (m Model) returnState() UIState {
	if m.returnTo == stateDetail {
		if _, ok := m.app.Post(m.targetID); ok {
			return stateDetail
		}
	}
	return stateFeed
}

func (m Model) like() (Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		return m, nil
	}
	return m.startOp(opLike, func(ctx context.Context) error {
		_, err := m.app.ToggleLike(ctx, p.ID)
		return err
	})
}

func (m Model) confirmDelete() (Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		return m, nil
	}
	if p.Author.ID != m.app.Session().User().ID {
		m.app.Toasts().Warning("Can't delete this post", "You can only delete your own posts")
		return m, nil
	}

	m.returnTo = m.state
	m.targetID = p.ID
	m.prompt = NewDeletePrompt(p, m.now())
	m.state = stateConfirmingDelete
	return m, nil
}

// current returns the post the user is acting on: the open post in the
// detail view, otherwise the one under the cursor.
func (m Model) current() (feed.Post, bool) {
	if m.state == stateDetail {
		return m.app.Post(m.targetID)
	}
	return m.selected()
}

func (m Model) selected() (feed.Post, bool) {
	posts := m.app.Posts()
	if m.cursor < 0 || m.cursor >= len(posts) {
		return feed.Post{}, false
	}
	return posts[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.app.Posts())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
}

func (m Model) loadFn() func(context.Context) error {
	if m.source == sourceMine {
		return m.app.LoadMyPosts
	}
	return m.app.LoadFeed
}

// startOp runs fn in the background and starts the spinner.
func (m Model) startOp(op string, fn func(context.Context) error) (Model, tea.Cmd) {
	m.busy++
	m, tick := m.ensureSpinner()
	return m, tea.Batch(m.runOp(op, fn), tick)
}

func (m Model) runOp(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) ensureSpinner() (Model, tea.Cmd) {
	if m.spinning {
		return m, nil
	}
	m.spinning = true
	return m, m.spinner.Tick
}

func (m Model) hasLoadingToast() bool {
	for _, n := range m.app.Toasts().Active() {
		if n.Kind == toast.KindLoading {
			return true
		}
	}
	return false
}

func (m *Model) refreshDetail() {
	p, ok := m.app.Post(m.targetID)
	if !ok {
		m.state = stateFeed
		return
	}
	md := detailMarkdown(p, m.cardContext())
	m.detail.SetContent(m.renderer.Render(md, m.width-2))
}

func (m Model) cardContext() cardContext {
	return cardContext{
		userID:   m.app.Session().User().ID,
		width:    m.width,
		now:      m.now(),
		imageURL: m.app.ImageURL,
	}
}
