package commands

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/core/toast"
)

// Presenter prints toasts as lines on a writer, usually stderr. Only newly
// added toasts are printed; removals are silent.
type Presenter struct {
	mu     sync.Mutex
	w      io.Writer
	styled bool
}

// NewPresenter creates a Presenter writing to w.
func NewPresenter(w io.Writer, styled bool) *Presenter {
	return &Presenter{w: w, styled: styled}
}

// NewStderrPresenter writes to stderr, styled when stderr is a terminal.
func NewStderrPresenter() *Presenter {
	return NewPresenter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

// Attach subscribes the presenter to m and returns the unsubscribe func.
func (p *Presenter) Attach(m *toast.Manager) func() {
	return m.Subscribe(p.handle)
}

func (p *Presenter) handle(ev toast.Event) {
	if ev.Type != toast.EventAdded {
		return
	}

	line := p.Format(ev.Notification)

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, line)
}

// Format renders a single toast line.
func (p *Presenter) Format(n toast.Notification) string {
	text := n.Title
	if n.Message != "" {
		if text != "" {
			text += ": "
		}
		text += n.Message
	}

	if !p.styled {
		return fmt.Sprintf("[%s] %s", n.Kind, text)
	}

	icon, color := kindDecor(n.Kind)
	badge := colored(color, icon)
	title := styles.ToastTitleStyle.Render(n.Title)
	if n.Message == "" {
		return badge + " " + title
	}
	if n.Title == "" {
		return badge + " " + n.Message
	}
	return badge + " " + title + styles.MutedStyle.Render(" "+n.Message)
}

func kindDecor(k toast.Kind) (string, lipgloss.Color) {
	p := styles.CurrentPalette
	switch k {
	case toast.KindSuccess:
		return styles.IconToastSuccess, p.Success
	case toast.KindError:
		return styles.IconToastError, p.Error
	case toast.KindWarning:
		return styles.IconToastWarning, p.Warning
	case toast.KindLoading:
		return styles.IconToastLoading, p.Secondary
	default:
		return styles.IconToastInfo, p.Primary
	}
}

func colored(c lipgloss.Color, s string) string {
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s)
}
