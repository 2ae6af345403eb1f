package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/thinkthread/internal/core/toast"
)

// toastsChangedMsg tells the model the active toasts changed and a redraw is
// due. Events are drained from the bridge when it arrives.
type toastsChangedMsg struct{}

// ToastBridge carries toast manager events into the bubbletea update loop.
// Manager callbacks may fire on timer goroutines; the bridge buffers them and
// emits one coalesced signal per burst.
type ToastBridge struct {
	mu     sync.Mutex
	events []toast.Event
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
	unsub  func()
}

// NewToastBridge subscribes to m.
func NewToastBridge(m *toast.Manager) *ToastBridge {
	b := &ToastBridge{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	b.unsub = m.Subscribe(b.push)
	return b
}

func (b *ToastBridge) push(ev toast.Event) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered events and clears the buffer.
func (b *ToastBridge) Drain() []toast.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == 0 {
		return nil
	}

	out := make([]toast.Event, len(b.events))
	copy(out, b.events)
	b.events = b.events[:0]
	return out
}

// WaitForSignal blocks until events are ready to drain. After Close it
// returns nil so the update loop stops rescheduling it.
func (b *ToastBridge) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.signal:
			return toastsChangedMsg{}
		case <-b.done:
			return nil
		}
	}
}

// Close unsubscribes from the manager and releases any waiter.
func (b *ToastBridge) Close() {
	b.once.Do(func() {
		b.unsub()
		close(b.done)
	})
}
