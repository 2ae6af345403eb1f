// Package notify keeps a bounded, in-memory history of toasts shown during
// the current run.
package notify

import (
	"sync"
	"time"

	"github.com/colonyops/thinkthread/internal/core/toast"
)

// DefaultCapacity is the number of entries kept when NewHistory is given 0.
const DefaultCapacity = 100

// Entry is a toast that was shown, plus how it left the screen.
type Entry struct {
	toast.Notification
	// Outcome is empty while the toast is still visible.
	Outcome  toast.EventType `json:"outcome,omitempty"`
	ClosedAt time.Time       `json:"closedAt,omitzero"`
}

// Active reports whether the toast is still on screen.
func (e Entry) Active() bool {
	return e.Outcome == ""
}

// History records toast events. The zero value is not usable; call NewHistory.
type History struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

// NewHistory creates a history holding at most capacity entries. The oldest
// entry is dropped once full.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		capacity: capacity,
		now:      time.Now,
	}
}

// Attach subscribes the history to m and returns the unsubscribe function.
func (h *History) Attach(m *toast.Manager) func() {
	return m.Subscribe(h.Record)
}

// Record applies a toast event. It has the toast.Subscriber signature.
func (h *History) Record(ev toast.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ev.Type == toast.EventAdded {
		h.entries = append(h.entries, Entry{Notification: ev.Notification})
		if over := len(h.entries) - h.capacity; over > 0 {
			h.entries = append(h.entries[:0:0], h.entries[over:]...)
		}
		return
	}

	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].ID == ev.Notification.ID {
			h.entries[i].Outcome = ev.Type
			h.entries[i].ClosedAt = h.now()
			return
		}
	}
}

// List returns entries newest first.
func (h *History) List() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Entry, len(h.entries))
	for i, e := range h.entries {
		out[len(h.entries)-1-i] = e
	}
	return out
}

// Count returns the number of recorded entries.
func (h *History) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
