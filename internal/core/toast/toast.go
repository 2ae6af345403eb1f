// Package toast implements the toast queue: an ordered set of transient,
// user-visible notifications that expire on a timer or are dismissed
// explicitly.
package toast

import "time"

// Kind represents the visual category of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindLoading Kind = "loading"
)

// Kinds returns all supported kinds in display-priority order.
func Kinds() []Kind {
	return []Kind{KindSuccess, KindError, KindInfo, KindWarning, KindLoading}
}

// IsValid reports whether k is one of the supported kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo, KindWarning, KindLoading:
		return true
	}
	return false
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.IsValid()
}

// Notification is a single toast.
type Notification struct {
	ID      string        `json:"id"`
	Kind    Kind          `json:"kind"`
	Title   string        `json:"title,omitempty"`
	Message string        `json:"message,omitempty"`
	// Duration is how long the toast stays visible. Zero means it persists
	// until dismissed.
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Persistent reports whether the notification is never removed automatically.
func (n Notification) Persistent() bool {
	return n.Duration <= 0
}

// EventType describes a change to the active sequence.
type EventType string

const (
	EventAdded     EventType = "added"
	EventDismissed EventType = "dismissed"
	EventExpired   EventType = "expired"
	EventEvicted   EventType = "evicted"
)

// Event is delivered to subscribers after every change to the active sequence.
type Event struct {
	Type         EventType
	Notification Notification
}

// Subscriber is a callback invoked for every Event. Subscribers run outside
// the manager lock and may call back into the manager.
type Subscriber func(Event)
