package toast

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/thinkthread/internal/core/logging"
)

// DefaultDuration is the display time used when neither the config nor the
// caller specifies one.
const DefaultDuration = 5 * time.Second

// Config controls manager defaults.
type Config struct {
	// DefaultDuration applies to every notification that does not pass
	// WithDuration. Zero selects DefaultDuration; negative values make
	// notifications persistent by default.
	DefaultDuration time.Duration
	// MaxActive caps the active sequence. When exceeded, the oldest entry is
	// evicted. Zero means unlimited.
	MaxActive int
}

// Option customizes a single notification.
type Option func(*Notification)

// WithDuration overrides the display duration. Values <= 0 make the
// notification persist until dismissed.
func WithDuration(d time.Duration) Option {
	return func(n *Notification) {
		n.Duration = d
	}
}

type entry struct {
	n     Notification
	timer Timer
}

type subscription struct {
	id int
	fn Subscriber
}

// delivery pairs an event with the subscribers registered when it happened.
type delivery struct {
	ev   Event
	subs []Subscriber
}

// Manager owns the active notification sequence. It is created once at
// application start, passed to whatever needs to raise toasts, and closed at
// exit. A Manager is safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	cfg     Config
	clock   Clock
	newID   func() string
	entries []*entry
	subs    []subscription
	nextSub int
	closed  bool
	logger  zerolog.Logger

	// outbox holds events in mutation order until a drainer delivers them.
	outbox   []delivery
	draining bool
}

// NewManager creates a Manager. A nil clock selects RealClock.
func NewManager(cfg Config, clock Clock) *Manager {
	if cfg.DefaultDuration == 0 {
		cfg.DefaultDuration = DefaultDuration
	}
	if cfg.DefaultDuration < 0 {
		cfg.DefaultDuration = 0
	}
	if cfg.MaxActive < 0 {
		cfg.MaxActive = 0
	}
	if clock == nil {
		clock = RealClock()
	}

	return &Manager{
		cfg:    cfg,
		clock:  clock,
		newID:  newID,
		logger: logging.Component("toast"),
	}
}

// newID returns a UUIDv7: a millisecond timestamp followed by random bits.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Notify appends a notification and, when its duration is positive, schedules
// its removal. It returns the assigned id, or "" if the manager is closed.
func (m *Manager) Notify(kind Kind, title, message string, opts ...Option) string {
	if !kind.IsValid() {
		m.logger.Warn().Str("kind", string(kind)).Msg("unknown toast kind, using info")
		kind = KindInfo
	}

	n := Notification{
		Kind:     kind,
		Title:    title,
		Message:  message,
		Duration: m.cfg.DefaultDuration,
	}
	for _, opt := range opts {
		opt(&n)
	}
	if n.Duration < 0 {
		n.Duration = 0
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ""
	}

	n.ID = m.newID()
	n.CreatedAt = m.clock.Now()

	if m.cfg.MaxActive > 0 {
		for len(m.entries) >= m.cfg.MaxActive {
			old := m.entries[0]
			old.stop()
			m.entries = m.entries[1:]
			m.enqueueLocked(Event{Type: EventEvicted, Notification: old.n})
		}
	}

	e := &entry{n: n}
	if n.Duration > 0 {
		id := n.ID
		e.timer = m.clock.AfterFunc(n.Duration, func() { m.expire(id) })
	}
	m.entries = append(m.entries, e)
	m.enqueueLocked(Event{Type: EventAdded, Notification: n})
	m.mu.Unlock()

	m.logger.Debug().
		Str("id", n.ID).
		Str("kind", string(n.Kind)).
		Dur("duration", n.Duration).
		Msg("toast added")

	m.drain()
	return n.ID
}

// Success raises a success notification.
func (m *Manager) Success(title, message string, opts ...Option) string {
	return m.Notify(KindSuccess, title, message, opts...)
}

// Error raises an error notification.
func (m *Manager) Error(title, message string, opts ...Option) string {
	return m.Notify(KindError, title, message, opts...)
}

// Info raises an info notification.
func (m *Manager) Info(title, message string, opts ...Option) string {
	return m.Notify(KindInfo, title, message, opts...)
}

// Warning raises a warning notification.
func (m *Manager) Warning(title, message string, opts ...Option) string {
	return m.Notify(KindWarning, title, message, opts...)
}

// Loading raises a loading notification. Loading toasts persist until
// dismissed unless the caller passes WithDuration.
func (m *Manager) Loading(title, message string, opts ...Option) string {
	return m.Notify(KindLoading, title, message, append([]Option{WithDuration(0)}, opts...)...)
}

// Errorf raises an error notification with a formatted message.
func (m *Manager) Errorf(title, format string, args ...any) string {
	return m.Error(title, fmt.Sprintf(format, args...))
}

// Dismiss removes the notification with the given id and cancels its pending
// removal. It reports whether anything was removed; unknown ids are a no-op.
func (m *Manager) Dismiss(id string) bool {
	return m.remove(id, EventDismissed)
}

// DismissAll removes every active notification.
func (m *Manager) DismissAll() {
	m.mu.Lock()
	removed := m.entries
	m.entries = nil
	for _, e := range removed {
		e.stop()
		m.enqueueLocked(Event{Type: EventDismissed, Notification: e.n})
	}
	m.mu.Unlock()

	m.drain()
}

// Active returns a copy of the active sequence, oldest first.
func (m *Manager) Active() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.n
	}
	return out
}

// Get returns the active notification with the given id.
func (m *Manager) Get(id string) (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(id); i >= 0 {
		return m.entries[i].n, true
	}
	return Notification{}, false
}

// Len returns the number of active notifications.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes the subscription. Events arrive in the order the sequence
// changed. Delivery usually happens before the mutating call returns; when
// another goroutine is already delivering, that goroutine delivers instead.
func (m *Manager) Subscribe(fn Subscriber) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscription{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.subs = slices.DeleteFunc(m.subs, func(s subscription) bool { return s.id == id })
	}
}

// Close cancels every pending removal and drops the active sequence.
// Subsequent Notify calls are ignored.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		e.stop()
	}
	m.entries = nil
	m.subs = nil
	m.closed = true
}

func (m *Manager) expire(id string) {
	if m.remove(id, EventExpired) {
		m.logger.Debug().Str("id", id).Msg("toast expired")
	}
}

func (m *Manager) remove(id string, typ EventType) bool {
	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}

	e := m.entries[i]
	e.stop()
	m.entries = slices.Delete(m.entries, i, i+1)
	m.enqueueLocked(Event{Type: typ, Notification: e.n})
	m.mu.Unlock()

	m.drain()
	return true
}

func (m *Manager) indexLocked(id string) int {
	return slices.IndexFunc(m.entries, func(e *entry) bool { return e.n.ID == id })
}

func (m *Manager) subscribersLocked() []Subscriber {
	if len(m.subs) == 0 {
		return nil
	}
	out := make([]Subscriber, len(m.subs))
	for i, s := range m.subs {
		out[i] = s.fn
	}
	return out
}

func (e *entry) stop() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (m *Manager) enqueueLocked(ev Event) {
	subs := m.subscribersLocked()
	if len(subs) == 0 {
		return
	}
	m.outbox = append(m.outbox, delivery{ev: ev, subs: subs})
}

// drain delivers queued events outside the lock. Only one goroutine drains at
// a time, so subscribers see events in the order the sequence changed. A
// subscriber that mutates the manager has its events delivered by the same
// loop after it returns.
func (m *Manager) drain() {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return
	}
	m.draining = true

	for len(m.outbox) > 0 {
		batch := m.outbox
		m.outbox = nil
		m.mu.Unlock()

		for _, d := range batch {
			for _, fn := range d.subs {
				fn(d.ev)
			}
		}

		m.mu.Lock()
	}

	m.draining = false
	m.mu.Unlock()
}
