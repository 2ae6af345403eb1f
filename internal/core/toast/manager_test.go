package toast_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/thinkthread/internal/core/toast"
	"github.com/colonyops/thinkthread/internal/core/toast/toasttest"
)

func newTestManager(t *testing.T, cfg toast.Config) (*toast.Manager, *toasttest.Clock) {
	t.Helper()
	clock := toasttest.NewClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	m := toast.NewManager(cfg, clock)
	t.Cleanup(m.Close)
	return m, clock
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestManager_Notify_persistent_keeps_call_order(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	var ids []string
	for i := range 10 {
		ids = append(ids, m.Info(fmt.Sprintf("toast %d", i), "", toast.WithDuration(0)))
	}

	active := m.Active()
	require.Len(t, active, 10)
	for i, n := range active {
		assert.Equal(t, ids[i], n.ID)
		assert.Equal(t, fmt.Sprintf("toast %d", i), n.Title)
	}

	clock.Advance(time.Hour)
	assert.Equal(t, 10, m.Len())
	assert.Zero(t, clock.Pending())
}

func TestManager_Notify_assigns_unique_ids(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	seen := make(map[string]bool)
	for range 500 {
		id := m.Info("", "", toast.WithDuration(0))
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestManager_Notify_sets_fields(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	id := m.Notify(toast.KindWarning, "Heads up", "disk almost full", toast.WithDuration(ms(250)))

	n, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, toast.KindWarning, n.Kind)
	assert.Equal(t, "Heads up", n.Title)
	assert.Equal(t, "disk almost full", n.Message)
	assert.Equal(t, ms(250), n.Duration)
	assert.Equal(t, clock.Now(), n.CreatedAt)
}

func TestManager_Notify_uses_default_duration(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	id := m.Success("Saved", "")
	n, _ := m.Get(id)
	assert.Equal(t, toast.DefaultDuration, n.Duration)

	clock.Advance(toast.DefaultDuration - time.Millisecond)
	assert.Equal(t, 1, m.Len())

	clock.Advance(time.Millisecond)
	assert.Zero(t, m.Len())
}

func TestManager_Notify_configured_default_duration(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{DefaultDuration: ms(40)})

	m.Info("short", "")
	clock.Advance(ms(40))
	assert.Zero(t, m.Len())
}

func TestManager_Notify_negative_default_persists(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{DefaultDuration: -1})

	id := m.Info("sticky", "")
	n, _ := m.Get(id)
	assert.True(t, n.Persistent())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, m.Len())
}

func TestManager_Notify_non_positive_duration_persists(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"zero", 0},
		{"negative", -ms(100)},
		{"very negative", -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock := newTestManager(t, toast.Config{})

			id := m.Error("boom", "", toast.WithDuration(tt.duration))
			n, ok := m.Get(id)
			require.True(t, ok)
			assert.Equal(t, time.Duration(0), n.Duration)

			clock.Advance(24 * time.Hour)
			assert.Equal(t, 1, m.Len())
			assert.Zero(t, clock.Pending())
		})
	}
}

func TestManager_Notify_unknown_kind_falls_back_to_info(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	id := m.Notify(toast.Kind("fancy"), "odd", "")
	n, _ := m.Get(id)
	assert.Equal(t, toast.KindInfo, n.Kind)
}

func TestManager_Dismiss_unknown_id_is_noop(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	m.Info("a", "", toast.WithDuration(0))
	m.Info("b", "", toast.WithDuration(0))
	before := m.Active()

	assert.False(t, m.Dismiss("does-not-exist"))
	assert.False(t, m.Dismiss(""))
	assert.Equal(t, before, m.Active())
}

func TestManager_Dismiss_is_idempotent(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	id := m.Info("once", "", toast.WithDuration(0))

	assert.True(t, m.Dismiss(id))
	assert.False(t, m.Dismiss(id))
	assert.Zero(t, m.Len())
}

func TestManager_Dismiss_preserves_order_of_remaining(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	a := m.Info("a", "", toast.WithDuration(0))
	b := m.Info("b", "", toast.WithDuration(0))
	c := m.Info("c", "", toast.WithDuration(0))
	d := m.Info("d", "", toast.WithDuration(0))

	m.Dismiss(c)
	m.Dismiss(a)

	active := m.Active()
	require.Len(t, active, 2)
	assert.Equal(t, b, active[0].ID)
	assert.Equal(t, d, active[1].ID)
}

func TestManager_expiry_removes_exactly_once(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	var events []toast.Event
	m.Subscribe(func(e toast.Event) { events = append(events, e) })

	id := m.Info("timed", "", toast.WithDuration(ms(100)))

	clock.Advance(ms(100))
	assert.Zero(t, m.Len())

	clock.Advance(ms(1000))
	assert.Zero(t, m.Len())

	require.Len(t, events, 2)
	assert.Equal(t, toast.EventAdded, events[0].Type)
	assert.Equal(t, toast.EventExpired, events[1].Type)
	assert.Equal(t, id, events[1].Notification.ID)
}

func TestManager_Dismiss_cancels_pending_removal(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	var events []toast.Event
	m.Subscribe(func(e toast.Event) { events = append(events, e) })

	id := m.Info("cancel me", "", toast.WithDuration(ms(100)))
	other := m.Info("keep", "", toast.WithDuration(0))
	require.Equal(t, 1, clock.Pending())

	clock.Advance(ms(50))
	require.True(t, m.Dismiss(id))
	assert.Zero(t, clock.Pending())

	clock.Advance(ms(500))

	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, other, active[0].ID)

	require.Len(t, events, 3)
	assert.Equal(t, toast.EventDismissed, events[2].Type)
	for _, e := range events {
		assert.NotEqual(t, toast.EventExpired, e.Type)
	}
}

func TestManager_scenario_success_expires(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	m.Notify(toast.KindSuccess, "Saved", "ok", toast.WithDuration(ms(100)))
	assert.Equal(t, 1, m.Len())

	clock.Advance(ms(150))
	assert.Zero(t, m.Len())
}

func TestManager_scenario_loading_persists_until_dismissed(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	x := m.Notify(toast.KindLoading, "Uploading", "", toast.WithDuration(0))
	assert.Equal(t, 1, m.Len())

	clock.Advance(ms(10000))
	assert.Equal(t, 1, m.Len())

	assert.True(t, m.Dismiss(x))
	assert.Zero(t, m.Len())
}

func TestManager_scenario_mixed_durations(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	m.Info("fifty", "", toast.WithDuration(ms(50)))
	sticky := m.Info("zero", "", toast.WithDuration(0))
	m.Info("thirty", "", toast.WithDuration(ms(30)))

	clock.Advance(ms(60))

	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, sticky, active[0].ID)
}

func TestManager_Loading_defaults_to_persistent(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{DefaultDuration: ms(10)})

	id := m.Loading("Uploading", "image.png")
	n, _ := m.Get(id)
	assert.Equal(t, toast.KindLoading, n.Kind)
	assert.True(t, n.Persistent())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, m.Len())
}

func TestManager_Loading_caller_duration_wins(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	m.Loading("Uploading", "", toast.WithDuration(ms(20)))
	clock.Advance(ms(20))
	assert.Zero(t, m.Len())
}

func TestManager_convenience_wrappers_set_kind(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	tests := []struct {
		fn   func(title, message string, opts ...toast.Option) string
		want toast.Kind
	}{
		{m.Success, toast.KindSuccess},
		{m.Error, toast.KindError},
		{m.Info, toast.KindInfo},
		{m.Warning, toast.KindWarning},
		{m.Loading, toast.KindLoading},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			id := tt.fn("title", "message")
			n, ok := m.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, n.Kind)
		})
	}
}

func TestManager_Errorf_formats_message(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	id := m.Errorf("Login failed", "status %d", 401)
	n, _ := m.Get(id)
	assert.Equal(t, toast.KindError, n.Kind)
	assert.Equal(t, "status 401", n.Message)
}

func TestManager_MaxActive_evicts_oldest(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{MaxActive: 3})

	var evicted []string
	m.Subscribe(func(e toast.Event) {
		if e.Type == toast.EventEvicted {
			evicted = append(evicted, e.Notification.Title)
		}
	})

	for i := range 5 {
		m.Info(fmt.Sprint(i), "", toast.WithDuration(ms(100)))
	}

	active := m.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "2", active[0].Title)
	assert.Equal(t, "4", active[2].Title)
	assert.Equal(t, []string{"0", "1"}, evicted)
	assert.Equal(t, 3, clock.Pending())
}

func TestManager_DismissAll(t *testing.T) {
	m, clock := newTestManager(t, toast.Config{})

	m.Info("a", "", toast.WithDuration(ms(10)))
	m.Info("b", "", toast.WithDuration(0))

	m.DismissAll()

	assert.Zero(t, m.Len())
	assert.Zero(t, clock.Pending())
}

func TestManager_Subscribe_unsubscribe(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	calls := 0
	unsubscribe := m.Subscribe(func(toast.Event) { calls++ })

	m.Info("one", "", toast.WithDuration(0))
	unsubscribe()
	m.Info("two", "", toast.WithDuration(0))

	assert.Equal(t, 1, calls)
}

func TestManager_Subscribe_may_reenter(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	m.Subscribe(func(e toast.Event) {
		if e.Type == toast.EventAdded && e.Notification.Kind == toast.KindError {
			m.Dismiss(e.Notification.ID)
		}
	})

	m.Error("gone", "")
	m.Info("stays", "", toast.WithDuration(0))

	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "stays", active[0].Title)
}

func TestManager_Close_stops_timers_and_ignores_notify(t *testing.T) {
	clock := toasttest.NewClock(time.Now())
	m := toast.NewManager(toast.Config{}, clock)

	m.Info("a", "", toast.WithDuration(ms(10)))
	m.Close()

	assert.Zero(t, m.Len())
	assert.Zero(t, clock.Pending())
	assert.Empty(t, m.Info("after close", ""))
	assert.Zero(t, m.Len())
}

func TestManager_concurrent_use_with_real_clock(t *testing.T) {
	m := toast.NewManager(toast.Config{}, nil)
	t.Cleanup(m.Close)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				id := m.Info("x", "", toast.WithDuration(time.Millisecond))
				m.Dismiss(id)
			}
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestManager_events_follow_mutation_order_with_real_clock(t *testing.T) {
	m := toast.NewManager(toast.Config{}, nil)
	t.Cleanup(m.Close)

	var (
		mu      sync.Mutex
		seen    = map[string][]toast.EventType{}
		removed int
	)
	m.Subscribe(func(e toast.Event) {
		mu.Lock()
		defer mu.Unlock()
		seen[e.Notification.ID] = append(seen[e.Notification.ID], e.Type)
		if e.Type != toast.EventAdded {
			removed++
		}
	})

	const n = 2000
	for range n {
		m.Info("x", "", toast.WithDuration(time.Nanosecond))
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return removed == n
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, n)
	for id, types := range seen {
		assert.Equal(t, []toast.EventType{toast.EventAdded, toast.EventExpired}, types, id)
	}
	assert.Zero(t, m.Len())
}

func TestManager_reentrant_events_keep_order(t *testing.T) {
	m, _ := newTestManager(t, toast.Config{})

	var events []toast.EventType
	m.Subscribe(func(e toast.Event) {
		events = append(events, e.Type)
		if e.Type == toast.EventAdded {
			m.Dismiss(e.Notification.ID)
		}
	})
	m.Subscribe(func(e toast.Event) {
		events = append(events, "second:"+e.Type)
	})

	m.Info("bounce", "")

	assert.Equal(t, []toast.EventType{
		toast.EventAdded, "second:" + toast.EventAdded,
		toast.EventDismissed, "second:" + toast.EventDismissed,
	}, events)
	assert.Zero(t, m.Len())
}
