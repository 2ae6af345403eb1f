package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/thinkthread/internal/core/notify"
	"github.com/colonyops/thinkthread/internal/core/toast"
	"github.com/colonyops/thinkthread/pkg/tuitest"
)

func TestNotificationModal_empty(t *testing.T) {
	m := NewNotificationModal(notify.NewHistory(0), 100, 40)
	out := tuitest.StripANSI(m.Overlay(100, 40))

	assert.Contains(t, out, "Notifications")
	assert.Contains(t, out, "No notifications")

	nilHistory := NewNotificationModal(nil, 100, 40)
	assert.Contains(t, tuitest.StripANSI(nilHistory.Overlay(100, 40)), "No notifications")
}

func TestNotificationModal_listsNewestFirstWithOutcome(t *testing.T) {
	mgr, clock := newTestManager(t)
	history := notify.NewHistory(0)
	history.Attach(mgr)

	mgr.Error("Failed to load posts", "connection refused")
	clock.Advance(toast.DefaultDuration)
	mgr.Loading("Publishing post", "")

	m := NewNotificationModal(history, 100, 40)
	out := tuitest.StripANSI(m.Overlay(100, 40))

	assert.Contains(t, out, "Failed to load posts: connection refused")
	assert.Contains(t, out, "(expired)")
	assert.Contains(t, out, "(active)")
	assert.Less(t, strings.Index(out, "Publishing post"), strings.Index(out, "Failed to load posts"))
}

func TestNotificationModal_refreshAndClear(t *testing.T) {
	mgr, _ := newTestManager(t)
	history := notify.NewHistory(0)
	history.Attach(mgr)

	m := NewNotificationModal(history, 100, 40)
	mgr.Success("Post created successfully!", "")
	assert.NotContains(t, tuitest.StripANSI(m.Overlay(100, 40)), "Post created")

	m.refreshContent()
	assert.Contains(t, tuitest.StripANSI(m.Overlay(100, 40)), "Post created successfully!")

	m.Clear()
	assert.Zero(t, history.Count())
	assert.Contains(t, tuitest.StripANSI(m.Overlay(100, 40)), "No notifications")
}

func TestCalcNotificationModalWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "wide terminal uses percentage", width: 200, want: 130},
		{name: "minimum width", width: 80, want: 60},
		{name: "narrow terminal capped by margin", width: 50, want: 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calcNotificationModalWidth(tt.width))
		})
	}
}
