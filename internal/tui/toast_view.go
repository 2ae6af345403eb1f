package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/core/toast"
)

const toastWidth = 44

// ToastView renders the active toasts and composites them over the screen.
type ToastView struct {
	manager *toast.Manager
	// loadingIcon replaces the static loading glyph, typically with the
	// current spinner frame.
	loadingIcon string
}

func NewToastView(manager *toast.Manager) *ToastView {
	return &ToastView{manager: manager}
}

// SetLoadingIcon sets the glyph drawn on loading toasts.
func (v *ToastView) SetLoadingIcon(icon string) {
	v.loadingIcon = icon
}

// HasToasts reports whether anything is on screen.
func (v *ToastView) HasToasts() bool {
	return v.manager.Len() > 0
}

// View renders the toast stack, oldest at top and newest at bottom.
func (v *ToastView) View() string {
	active := v.manager.Active()
	if len(active) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(active))
	for _, n := range active {
		rendered = append(rendered, v.renderToast(n))
	}
	return strings.Join(rendered, "\n")
}

func (v *ToastView) renderToast(n toast.Notification) string {
	icon, style := toastDecor(n.Kind)
	if n.Kind == toast.KindLoading && v.loadingIcon != "" {
		icon = v.loadingIcon
	}

	content := icon + " " + styles.ToastTitleStyle.Render(n.Title)
	if n.Message != "" {
		content += "\n" + n.Message
	}
	return style.Width(toastWidth).Render(content)
}

func toastDecor(kind toast.Kind) (string, lipgloss.Style) {
	switch kind {
	case toast.KindSuccess:
		return styles.IconToastSuccess, styles.ToastSuccessStyle
	case toast.KindError:
		return styles.IconToastError, styles.ToastErrorStyle
	case toast.KindWarning:
		return styles.IconToastWarning, styles.ToastWarningStyle
	case toast.KindLoading:
		return styles.IconToastLoading, styles.ToastLoadingStyle
	default:
		return styles.IconToastInfo, styles.ToastInfoStyle
	}
}

// Overlay composites the toast stack over background in the lower-right
// corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}

	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-lipgloss.Height(content), 0)
	return placeOverlay(x, y, content, background, height)
}

// placeOverlay draws fg over bg with its top-left corner at (x, y). Background
// cells to the right of fg on covered rows are dropped. bg is padded to
// height rows first.
func placeOverlay(x, y int, fg, bg string, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		left := ansi.Truncate(bgLines[row], x, "")
		pad := max(x-ansi.StringWidth(left), 0)
		bgLines[row] = left + strings.Repeat(" ", pad) + line
	}

	return strings.Join(bgLines, "\n")
}
