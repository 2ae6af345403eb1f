package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports. Rebuilt by SetTheme.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	DividerStyle lipgloss.Style

	// Toast styles, one per kind.
	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastLoadingStyle lipgloss.Style
	ToastTitleStyle   lipgloss.Style

	// Feed styles.
	PostAuthorStyle      lipgloss.Style
	PostTimeStyle        lipgloss.Style
	PostCaptionStyle     lipgloss.Style
	PostPendingStyle     lipgloss.Style
	PostSelectedStyle    lipgloss.Style
	PostNormalStyle      lipgloss.Style
	PostLikedStyle       lipgloss.Style
	PostStatsStyle       lipgloss.Style
	CommentAuthorStyle   lipgloss.Style
	ProfileNameStyle     lipgloss.Style
	ProfileHeadlineStyle lipgloss.Style
	HelpStyle            lipgloss.Style
	ModalStyle           lipgloss.Style
	ModalTitleStyle      lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Surface)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Foreground(p.Foreground).
		Padding(0, 1)
	ToastSuccessStyle = toastBase.BorderForeground(p.Success)
	ToastErrorStyle = toastBase.BorderForeground(p.Error)
	ToastInfoStyle = toastBase.BorderForeground(p.Primary)
	ToastWarningStyle = toastBase.BorderForeground(p.Warning)
	ToastLoadingStyle = toastBase.BorderForeground(p.Secondary)
	ToastTitleStyle = lipgloss.NewStyle().Bold(true)

	PostAuthorStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	PostTimeStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	PostCaptionStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	PostPendingStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)
	PostSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		PaddingLeft(1)
	PostNormalStyle = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder(), false, false, false, true).
		PaddingLeft(1)
	PostLikedStyle = lipgloss.NewStyle().
		Foreground(p.Error)
	PostStatsStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	CommentAuthorStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	ProfileNameStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	ProfileHeadlineStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func hexPtr(c lipgloss.Color) *string {
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	cfg.Document.Color = hexPtr(p.Foreground)
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = hexPtr(p.Foreground)

	cfg.Heading.Color = hexPtr(p.Primary)
	cfg.H1.Color = hexPtr(p.Foreground)
	cfg.H1.BackgroundColor = hexPtr(p.Surface)

	cfg.BlockQuote.Color = hexPtr(p.Muted)
	cfg.HorizontalRule.Color = hexPtr(p.Muted)

	cfg.Link.Color = hexPtr(p.Secondary)
	cfg.LinkText.Color = hexPtr(p.Secondary)

	cfg.Code.Color = hexPtr(p.Secondary)
	cfg.CodeBlock.Color = hexPtr(p.Muted)

	return cfg
}

// FormTheme returns a huh theme built from the active palette.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Secondary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Foreground).Background(p.Surface)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted).Bold(false)

	return t
}
