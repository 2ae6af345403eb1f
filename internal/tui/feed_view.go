package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/pkg/kv"
)

const detailCacheSize = 64

// cardContext carries what a post card needs besides the post itself.
type cardContext struct {
	userID   string
	width    int
	now      time.Time
	imageURL func(string) string
}

// renderCard renders a post as it appears in the feed list.
func renderCard(p feed.Post, selected bool, cc cardContext) string {
	header := styles.PostAuthorStyle.Render(p.Author.DisplayName()) +
		styles.PostTimeStyle.Render(" "+iconDot+" "+feed.TimeAgo(cc.now, p.CreatedAt))
	if p.Pending {
		header += styles.PostPendingStyle.Render(" " + styles.IconPending + " posting…")
	}

	lines := []string{header}

	if p.Author.Title != "" {
		lines = append(lines, styles.ProfileHeadlineStyle.Render(p.Author.Title))
	}

	if caption := strings.TrimSpace(p.Caption); caption != "" {
		wrapped := lipgloss.NewStyle().Width(max(cc.width-4, 10)).Render(caption)
		lines = append(lines, styles.PostCaptionStyle.Render(clampLines(wrapped, 3)))
	}

	if p.Image != "" {
		lines = append(lines, styles.MutedStyle.Render(styles.IconImage+" "+cc.imageURL(p.Image)))
	}

	lines = append(lines, renderStats(p, cc.userID))

	card := strings.Join(lines, "\n")
	if selected {
		return styles.PostSelectedStyle.Render(card)
	}
	return styles.PostNormalStyle.Render(card)
}

func renderStats(p feed.Post, userID string) string {
	heart := styles.PostStatsStyle.Render(styles.IconHeartOutline)
	if p.LikedBy(userID) {
		heart = styles.PostLikedStyle.Render(styles.IconHeart)
	}
	return heart + styles.PostStatsStyle.Render(fmt.Sprintf(" %d   %s %d", p.LikeCount(), styles.IconComment, len(p.Comments)))
}

// clampLines keeps the first n lines of s and marks the cut with an ellipsis.
func clampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "…"
}

// renderList renders as many cards as fit in height, starting at offset.
// It returns the rendered list and the offset actually used, adjusted so the
// cursor stays visible.
func renderList(posts []feed.Post, cursor, offset, height int, cc cardContext) (string, int) {
	if len(posts) == 0 {
		return styles.MutedStyle.Render("No posts yet. Press c to share something."), 0
	}

	cursor = min(max(cursor, 0), len(posts)-1)
	offset = min(max(offset, 0), cursor)

	cards := make([]string, len(posts))
	heights := make([]int, len(posts))
	for i := offset; i <= cursor; i++ {
		cards[i] = renderCard(posts[i], i == cursor, cc)
		heights[i] = lipgloss.Height(cards[i]) + 1
	}

	// Scroll down until the cursor card fits.
	used := 0
	for i := offset; i <= cursor; i++ {
		used += heights[i]
	}
	for used > height && offset < cursor {
		used -= heights[offset]
		offset++
	}

	var b strings.Builder
	used = 0
	for i := offset; i < len(posts); i++ {
		if cards[i] == "" {
			cards[i] = renderCard(posts[i], i == cursor, cc)
			heights[i] = lipgloss.Height(cards[i]) + 1
		}
		if used+heights[i] > height && i > cursor {
			break
		}
		b.WriteString(cards[i])
		b.WriteString("\n\n")
		used += heights[i]
	}

	return strings.TrimRight(b.String(), "\n"), offset
}

// detailMarkdown builds the markdown shown in the post detail view.
func detailMarkdown(p feed.Post, cc cardContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Author.DisplayName())
	meta := feed.TimeAgo(cc.now, p.CreatedAt)
	if p.Author.Title != "" {
		meta = p.Author.Title + " · " + meta
	}
	if p.Pending {
		meta += " · posting…"
	}
	fmt.Fprintf(&b, "*%s*\n\n", meta)

	if caption := strings.TrimSpace(p.Caption); caption != "" {
		b.WriteString(caption)
		b.WriteString("\n\n")
	}

	if p.Image != "" {
		fmt.Fprintf(&b, "Image: <%s>\n\n", cc.imageURL(p.Image))
	}

	liked := ""
	if p.LikedBy(cc.userID) {
		liked = " (including you)"
	}
	fmt.Fprintf(&b, "---\n\n**%d likes**%s · **%d comments**\n\n", p.LikeCount(), liked, len(p.Comments))

	if len(p.Comments) > 0 {
		b.WriteString("## Comments\n\n")
		for _, c := range p.Comments {
			suffix := ""
			if c.Pending {
				suffix = " *(sending)*"
			}
			fmt.Fprintf(&b, "- **%s** · %s%s\n  %s\n", c.Author.DisplayName(), feed.TimeAgo(cc.now, c.CreatedAt), suffix, c.Text)
		}
	}

	return b.String()
}

// detailRenderer renders markdown with glamour, caching output by width and
// content.
type detailRenderer struct {
	cache     *kv.Store[string, string]
	renderers map[int]*glamour.TermRenderer
}

func newDetailRenderer() *detailRenderer {
	return &detailRenderer{
		cache:     kv.New[string, string](detailCacheSize),
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

func (r *detailRenderer) Render(md string, width int) string {
	width = max(width, 20)
	key := fmt.Sprintf("%d\x00%s", width, md)

	return r.cache.GetOrCompute(key, func() string {
		tr, err := r.renderer(width)
		if err != nil {
			log.Warn().Err(err).Msg("glamour renderer unavailable, showing raw markdown")
			return md
		}
		out, err := tr.Render(md)
		if err != nil {
			log.Warn().Err(err).Msg("failed to render post detail")
			return md
		}
		return strings.TrimRight(out, "\n")
	})
}

func (r *detailRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}
