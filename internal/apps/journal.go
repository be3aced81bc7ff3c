package apps

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

// Journal lists posts, filtered by pillar.
type Journal struct {
	env    Env
	tab    int // 0 is all pillars, then content.Pillars
	cursor int
	rows   list.Model
}

// postRow is a post as a list item.
type postRow content.PostSummary

func (p postRow) FilterValue() string { return p.Title }

// NewJournal returns the journal list.
func NewJournal(env Env) *Journal {
	return &Journal{env: env, rows: newRowList(2, renderPostRow)}
}

func renderPostRow(item list.Item, selected bool, width int) string {
	p := content.PostSummary(item.(postRow))
	marker := "  "
	title := p.Title
	if selected {
		marker = accent("▸ ")
		title = titleStyle.Render(title)
	}
	if p.Featured {
		title += " " + accent("★")
	}
	return ansi.Truncate(marker+title, width, "…") + "\n" + ansi.Truncate("  "+postMeta(p), width, "…")
}

func (j *Journal) tabs() []string {
	labels := []string{"All"}
	for _, p := range content.Pillars {
		labels = append(labels, content.PillarLabel(p))
	}
	return labels
}

// Pillar returns the active filter, "all" for no filter.
func (j *Journal) Pillar() string {
	if j.tab == 0 {
		return "all"
	}
	return content.Pillars[j.tab-1]
}

// Posts returns the posts shown under the active filter.
func (j *Journal) Posts() []content.PostSummary {
	return j.env.catalog().PostsByPillar(j.Pillar())
}

// Cursor returns the selected row.
func (j *Journal) Cursor() int {
	return j.cursor
}

func (j *Journal) Update(msg tea.KeyPressMsg) tea.Cmd {
	posts := j.Posts()
	j.cursor = min(j.cursor, max(0, len(posts)-1))
	switch {
	case key.Matches(msg, listKeys.Prev):
		j.tab = (j.tab + len(content.Pillars)) % (len(content.Pillars) + 1)
		j.cursor = 0
	case key.Matches(msg, listKeys.Next):
		j.tab = (j.tab + 1) % (len(content.Pillars) + 1)
		j.cursor = 0
	case key.Matches(msg, listKeys.Up):
		if j.cursor > 0 {
			j.cursor--
		}
	case key.Matches(msg, listKeys.Down):
		if j.cursor < len(posts)-1 {
			j.cursor++
		}
	case key.Matches(msg, listKeys.Top):
		j.cursor = 0
	case key.Matches(msg, listKeys.Bottom):
		j.cursor = max(0, len(posts)-1)
	case key.Matches(msg, listKeys.Open):
		if j.cursor < len(posts) {
			return send(OpenPostMsg{Slug: posts[j.cursor].Slug})
		}
	}
	return nil
}

func (j *Journal) View(width, height int) string {
	var b strings.Builder
	b.WriteString(tabBar(j.tabs(), j.tab))
	b.WriteString("\n\n")

	posts := j.Posts()
	if len(posts) == 0 {
		b.WriteString(muted("No posts here yet."))
		return b.String()
	}
	j.cursor = min(j.cursor, len(posts)-1)

	items := make([]list.Item, len(posts))
	for i, p := range posts {
		items[i] = postRow(p)
	}
	b.WriteString(showRows(&j.rows, items, j.cursor, width, max(2, height-2)))
	return b.String()
}

// postMeta is the one-line summary under a post title.
func postMeta(p content.PostSummary) string {
	var parts []string
	if p.ContentPillar != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.Pillar(p.ContentPillar)).
			Render(content.PillarLabel(p.ContentPillar)))
	}
	if p.TargetLevel != "" {
		parts = append(parts, muted(p.TargetLevel))
	}
	if p.ReadXP > 0 {
		parts = append(parts, accent(fmt.Sprintf("+%d XP", p.ReadXP)))
	}
	if p.ReadingTime > 0 {
		parts = append(parts, muted(fmt.Sprintf("%d min read", p.ReadingTime)))
	}
	return strings.Join(parts, muted(" · "))
}
