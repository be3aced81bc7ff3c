package apps

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

// PostReader shows one post and lets the player claim its XP.
type PostReader struct {
	env  Env
	post content.Post

	body viewport.Model

	guestDismissed bool
	status         string
}

// NewPostReader returns a reader for post.
func NewPostReader(env Env, post content.Post) *PostReader {
	return &PostReader{env: env, post: post, body: viewport.New()}
}

// ScrollPercent reports how far through the body the reader is.
func (p *PostReader) ScrollPercent() float64 {
	return p.body.ScrollPercent()
}

// Post returns the post being read.
func (p *PostReader) Post() content.Post {
	return p.post
}

// Status returns the last claim result shown in the footer.
func (p *PostReader) Status() string {
	return p.status
}

// Claimed reports whether the post's XP was claimed this session.
func (p *PostReader) Claimed() bool {
	return p.env.Progress != nil && p.env.Progress.HasClaimed(p.post.Slug)
}

// BeforeClose keeps the window open while a logged in player has XP left to
// claim.
func (p *PostReader) BeforeClose() bool {
	if !p.env.authenticated() || p.post.ReadXP <= 0 {
		return true
	}
	return p.Claimed()
}

// Claim awards the post's XP.
func (p *PostReader) Claim() tea.Cmd {
	if !p.env.authenticated() || p.env.Progress == nil {
		p.status = "Log in to claim XP"
		return send(OpenAppMsg{ID: LoginID})
	}
	level := p.env.Progress.Level()
	awarded := p.env.Progress.ClaimPost(p.post.Slug, p.post.ReadXP)
	if awarded == 0 {
		p.status = "Already claimed!"
		return nil
	}
	p.status = fmt.Sprintf("+%d XP claimed!", awarded)
	p.env.logger().Debug("post xp claimed", "slug", p.post.Slug, "xp", awarded)
	return withLevelUp(p.env, level, notify(NotifySuccess, fmt.Sprintf("XP Claimed! +%d XP", awarded)))
}

func (p *PostReader) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		p.body.ScrollUp(1)
	case "down", "j":
		p.body.ScrollDown(1)
	case "pgup", "b":
		p.body.PageUp()
	case "pgdown", "space", "f":
		p.body.PageDown()
	case "home", "g":
		p.body.GotoTop()
	case "end", "G":
		p.body.GotoBottom()
	case "c":
		return p.Claim()
	case "l":
		if !p.env.authenticated() {
			return send(OpenAppMsg{ID: LoginID})
		}
	case "x":
		p.guestDismissed = true
	case "q":
		if p.post.QuestID != "" && p.env.authenticated() {
			return send(OpenAppMsg{ID: QuestsID, Select: p.post.QuestID})
		}
	}
	return nil
}

func (p *PostReader) header(width int) []string {
	s := p.post.PostSummary
	lines := []string{titleStyle.Render(ansi.Truncate(s.Title, width, "…"))}
	if meta := postMeta(s); meta != "" {
		lines = append(lines, ansi.Truncate(meta, width, "…"))
	}

	var byline []string
	if s.Author != "" {
		byline = append(byline, "By "+s.Author)
	}
	if d, ok := s.Date(); ok {
		byline = append(byline, d.Format("Jan 2, 2006"))
	}
	if len(s.Tags) > 0 {
		byline = append(byline, "#"+strings.Join(s.Tags, " #"))
	}
	if len(byline) > 0 {
		lines = append(lines, muted(ansi.Truncate(strings.Join(byline, " · "), width, "…")))
	}
	if s.Excerpt != "" {
		for _, l := range wrap(s.Excerpt, width) {
			lines = append(lines, lipgloss.NewStyle().Italic(true).Render(l))
		}
	}

	if !p.env.authenticated() && s.ReadXP > 0 && !p.guestDismissed {
		warn := lipgloss.NewStyle().Foreground(theme.NotificationWarning())
		msg := fmt.Sprintf("You're not logged in. You'll miss out on +%d XP for reading this post.", s.ReadXP)
		for _, l := range wrap(msg, width) {
			lines = append(lines, warn.Render(l))
		}
		lines = append(lines, button("l", "Log In")+"  "+button("x", "Continue Without XP"))
	}
	return append(lines, muted(strings.Repeat("─", max(0, width))))
}

func (p *PostReader) footer() string {
	if p.status != "" {
		return accent(p.status)
	}
	var parts []string
	if p.post.ReadXP > 0 {
		if p.Claimed() {
			parts = append(parts, muted("XP claimed"))
		} else {
			parts = append(parts, button("c", fmt.Sprintf("Claim +%d XP", p.post.ReadXP)))
		}
	}
	if p.post.QuestID != "" && p.env.authenticated() {
		parts = append(parts, button("q", "Quest"))
	}
	return strings.Join(parts, "  ")
}

func (p *PostReader) View(width, height int) string {
	head := p.header(width)
	foot := p.footer()

	bodyHeight := height - len(head)
	if foot != "" {
		bodyHeight--
	}
	bodyHeight = max(1, bodyHeight)

	p.body.SetWidth(width)
	p.body.SetHeight(bodyHeight)
	p.body.SetContent(strings.Join(wrap(p.post.Content, width), "\n"))

	out := append([]string{}, head...)
	out = append(out, p.body.View())
	if foot != "" {
		out = append(out, foot)
	}
	return strings.Join(out, "\n")
}
