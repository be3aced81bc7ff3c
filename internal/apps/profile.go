package apps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

// Profile shows the player's level and progress.
type Profile struct {
	env Env
}

// NewProfile returns the profile window.
func NewProfile(env Env) *Profile {
	return &Profile{env: env}
}

func (p *Profile) Update(tea.KeyPressMsg) tea.Cmd { return nil }

func (p *Profile) View(width, height int) string {
	if p.env.Session == nil {
		return muted("Not logged in.")
	}
	user, ok := p.env.Session.User()
	if !ok {
		return muted("Not logged in.")
	}
	prog := p.env.Progress
	if prog == nil {
		prog = content.NewProgress()
	}

	cur, need := prog.LevelProgress()
	posts, quests := prog.Counts()

	lines := []string{
		titleStyle.Render(user.Username),
		accent(fmt.Sprintf("Level %d", prog.Level())),
		"",
		xpBar(cur, need, max(10, min(width-2, 40))),
		muted(fmt.Sprintf("%d / %d XP to level %d (%d total)", cur, need, prog.Level()+1, prog.XP())),
		"",
		fmt.Sprintf("Posts read      %d", posts),
		fmt.Sprintf("Quests done     %d", quests),
		fmt.Sprintf("Items collected %d", len(prog.Items())),
	}
	return strings.Join(lines, "\n")
}

// xpBar draws a progress bar width cells wide.
func xpBar(cur, need, width int) string {
	filled := 0
	if need > 0 {
		filled = min(width, cur*width/need)
	}
	on := lipgloss.NewStyle().Foreground(theme.Accent()).Render(strings.Repeat("█", filled))
	off := lipgloss.NewStyle().Foreground(theme.Muted()).Render(strings.Repeat("░", width-filled))
	return on + off
}
