package apps

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

type aboutSection struct {
	title string
	body  string
}

var aboutSections = []aboutSection{
	{"The Quest", "This journal documents a developer's path from writing code to building products. Every post is a step on that road, and every step earns experience."},
	{"Current Class", "Full-stack developer. Specializing in backend systems, developer tooling and shipping small SaaS products."},
	{"Skill Tree", "Programming: languages, systems and the craft of code.\nGrowth & Career: habits, learning and the job itself.\nSaaS Journey: building, launching and running a product."},
	{"What You'll Find Here", "Posts tagged by level so you can start where you are. Quests that test what you read. Items to collect along the way."},
}

// About is a static page.
type About struct {
	offset int
}

// NewAbout returns the about window.
func NewAbout() *About {
	return &About{}
}

func (a *About) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		a.offset = max(0, a.offset-1)
	case "down", "j":
		a.offset++
	case "home", "g":
		a.offset = 0
	}
	return nil
}

func (a *About) View(width, height int) string {
	var lines []string
	for i, s := range aboutSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, accent(s.title))
		for _, para := range strings.Split(s.body, "\n") {
			lines = append(lines, wrap(para, width)...)
		}
	}
	a.offset = min(a.offset, max(0, len(lines)-height))
	return strings.Join(lines[a.offset:], "\n")
}
