// Package content loads the posts, quests and items shown on the desktop and
// keeps the player's progress through them.
package content

import (
	"strings"
	"time"
)

// Content pillars.
const (
	PillarProgramming  = "programming"
	PillarGrowthCareer = "growth-career"
	PillarSaaSJourney  = "saas-journey"
)

// Pillars lists the pillars in display order.
var Pillars = []string{PillarProgramming, PillarGrowthCareer, PillarSaaSJourney}

// PillarLabel returns the display label of a pillar.
func PillarLabel(pillar string) string {
	switch pillar {
	case PillarProgramming:
		return "Programming"
	case PillarGrowthCareer:
		return "Growth & Career"
	case PillarSaaSJourney:
		return "SaaS Journey"
	default:
		return pillar
	}
}

// Quest types.
const (
	QuestMultipleChoice = "multiple-choice"
	QuestTextInput      = "text-input"
	QuestCallToAction   = "call-to-action"
)

// Item rarities, lowest first.
var Rarities = []string{"common", "uncommon", "rare", "legendary"}

// PostSummary is the list view of a post.
type PostSummary struct {
	Slug          string   `json:"slug" toml:"slug" yaml:"slug"`
	Title         string   `json:"title" toml:"title" yaml:"title"`
	Excerpt       string   `json:"excerpt" toml:"excerpt" yaml:"excerpt"`
	ContentPillar string   `json:"content_pillar" toml:"content_pillar" yaml:"content_pillar"`
	TargetLevel   string   `json:"target_level" toml:"target_level" yaml:"target_level"`
	Author        string   `json:"author" toml:"author" yaml:"author"`
	Tags          []string `json:"tags" toml:"tags" yaml:"tags"`
	ReadXP        int      `json:"read_xp" toml:"read_xp" yaml:"read_xp"`
	Icon          string   `json:"icon" toml:"icon" yaml:"icon"`
	Featured      bool     `json:"featured" toml:"featured" yaml:"featured"`
	Published     *bool    `json:"published,omitempty" toml:"published" yaml:"published"`
	ReadingTime   int      `json:"reading_time" toml:"reading_time" yaml:"reading_time"`
	CreatedAt     string   `json:"created_at" toml:"created_at" yaml:"created_at"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Date parses CreatedAt. The API sends timestamps with or without a zone;
// front matter usually carries a bare date.
func (p PostSummary) Date() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, p.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsPublished reports whether the post should be listed. Posts without an
// explicit flag are published.
func (p PostSummary) IsPublished() bool {
	return p.Published == nil || *p.Published
}

// Post is a full post with its markdown body.
type Post struct {
	PostSummary
	Content string `json:"content"`
	QuestID string `json:"quest_id"`
}

// Quest is a challenge attached to a post.
type Quest struct {
	QuestID       string   `json:"quest_id" toml:"quest_id"`
	Name          string   `json:"name" toml:"name"`
	Description   string   `json:"description" toml:"description"`
	Prompt        string   `json:"prompt" toml:"prompt"`
	QuestType     string   `json:"quest_type" toml:"quest_type"`
	Options       []string `json:"options" toml:"options"`
	CorrectAnswer string   `json:"correct_answer" toml:"correct_answer"`
	XPReward      int      `json:"xp_reward" toml:"xp_reward"`
	ItemReward    string   `json:"item_reward" toml:"item_reward"`
	HostPostSlug  string   `json:"host_post_slug" toml:"host_post_slug"`
	Difficulty    string   `json:"difficulty" toml:"difficulty"`
	// Hint is revealed after repeated wrong answers.
	Hint string `json:"hint" toml:"hint"`
}

// Check reports whether answer solves the quest. Comparison ignores case and
// surrounding space; quests without an answer accept anything.
func (q Quest) Check(answer string) bool {
	if q.CorrectAnswer == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
}

// Item is a collectible.
type Item struct {
	ItemID      string `json:"item_id" toml:"item_id"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
	Icon        string `json:"icon" toml:"icon"`
	Rarity      string `json:"rarity" toml:"rarity"`
	FlavorText  string `json:"flavor_text" toml:"flavor_text"`
}

// Catalog is everything the desktop needs to build its windows.
type Catalog struct {
	Posts  []PostSummary
	Quests []Quest
	Items  []Item
}

// Item looks up an item by id.
func (c Catalog) Item(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ItemID == id {
			return it, true
		}
	}
	return Item{}, false
}

// PostsByPillar returns the posts of one pillar, or all posts for "" or "all".
func (c Catalog) PostsByPillar(pillar string) []PostSummary {
	if pillar == "" || pillar == "all" {
		return c.Posts
	}
	var out []PostSummary
	for _, p := range c.Posts {
		if p.ContentPillar == pillar {
			out = append(out, p)
		}
	}
	return out
}

// ContactMessage is a message left through the contact window.
type ContactMessage struct {
	Name    string `json:"name" toml:"name"`
	Email   string `json:"email" toml:"email"`
	Message string `json:"message" toml:"message"`
}
