package content

import (
	"math"
	"slices"
	"sync"
	"time"
)

const (
	// HintAfter is the number of wrong answers that reveals a quest's hint.
	HintAfter = 2
	// CooldownStep is the wait added for each wrong answer after the first.
	CooldownStep = 5 * time.Second
	// MaxCooldown caps the wait between answers.
	MaxCooldown = 30 * time.Second
)

// XPForLevel returns the total XP needed to reach level. Each level costs
// floor(n^1.5 * 100) more than the last: 100, 282, 519, ...
func XPForLevel(level int) int {
	total := 0
	for n := 1; n < level; n++ {
		total += int(math.Floor(math.Pow(float64(n), 1.5) * 100))
	}
	return total
}

// LevelForXP returns the level reached with xp.
func LevelForXP(xp int) int {
	level := 1
	for XPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// Progress is the player's XP, read posts, completed quests and collected
// items for one session.
type Progress struct {
	// Now is the clock used for answer cooldowns.
	Now func() time.Time

	mu       sync.Mutex
	xp       int
	posts    map[string]bool
	quests   map[string]bool
	attempts map[string]Attempts
	items    []string
}

// Attempts is the answer history of one quest.
type Attempts struct {
	Count  int
	Failed int
	// Until is when the next answer is accepted.
	Until time.Time
}

// ShowHint reports whether enough answers failed to reveal the hint.
func (a Attempts) ShowHint() bool {
	return a.Failed >= HintAfter
}

// NewProgress returns an empty ledger.
func NewProgress() *Progress {
	return &Progress{
		Now:      time.Now,
		posts:    make(map[string]bool),
		quests:   make(map[string]bool),
		attempts: make(map[string]Attempts),
	}
}

func (p *Progress) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// ClaimPost awards the read XP of a post once. It returns the XP awarded,
// which is 0 for a post that was already claimed.
func (p *Progress) ClaimPost(slug string, xp int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.posts[slug] {
		return 0
	}
	p.posts[slug] = true
	p.xp += max(xp, 0)
	return max(xp, 0)
}

// HasClaimed reports whether the post's XP was claimed.
func (p *Progress) HasClaimed(slug string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posts[slug]
}

// CompleteQuest awards a quest's XP and item once. It returns the XP
// awarded and the item id granted, both zero for a repeated completion.
func (p *Progress) CompleteQuest(q Quest) (xp int, item string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.quests[q.QuestID] {
		return 0, ""
	}
	p.quests[q.QuestID] = true
	xp = max(q.XPReward, 0)
	p.xp += xp
	if q.ItemReward != "" && !slices.Contains(p.items, q.ItemReward) {
		p.items = append(p.items, q.ItemReward)
		item = q.ItemReward
	}
	return xp, item
}

// Attempts returns the answer history of a quest.
func (p *Progress) Attempts(questID string) Attempts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts[questID]
}

// Cooldown returns how long until the quest accepts another answer.
func (p *Progress) Cooldown(questID string) time.Duration {
	p.mu.Lock()
	until := p.attempts[questID].Until
	p.mu.Unlock()
	return max(0, until.Sub(p.now()))
}

// RecordAttempt counts an answer. Every wrong answer after the first starts
// a cooldown that grows by CooldownStep up to MaxCooldown.
func (p *Progress) RecordAttempt(questID string, correct bool) Attempts {
	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()
	a := p.attempts[questID]
	a.Count++
	if !correct {
		a.Failed++
		if a.Failed > 1 {
			a.Until = now.Add(min(MaxCooldown, time.Duration(a.Failed-1)*CooldownStep))
		}
	}
	p.attempts[questID] = a
	return a
}

// QuestDone reports whether the quest was completed.
func (p *Progress) QuestDone(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quests[id]
}

// XP returns the total XP.
func (p *Progress) XP() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.xp
}

// Level returns the current level.
func (p *Progress) Level() int {
	return LevelForXP(p.XP())
}

// LevelProgress returns the XP earned inside the current level and the XP
// the level spans.
func (p *Progress) LevelProgress() (current, needed int) {
	xp := p.XP()
	level := LevelForXP(xp)
	floor := XPForLevel(level)
	return xp - floor, XPForLevel(level+1) - floor
}

// Items returns the collected item ids in the order they were earned.
func (p *Progress) Items() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.items)
}

// Owns reports whether the item was collected.
func (p *Progress) Owns(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Contains(p.items, id)
}

// Counts returns how many posts were read and quests completed.
func (p *Progress) Counts() (posts, quests int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.posts), len(p.quests)
}
