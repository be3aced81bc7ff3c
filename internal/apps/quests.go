package apps

import (
	"fmt"
	"math"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

// QuestLog lists quests and takes answers.
type QuestLog struct {
	env    Env
	cursor int

	answering bool
	choice    int
	input     textField
	status    string
	rows      list.Model
}

// questRow is a quest as a list item.
type questRow struct {
	content.Quest
	done bool
}

func (r questRow) FilterValue() string { return r.Name }

func renderQuestRow(item list.Item, selected bool, width int) string {
	r := item.(questRow)
	check := "[ ]"
	if r.done {
		check = accent("[✓]")
	}
	name := r.Name
	marker := "  "
	if selected {
		marker = accent("▸ ")
		name = titleStyle.Render(name)
	}
	line := fmt.Sprintf("%s%s %s %s %s", marker, check, name, difficulty(r.Difficulty), accent(fmt.Sprintf("+%d XP", r.XPReward)))
	return ansi.Truncate(line, width, "…")
}

// NewQuestLog returns the quest log.
func NewQuestLog(env Env) *QuestLog {
	q := &QuestLog{env: env, input: newTextField("Your answer", 200, false), rows: newRowList(1, renderQuestRow)}
	q.input.focus()
	return q
}

// Quests returns the quests in catalog order.
func (q *QuestLog) Quests() []content.Quest {
	return q.env.catalog().Quests
}

// Selected returns the quest under the cursor.
func (q *QuestLog) Selected() (content.Quest, bool) {
	quests := q.Quests()
	if q.cursor < 0 || q.cursor >= len(quests) {
		return content.Quest{}, false
	}
	return quests[q.cursor], true
}

// Answering reports whether the answer form is open.
func (q *QuestLog) Answering() bool {
	return q.answering
}

// Status returns the result of the last answer.
func (q *QuestLog) Status() string {
	return q.status
}

// Select moves the cursor to the quest with id.
func (q *QuestLog) Select(id string) {
	for i, quest := range q.Quests() {
		if quest.QuestID == id {
			q.cursor = i
			q.answering = false
			q.status = ""
			return
		}
	}
}

func (q *QuestLog) done(id string) bool {
	return q.env.Progress != nil && q.env.Progress.QuestDone(id)
}

var openPostKey = key.NewBinding(key.WithKeys("o"))

func (q *QuestLog) Update(msg tea.KeyPressMsg) tea.Cmd {
	if q.answering {
		return q.updateAnswer(msg)
	}
	quests := q.Quests()
	switch {
	case key.Matches(msg, listKeys.Up):
		q.cursor = max(0, q.cursor-1)
		q.status = ""
	case key.Matches(msg, listKeys.Down):
		q.cursor = max(0, min(q.cursor+1, len(quests)-1))
		q.status = ""
	case key.Matches(msg, listKeys.Open):
		quest, ok := q.Selected()
		if !ok {
			return nil
		}
		if q.done(quest.QuestID) {
			q.status = "Quest already completed"
			return nil
		}
		q.answering = true
		q.choice = 0
		q.input.Reset()
		q.status = ""
	case key.Matches(msg, openPostKey):
		if quest, ok := q.Selected(); ok && quest.HostPostSlug != "" {
			return send(OpenPostMsg{Slug: quest.HostPostSlug})
		}
	}
	return nil
}

func (q *QuestLog) updateAnswer(msg tea.KeyPressMsg) tea.Cmd {
	quest, ok := q.Selected()
	if !ok {
		q.answering = false
		return nil
	}
	key := msg.String()
	if key == "esc" {
		q.answering = false
		return nil
	}

	switch quest.QuestType {
	case content.QuestMultipleChoice:
		switch key {
		case "up", "k":
			q.choice = max(0, q.choice-1)
		case "down", "j":
			q.choice = max(0, min(q.choice+1, len(quest.Options)-1))
		case "enter":
			if len(quest.Options) == 0 {
				return q.submit(quest, "")
			}
			return q.submit(quest, quest.Options[q.choice])
		}
	case content.QuestTextInput:
		if key == "enter" {
			return q.submit(quest, q.input.Value())
		}
		q.input.update(msg)
	default:
		if key == "enter" {
			return q.submit(quest, "")
		}
	}
	return nil
}

func (q *QuestLog) submit(quest content.Quest, answer string) tea.Cmd {
	progress := q.env.Progress
	if progress != nil {
		if wait := progress.Cooldown(quest.QuestID); wait > 0 {
			q.status = fmt.Sprintf("Wait %ds before answering again", int(math.Ceil(wait.Seconds())))
			return nil
		}
	}
	correct := quest.Check(answer)
	if progress != nil {
		progress.RecordAttempt(quest.QuestID, correct)
	}
	if !correct {
		q.status = "Not quite. Try again!"
		return notify(NotifyWarning, "Wrong answer for "+quest.Name)
	}
	q.answering = false
	if progress == nil {
		q.status = "Quest complete!"
		return nil
	}
	level := progress.Level()
	xp, itemID := progress.CompleteQuest(quest)
	q.status = fmt.Sprintf("Quest complete! +%d XP", xp)
	q.env.logger().Debug("quest completed", "quest", quest.QuestID, "xp", xp, "item", itemID)

	text := fmt.Sprintf("Quest complete! +%d XP", xp)
	if itemID != "" {
		name := itemID
		if item, ok := q.env.catalog().Item(itemID); ok {
			name = item.Name
		}
		text += " and " + name
	}
	return withLevelUp(q.env, level, notify(NotifySuccess, text))
}

func difficulty(d string) string {
	c := theme.NotificationSuccess()
	switch strings.ToLower(d) {
	case "medium":
		c = theme.NotificationWarning()
	case "hard":
		c = theme.NotificationError()
	case "":
		return ""
	}
	return lipgloss.NewStyle().Foreground(c).Render(d)
}

func (q *QuestLog) View(width, height int) string {
	quests := q.Quests()
	if len(quests) == 0 {
		return muted("No quests available.")
	}
	q.cursor = min(q.cursor, len(quests)-1)
	if q.answering {
		return q.viewAnswer(quests[q.cursor], width)
	}

	items := make([]list.Item, len(quests))
	for i, quest := range quests {
		items[i] = questRow{Quest: quest, done: q.done(quest.QuestID)}
	}
	lines := []string{showRows(&q.rows, items, q.cursor, width, max(1, height-2))}
	lines = append(lines, "")
	if q.status != "" {
		lines = append(lines, accent(q.status))
	} else {
		lines = append(lines, button("enter", "Attempt")+"  "+button("o", "Open post"))
	}
	return strings.Join(lines, "\n")
}

func (q *QuestLog) viewAnswer(quest content.Quest, width int) string {
	lines := []string{titleStyle.Render(quest.Name)}
	if quest.Description != "" {
		lines = append(lines, wrap(quest.Description, width)...)
	}
	if quest.Prompt != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(quest.Prompt, width)...)
	}
	lines = append(lines, "")

	switch quest.QuestType {
	case content.QuestMultipleChoice:
		for i, opt := range quest.Options {
			if i == q.choice {
				lines = append(lines, accent("(•) ")+opt)
			} else {
				lines = append(lines, muted("( ) ")+opt)
			}
		}
	case content.QuestTextInput:
		lines = append(lines, q.input.view(width))
	default:
		lines = append(lines, button("enter", "Mark as done"))
	}

	lines = append(lines, "")
	if q.env.Progress != nil {
		a := q.env.Progress.Attempts(quest.QuestID)
		if a.ShowHint() && quest.Hint != "" {
			for _, l := range wrap("Hint: "+quest.Hint, width) {
				lines = append(lines, lipgloss.NewStyle().Foreground(theme.NotificationWarning()).Render(l))
			}
		}
		if a.Count > 0 {
			info := fmt.Sprintf("Attempts: %d", a.Count)
			if wait := q.env.Progress.Cooldown(quest.QuestID); wait > 0 {
				info += fmt.Sprintf(" · next answer in %ds", int(math.Ceil(wait.Seconds())))
			}
			lines = append(lines, muted(info))
		}
	}
	if q.status != "" {
		lines = append(lines, accent(q.status))
	}
	lines = append(lines, muted("enter submit · esc back"))
	return strings.Join(lines, "\n")
}
