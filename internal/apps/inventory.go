package apps

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

// Inventory lists the items the player collected.
type Inventory struct {
	env    Env
	filter int // 0 is all, then content.Rarities
	cursor int
	rows   list.Model
}

// itemRow is an item as a list item.
type itemRow content.Item

func (it itemRow) FilterValue() string { return it.Name }

// NewInventory returns the inventory window.
func NewInventory(env Env) *Inventory {
	return &Inventory{env: env, rows: newRowList(1, renderItemRow)}
}

func renderItemRow(item list.Item, selected bool, width int) string {
	it := item.(itemRow)
	dot := lipgloss.NewStyle().Foreground(theme.Rarity(it.Rarity)).Render("●")
	name := it.Name
	if selected {
		name = titleStyle.Render(name)
		dot = accent("▸") + dot
	} else {
		dot = " " + dot
	}
	return ansi.Truncate(dot+" "+name, width-1, "…")
}

// Rarity returns the active filter.
func (inv *Inventory) Rarity() string {
	if inv.filter == 0 {
		return "all"
	}
	return content.Rarities[inv.filter-1]
}

// Items returns the owned items matching the filter, in the order they were
// earned.
func (inv *Inventory) Items() []content.Item {
	if inv.env.Progress == nil {
		return nil
	}
	cat := inv.env.catalog()
	var out []content.Item
	for _, id := range inv.env.Progress.Items() {
		item, ok := cat.Item(id)
		if !ok {
			item = content.Item{ItemID: id, Name: id, Rarity: "common"}
		}
		if inv.filter == 0 || strings.EqualFold(item.Rarity, inv.Rarity()) {
			out = append(out, item)
		}
	}
	return out
}

func (inv *Inventory) Update(msg tea.KeyPressMsg) tea.Cmd {
	n := len(content.Rarities) + 1
	items := inv.Items()
	switch {
	case key.Matches(msg, listKeys.Prev):
		inv.filter = (inv.filter + n - 1) % n
		inv.cursor = 0
	case key.Matches(msg, listKeys.Next):
		inv.filter = (inv.filter + 1) % n
		inv.cursor = 0
	case key.Matches(msg, listKeys.Up):
		inv.cursor = max(0, inv.cursor-1)
	case key.Matches(msg, listKeys.Down):
		inv.cursor = max(0, min(inv.cursor+1, len(items)-1))
	case key.Matches(msg, listKeys.Top):
		inv.cursor = 0
	case key.Matches(msg, listKeys.Bottom):
		inv.cursor = max(0, len(items)-1)
	}
	return nil
}

func (inv *Inventory) View(width, height int) string {
	labels := []string{"All"}
	for _, r := range content.Rarities {
		labels = append(labels, strings.ToUpper(r[:1])+r[1:])
	}
	head := tabBar(labels, inv.filter)

	items := inv.Items()
	if len(items) == 0 {
		return head + "\n\n" + muted("No items yet. Complete quests to earn loot.")
	}
	inv.cursor = min(inv.cursor, len(items)-1)

	listWidth := width
	sideBySide := width >= 48
	if sideBySide {
		listWidth = width / 2
	}

	rows := make([]list.Item, len(items))
	for i, it := range items {
		rows[i] = itemRow(it)
	}
	listView := showRows(&inv.rows, rows, inv.cursor, listWidth, max(1, height-2))

	if !sideBySide {
		return head + "\n\n" + listView + "\n\n" + itemDetails(items[inv.cursor], width)
	}
	left := lipgloss.NewStyle().Width(listWidth).Render(listView)
	details := itemDetails(items[inv.cursor], width-listWidth-2)
	return head + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", details)
}

func itemDetails(it content.Item, width int) string {
	if width <= 0 {
		return ""
	}
	lines := []string{
		titleStyle.Render(ansi.Truncate(it.Name, width, "…")),
		lipgloss.NewStyle().Foreground(theme.Rarity(it.Rarity)).Render(strings.ToUpper(it.Rarity)),
	}
	if it.Description != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(it.Description, width)...)
	}
	if it.FlavorText != "" {
		lines = append(lines, "")
		for _, l := range wrap("\""+it.FlavorText+"\"", width) {
			lines = append(lines, lipgloss.NewStyle().Italic(true).Foreground(theme.Muted()).Render(l))
		}
	}
	return strings.Join(lines, "\n")
}
