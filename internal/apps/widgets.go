package apps

import (
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

func accent(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Accent()).Bold(true).Render(s)
}

func muted(s string) string {
	return mutedStyle.Foreground(theme.Muted()).Render(s)
}

// textField is a labelled single-line textinput.
type textField struct {
	Label string
	input textinput.Model
}

func newTextField(label string, limit int, secret bool) textField {
	in := textinput.New()
	in.Prompt = "  "
	in.CharLimit = limit
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return textField{Label: label, input: in}
}

func (f *textField) Value() string {
	return f.input.Value()
}

func (f *textField) Reset() {
	f.input.Reset()
}

// update feeds msg to the input. Blink commands are dropped, so a focused
// cursor stays solid.
func (f *textField) update(msg tea.Msg) {
	f.input, _ = f.input.Update(msg)
}

func (f *textField) view(width int) string {
	label := muted(f.Label)
	if f.input.Focused() {
		label = accent(f.Label)
	}
	f.input.SetWidth(max(1, width-len(f.input.Prompt)-1))
	return label + "\n" + f.input.View()
}

func (f *textField) focus() {
	f.input.Focus()
}

// focusField focuses fields[i] and blurs the rest.
func focusField(fields []textField, i int) {
	for j := range fields {
		if j == i {
			fields[j].focus()
		} else {
			fields[j].input.Blur()
		}
	}
}

// tabBar renders labels with the active one highlighted.
func tabBar(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = accent("[" + l + "]")
		} else {
			parts[i] = muted(" " + l + " ")
		}
	}
	return strings.Join(parts, " ")
}

// wrap breaks text into lines no wider than width.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	return strings.Split(ansi.Wrap(text, width, ""), "\n")
}

// listKeys are the navigation keys shared by the list windows.
var listKeys = struct {
	Up, Down, Top, Bottom, Prev, Next, Open key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Top:    key.NewBinding(key.WithKeys("home", "g")),
	Bottom: key.NewBinding(key.WithKeys("end", "G")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+left")),
	Next:   key.NewBinding(key.WithKeys("right", "l", "shift+right")),
	Open:   key.NewBinding(key.WithKeys("enter")),
}

// rowDelegate draws list items through render. Selection is owned by the
// window, which moves the list with Select before drawing.
type rowDelegate struct {
	lines  int
	render func(item list.Item, selected bool, width int) string
}

func (d rowDelegate) Height() int  { return d.lines }
func (d rowDelegate) Spacing() int { return 0 }

func (d rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fmt.Fprint(w, d.render(item, index == m.Index(), m.Width()))
}

// newRowList returns a bare list: no title, status bar, filter or help.
func newRowList(lines int, render func(item list.Item, selected bool, width int) string) list.Model {
	l := list.New(nil, rowDelegate{lines: lines, render: render}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// showRows loads items into l, sizes it and selects cursor.
func showRows(l *list.Model, items []list.Item, cursor, width, height int) string {
	l.SetItems(items)
	l.SetSize(width, height)
	l.Select(cursor)
	return l.View()
}

// button renders an inline action hint.
func button(key, label string) string {
	return accent("["+key+"]") + " " + label
}
