package desktop

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/apps"
	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/geometry"
	"github.com/Gaurav-Gosain/journalos/internal/pool"
	"github.com/Gaurav-Gosain/journalos/internal/registry"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
	"github.com/Gaurav-Gosain/journalos/internal/window"
)

const (
	desktopButton   = " ◧ "
	taskbarEntryMax = 18
	notifyMaxWidth  = 48
)

// borderFor maps the configured border style to a lipgloss border.
func borderFor(style string) lipgloss.Border {
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func (d *Desktop) border() lipgloss.Border {
	return borderFor(d.cfg.Appearance.BorderStyle)
}

// Render composes every layer into the final frame.
func (d *Desktop) Render() string {
	layersPtr := pool.GetLayerSlice()
	defer pool.PutLayerSlice(layersPtr)
	layers := (*layersPtr)[:0]

	vp := d.Viewport()
	bg := lipgloss.NewStyle().
		Width(vp.Width).
		Height(vp.Height).
		Background(theme.DesktopBg()).
		Foreground(theme.DesktopFg()).
		Render("")
	layers = append(layers, lipgloss.NewLayer(bg).X(0).Y(0).Z(config.ZIcons).ID("desktop"))
	layers = append(layers, d.iconLayers()...)

	focused, _ := d.Registry.Focused()
	for _, inst := range d.Registry.Instances() {
		f := d.Frames[inst.ID]
		if f == nil || inst.Minimized() {
			continue
		}
		z := config.ZUnfocused
		if inst.ID == focused {
			z = config.ZFocused
		}
		box := d.renderWindow(inst, f, inst.ID == focused)
		layers = append(layers, lipgloss.NewLayer(box).X(f.Geometry.X).Y(f.Geometry.Y).Z(z).ID(inst.ID))
	}

	layers = append(layers, lipgloss.NewLayer(d.renderTaskbar()).
		X(0).Y(vp.Height).Z(config.ZTaskbar).ID("taskbar"))

	if d.Dialog != nil {
		box, x, y := d.dialogLayout()
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZDialog).ID("dialog"))
	}
	if d.ShowHelp {
		help := d.renderHelp()
		x := max(0, (d.Width-lipgloss.Width(help))/2)
		y := max(0, (vp.Height-lipgloss.Height(help))/2)
		layers = append(layers, lipgloss.NewLayer(help).X(x).Y(y).Z(config.ZHelp).ID("help"))
	}
	layers = append(layers, d.notificationLayers()...)

	*layersPtr = layers
	return lipgloss.NewCompositor(layers...).Render()
}

func (d *Desktop) iconLayers() []*lipgloss.Layer {
	vp := d.Viewport()
	var layers []*lipgloss.Layer
	for i, app := range d.Icons {
		pos := d.iconSlot(i)
		if pos.X >= vp.Width || pos.Y >= vp.Height {
			continue
		}
		fg := theme.IconFg()
		if i == d.SelectedIcon {
			fg = theme.IconSelected()
		}
		style := lipgloss.NewStyle().
			Width(config.IconWidth).
			Align(lipgloss.Center).
			Foreground(fg)
		if i == d.SelectedIcon {
			style = style.Bold(true).Reverse(true)
		}
		label := ansi.Truncate(app.Title, config.IconWidth, "…")
		icon := style.Render("[ "+app.Icon+" ]") + "\n" + style.Render(label)
		icon = clip(icon, vp.Width-pos.X, vp.Height-pos.Y)
		layers = append(layers, lipgloss.NewLayer(icon).X(pos.X).Y(pos.Y).Z(config.ZIcons+1).ID("icon-"+app.ID))
	}
	return layers
}

// renderWindow draws the border, header and body of one window, clipped to
// the viewport.
func (d *Desktop) renderWindow(inst registry.Instance, f *window.Frame, focused bool) string {
	g := f.Geometry
	b := d.border()

	borderColor := theme.BorderUnfocused()
	if focused {
		borderColor = theme.BorderFocused()
	}
	bs := lipgloss.NewStyle().Foreground(borderColor)

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	inner := max(0, g.Width-window.BorderColumns)
	titleWidth := inner - 3*window.ButtonWidth
	buttons := button("[_]", theme.ButtonMinimize()) +
		button("[#]", theme.ButtonMaximize()) +
		button("[x]", theme.ButtonClose())
	if titleWidth < 0 {
		titleWidth, buttons = inner, ""
	}
	title := ansi.Truncate(" "+inst.Icon+" "+inst.Title+" ", titleWidth, "…")
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderFg())
	if focused {
		headerStyle = headerStyle.Bold(true)
	}
	sb.WriteString(bs.Render(b.TopLeft))
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString(bs.Render(strings.Repeat(b.Top, max(0, titleWidth-ansi.StringWidth(title)))))
	sb.WriteString(buttons)
	sb.WriteString(bs.Render(b.TopRight))

	cs := f.ContentSize()
	body := ""
	if bd, ok := inst.Body.(apps.Body); ok && cs.Width > 0 && cs.Height > 0 {
		body = bd.View(cs.Width, cs.Height)
	}
	left, right := bs.Render(b.Left), bs.Render(b.Right)
	bodyStyle := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	for _, line := range fitLines(body, cs.Width, cs.Height) {
		sb.WriteByte('\n')
		sb.WriteString(left)
		sb.WriteString(bodyStyle.Render(line))
		sb.WriteString(right)
	}
	if g.Height > 1 {
		sb.WriteByte('\n')
		sb.WriteString(bs.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight))
	}

	vp := d.Viewport()
	return clip(sb.String(), vp.Width-g.X, vp.Height-g.Y)
}

func button(label string, c color.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(label)
}

// fitLines returns exactly height lines, each exactly width cells wide.
func fitLines(s string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	src := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(src) {
			line = ansi.Truncate(src[i], width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return out
}

// clip cuts a block to at most width columns and height rows.
func clip(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			lines[i] = ansi.Truncate(l, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

type taskbarItem struct {
	id    string // "" is the show-desktop button
	x     int
	width int
	label string
}

// taskbarItems lays out the clickable part of the taskbar.
func (d *Desktop) taskbarItems() []taskbarItem {
	items := []taskbarItem{{x: 0, width: ansi.StringWidth(desktopButton), label: desktopButton}}
	x := items[0].width + 1
	for _, inst := range d.Registry.Instances() {
		label := ansi.Truncate(" "+inst.Icon+" "+inst.Title+" ", taskbarEntryMax, "…")
		w := ansi.StringWidth(label)
		items = append(items, taskbarItem{id: inst.ID, x: x, width: w, label: label})
		x += w + 1
	}
	return items
}

func (d *Desktop) renderTaskbar() string {
	base := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())
	focused, _ := d.Registry.Focused()

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	for i, item := range d.taskbarItems() {
		style := base
		switch {
		case item.id == "":
			style = style.Bold(true)
		case item.id == focused:
			style = style.Background(theme.TaskbarActive()).Bold(true)
		default:
			if inst, ok := d.Registry.Instance(item.id); ok && inst.Minimized() {
				style = style.Foreground(theme.TaskbarDimmed())
			}
		}
		if i > 0 {
			sb.WriteString(base.Render(" "))
		}
		sb.WriteString(style.Render(item.label))
	}
	left := sb.String()

	var status []string
	if d.cfg.Appearance.ShowSysInfo {
		if s := d.sysInfoText(); s != "" {
			status = append(status, s)
		}
	}
	if d.cfg.Appearance.ShowClock && !d.Clock.IsZero() {
		status = append(status, d.Clock.Format("15:04:05"))
	}
	right := base.Render(strings.Join(status, "  ") + " ")

	gap := d.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return clip(left, d.Width, 1)
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}

// dialogLayout renders the confirm dialog and centers it over the viewport.
func (d *Desktop) dialogLayout() (string, int, int) {
	dlg := d.Dialog
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent()).
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Accent()).
		Padding(0, 1)
	idle := lipgloss.NewStyle().
		Foreground(theme.Muted()).
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Muted()).
		Padding(0, 1)

	confirm, cancel := idle, idle
	if dlg.Selected == 0 {
		confirm = active
	} else {
		cancel = active
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		confirm.Render(dlg.Confirm), "   ", cancel.Render(dlg.Cancel))

	msgWidth := max(lipgloss.Width(buttons), min(40, d.Width-10))
	message := lipgloss.NewStyle().Width(msgWidth).Align(lipgloss.Center).Render(dlg.Message)

	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(theme.NotificationWarning()).Render(dlg.Title),
		"",
		message,
		"",
		buttons,
	)
	box := lipgloss.NewStyle().
		Border(d.border()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 3).
		Render(body)

	vp := d.Viewport()
	x := max(0, (vp.Width-lipgloss.Width(box))/2)
	y := max(0, (vp.Height-lipgloss.Height(box))/2)
	return box, x, y
}

// dialogButtonAt maps a click on the dialog's button row to an answer:
// the left half leaves, the right half stays.
func (d *Desktop) dialogButtonAt(p geometry.Point) (leave bool, ok bool) {
	box, x, y := d.dialogLayout()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	// Border and bottom padding below the three-row buttons.
	top, bottom := y+h-5, y+h-2
	if p.X < x || p.X >= x+w || p.Y < top || p.Y >= bottom {
		return false, false
	}
	return p.X < x+w/2, true
}

func (d *Desktop) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKey()).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(theme.Accent()).Bold(true).Underline(true)

	var lines []string
	for i, section := range config.GetKeybindings(d.keys) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(section.Title))
		for _, b := range section.Bindings {
			lines = append(lines, fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-18s", b.Key)), b.Description))
		}
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Muted()).Render("esc to close"))

	box := lipgloss.NewStyle().
		Border(d.border()).
		BorderForeground(theme.HelpBorder()).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
	return clip(box, d.Width, d.Viewport().Height)
}

func notificationColor(kind string) color.Color {
	switch kind {
	case apps.NotifyError:
		return theme.NotificationError()
	case apps.NotifyWarning:
		return theme.NotificationWarning()
	case apps.NotifySuccess:
		return theme.NotificationSuccess()
	default:
		return theme.NotificationInfo()
	}
}

func (d *Desktop) notificationLayers() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	y := 1
	now := d.now()
	maxWidth := min(notifyMaxWidth, max(d.Width-4, 10))
	for _, n := range d.Notifications {
		if now.After(n.Expires) {
			continue
		}
		c := notificationColor(n.Kind)
		box := lipgloss.NewStyle().
			Border(d.border()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1).
			Bold(true).
			Render(ansi.Truncate(n.Message, maxWidth-4, "…"))
		x := max(0, d.Width-lipgloss.Width(box)-2)
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZNotifications).ID("notif-"+n.ID))
		y += lipgloss.Height(box)
	}
	return layers
}
