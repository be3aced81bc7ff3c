package desktop

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/journalos/internal/apps"
	"github.com/Gaurav-Gosain/journalos/internal/geometry"
	"github.com/Gaurav-Gosain/journalos/internal/window"
)

// handleKey routes a key press: dialog first, then bound actions, then the
// focused window's body, and icon navigation when nothing is focused.
func (d *Desktop) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if d.Dialog != nil {
		return d.dialogKey(key)
	}

	action := d.keys.GetAction(key)
	if d.ShowHelp && action != "quit" {
		if action == "toggle_help" || key == "esc" || key == "q" {
			d.ShowHelp = false
		}
		return nil
	}

	switch action {
	case "quit":
		d.Close()
		return tea.Quit
	case "toggle_help":
		d.ShowHelp = true
		return nil
	case "close_window":
		if id, ok := d.Registry.Focused(); ok {
			return d.CloseWindow(id)
		}
		return nil
	case "minimize_window":
		if id, ok := d.Registry.Focused(); ok {
			d.Registry.Minimize(id)
		}
		return nil
	case "toggle_maximize":
		if id, ok := d.Registry.Focused(); ok {
			d.ToggleMaximize(id)
		}
		return nil
	case "next_window":
		d.cycle(1)
		return nil
	case "prev_window":
		d.cycle(-1)
		return nil
	case "show_desktop":
		d.Registry.MinimizeAll()
		return nil
	case "reload_content":
		return tea.Batch(d.LoadCatalog(), d.Notify("Reloading content", apps.NotifyInfo))
	case "toggle_login":
		return d.ToggleLogin()
	}

	if inst, _, ok := d.Focused(); ok {
		if body, ok := inst.Body.(apps.Body); ok {
			return body.Update(msg)
		}
		return nil
	}
	return d.iconKey(key)
}

func (d *Desktop) iconKey(key string) tea.Cmd {
	n := len(d.Icons)
	if n == 0 {
		return nil
	}
	if d.SelectedIcon < 0 {
		switch key {
		case "up", "down", "left", "right", "k", "j", "h", "l":
			d.SelectedIcon = 0
		}
		return nil
	}

	rows := d.iconRows()
	switch key {
	case "up", "k":
		d.SelectedIcon = max(0, d.SelectedIcon-1)
	case "down", "j":
		d.SelectedIcon = min(n-1, d.SelectedIcon+1)
	case "left", "h":
		if d.SelectedIcon-rows >= 0 {
			d.SelectedIcon -= rows
		}
	case "right", "l":
		if d.SelectedIcon+rows < n {
			d.SelectedIcon += rows
		}
	case "enter":
		return d.OpenApp(d.Icons[d.SelectedIcon].ID, "")
	case "esc":
		d.SelectedIcon = -1
	}
	return nil
}

func (d *Desktop) dialogKey(key string) tea.Cmd {
	switch key {
	case "left", "right", "tab", "shift+tab", "h", "l":
		d.Dialog.Selected = 1 - d.Dialog.Selected
	case "enter", "space":
		d.ResolveDialog(d.Dialog.Selected == 0)
	case "y":
		d.ResolveDialog(true)
	case "n", "esc":
		d.ResolveDialog(false)
	}
	return nil
}

// windowAt returns the topmost visible window under p. The focused window
// is on top; the rest share one layer and later windows cover earlier ones.
func (d *Desktop) windowAt(p geometry.Point) (string, *window.Frame, bool) {
	if id, ok := d.Registry.Focused(); ok {
		if f := d.Frames[id]; f != nil && f.Contains(p) {
			return id, f, true
		}
	}
	insts := d.Registry.Instances()
	for i := len(insts) - 1; i >= 0; i-- {
		id := insts[i].ID
		if f := d.Frames[id]; f != nil && f.Contains(p) {
			return id, f, true
		}
	}
	return "", nil, false
}

func (d *Desktop) handleClick(m tea.Mouse) tea.Cmd {
	p := geometry.Point{X: m.X, Y: m.Y}

	if d.Dialog != nil {
		if leave, ok := d.dialogButtonAt(p); ok {
			d.ResolveDialog(leave)
		}
		return nil
	}
	if d.ShowHelp {
		d.ShowHelp = false
		return nil
	}
	if m.Button != tea.MouseLeft {
		return nil
	}

	if p.Y >= d.Viewport().Height {
		d.taskbarClick(p.X)
		return nil
	}

	if id, f, ok := d.windowAt(p); ok {
		d.SelectedIcon = -1
		if focused, _ := d.Registry.Focused(); focused != id {
			d.Registry.Focus(id)
		}
		switch f.HeaderButtonAt(p) {
		case window.ButtonMinimize:
			d.Registry.Minimize(id)
			return nil
		case window.ButtonMaximize:
			d.ToggleMaximize(id)
			return nil
		case window.ButtonClose:
			return d.CloseWindow(id)
		}
		if corner, ok := f.ResizeCornerAt(p); ok {
			if f.BeginResize(p, corner) {
				d.active = id
			}
			return nil
		}
		if f.OnHeader(p) && f.BeginDrag(p) {
			d.active = id
		}
		return nil
	}

	return d.iconClick(p)
}

func (d *Desktop) iconClick(p geometry.Point) tea.Cmd {
	i := d.iconAt(p)
	if i < 0 {
		d.SelectedIcon = -1
		d.lastClick.icon = -1
		return nil
	}

	now := d.now()
	double := d.lastClick.icon == i && now.Sub(d.lastClick.at) <= d.cfg.DoubleClickInterval()
	d.SelectedIcon = i
	if double {
		d.lastClick.icon = -1
		return d.OpenApp(d.Icons[i].ID, "")
	}
	d.lastClick.icon = i
	d.lastClick.at = now
	return nil
}

func (d *Desktop) handleMotion(m tea.Mouse) {
	if d.active == "" {
		return
	}
	f := d.Frames[d.active]
	if f == nil {
		d.active = ""
		return
	}
	p := geometry.Point{X: m.X, Y: m.Y}
	switch {
	case f.Dragging():
		f.DragTo(p)
	case f.Resizing():
		f.ResizeTo(p)
	}
}

// ToggleMaximize flips the maximized state of window id. A drag or resize of
// that window stops with it.
func (d *Desktop) ToggleMaximize(id string) {
	f := d.Frames[id]
	if f == nil {
		return
	}
	f.ToggleMaximize(d.Viewport())
	if d.active == id {
		d.active = ""
	}
}

func (d *Desktop) handleRelease() {
	if f := d.Frames[d.active]; f != nil {
		f.EndDrag()
		f.EndResize()
	}
	d.active = ""
}

func (d *Desktop) taskbarClick(x int) {
	for _, item := range d.taskbarItems() {
		if x < item.x || x >= item.x+item.width {
			continue
		}
		if item.id == "" {
			d.Registry.MinimizeAll()
		} else {
			d.TaskbarToggle(item.id)
		}
		return
	}
}
