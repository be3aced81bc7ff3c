// Package desktop is the Bubble Tea model of the journal desktop: icons, the
// windows tracked by the registry, the taskbar and the overlays drawn on top.
package desktop

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/journalos/internal/apps"
	"github.com/Gaurav-Gosain/journalos/internal/auth"
	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/geometry"
	"github.com/Gaurav-Gosain/journalos/internal/registry"
	"github.com/Gaurav-Gosain/journalos/internal/window"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	loadTimeout   = 15 * time.Second
	postIcon      = "✎"
)

// Options configures a desktop session.
type Options struct {
	Config   *config.UserConfig
	Source   content.Source
	Contact  content.ContactSender
	Watcher  content.Watcher
	Session  *auth.Session
	Progress *content.Progress
	Logger   *log.Logger
	// Now is the clock used for double-clicks and notifications.
	Now func() time.Time
}

// Notification is a timed toast.
type Notification struct {
	ID      string
	Message string
	Kind    string
	Expires time.Time
}

// ConfirmDialog asks whether to force-close a window that refused to close.
type ConfirmDialog struct {
	WindowID string
	Title    string
	Message  string
	Confirm  string
	Cancel   string
	// Selected is 0 for Confirm, 1 for Cancel.
	Selected int
}

// Desktop is one desktop session. It owns its registry; nothing is shared
// between sessions.
type Desktop struct {
	Width  int
	Height int

	Registry *registry.Registry
	Frames   map[string]*window.Frame

	Icons        []apps.App
	SelectedIcon int

	Catalog       content.Catalog
	Notifications []Notification
	Dialog        *ConfirmDialog
	ShowHelp      bool

	CPU       float64
	Mem       float64
	SysInfoOK bool
	Clock     time.Time

	cfg     *config.UserConfig
	keys    *config.KeybindRegistry
	engine  geometry.Engine
	env     apps.Env
	source  content.Source
	watcher content.Watcher
	session *auth.Session
	logger  *log.Logger
	now     func() time.Time

	// active is the window being dragged or resized.
	active    string
	lastClick struct {
		icon int
		at   time.Time
	}

	changes     chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	closeOnce   sync.Once
}

// New creates a desktop session.
func New(opts Options) *Desktop {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	session := opts.Session
	if session == nil {
		session = auth.NewSession()
	}
	progress := opts.Progress
	if progress == nil {
		progress = content.NewProgress()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	policy, err := registry.ParseFocusPolicy(cfg.Windows.FocusPolicy)
	if err != nil {
		logger.Warn("unknown focus policy, using none", "policy", cfg.Windows.FocusPolicy)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Desktop{
		Width:        defaultWidth,
		Height:       defaultHeight,
		Registry:     registry.New(registry.WithLogger(logger), registry.WithFocusPolicy(policy)),
		Frames:       make(map[string]*window.Frame),
		SelectedIcon: -1,
		cfg:          cfg,
		keys:         config.NewKeybindRegistry(cfg),
		engine:       cfg.Engine(),
		source:       opts.Source,
		watcher:      opts.Watcher,
		session:      session,
		logger:       logger,
		now:          now,
		changes:      make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
	d.lastClick.icon = -1
	d.env = apps.Env{
		Catalog:  func() content.Catalog { return d.Catalog },
		Source:   opts.Source,
		Contact:  opts.Contact,
		Progress: progress,
		Session:  session,
		Logger:   logger,
	}

	d.unsubscribe = d.Registry.Subscribe(d.syncFrames)
	session.OnChange(func(bool) { d.refreshIcons() })
	d.refreshIcons()
	return d
}

// Close stops the content watcher and detaches from the registry. It is safe
// to call more than once and from any goroutine.
func (d *Desktop) Close() {
	d.closeOnce.Do(func() {
		d.cancel()
		d.unsubscribe()
	})
}

// Env returns what window bodies of this desktop use.
func (d *Desktop) Env() apps.Env {
	return d.env
}

// Viewport is the area windows live in: the screen minus the taskbar.
func (d *Desktop) Viewport() geometry.Size {
	return geometry.Size{
		Width:  max(1, d.Width),
		Height: max(1, d.Height-config.TaskbarHeight),
	}
}

// Resize applies a new terminal size.
func (d *Desktop) Resize(width, height int) {
	d.Width, d.Height = width, height
	vp := d.Viewport()
	for _, f := range d.Frames {
		f.ViewportResized(vp)
	}
}

// syncFrames keeps one frame per open window. It runs after every registry
// mutation.
func (d *Desktop) syncFrames(s registry.Snapshot) {
	live := make(map[string]bool, len(s.Instances))
	for _, inst := range s.Instances {
		live[inst.ID] = true
		f, ok := d.Frames[inst.ID]
		if !ok {
			f = window.NewFrame(d.engine, d.Viewport(), inst.InitialMaximized)
			d.Frames[inst.ID] = f
		}
		f.Minimized = inst.Minimized()
		if f.Minimized {
			f.EndDrag()
			f.EndResize()
		}
	}
	for id := range d.Frames {
		if !live[id] {
			delete(d.Frames, id)
		}
	}
	if d.active != "" && (!live[d.active] || d.Frames[d.active].Minimized) {
		d.active = ""
	}
	if d.Dialog != nil && !live[d.Dialog.WindowID] {
		d.Dialog = nil
	}
}

func (d *Desktop) refreshIcons() {
	d.Icons = apps.Icons(d.session.IsAuthenticated())
	if d.SelectedIcon >= len(d.Icons) {
		d.SelectedIcon = -1
	}
	d.lastClick.icon = -1
}

// IconPosition is the top-left cell of the icon at a grid slot.
func IconPosition(gridX, gridY int) geometry.Point {
	return geometry.Point{
		X: config.IconStartX + gridX*config.IconSpacingX,
		Y: config.IconStartY + gridY*config.IconSpacingY,
	}
}

// iconRows is how many icons fit in one grid column.
func (d *Desktop) iconRows() int {
	return max(1, (d.Viewport().Height-config.IconStartY)/config.IconSpacingY)
}

// iconSlot returns the position of the i-th icon. Icons fill columns top
// to bottom.
func (d *Desktop) iconSlot(i int) geometry.Point {
	rows := d.iconRows()
	return IconPosition(i/rows, i%rows)
}

// iconAt returns the icon under p, or -1.
func (d *Desktop) iconAt(p geometry.Point) int {
	for i := range d.Icons {
		pos := d.iconSlot(i)
		box := geometry.Geometry{X: pos.X, Y: pos.Y, Width: config.IconWidth, Height: config.IconHeight}
		if box.Contains(p) {
			return i
		}
	}
	return -1
}

// OpenApp opens the window of an icon. External apps only raise a
// notification with their link.
func (d *Desktop) OpenApp(id, sel string) tea.Cmd {
	app, ok := apps.Lookup(id)
	if !ok {
		d.logger.Warn("unknown app", "id", id)
		return nil
	}
	if app.External() {
		return d.Notify(fmt.Sprintf("%s: %s", app.Title, app.URL), apps.NotifyInfo)
	}

	inst, open := d.Registry.Instance(id)
	if open {
		d.Registry.Open(registry.Descriptor{ID: inst.ID, Title: inst.Title, Icon: inst.Icon, Body: inst.Body})
	} else {
		d.openWindow(registry.Descriptor{
			ID:               app.ID,
			Title:            app.Title,
			Icon:             app.Icon,
			Body:             app.New(d.env),
			InitialMaximized: app.Maximized,
		})
		inst, _ = d.Registry.Instance(id)
	}

	if s, ok := inst.Body.(apps.Selector); ok && sel != "" {
		s.Select(sel)
	}
	return nil
}

// OpenPost opens the reader for a loaded post, or focuses it if it is
// already open.
func (d *Desktop) OpenPost(post content.Post) {
	id := apps.PostWindowID(post.Slug)
	if inst, ok := d.Registry.Instance(id); ok {
		d.Registry.Open(registry.Descriptor{ID: id, Title: inst.Title, Icon: inst.Icon, Body: inst.Body})
		return
	}
	d.openWindow(registry.Descriptor{
		ID:    id,
		Title: post.Title,
		Icon:  postIcon,
		Body:  apps.NewPostReader(d.env, post),
	})
}

func (d *Desktop) openWindow(desc registry.Descriptor) {
	d.Registry.Open(desc)
	if c, ok := desc.Body.(apps.Closer); ok {
		d.Registry.RegisterBeforeClose(desc.ID, c.BeforeClose)
	}
	d.logger.Debug("window opened", "id", desc.ID)
}

// CloseWindow closes a window through its gate. A refused close opens the
// confirm dialog.
func (d *Desktop) CloseWindow(id string) tea.Cmd {
	if d.Registry.Close(id) {
		return nil
	}
	inst, _ := d.Registry.Instance(id)
	d.Dialog = &ConfirmDialog{
		WindowID: id,
		Title:    "Close " + inst.Title + "?",
		Message:  "This window does not want to close yet.",
		Confirm:  "Close anyway",
		Cancel:   "Stay",
		Selected: 1,
	}
	if p, ok := inst.Body.(*apps.PostReader); ok {
		d.Dialog.Title = "Unclaimed XP"
		d.Dialog.Message = fmt.Sprintf("You haven't claimed your XP yet! +%d XP waiting for you", p.Post().ReadXP)
		d.Dialog.Confirm = "Leave without XP"
		d.Dialog.Cancel = "Stay & Claim"
	}
	return nil
}

// ResolveDialog answers the confirm dialog: leave force-closes the window,
// otherwise the dialog is dismissed and the window focused.
func (d *Desktop) ResolveDialog(leave bool) {
	if d.Dialog == nil {
		return
	}
	id := d.Dialog.WindowID
	d.Dialog = nil
	if leave {
		d.Registry.ForceClose(id)
		return
	}
	d.Registry.Focus(id)
}

// Interacting reports whether a window is being dragged or resized.
func (d *Desktop) Interacting() bool {
	return d.active != ""
}

// Focused returns the focused window's instance and frame.
func (d *Desktop) Focused() (registry.Instance, *window.Frame, bool) {
	id, ok := d.Registry.Focused()
	if !ok {
		return registry.Instance{}, nil, false
	}
	inst, ok := d.Registry.Instance(id)
	if !ok {
		return registry.Instance{}, nil, false
	}
	return inst, d.Frames[id], true
}

// cycle focuses the next (or previous) open window in open order.
func (d *Desktop) cycle(step int) {
	insts := d.Registry.Instances()
	if len(insts) == 0 {
		return
	}
	cur := -1
	if id, ok := d.Registry.Focused(); ok {
		cur = slices.IndexFunc(insts, func(i registry.Instance) bool { return i.ID == id })
	}
	next := 0
	switch {
	case cur >= 0:
		next = (cur + step + len(insts)) % len(insts)
	case step < 0:
		next = len(insts) - 1
	}
	d.Registry.Focus(insts[next].ID)
}

// TaskbarToggle is a click on a taskbar entry: it minimizes the focused
// visible window and focuses any other.
func (d *Desktop) TaskbarToggle(id string) {
	inst, ok := d.Registry.Instance(id)
	if !ok {
		return
	}
	if focused, ok := d.Registry.Focused(); ok && focused == id && !inst.Minimized() {
		d.Registry.Minimize(id)
		return
	}
	d.Registry.Focus(id)
}

// Notify shows a toast and schedules its expiry.
func (d *Desktop) Notify(message, kind string) tea.Cmd {
	n := Notification{
		ID:      uuid.NewString(),
		Message: message,
		Kind:    kind,
		Expires: d.now().Add(config.NotificationDuration),
	}
	d.Notifications = append(d.Notifications, n)

	switch kind {
	case apps.NotifyError:
		d.logger.Error(message)
	case apps.NotifyWarning:
		d.logger.Warn(message)
	default:
		d.logger.Info(message)
	}

	return tea.Tick(config.NotificationDuration, func(time.Time) tea.Msg {
		return notificationExpiredMsg{id: n.ID}
	})
}

func (d *Desktop) dropNotification(id string) {
	d.Notifications = slices.DeleteFunc(d.Notifications, func(n Notification) bool {
		return n.ID == id
	})
}

// ToggleLogin logs out, or opens the login window for a guest.
func (d *Desktop) ToggleLogin() tea.Cmd {
	if d.session.IsAuthenticated() {
		d.session.Logout()
		return d.Notify("Logged out", apps.NotifyInfo)
	}
	return d.OpenApp(apps.LoginID, "")
}

type notificationExpiredMsg struct {
	id string
}

type clockMsg time.Time

func clockCmd() tea.Cmd {
	return tea.Tick(config.ClockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Init starts the clock, system sampling, the first content load and the
// watcher.
func (d *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{d.LoadCatalog()}
	if d.cfg.Appearance.ShowClock {
		d.Clock = d.now()
		cmds = append(cmds, clockCmd())
	}
	if d.cfg.Appearance.ShowSysInfo {
		cmds = append(cmds, sampleSysInfo)
	}
	if d.watcher != nil {
		go d.watch()
		cmds = append(cmds, d.waitForChange())
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil

	case tea.KeyPressMsg:
		return d, d.handleKey(msg)

	case tea.MouseClickMsg:
		return d, d.handleClick(msg.Mouse())

	case tea.MouseMotionMsg:
		d.handleMotion(msg.Mouse())
		return d, nil

	case tea.MouseReleaseMsg:
		d.handleRelease()
		return d, nil

	case CatalogMsg:
		if msg.Err != nil {
			return d, d.Notify("Failed to load content: "+msg.Err.Error(), apps.NotifyError)
		}
		d.Catalog = msg.Catalog
		d.logger.Debug("catalog loaded", "posts", len(msg.Catalog.Posts), "quests", len(msg.Catalog.Quests))
		return d, nil

	case ContentChangedMsg:
		return d, tea.Batch(d.LoadCatalog(), d.waitForChange())

	case PostLoadedMsg:
		if msg.Err != nil {
			return d, d.Notify(fmt.Sprintf("Could not open %q: %v", msg.Slug, msg.Err), apps.NotifyError)
		}
		d.OpenPost(msg.Post)
		return d, nil

	case apps.OpenPostMsg:
		id := apps.PostWindowID(msg.Slug)
		if _, ok := d.Registry.Instance(id); ok {
			d.Registry.Focus(id)
			return d, nil
		}
		return d, d.LoadPost(msg.Slug)

	case apps.OpenAppMsg:
		return d, d.OpenApp(msg.ID, msg.Select)

	case apps.NotifyMsg:
		return d, d.Notify(msg.Text, msg.Kind)

	case apps.CloseWindowMsg:
		return d, d.CloseWindow(msg.ID)

	case apps.ToWindowMsg:
		inst, ok := d.Registry.Instance(msg.ID)
		if !ok {
			return d, nil
		}
		if r, ok := inst.Body.(apps.Receiver); ok {
			return d, r.Receive(msg.Msg)
		}
		return d, nil

	case notificationExpiredMsg:
		d.dropNotification(msg.id)
		return d, nil

	case clockMsg:
		d.Clock = time.Time(msg)
		return d, clockCmd()

	case SysInfoMsg:
		d.SysInfoOK = msg.Err == nil
		if msg.Err != nil {
			d.logger.Debug("system stats unavailable", "err", msg.Err)
		} else {
			d.CPU, d.Mem = msg.CPU, msg.Mem
		}
		return d, sysInfoCmd()
	}
	return d, nil
}

// View renders the desktop.
func (d *Desktop) View() tea.View {
	v := tea.NewView(d.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
