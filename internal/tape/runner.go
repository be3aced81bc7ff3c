package tape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/journalos/internal/apps"
	"github.com/Gaurav-Gosain/journalos/internal/desktop"
)

const (
	// DefaultTimeout bounds a Wait without an explicit @timeout.
	DefaultTimeout = 5 * time.Second
	pollInterval   = 20 * time.Millisecond
)

// ErrQuit is returned when the script quits the desktop.
var ErrQuit = errors.New("desktop quit")

// Screenshot is a frame captured by the Screenshot command.
type Screenshot struct {
	Name  string
	Line  int
	Frame string
}

// Text is the frame without styling.
func (s Screenshot) Text() string {
	return ansi.Strip(s.Frame)
}

// Runner plays commands against a desktop without a terminal. Commands the
// desktop returns run in the background and their messages are fed back
// between script commands, the way a Bubble Tea program would.
type Runner struct {
	Desktop *desktop.Desktop
	Logger  *log.Logger
	Timeout time.Duration
	// KeyDelay is the default pause after each key press.
	KeyDelay time.Duration

	Screenshots []Screenshot

	ctx  context.Context
	msgs chan tea.Msg
	quit bool
}

// NewRunner creates a runner for d.
func NewRunner(d *desktop.Desktop) *Runner {
	return &Runner{
		Desktop: d,
		Logger:  log.New(io.Discard),
		Timeout: DefaultTimeout,
	}
}

// Run loads the catalog and executes cmds in order. It stops at the first
// failing command.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.ctx = ctx
	r.msgs = make(chan tea.Msg, 64)
	r.quit = false

	r.process(r.Desktop.LoadCatalog()())

	for i, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Logger.Debug("tape", "step", fmt.Sprintf("%d/%d", i+1, len(cmds)), "line", cmd.Line, "cmd", cmd.String())
		if err := r.exec(cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
		}
		if r.quit {
			return ErrQuit
		}
	}
	return nil
}

// Frame renders the current desktop.
func (r *Runner) Frame() string {
	return r.Desktop.Render()
}

func (r *Runner) exec(cmd Command) error {
	d := r.Desktop
	switch cmd.Type {
	case CommandKey:
		msg, err := KeyMsg(cmd.Args[0])
		if err != nil {
			return err
		}
		for range cmd.Repeat() {
			r.dispatch(msg)
			r.pause(cmd.Delay)
		}

	case CommandText:
		for _, c := range cmd.Args[0] {
			r.dispatch(runeMsg(c))
			r.pause(cmd.Delay)
		}

	case CommandClick:
		r.click(cmd.Ints[0], cmd.Ints[1])

	case CommandDoubleClick:
		r.click(cmd.Ints[0], cmd.Ints[1])
		r.click(cmd.Ints[0], cmd.Ints[1])

	case CommandDrag:
		x1, y1, x2, y2 := cmd.Ints[0], cmd.Ints[1], cmd.Ints[2], cmd.Ints[3]
		r.dispatch(tea.MouseClickMsg{X: x1, Y: y1, Button: tea.MouseLeft})
		r.dispatch(tea.MouseMotionMsg{X: x2, Y: y2, Button: tea.MouseLeft})
		r.dispatch(tea.MouseReleaseMsg{X: x2, Y: y2, Button: tea.MouseLeft})

	case CommandResize:
		r.dispatch(tea.WindowSizeMsg{Width: cmd.Ints[0], Height: cmd.Ints[1]})

	case CommandOpen:
		if _, ok := apps.Lookup(cmd.Args[0]); !ok {
			return fmt.Errorf("unknown app %q", cmd.Args[0])
		}
		msg := apps.OpenAppMsg{ID: cmd.Args[0]}
		if len(cmd.Args) > 1 {
			msg.Select = cmd.Args[1]
		}
		r.dispatch(msg)

	case CommandPost:
		r.dispatch(apps.OpenPostMsg{Slug: cmd.Args[0]})

	case CommandClose:
		id, err := r.target(cmd)
		if err != nil {
			return err
		}
		r.dispatch(apps.CloseWindowMsg{ID: id})

	case CommandFocus:
		id, err := r.target(cmd)
		if err != nil {
			return err
		}
		d.Registry.Focus(id)

	case CommandMinimize:
		id, err := r.target(cmd)
		if err != nil {
			return err
		}
		d.Registry.Minimize(id)

	case CommandMaximize:
		id, err := r.target(cmd)
		if err != nil {
			return err
		}
		d.ToggleMaximize(id)

	case CommandLogin:
		if _, err := d.Env().Session.Login(cmd.Args[0]); err != nil {
			return err
		}

	case CommandLogout:
		d.Env().Session.Logout()

	case CommandReload:
		r.spawn(d.LoadCatalog())

	case CommandSleep:
		r.pause(cmd.Delay)

	case CommandWait:
		timeout := cmd.Delay
		if timeout <= 0 {
			timeout = r.Timeout
		}
		return r.wait(regexp.MustCompile(cmd.Args[0]), timeout)

	case CommandScreenshot:
		r.drain()
		shot := Screenshot{Line: cmd.Line, Frame: r.Frame()}
		if len(cmd.Args) > 0 {
			shot.Name = cmd.Args[0]
		}
		r.Screenshots = append(r.Screenshots, shot)

	case CommandSet:
		return r.set(cmd.Args[0], cmd.Args[1])

	default:
		return fmt.Errorf("unsupported command")
	}
	r.drain()
	return nil
}

// target is the window a command names, or the focused one.
func (r *Runner) target(cmd Command) (string, error) {
	if len(cmd.Args) > 0 {
		id := cmd.Args[0]
		if _, ok := r.Desktop.Registry.Instance(id); !ok {
			return "", fmt.Errorf("no window %q", id)
		}
		return id, nil
	}
	id, ok := r.Desktop.Registry.Focused()
	if !ok {
		return "", errors.New("no focused window")
	}
	return id, nil
}

func (r *Runner) set(name, value string) error {
	switch strings.ToLower(name) {
	case "width", "height":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q", name, value)
		}
		w, h := r.Desktop.Width, r.Desktop.Height
		if strings.EqualFold(name, "width") {
			w = n
		} else {
			h = n
		}
		r.dispatch(tea.WindowSizeMsg{Width: w, Height: h})
	case "timeout":
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		r.Timeout = d
	case "keydelay", "typingspeed":
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		r.KeyDelay = d
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}

func (r *Runner) click(x, y int) {
	r.dispatch(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	r.dispatch(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
}

// dispatch hands msg to the desktop and starts whatever it returns.
func (r *Runner) dispatch(msg tea.Msg) {
	_, cmd := r.Desktop.Update(msg)
	r.spawn(cmd)
}

func (r *Runner) spawn(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	ctx, msgs := r.ctx, r.msgs
	go func() {
		msg := cmd()
		select {
		case msgs <- msg:
		case <-ctx.Done():
		}
	}()
}

// process applies one message from a finished command.
func (r *Runner) process(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			r.spawn(c)
		}
	case tea.QuitMsg:
		r.quit = true
	default:
		r.dispatch(msg)
	}
}

// drain applies every message that is already waiting.
func (r *Runner) drain() {
	for {
		select {
		case msg := <-r.msgs:
			r.process(msg)
		default:
			return
		}
	}
}

// pause waits for d while still applying messages. Without a delay it only
// drains, using the runner's KeyDelay if one is set.
func (r *Runner) pause(d time.Duration) {
	if d <= 0 {
		d = r.KeyDelay
	}
	if d <= 0 {
		r.drain()
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case msg := <-r.msgs:
			r.process(msg)
		case <-timer.C:
			return
		case <-r.ctx.Done():
			return
		}
	}
}

// wait applies messages until the plain-text frame matches re.
func (r *Runner) wait(re *regexp.Regexp, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		r.drain()
		if re.MatchString(ansi.Strip(r.Frame())) {
			return nil
		}
		select {
		case msg := <-r.msgs:
			r.process(msg)
		case <-tick.C:
		case <-deadline.C:
			return fmt.Errorf("%q did not appear within %s", re.String(), timeout)
		case <-r.ctx.Done():
			return r.ctx.Err()
		}
	}
}
