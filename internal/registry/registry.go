// Package registry tracks the windows open on one desktop session: which ids
// are open, which of them are minimized and which one is focused.
package registry

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/journalos/internal/window"
)

// Descriptor is the caller's description of a window to open. Body is opaque
// to the registry.
type Descriptor struct {
	ID               string
	Title            string
	Icon             string
	Body             any
	InitialMaximized bool
}

// Instance is an open window.
type Instance struct {
	ID               string
	Title            string
	Icon             string
	Body             any
	InitialMaximized bool
	State            window.State
}

// Minimized reports whether the window is hidden in the taskbar.
func (i Instance) Minimized() bool {
	return i.State == window.StateMinimized
}

// Snapshot is a read-only copy of the registry state handed to subscribers.
type Snapshot struct {
	Instances []Instance
	Focused   string
}

// FocusPolicy decides what gets focus after the focused window closes or is
// minimized.
type FocusPolicy int

const (
	// FocusNone leaves nothing focused.
	FocusNone FocusPolicy = iota
	// FocusLastActive focuses the most recently active remaining visible window.
	FocusLastActive
)

// String returns a string representation of the policy.
func (p FocusPolicy) String() string {
	switch p {
	case FocusNone:
		return "none"
	case FocusLastActive:
		return "last-active"
	default:
		return "unknown"
	}
}

// ParseFocusPolicy maps a config value to a FocusPolicy.
func ParseFocusPolicy(s string) (FocusPolicy, error) {
	switch s {
	case "", "none":
		return FocusNone, nil
	case "last-active", "last_active":
		return FocusLastActive, nil
	}
	return FocusNone, fmt.Errorf("unknown focus policy %q", s)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for transitions and predicate failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFocusPolicy sets the focus successor policy.
func WithFocusPolicy(p FocusPolicy) Option {
	return func(r *Registry) {
		r.policy = p
	}
}

// Registry is the single owner of window instance state for one desktop.
// All methods are safe for concurrent use; subscribers are called
// synchronously after each mutation, outside the lock.
type Registry struct {
	mu          sync.Mutex
	instances   []*Instance
	focused     string
	beforeClose map[string]func() bool
	// mru holds ids from least to most recently focused.
	mru []string

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int

	policy FocusPolicy
	logger *log.Logger
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		beforeClose: make(map[string]func() bool),
		subs:        make(map[int]func(Snapshot)),
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers fn to be called with the new state after every
// mutation. The returned function removes the subscription.
func (r *Registry) Subscribe(fn func(Snapshot)) func() {
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		r.subMu.Unlock()
	}
}

func (r *Registry) notify() {
	snap := r.Snapshot()

	r.subMu.Lock()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.subs[id])
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Snapshot returns a copy of the current state.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{Instances: r.copyInstances(), Focused: r.focused}
}

func (r *Registry) copyInstances() []Instance {
	out := make([]Instance, len(r.instances))
	for i, inst := range r.instances {
		out[i] = *inst
	}
	return out
}

func (r *Registry) find(id string) (int, *Instance) {
	for i, inst := range r.instances {
		if inst.ID == id {
			return i, inst
		}
	}
	return -1, nil
}

func (r *Registry) transition(inst *Instance, ev window.Event) bool {
	next, err := inst.State.Next(ev)
	if err != nil {
		r.logger.Warn("window transition rejected", "id", inst.ID, "err", err)
		return false
	}
	if next != inst.State {
		r.logger.Debug("window transition", "id", inst.ID, "from", inst.State, "to", next)
	}
	inst.State = next
	return true
}

func (r *Registry) touch(id string) {
	r.mru = slices.DeleteFunc(r.mru, func(s string) bool { return s == id })
	r.mru = append(r.mru, id)
}

func (r *Registry) forget(id string) {
	r.mru = slices.DeleteFunc(r.mru, func(s string) bool { return s == id })
}

// succeed picks the next focus after the focused window went away.
func (r *Registry) succeed() {
	r.focused = ""
	if r.policy != FocusLastActive {
		return
	}
	for i := len(r.mru) - 1; i >= 0; i-- {
		if _, inst := r.find(r.mru[i]); inst != nil && !inst.Minimized() {
			r.focused = inst.ID
			r.touch(inst.ID)
			return
		}
	}
}

// Open adds a window for d, or un-minimizes the existing one with the same
// id. Either way the window becomes focused.
func (r *Registry) Open(d Descriptor) {
	if d.ID == "" {
		r.logger.Warn("window without an id not opened", "title", d.Title)
		return
	}
	r.mu.Lock()
	if _, inst := r.find(d.ID); inst != nil {
		r.transition(inst, window.EventRestore)
	} else {
		r.instances = append(r.instances, &Instance{
			ID:               d.ID,
			Title:            d.Title,
			Icon:             d.Icon,
			Body:             d.Body,
			InitialMaximized: d.InitialMaximized,
			State:            window.StateNormal,
		})
		r.logger.Debug("window opened", "id", d.ID, "title", d.Title)
	}
	r.focused = d.ID
	r.touch(d.ID)
	r.mu.Unlock()

	r.notify()
}

// RegisterBeforeClose installs a predicate consulted by Close. A nil
// predicate removes the gate. Ids that are not open are ignored.
func (r *Registry) RegisterBeforeClose(id string, allow func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, inst := r.find(id); inst == nil {
		r.logger.Debug("beforeClose for a window that is not open ignored", "id", id)
		return
	}
	if allow == nil {
		delete(r.beforeClose, id)
		return
	}
	r.beforeClose[id] = allow
}

// allowClose runs the predicate. A panicking predicate denies the close.
func (r *Registry) allowClose(id string, allow func() bool) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("beforeClose predicate panicked, keeping window open", "id", id, "panic", rec)
			ok = false
		}
	}()
	return allow()
}

// Close removes the window unless its beforeClose predicate refuses. It
// reports whether the window is gone afterwards; closing an unknown id
// reports true and changes nothing.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	_, inst := r.find(id)
	allow := r.beforeClose[id]
	r.mu.Unlock()
	if inst == nil {
		return true
	}

	if allow != nil && !r.allowClose(id, allow) {
		r.logger.Debug("window close denied", "id", id)
		return false
	}
	r.ForceClose(id)
	return true
}

// ForceClose removes the window without consulting its predicate.
func (r *Registry) ForceClose(id string) {
	r.mu.Lock()
	i, inst := r.find(id)
	if inst == nil {
		r.mu.Unlock()
		return
	}
	r.transition(inst, window.EventClose)
	r.instances = slices.Delete(r.instances, i, i+1)
	delete(r.beforeClose, id)
	r.forget(id)
	if r.focused == id {
		r.succeed()
	}
	r.mu.Unlock()

	r.notify()
}

// Focus un-minimizes and focuses the window.
func (r *Registry) Focus(id string) {
	r.mu.Lock()
	_, inst := r.find(id)
	if inst == nil {
		r.mu.Unlock()
		return
	}
	r.transition(inst, window.EventRestore)
	r.focused = id
	r.touch(id)
	r.mu.Unlock()

	r.notify()
}

// Minimize hides the window in the taskbar.
func (r *Registry) Minimize(id string) {
	r.mu.Lock()
	_, inst := r.find(id)
	if inst == nil {
		r.mu.Unlock()
		return
	}
	r.transition(inst, window.EventMinimize)
	if r.focused == id {
		r.succeed()
	}
	r.mu.Unlock()

	r.notify()
}

// MinimizeAll hides every window and clears focus.
func (r *Registry) MinimizeAll() {
	r.mu.Lock()
	for _, inst := range r.instances {
		r.transition(inst, window.EventMinimize)
	}
	r.focused = ""
	r.mu.Unlock()

	r.notify()
}

// Instances returns the open windows in open order.
func (r *Registry) Instances() []Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyInstances()
}

// Instance returns the open window with the given id.
func (r *Registry) Instance(id string) (Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, inst := r.find(id); inst != nil {
		return *inst, true
	}
	return Instance{}, false
}

// Focused returns the focused window id, if any.
func (r *Registry) Focused() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focused, r.focused != ""
}

// Len returns the number of open windows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
