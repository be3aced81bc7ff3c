// Package window holds the per-window lifecycle state machine and the frame
// that owns a visible window's geometry.
package window

import (
	"errors"
	"fmt"
)

// State is the lifecycle state of an open window. Maximized is not a state:
// it lives on the Frame so that a minimized window remembers it.
type State int

const (
	// StateNormal is an open, visible window.
	StateNormal State = iota
	// StateMinimized is an open window hidden in the taskbar.
	StateMinimized
	// StateClosed is terminal; the registry drops the instance.
	StateClosed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event drives a State transition.
type Event int

const (
	// EventMinimize hides the window.
	EventMinimize Event = iota
	// EventRestore shows the window again (focus or re-open).
	EventRestore
	// EventClose ends the window's life.
	EventClose
)

// String returns a string representation of the event.
func (e Event) String() string {
	switch e {
	case EventMinimize:
		return "minimize"
	case EventRestore:
		return "restore"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned for events applied to a closed window or
// unknown events.
var ErrInvalidTransition = errors.New("invalid window transition")

// Next returns the state reached by applying ev to s.
func (s State) Next(ev Event) (State, error) {
	if s == StateClosed {
		return s, fmt.Errorf("%w: %s on %s window", ErrInvalidTransition, ev, s)
	}

	switch ev {
	case EventMinimize:
		return StateMinimized, nil
	case EventRestore:
		return StateNormal, nil
	case EventClose:
		return StateClosed, nil
	}
	return s, fmt.Errorf("%w: %s on %s window", ErrInvalidTransition, ev, s)
}
