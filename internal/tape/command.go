package tape

import (
	"fmt"
	"strings"
	"time"
)

// CommandType is the kind of a parsed command.
type CommandType string

const (
	CommandKey         CommandType = "Key"
	CommandText        CommandType = "Type"
	CommandClick       CommandType = "Click"
	CommandDoubleClick CommandType = "DoubleClick"
	CommandDrag        CommandType = "Drag"
	CommandOpen        CommandType = "Open"
	CommandPost        CommandType = "Post"
	CommandClose       CommandType = "Close"
	CommandFocus       CommandType = "Focus"
	CommandMinimize    CommandType = "Minimize"
	CommandMaximize    CommandType = "Maximize"
	CommandResize      CommandType = "Resize"
	CommandLogin       CommandType = "Login"
	CommandLogout      CommandType = "Logout"
	CommandReload      CommandType = "Reload"
	CommandSleep       CommandType = "Sleep"
	CommandWait        CommandType = "Wait"
	CommandScreenshot  CommandType = "Screenshot"
	CommandSet         CommandType = "Set"
)

// Command is one parsed script line.
type Command struct {
	Type CommandType
	Args []string
	// Ints holds numeric arguments: coordinates, sizes or a repeat count.
	Ints []int
	// Delay is the pause after each key for keys and Type, the length of a
	// Sleep, or the timeout of a Wait.
	Delay time.Duration
	Line  int
}

// Repeat is how often a key command runs.
func (c Command) Repeat() int {
	if c.Type == CommandKey && len(c.Ints) > 0 && c.Ints[0] > 0 {
		return c.Ints[0]
	}
	return 1
}

func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Type))
	for _, a := range c.Args {
		fmt.Fprintf(&sb, " %q", a)
	}
	for _, n := range c.Ints {
		fmt.Fprintf(&sb, " %d", n)
	}
	if c.Delay > 0 {
		fmt.Fprintf(&sb, " @%s", c.Delay)
	}
	return sb.String()
}

// ParseDuration parses a tape duration. A bare number is milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.IndexFunc(s, isLetterRune) < 0 {
		s += "ms"
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

func isLetterRune(r rune) bool {
	return r < 0x80 && isLetter(byte(r))
}
