package apps

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

const minPasswordLen = 6

// Login is the login or signup form. Passwords are collected for the form's
// sake only; signing in is the session's opaque Login action.
type Login struct {
	env    Env
	id     string
	signup bool
	fields []textField
	focus  int
	err    string
}

// NewLogin returns the login form of window id, or the signup form.
func NewLogin(env Env, id string, signup bool) *Login {
	l := &Login{env: env, id: id, signup: signup}
	if signup {
		l.fields = []textField{
			newTextField("Username", 50, false),
			newTextField("Email", 200, false),
			newTextField("Password", 128, true),
			newTextField("Confirm Password", 128, true),
		}
	} else {
		l.fields = []textField{
			newTextField("Email or Username", 200, false),
			newTextField("Password", 128, true),
		}
	}
	focusField(l.fields, 0)
	return l
}

// Err returns the last validation error.
func (l *Login) Err() string {
	return l.err
}

// Username derives the player name from the form.
func (l *Login) Username() string {
	name := strings.TrimSpace(l.fields[0].Value())
	if !l.signup {
		if at := strings.IndexByte(name, '@'); at > 0 {
			name = name[:at]
		}
	}
	return name
}

func (l *Login) validate() string {
	for i := range l.fields {
		if strings.TrimSpace(l.fields[i].Value()) == "" {
			return l.fields[i].Label + " is required"
		}
	}
	if !l.signup {
		return ""
	}
	if !strings.Contains(l.fields[1].Value(), "@") {
		return "A valid email is required"
	}
	if len(l.fields[2].Value()) < minPasswordLen {
		return "Password must be at least 6 characters"
	}
	if l.fields[2].Value() != l.fields[3].Value() {
		return "Passwords do not match"
	}
	return ""
}

func (l *Login) submit() tea.Cmd {
	if problem := l.validate(); problem != "" {
		l.err = problem
		return nil
	}
	if l.env.Session == nil {
		l.err = "Logging in is not available"
		return nil
	}
	user, err := l.env.Session.Login(l.Username())
	if err != nil {
		l.err = err.Error()
		return nil
	}
	l.err = ""
	l.env.logger().Info("player logged in", "user", user.Username, "signup", l.signup)
	return tea.Batch(
		notify(NotifySuccess, "Welcome, "+user.Username+"!"),
		send(CloseWindowMsg{ID: l.id}),
	)
}

func (l *Login) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up":
		l.focus = max(0, l.focus-1)
		focusField(l.fields, l.focus)
		return nil
	case "down":
		l.focus = min(len(l.fields)-1, l.focus+1)
		focusField(l.fields, l.focus)
		return nil
	case "enter":
		if l.focus < len(l.fields)-1 {
			l.focus++
			focusField(l.fields, l.focus)
			return nil
		}
		return l.submit()
	}
	l.fields[l.focus].update(msg)
	return nil
}

func (l *Login) View(width, height int) string {
	heading := "Welcome back, traveler."
	other := "No account? Open Sign Up from the desktop."
	if l.signup {
		heading = "Begin your journey."
		other = "Already playing? Open Log In from the desktop."
	}

	lines := []string{accent(heading), ""}
	for i := range l.fields {
		lines = append(lines, l.fields[i].view(width))
	}
	lines = append(lines, "")
	if l.err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.NotificationError()).Render(l.err))
	}
	lines = append(lines, muted("↑/↓ move · enter next/submit"), muted(other))
	return strings.Join(lines, "\n")
}
