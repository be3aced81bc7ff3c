package apps

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

const contactTimeout = 10 * time.Second

// contactSentMsg reports the result of a send back to the contact window.
type contactSentMsg struct {
	err error
}

// Contact is a form that leaves a message for the author.
type Contact struct {
	env    Env
	id     string
	fields []textField
	focus  int

	sending bool
	sent    bool
	err     string
}

// NewContact returns the contact form of window id.
func NewContact(env Env, id string) *Contact {
	c := &Contact{
		env: env,
		id:  id,
		fields: []textField{
			newTextField("Name", 100, false),
			newTextField("Email", 200, false),
			newTextField("Message", 2000, false),
		},
	}
	focusField(c.fields, 0)
	return c
}

// Sent reports whether the last message went out.
func (c *Contact) Sent() bool {
	return c.sent
}

// Err returns the validation or send error shown on the form.
func (c *Contact) Err() string {
	return c.err
}

// Message returns the form as a message.
func (c *Contact) Message() content.ContactMessage {
	return content.ContactMessage{
		Name:    strings.TrimSpace(c.fields[0].Value()),
		Email:   strings.TrimSpace(c.fields[1].Value()),
		Message: strings.TrimSpace(c.fields[2].Value()),
	}
}

// validate returns the first problem with the form, or "".
func (c *Contact) validate() string {
	m := c.Message()
	switch {
	case m.Name == "":
		return "Name is required"
	case m.Email == "" || !strings.Contains(m.Email, "@"):
		return "A valid email is required"
	case m.Message == "":
		return "Message is required"
	}
	return ""
}

func (c *Contact) submit() tea.Cmd {
	if problem := c.validate(); problem != "" {
		c.err = problem
		return nil
	}
	if c.env.Contact == nil {
		c.err = "Messages cannot be sent right now"
		return nil
	}
	c.err = ""
	c.sending = true
	msg, sender, id := c.Message(), c.env.Contact, c.id
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), contactTimeout)
		defer cancel()
		return ToWindowMsg{ID: id, Msg: contactSentMsg{err: sender.SendContact(ctx, msg)}}
	}
}

// Receive handles the send result.
func (c *Contact) Receive(msg tea.Msg) tea.Cmd {
	res, ok := msg.(contactSentMsg)
	if !ok {
		return nil
	}
	c.sending = false
	if res.err != nil {
		c.env.logger().Error("contact message failed", "err", res.err)
		c.err = "Failed to send message"
		return notify(NotifyError, "Failed to send message")
	}
	c.sent = true
	return notify(NotifySuccess, "Message sent!")
}

func (c *Contact) reset() {
	for i := range c.fields {
		c.fields[i].Reset()
	}
	c.focus = 0
	focusField(c.fields, 0)
	c.sent = false
	c.err = ""
}

func (c *Contact) Update(msg tea.KeyPressMsg) tea.Cmd {
	if c.sending {
		return nil
	}
	key := msg.String()
	if c.sent {
		if key == "enter" {
			c.reset()
		}
		return nil
	}

	switch key {
	case "up":
		c.focus = max(0, c.focus-1)
		focusField(c.fields, c.focus)
		return nil
	case "down":
		c.focus = min(len(c.fields)-1, c.focus+1)
		focusField(c.fields, c.focus)
		return nil
	case "ctrl+s":
		return c.submit()
	case "enter":
		if c.focus < len(c.fields)-1 {
			c.focus++
			focusField(c.fields, c.focus)
			return nil
		}
		return c.submit()
	}
	c.fields[c.focus].update(msg)
	return nil
}

func (c *Contact) View(width, height int) string {
	if c.sent {
		return strings.Join([]string{
			accent("Message Sent!"),
			"",
			strings.Join(wrap("Thanks for reaching out. I'll get back to you soon.", width), "\n"),
			"",
			button("enter", "Send Another Message"),
		}, "\n")
	}

	var lines []string
	lines = append(lines, wrap("Have a question or just want to say hi? Leave a message.", width)...)
	lines = append(lines, "")
	for i := range c.fields {
		lines = append(lines, c.fields[i].view(width))
	}
	lines = append(lines, "")
	switch {
	case c.sending:
		lines = append(lines, muted("Sending..."))
	case c.err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.NotificationError()).Render(c.err))
	}
	lines = append(lines, muted("↑/↓ move · enter next · ctrl+s send"))
	return strings.Join(lines, "\n")
}
