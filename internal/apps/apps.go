// Package apps holds the window bodies shown on the desktop and the icon
// catalog that builds them.
package apps

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/journalos/internal/auth"
	"github.com/Gaurav-Gosain/journalos/internal/content"
)

// Body is the content of a window. The desktop sizes and frames it; the body
// only draws its inner area and reacts to keys while its window is focused.
type Body interface {
	View(width, height int) string
	Update(msg tea.KeyPressMsg) tea.Cmd
}

// Closer is implemented by bodies that may refuse to close.
type Closer interface {
	BeforeClose() bool
}

// Receiver is implemented by bodies that accept messages addressed to their
// window through ToWindowMsg.
type Receiver interface {
	Receive(msg tea.Msg) tea.Cmd
}

// Selector is implemented by bodies that can jump to an entry, such as the
// quest log selecting the quest of a post.
type Selector interface {
	Select(id string)
}

// Env is what bodies may use from the desktop session.
type Env struct {
	Catalog  func() content.Catalog
	Source   content.Source
	Contact  content.ContactSender
	Progress *content.Progress
	Session  *auth.Session
	Logger   *log.Logger
}

func (e Env) catalog() content.Catalog {
	if e.Catalog == nil {
		return content.Catalog{}
	}
	return e.Catalog()
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func (e Env) authenticated() bool {
	return e.Session != nil && e.Session.IsAuthenticated()
}

// Notification kinds.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// NotifyMsg asks the desktop to show a toast.
type NotifyMsg struct {
	Text string
	Kind string
}

// OpenPostMsg asks the desktop to load a post and open its window.
type OpenPostMsg struct {
	Slug string
}

// OpenAppMsg asks the desktop to open an app window. Select, when set, is
// passed to the body if it implements Selector.
type OpenAppMsg struct {
	ID     string
	Select string
}

// CloseWindowMsg asks the desktop to close a window through the normal,
// gated path.
type CloseWindowMsg struct {
	ID string
}

// ToWindowMsg delivers Msg to the body of window ID.
type ToWindowMsg struct {
	ID  string
	Msg tea.Msg
}

func notify(kind, text string) tea.Cmd {
	return func() tea.Msg { return NotifyMsg{Text: text, Kind: kind} }
}

// withLevelUp adds a level up toast to cmd when the player passed level.
func withLevelUp(env Env, level int, cmd tea.Cmd) tea.Cmd {
	now := env.Progress.Level()
	if now <= level {
		return cmd
	}
	env.logger().Info("level up", "level", now)
	return tea.Batch(cmd, notify(NotifySuccess, fmt.Sprintf("Level Up! You reached Level %d", now)))
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// App describes a desktop icon and the window it opens.
type App struct {
	ID        string
	Title     string
	Icon      string
	URL       string // external apps only raise a notification with this link
	Maximized bool
	New       func(Env) Body
}

// External reports whether the app leaves the desktop.
func (a App) External() bool {
	return a.URL != ""
}

// Window ids of the built-in apps.
const (
	JournalID   = "journal"
	InventoryID = "inventory"
	QuestsID    = "quests"
	ProfileID   = "profile"
	AboutID     = "about"
	ContactID   = "contact"
	LoginID     = "login"
	SignupID    = "signup"
	DiscordID   = "discord"
)

// DiscordURL is the community invite shown by the discord icon.
const DiscordURL = "https://discord.gg/journalos"

var appsByID = map[string]App{
	JournalID:   {ID: JournalID, Title: "Journal", Icon: "≡", New: func(e Env) Body { return NewJournal(e) }},
	InventoryID: {ID: InventoryID, Title: "Inventory", Icon: "▣", New: func(e Env) Body { return NewInventory(e) }},
	QuestsID:    {ID: QuestsID, Title: "Quest Log", Icon: "!", New: func(e Env) Body { return NewQuestLog(e) }},
	ProfileID:   {ID: ProfileID, Title: "Profile", Icon: "@", New: func(e Env) Body { return NewProfile(e) }},
	AboutID:     {ID: AboutID, Title: "About", Icon: "?", New: func(e Env) Body { return NewAbout() }},
	ContactID:   {ID: ContactID, Title: "Contact", Icon: "✉", New: func(e Env) Body { return NewContact(e, ContactID) }},
	LoginID:     {ID: LoginID, Title: "Log In", Icon: "→", New: func(e Env) Body { return NewLogin(e, LoginID, false) }},
	SignupID:    {ID: SignupID, Title: "Sign Up", Icon: "+", New: func(e Env) Body { return NewLogin(e, SignupID, true) }},
	DiscordID:   {ID: DiscordID, Title: "Discord", Icon: "#", URL: DiscordURL},
}

var (
	guestIcons  = []string{JournalID, LoginID, SignupID, AboutID, ContactID, DiscordID}
	memberIcons = []string{JournalID, InventoryID, DiscordID, QuestsID, ProfileID, AboutID, ContactID}
)

// Lookup returns the app with id.
func Lookup(id string) (App, bool) {
	a, ok := appsByID[id]
	return a, ok
}

// Icons returns the apps shown on the desktop, in grid order.
func Icons(authenticated bool) []App {
	ids := guestIcons
	if authenticated {
		ids = memberIcons
	}
	out := make([]App, 0, len(ids))
	for _, id := range ids {
		out = append(out, appsByID[id])
	}
	return out
}

// PostWindowID returns the window id of a post.
func PostWindowID(slug string) string {
	return "post:" + slug
}

