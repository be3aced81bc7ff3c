// Package config holds journalos constants, the TOML user configuration and
// the keybinding registry.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/journalos/internal/geometry"
)

const appName = "journalos"

// Stacking layers. Windows only use the two window tiers; everything the
// desktop draws on top of them sits above ZFocused.
const (
	ZIcons         = 0
	ZUnfocused     = 100
	ZFocused       = 200
	ZTaskbar       = 300
	ZDialog        = 400
	ZHelp          = 450
	ZNotifications = 500
)

// Desktop layout, in cells.
const (
	TaskbarHeight = 1
	IconWidth     = 12
	IconHeight    = 3
	IconStartX    = 2
	IconStartY    = 1
	IconSpacingX  = 14
	IconSpacingY  = 4
)

// Timing.
const (
	NormalFPS                  = 60
	NotificationDuration       = 3 * time.Second
	DefaultDoubleClickInterval = 400 * time.Millisecond
	SysInfoInterval            = 2 * time.Second
	ClockInterval              = time.Second
	ContentDebounce            = 250 * time.Millisecond
	MaxLogMessages             = 200
)

// DefaultAPIURL is the base URL of the content API when none is configured.
const DefaultAPIURL = "http://localhost:8000/api/v1"

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Windows     WindowsConfig     `toml:"windows"`
	Content     ContentConfig     `toml:"content"`
	Player      PlayerConfig      `toml:"player"`
	Server      ServerConfig      `toml:"server"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig controls theming and taskbar widgets.
type AppearanceConfig struct {
	Theme       string `toml:"theme" comment:"bubbletint theme id, e.g. dracula, nord, tokyo_night"`
	BorderStyle string `toml:"border_style" comment:"rounded, normal, thick, double or hidden"`
	ShowClock   bool   `toml:"show_clock"`
	ShowSysInfo bool   `toml:"show_sysinfo"`
}

// WindowsConfig sizes new windows, in cells.
type WindowsConfig struct {
	X             int    `toml:"x"`
	Y             int    `toml:"y"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	HeaderHeight  int    `toml:"header_height" comment:"rows between the cursor and the top of a window torn off a maximized one"`
	MinWidth      int    `toml:"min_width"`
	MinHeight     int    `toml:"min_height"`
	FocusPolicy   string `toml:"focus_policy" comment:"none or last-active"`
	DoubleClickMS int    `toml:"double_click_ms"`
}

// ContentConfig selects where posts, quests and items come from. Dir wins
// over APIURL when both are set.
type ContentConfig struct {
	Dir    string `toml:"dir"`
	APIURL string `toml:"api_url"`
	Watch  bool   `toml:"watch"`
}

// PlayerConfig seeds the local session.
type PlayerConfig struct {
	Username           string `toml:"username"`
	StartAuthenticated bool   `toml:"start_authenticated"`
}

// ServerConfig configures `journalos serve`.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
}

// KeybindingsConfig maps actions to keys, grouped the way the help overlay
// shows them.
type KeybindingsConfig struct {
	WindowManagement map[string][]string `toml:"window_management"`
	Desktop          map[string][]string `toml:"desktop"`
	System           map[string][]string `toml:"system"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:       "dracula",
			BorderStyle: "rounded",
			ShowClock:   true,
			ShowSysInfo: true,
		},
		Windows: WindowsConfig{
			X:             6,
			Y:             2,
			Width:         64,
			Height:        20,
			HeaderHeight:  1,
			MinWidth:      20,
			MinHeight:     5,
			FocusPolicy:   "none",
			DoubleClickMS: int(DefaultDoubleClickInterval / time.Millisecond),
		},
		Content: ContentConfig{
			APIURL: DefaultAPIURL,
			Watch:  true,
		},
		Player: PlayerConfig{
			Username: "traveler",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "2222",
		},
		Keybindings: KeybindingsConfig{
			WindowManagement: map[string][]string{
				"close_window":    {"ctrl+w", "alt+x"},
				"minimize_window": {"alt+m"},
				"toggle_maximize": {"alt+f"},
				"next_window":     {"tab", "alt+n"},
				"prev_window":     {"shift+tab", "alt+p"},
			},
			Desktop: map[string][]string{
				"show_desktop":   {"alt+d"},
				"reload_content": {"alt+r"},
				"toggle_login":   {"alt+l"},
			},
			System: map[string][]string{
				"toggle_help": {"f1", "alt+h"},
				"quit":        {"ctrl+c", "ctrl+q"},
			},
		},
	}
}

// Engine builds the cell-unit geometry engine for new windows.
func (c *UserConfig) Engine() geometry.Engine {
	return geometry.Engine{
		Fallback: geometry.Normalize(geometry.Geometry{
			X:      c.Windows.X,
			Y:      c.Windows.Y,
			Width:  c.Windows.Width,
			Height: c.Windows.Height,
		}),
		HeaderHeight: max(c.Windows.HeaderHeight, 0),
		MinWidth:     max(c.Windows.MinWidth, 1),
		MinHeight:    max(c.Windows.MinHeight, 1),
	}
}

// DoubleClickInterval is the longest gap between two clicks that still
// counts as a double-click.
func (c *UserConfig) DoubleClickInterval() time.Duration {
	if c.Windows.DoubleClickMS <= 0 {
		return DefaultDoubleClickInterval
	}
	return time.Duration(c.Windows.DoubleClickMS) * time.Millisecond
}

// Validate fills unset values with defaults and rejects values that cannot work.
func (c *UserConfig) Validate() error {
	def := DefaultConfig()

	if c.Windows.Width <= 0 || c.Windows.Height <= 0 {
		c.Windows.Width, c.Windows.Height = def.Windows.Width, def.Windows.Height
	}
	if c.Windows.MinWidth <= 0 {
		c.Windows.MinWidth = def.Windows.MinWidth
	}
	if c.Windows.MinHeight <= 0 {
		c.Windows.MinHeight = def.Windows.MinHeight
	}
	switch c.Windows.FocusPolicy {
	case "":
		c.Windows.FocusPolicy = def.Windows.FocusPolicy
	case "none", "last-active", "last_active":
	default:
		return fmt.Errorf("windows.focus_policy: unknown value %q", c.Windows.FocusPolicy)
	}
	switch c.Appearance.BorderStyle {
	case "":
		c.Appearance.BorderStyle = def.Appearance.BorderStyle
	case "rounded", "normal", "thick", "double", "hidden":
	default:
		return fmt.Errorf("appearance.border_style: unknown value %q", c.Appearance.BorderStyle)
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = def.Appearance.Theme
	}
	if c.Content.Dir == "" && c.Content.APIURL == "" {
		c.Content.APIURL = def.Content.APIURL
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}

	// Actions missing from the user's file keep their default keys.
	c.Keybindings.WindowManagement = mergeSection(c.Keybindings.WindowManagement, def.Keybindings.WindowManagement)
	c.Keybindings.Desktop = mergeSection(c.Keybindings.Desktop, def.Keybindings.Desktop)
	c.Keybindings.System = mergeSection(c.Keybindings.System, def.Keybindings.System)

	normalizer := NewKeyNormalizer()
	for _, section := range c.Keybindings.sections() {
		for action, keys := range section {
			for _, key := range keys {
				if ok, reason := normalizer.ValidateKey(key); !ok {
					return fmt.Errorf("keybindings.%s: %s", action, reason)
				}
			}
		}
	}
	return nil
}

func (k KeybindingsConfig) sections() []map[string][]string {
	return []map[string][]string{k.WindowManagement, k.Desktop, k.System}
}

func mergeSection(user, def map[string][]string) map[string][]string {
	if user == nil {
		user = make(map[string][]string, len(def))
	}
	for action, keys := range def {
		if _, ok := user[action]; !ok {
			user[action] = keys
		}
	}
	return user
}

// GetConfigPath returns the config file location under the XDG config dir.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(appName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// GetLogPath returns the log file location under the XDG state dir.
func GetLogPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
	if err != nil {
		return "", fmt.Errorf("resolve log path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the config file, creating it with defaults when it
// does not exist yet.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadUserConfigFrom(path)
}

// LoadUserConfigFrom is LoadUserConfig for an explicit path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Values missing from the file keep their defaults.
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes cfg as TOML with a short header.
func WriteConfig(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# journalos configuration\n")
	sb.WriteString("# Keybindings map an action to a list of keys; see `journalos keybinds list`.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Location: " + path + "\n\n")
	sb.Write(data)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
