package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/geometry"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Appearance.Theme == "" {
		t.Error("Expected default theme to be set")
	}
	if cfg.Content.APIURL != config.DefaultAPIURL {
		t.Errorf("Expected default api url %q, got %q", config.DefaultAPIURL, cfg.Content.APIURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultEngine(t *testing.T) {
	engine := config.DefaultConfig().Engine()

	want := geometry.Geometry{X: 6, Y: 2, Width: 64, Height: 20}
	if engine.Fallback != want {
		t.Errorf("Fallback = %+v, want %+v", engine.Fallback, want)
	}
	if engine.HeaderHeight != 1 {
		t.Errorf("HeaderHeight = %d, want 1", engine.HeaderHeight)
	}
}

func TestDefaultKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()

	windowMgmt := cfg.Keybindings.WindowManagement
	if windowMgmt == nil {
		t.Fatal("Window management keybindings are nil")
	}

	requiredActions := []string{
		"close_window",
		"minimize_window",
		"toggle_maximize",
		"next_window",
		"prev_window",
	}
	for _, action := range requiredActions {
		keys, ok := windowMgmt[action]
		if !ok {
			t.Errorf("Expected %s keybinding to exist", action)
			continue
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key bound", action)
		}
	}
}

func TestDoubleClickInterval(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := cfg.DoubleClickInterval(); got != config.DefaultDoubleClickInterval {
		t.Errorf("DoubleClickInterval() = %v, want %v", got, config.DefaultDoubleClickInterval)
	}

	cfg.Windows.DoubleClickMS = 250
	if got := cfg.DoubleClickInterval(); got != 250*time.Millisecond {
		t.Errorf("DoubleClickInterval() = %v, want 250ms", got)
	}
}

// =============================================================================
// Loading Tests
// =============================================================================

func TestLoadUserConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journalos", "config.toml")

	cfg, err := config.LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFrom() error = %v", err)
	}
	if cfg.Windows.Width != config.DefaultConfig().Windows.Width {
		t.Errorf("expected defaults, got %+v", cfg.Windows)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	again, err := config.LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if again.Appearance != cfg.Appearance || again.Windows != cfg.Windows {
		t.Errorf("reloaded config differs:\n%+v\n%+v", again, cfg)
	}
}

func TestLoadUserConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[windows]
width = 80
focus_policy = "last-active"

[keybindings.system]
quit = ["ctrl+x"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFrom() error = %v", err)
	}
	if cfg.Windows.Width != 80 || cfg.Windows.Height != 20 {
		t.Errorf("windows = %+v, want width 80 and default height", cfg.Windows)
	}
	if cfg.Windows.FocusPolicy != "last-active" {
		t.Errorf("focus policy = %q", cfg.Windows.FocusPolicy)
	}
	if !cfg.Appearance.ShowClock {
		t.Error("unset booleans should keep their defaults")
	}

	registry := config.NewKeybindRegistry(cfg)
	if got := registry.GetAction("ctrl+x"); got != "quit" {
		t.Errorf("GetAction(ctrl+x) = %q, want quit", got)
	}
	if got := registry.GetAction("alt+d"); got != "show_desktop" {
		t.Errorf("default binding lost: GetAction(alt+d) = %q", got)
	}
}

func TestLoadUserConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "[windows\nwidth = 1"},
		{"unknown focus policy", "[windows]\nfocus_policy = \"mru\""},
		{"unknown border", "[appearance]\nborder_style = \"zigzag\""},
		{"malformed key", "[keybindings.system]\nquit = [\"ctrl+\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := config.LoadUserConfigFrom(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteConfigHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# journalos configuration") {
		t.Errorf("missing header: %q", string(data)[:40])
	}
}

// =============================================================================
// KeybindRegistry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	keys := registry.GetKeys("close_window")
	if !slices.Equal(keys, []string{"ctrl+w", "alt+x"}) {
		t.Errorf("GetKeys(close_window) = %v", keys)
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := []struct {
		key  string
		want string
	}{
		{"tab", "next_window"},
		{"shift+tab", "prev_window"},
		{"alt+f", "toggle_maximize"},
		{"Ctrl+C", "quit"},
		{"f1", "toggle_help"},
	}
	for _, tt := range tests {
		if got := registry.GetAction(tt.key); got != tt.want {
			t.Errorf("GetAction(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeybindRegistry_Aliases(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.System["quit"] = []string{"Control+Escape"}
	registry := config.NewKeybindRegistry(cfg)

	if got := registry.GetAction("ctrl+esc"); got != "quit" {
		t.Errorf("GetAction(ctrl+esc) = %q, want quit", got)
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	if got := registry.GetKeysForDisplay("toggle_help"); got != "F1, Alt+h" {
		t.Errorf("GetKeysForDisplay(toggle_help) = %q", got)
	}
	if got := registry.GetKeysForDisplay("nonexistent_action"); got != "" {
		t.Errorf("expected empty display for unbound action, got %q", got)
	}
}

func TestKeybindRegistry_UnknownKey(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	action := registry.GetAction("ctrl+shift+alt+super+hyper+x")
	if action != "" {
		t.Errorf("Expected empty action for unbound key, got %q", action)
	}
}

// =============================================================================
// Key Normalizer Tests
// =============================================================================

func TestKeyNormalizer(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"ctrl+a", "ctrl+a"},
		{"Ctrl+A", "ctrl+a"},
		{"return", "return"},
		{"return", "enter"},
		{"escape", "esc"},
		{"Option+X", "alt+x"},
	}

	for _, tc := range tests {
		t.Run(tc.input+"/"+tc.expected, func(t *testing.T) {
			got := normalizer.NormalizeKey(tc.input)
			if !slices.Contains(got, tc.expected) {
				t.Errorf("NormalizeKey(%q) = %v, want to contain %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestKeyNormalizer_ValidateKey(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"ctrl+a", true},
		{"n", true},
		{"+", true},
		{"enter", true},
		{"ctrl+", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			valid, _ := normalizer.ValidateKey(tc.input)
			if valid != tc.isValid {
				t.Errorf("ValidateKey(%q) = %v, want %v", tc.input, valid, tc.isValid)
			}
		})
	}
}

// =============================================================================
// Help and Action Descriptions Tests
// =============================================================================

func TestActionDescriptions(t *testing.T) {
	for _, section := range config.ActionSections {
		for _, action := range section.Actions {
			if config.ActionDescriptions[action] == "" {
				t.Errorf("missing description for action %q", action)
			}
		}
	}
}

func TestGetKeybindings(t *testing.T) {
	sections := config.GetKeybindings(nil)
	if len(sections) < len(config.ActionSections) {
		t.Fatalf("got %d sections, want at least %d", len(sections), len(config.ActionSections))
	}
	if sections[0].Title != "Window Management" || len(sections[0].Bindings) != 5 {
		t.Errorf("first section = %+v", sections[0])
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("tab")
	}
}

func BenchmarkNormalizeKey(b *testing.B) {
	normalizer := config.NewKeyNormalizer()
	keys := []string{"ctrl+a", "Ctrl+Shift+B", "alt+1", "return"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normalizer.NormalizeKey(keys[i%len(keys)])
	}
}
