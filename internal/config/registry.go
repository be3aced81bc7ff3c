package config

import (
	"fmt"
	"slices"
	"strings"
)

// ActionDescriptions are the human-readable names of every bindable action.
var ActionDescriptions = map[string]string{
	"close_window":    "Close window",
	"minimize_window": "Minimize window",
	"toggle_maximize": "Maximize / restore window",
	"next_window":     "Focus next window",
	"prev_window":     "Focus previous window",
	"show_desktop":    "Show desktop (minimize all)",
	"reload_content":  "Reload posts, quests and items",
	"toggle_login":    "Log in / log out",
	"toggle_help":     "Toggle help",
	"quit":            "Quit",
}

// KeyNormalizer canonicalizes key strings so that config values match the
// strings Bubble Tea reports for key presses.
type KeyNormalizer struct {
	aliases map[string]string
}

// NewKeyNormalizer creates a normalizer with the usual aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string]string{
			"return":   "enter",
			"escape":   "esc",
			"del":      "delete",
			"ins":      "insert",
			"pgup":     "pageup",
			"pgdown":   "pagedown",
			"spacebar": "space",
			"option":   "alt",
			"opt":      "alt",
			"meta":     "alt",
			"control":  "ctrl",
			"cmd":      "super",
		},
	}
}

// NormalizeKey lowercases key and returns it along with its aliased spelling,
// if any. The original lowercase form always comes first.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}

	parts := strings.Split(key, "+")
	changed := false
	for i, p := range parts {
		if alias, ok := n.aliases[p]; ok && alias != p {
			parts[i] = alias
			changed = true
		}
	}
	if !changed {
		return []string{key}
	}
	return []string{key, strings.Join(parts, "+")}
}

// ValidateKey reports whether key is usable in a binding, with a reason when
// it is not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	for p := range strings.SplitSeq(strings.ToLower(key), "+") {
		if p == "" && key != "+" {
			return false, fmt.Sprintf("malformed key %q", key)
		}
	}
	return true, ""
}

// KeybindRegistry resolves actions to keys and keys to actions.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry builds the lookup tables from cfg.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	for _, section := range cfg.Keybindings.sections() {
		// Sorted so that a key bound twice resolves the same way every run.
		actions := make([]string, 0, len(section))
		for action := range section {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		for _, action := range actions {
			for _, key := range section[action] {
				variants := r.normalizer.NormalizeKey(key)
				if len(variants) == 0 {
					continue
				}
				r.actionToKeys[action] = append(r.actionToKeys[action], variants[0])
				for _, v := range variants {
					if _, taken := r.keyToAction[v]; !taken {
						r.keyToAction[v] = action
					}
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to key, or "" when the key is unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	for _, v := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[v]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay formats the keys bound to action for help screens.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = formatKey(k)
	}
	return strings.Join(display, ", ")
}

func formatKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch p {
		case "ctrl", "alt", "shift", "super", "tab", "enter", "esc", "space":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		default:
			if len(p) > 1 && p[0] == 'f' {
				parts[i] = strings.ToUpper(p)
			}
		}
	}
	return strings.Join(parts, "+")
}
