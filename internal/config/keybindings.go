package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// ActionSections groups bindable actions for help screens and `keybinds list`.
var ActionSections = []struct {
	Title   string
	Actions []string
}{
	{
		Title: "Window Management",
		Actions: []string{
			"close_window", "minimize_window", "toggle_maximize",
			"next_window", "prev_window",
		},
	},
	{
		Title:   "Desktop",
		Actions: []string{"show_desktop", "reload_content", "toggle_login"},
	},
	{
		Title:   "System",
		Actions: []string{"toggle_help", "quit"},
	},
}

// GetKeybindings returns all keybinding sections for the help overlay.
// A nil registry falls back to the default configuration.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	var sections []KeybindingSection
	for _, group := range ActionSections {
		section := KeybindingSection{Title: group.Title}
		for _, action := range group.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
// (mouse actions, icon navigation)
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "Icons",
			Bindings: []Keybinding{
				{"Double-click", "Open"},
				{"Arrows", "Select icon (no window focused)"},
				{"Enter", "Open selected icon"},
			},
		},
		{
			Title: "Mouse",
			Bindings: []Keybinding{
				{"Drag header", "Move window"},
				{"Drag bottom corner", "Resize window"},
				{"[_] [#] [x]", "Minimize, maximize, close"},
				{"Taskbar entry", "Focus / minimize window"},
			},
		},
	}
}
