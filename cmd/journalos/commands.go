package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/journalos/internal/apps"
	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent())
	mutedStyle  = lipgloss.NewStyle().Foreground(theme.Muted())
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// newTable returns a rounded table in the CLI style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

func loadConfigOrDefault() *config.UserConfig {
	path, err := resolveConfigPath()
	if err == nil {
		var cfg *config.UserConfig
		if cfg, err = config.LoadUserConfigFrom(path); err == nil {
			return cfg
		}
	}
	fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	fmt.Fprintln(os.Stderr, "Using defaults...")
	return config.DefaultConfig()
}

func printConfigPath() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", path)
		if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return errors.New("no editor found, set $EDITOR")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	if _, err := config.LoadUserConfigFrom(path); err != nil {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Warning: "+err.Error()))
	}
	return nil
}

func resetConfigToDefaults() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", path)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", path)
	fmt.Println("\nYou can customize it with: journalos config edit")
	return nil
}

func listKeybindings() error {
	registry := config.NewKeybindRegistry(loadConfigOrDefault())

	fmt.Println()
	fmt.Println(titleStyle.Render("journalos Keybindings"))
	fmt.Println()

	for _, section := range config.ActionSections {
		t := newTable("Keys", "Action")
		rows := 0
		for _, action := range section.Actions {
			keys := registry.GetKeys(action)
			if len(keys) == 0 {
				continue
			}
			t.Row(strings.Join(keys, ", "), formatActionName(action))
			rows++
		}
		if rows == 0 {
			continue
		}
		fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.HelpKey()).Render(section.Title))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}

// Customization is one keybinding that differs from the defaults.
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations returns the keybindings of userCfg that differ from
// defaultCfg, sorted by action.
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var out []Customization
	compare := func(user, def map[string][]string) {
		for action, defKeys := range def {
			keys, ok := user[action]
			if !ok || slices.Equal(keys, defKeys) {
				continue
			}
			out = append(out, Customization{
				Action:      formatActionName(action),
				DefaultKeys: strings.Join(defKeys, ", "),
				CustomKeys:  strings.Join(keys, ", "),
			})
		}
	}
	compare(userCfg.Keybindings.WindowManagement, defaultCfg.Keybindings.WindowManagement)
	compare(userCfg.Keybindings.Desktop, defaultCfg.Keybindings.Desktop)
	compare(userCfg.Keybindings.System, defaultCfg.Keybindings.System)

	slices.SortFunc(out, func(a, b Customization) int { return strings.Compare(a.Action, b.Action) })
	return out
}

func listCustomKeybindings() error {
	custom := findCustomizations(loadConfigOrDefault(), config.DefaultConfig())
	if len(custom) == 0 {
		fmt.Println(mutedStyle.Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Println()
		fmt.Println("Run 'journalos keybinds list' to see all keybindings.")
		return nil
	}

	t := newTable("Action", "Default", "Custom")
	for _, c := range custom {
		t.Row(c.Action, c.DefaultKeys, c.CustomKeys)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Custom Keybindings"))
	fmt.Println()
	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Foreground(theme.HelpKey()).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(custom))))
	return nil
}

func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}

// iconRows lists the desktop icons for one session state.
func iconRows(authenticated bool) [][]string {
	var rows [][]string
	for _, app := range apps.Icons(authenticated) {
		opens := "window"
		if app.External() {
			opens = app.URL
		}
		rows = append(rows, []string{app.Icon, app.Title, app.ID, opens})
	}
	return rows
}

func listIcons() error {
	for _, state := range []struct {
		title         string
		authenticated bool
	}{
		{"Guest", false},
		{"Logged in", true},
	} {
		t := newTable("", "Title", "ID", "Opens").Rows(iconRows(state.authenticated)...)
		fmt.Println(titleStyle.Render(state.title))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}

func listThemes() error {
	current := loadConfigOrDefault().Appearance.Theme
	for _, id := range theme.Available() {
		if id == current {
			fmt.Println(titleStyle.Render("* " + id))
			continue
		}
		fmt.Println("  " + id)
	}
	return nil
}
