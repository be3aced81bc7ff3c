// Package theme provides color themes and styling for the journalos desktop.
package theme

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
// It reports whether themeName was found.
func Initialize(themeName string) bool {
	if themeName == "" {
		enabled = false
		return true
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return false
	}
	return true
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available lists the ids of every bundled theme.
func Available() []string {
	tint.NewDefaultRegistry()
	ids := tint.TintIDs()
	sort.Strings(ids)
	return ids
}

func pick(fallback string, f func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return f(t)
}

// Desktop colors
func DesktopBg() color.Color {
	return pick("#1e1e2e", func(t *tint.Tint) color.Color { return t.Bg })
}

func DesktopFg() color.Color {
	return pick("#cdd6f4", func(t *tint.Tint) color.Color { return t.Fg })
}

func IconFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.White })
}

func IconSelected() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// Window border colors
func BorderUnfocused() color.Color {
	return pick("#7f7f7f", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func HeaderFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

func WindowBg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Bg })
}

func WindowFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

// Header button colors
func ButtonMinimize() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func ButtonMaximize() color.Color {
	return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
}

func ButtonClose() color.Color {
	return pick("#cd0000", func(t *tint.Tint) color.Color { return t.Red })
}

// Taskbar colors
func TaskbarBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func TaskbarFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func TaskbarActive() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func TaskbarDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// Accent is used for XP, levels and highlighted list rows.
func Accent() color.Color {
	return pick("#ff00ff", func(t *tint.Tint) color.Color { return t.BrightPurple })
}

func Muted() color.Color {
	return lipgloss.Color("8")
}

// Notification colors
func NotificationError() color.Color {
	return pick("#cd0000", func(t *tint.Tint) color.Color { return t.Red })
}

func NotificationWarning() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func NotificationSuccess() color.Color {
	return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
}

func NotificationInfo() color.Color {
	return pick("#0000ee", func(t *tint.Tint) color.Color { return t.Blue })
}

// Rarity returns the color used for an item rarity.
func Rarity(rarity string) color.Color {
	switch rarity {
	case "uncommon":
		return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
	case "rare":
		return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
	case "epic":
		return pick("#cd00cd", func(t *tint.Tint) color.Color { return t.Purple })
	case "legendary":
		return pick("#ffff00", func(t *tint.Tint) color.Color { return t.BrightYellow })
	default:
		return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.White })
	}
}

// Pillar returns the color used for a content pillar badge.
func Pillar(pillar string) color.Color {
	switch pillar {
	case "programming":
		return pick("#00cdcd", func(t *tint.Tint) color.Color { return t.Cyan })
	case "growth-career":
		return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
	case "saas-journey":
		return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
	default:
		return Muted()
	}
}

// Help and CLI table colors
func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}
