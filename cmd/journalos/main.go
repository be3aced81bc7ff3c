// Package main implements journalos, a terminal desktop for a gamified blog.
// Posts, quests and loot open as windows on a small window manager that runs
// locally or over SSH.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	configPath string
	contentDir string
	apiURL     string
	themeName  string
	asPlayer   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "journalos",
		Short: "A desktop for reading the journal",
		Long: `journalos - a terminal desktop for the journal

Read posts, solve quests and collect loot in draggable windows. Content comes
from the blog API or from a local directory of markdown posts.`,
		Example: `  # Run against the blog API
  journalos

  # Read a local content directory
  journalos --content-dir ./content

  # Serve the desktop over SSH
  journalos serve --port 2222

  # Print one frame with the journal open
  journalos snapshot --open journal

  # Replay a scripted session
  journalos play demo.tape`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	pf.StringVar(&configPath, "config", "", "Config file (default is the XDG config path)")
	pf.StringVar(&contentDir, "content-dir", "", "Read content from this directory instead of the API")
	pf.StringVar(&apiURL, "api-url", "", "Content API base URL")
	pf.StringVar(&themeName, "theme", "", "Theme id (see `journalos themes`)")
	pf.StringVar(&asPlayer, "as", "", "Start logged in as this player")

	var sshHost, sshPort, sshKeyPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desktop over SSH",
		Long: `Serve the desktop over SSH

Every connection gets its own desktop. The SSH user name becomes the player;
root, guest and anonymous connect as guests. A host key is generated on first
start if none is configured.`,
		Example: `  journalos serve
  journalos serve --host 0.0.0.0 --port 2222`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}
	serveCmd.Flags().StringVar(&sshHost, "host", "", "Listen host (default from config)")
	serveCmd.Flags().StringVar(&sshPort, "port", "", "Listen port (default from config)")
	serveCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "SSH host key path")

	var snapWidth, snapHeight int
	var snapOpen []string
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print a single frame of the desktop",
		Long: `Print a single frame of the desktop

Loads the catalog, opens the given apps and prints the composed frame. The
size defaults to the current terminal.`,
		Example: `  journalos snapshot --open journal,quests
  journalos snapshot --width 120 --height 40 --open about`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(snapWidth, snapHeight, snapOpen)
		},
	}
	snapshotCmd.Flags().IntVar(&snapWidth, "width", 0, "Frame width")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 0, "Frame height")
	snapshotCmd.Flags().StringSliceVar(&snapOpen, "open", nil, "Apps to open, in order")

	var playWidth, playHeight int
	var playOutput string
	var playPlain bool
	playCmd := &cobra.Command{
		Use:   "play <script.tape>",
		Short: "Play a tape script against a headless desktop",
		Long: `Play a tape script against a headless desktop

Runs the script's key presses, clicks and window commands without a terminal
and prints every Screenshot. Scripts fail on the first command that errors,
including a Wait whose text never shows up.`,
		Example: `  journalos play demo.tape
  journalos play --plain --output shots/ demo.tape`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), args[0], playWidth, playHeight, playOutput, playPlain)
		},
	}
	playCmd.Flags().IntVar(&playWidth, "width", 80, "Desktop width")
	playCmd.Flags().IntVar(&playHeight, "height", 24, "Desktop height")
	playCmd.Flags().StringVarP(&playOutput, "output", "o", "", "Write screenshots to this directory")
	playCmd.Flags().BoolVar(&playPlain, "plain", false, "Strip colors from screenshots")

	iconsCmd := &cobra.Command{
		Use:   "icons",
		Short: "List desktop icons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listIcons()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listThemes()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage journalos configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				return printConfigPath()
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit configuration in $EDITOR",
			Long: `Open the configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editConfigFile()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset configuration to defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				return resetConfigToDefaults()
			},
		},
	)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}
	keybindsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all keybindings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listKeybindings()
			},
		},
		&cobra.Command{
			Use:   "list-custom",
			Short: "List customized keybindings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listCustomKeybindings()
			},
		},
	)

	rootCmd.AddCommand(serveCmd, snapshotCmd, playCmd, iconsCmd, themesCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
