package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/journalos/internal/auth"
	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/desktop"
	"github.com/Gaurav-Gosain/journalos/internal/server"
	"github.com/Gaurav-Gosain/journalos/internal/tape"
	"github.com/Gaurav-Gosain/journalos/internal/theme"
)

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(logger *log.Logger) *config.UserConfig {
	var (
		cfg *config.UserConfig
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadUserConfigFrom(configPath)
	} else {
		cfg, err = config.LoadUserConfig()
	}
	if err != nil || cfg == nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}

	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}
	if apiURL != "" {
		cfg.Content.APIURL = apiURL
		if contentDir == "" {
			cfg.Content.Dir = ""
		}
	}
	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}
	if asPlayer != "" {
		cfg.Player.Username = asPlayer
		cfg.Player.StartAuthenticated = true
	}

	if !theme.Initialize(cfg.Appearance.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Appearance.Theme)
	}
	return cfg
}

// newSession seeds the local player from the config.
func newSession(cfg *config.UserConfig, logger *log.Logger) *auth.Session {
	session := auth.NewSession()
	if cfg.Player.StartAuthenticated {
		if _, err := session.Login(cfg.Player.Username); err != nil {
			logger.Warn("could not start logged in", "err", err)
		}
	}
	return session
}

// filterMouseMotion drops motion events unless a window is being dragged or
// resized.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*desktop.Desktop)
	if !ok || d.Interacting() {
		return msg
	}
	return nil
}

func runLocal() error {
	// The terminal belongs to the desktop; logs go to the state dir.
	var logOut io.Writer = io.Discard
	if f, err := config.OpenLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "journalos", debugMode)
	log.SetDefault(logger)
	if debugMode {
		if path, err := config.GetLogPath(); err == nil {
			fmt.Println("Debug log:", path)
		}
	}

	cfg := loadConfig(logger)
	if path, err := config.GetConfigPath(); err == nil {
		logger.Info("configuration", "path", path)
	}

	opts := desktop.OptionsFromConfig(cfg, logger)
	opts.Session = newSession(cfg, logger)
	d := desktop.New(opts)
	defer d.Close()

	p := tea.NewProgram(
		d,
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(filterMouseMotion),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runServe(ctx context.Context, host, port, keyPath string) error {
	logger := config.NewLogger(os.Stderr, "journalos", debugMode)
	log.SetDefault(logger)
	cfg := loadConfig(logger)

	if host == "" {
		host = cfg.Server.Host
	}
	if port == "" {
		port = cfg.Server.Port
	}
	if keyPath == "" {
		keyPath = cfg.Server.HostKeyPath
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
		Desktop: desktop.OptionsFromConfig(cfg, logger),
		Logger:  logger.WithPrefix("ssh"),
	})
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runSnapshot(width, height int, open []string) error {
	logger := config.NewLogger(os.Stderr, "journalos", debugMode)
	cfg := loadConfig(logger)

	if width <= 0 || height <= 0 {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}

	opts := desktop.OptionsFromConfig(cfg, logger)
	opts.Session = newSession(cfg, logger)
	d := desktop.New(opts)
	defer d.Close()
	d.Resize(width, height)

	msg := d.LoadCatalog()()
	if cm, ok := msg.(desktop.CatalogMsg); ok && cm.Err != nil {
		logger.Warn("failed to load content", "err", cm.Err)
	} else {
		d.Update(msg)
	}
	for _, id := range open {
		d.OpenApp(strings.TrimSpace(id), "")
	}

	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	_, err := fmt.Fprintln(w, d.Render())
	return err
}

func runPlay(ctx context.Context, script string, width, height int, outDir string, plain bool) error {
	logger := config.NewLogger(os.Stderr, "journalos", debugMode)
	cfg := loadConfig(logger)

	src, err := os.ReadFile(script)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	cmds, err := tape.Parse(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", script, err)
	}

	opts := desktop.OptionsFromConfig(cfg, logger)
	opts.Session = newSession(cfg, logger)
	// Scripts run against the catalog as loaded at start.
	opts.Watcher = nil
	d := desktop.New(opts)
	defer d.Close()
	d.Resize(width, height)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := tape.NewRunner(d)
	r.Logger = logger.WithPrefix("tape")
	runErr := r.Run(ctx, cmds)
	if errors.Is(runErr, tape.ErrQuit) {
		runErr = nil
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}
	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	for i, shot := range r.Screenshots {
		frame := shot.Frame
		if plain {
			frame = shot.Text()
		}
		name := shot.Name
		if name == "" {
			name = fmt.Sprintf("shot-%02d", i+1)
		}
		if outDir == "" {
			fmt.Fprintf(w, "# %s (line %d)\n%s\n", name, shot.Line, frame)
			continue
		}
		path := filepath.Join(outDir, name+".txt")
		if err := os.WriteFile(path, []byte(frame+"\n"), 0o644); err != nil {
			return err
		}
		logger.Info("screenshot saved", "path", path)
	}
	return runErr
}
