// Package server serves the journal desktop over SSH. Every connection gets
// its own desktop, session and progress; nothing is shared between players.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/journalos/internal/auth"
	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/content"
	"github.com/Gaurav-Gosain/journalos/internal/desktop"
)

const shutdownTimeout = 10 * time.Second

// guestUsers are SSH user names that do not identify a player.
var guestUsers = []string{"", "root", "guest", "anonymous", "journalos"}

// Config holds configuration for the SSH server.
type Config struct {
	Host    string
	Port    string
	KeyPath string
	// Desktop is the template for every session's desktop.
	Desktop desktop.Options
	Logger  *log.Logger
}

// Server hands out one desktop per SSH session.
type Server struct {
	cfg    Config
	logger *log.Logger
}

// New creates a server. Nothing listens until ListenAndServe.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// HostKeyPath returns the configured host key, or one under the XDG data dir
// that wish generates on first start.
func (s *Server) HostKeyPath() (string, error) {
	if s.cfg.KeyPath != "" {
		return s.cfg.KeyPath, nil
	}
	path, err := xdg.DataFile(filepath.Join("journalos", "host_key"))
	if err != nil {
		return "", fmt.Errorf("resolve host key path: %w", err)
	}
	return path, nil
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	keyPath, err := s.HostKeyPath()
	if err != nil {
		return err
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(s.cfg.Host, s.cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting SSH server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// PlayerName maps an SSH user to a player name. Generic accounts play as
// guests.
func PlayerName(user string) (string, bool) {
	if slices.Contains(guestUsers, user) {
		return "", false
	}
	return user, true
}

// NewDesktop builds the desktop for one connection.
func (s *Server) NewDesktop(user string, width, height int) *desktop.Desktop {
	opts := s.cfg.Desktop
	logger := s.logger.With("user", user)
	opts.Logger = logger
	opts.Session = auth.NewSession()
	opts.Progress = content.NewProgress()

	if name, ok := PlayerName(user); ok {
		if _, err := opts.Session.Login(name); err != nil {
			logger.Warn("could not sign in SSH user", "err", err)
		}
	}

	d := desktop.New(opts)
	if width > 0 && height > 0 {
		d.Resize(width, height)
	}
	return d
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		wish.Fatalln(sess, "journalos needs an interactive terminal; connect with ssh -t")
		return nil, nil
	}

	d := s.NewDesktop(sess.User(), pty.Window.Width, pty.Window.Height)
	go func() {
		<-sess.Context().Done()
		d.Close()
	}()

	return d, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}
