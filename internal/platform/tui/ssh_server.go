package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/boulder-daily/internal/core"
	"github.com/vovakirdan/boulder-daily/internal/daily"
	"github.com/vovakirdan/boulder-daily/internal/games/boulder"
	"github.com/vovakirdan/boulder-daily/internal/registry"
	"github.com/vovakirdan/boulder-daily/internal/verify"
)

type sessionKey struct{}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.boulder/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means unlimited.
	MaxSessions int

	TickInterval time.Duration

	// DailySeeds resolves the seed served on each day, so pinned seeds
	// reach remote players. Nil serves the derived seeds.
	DailySeeds daily.Lookup
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":2222",
		IdleTimeout:  10 * time.Minute,
		MaxSessions:  32,
		TickInterval: 150 * time.Millisecond,
	}
}

// SSHServer wraps a Wish SSH server hosting daily runs.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	verifier *verify.Verifier
	sessions *SessionRegistry
	logger   *log.Logger
	clock    func() time.Time
}

// NewSSHServer creates a new SSH server. Every finished run is checked by
// verifier, which also owns any storage.
func NewSSHServer(cfg SSHServerConfig, verifier *verify.Verifier, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "boulder-ssh",
		})
	}
	if verifier == nil {
		verifier = &verify.Verifier{Logger: logger}
	}
	if cfg.DailySeeds == nil {
		cfg.DailySeeds = daily.Derived
	}

	srv := &SSHServer{
		config:   cfg,
		verifier: verifier,
		sessions: NewSessionRegistry(cfg.MaxSessions),
		logger:   logger,
		clock:    time.Now,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".boulder", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging, then admission, then the game.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.admissionMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		wish.Fatalln(sshSession, "boulder needs a terminal, connect with ssh -t")
		return nil, nil
	}

	id, _ := sshSession.Context().Value(sessionKey{}).(SessionID)
	model, err := s.newSession(sshSession.Context(), id, pty.Window.Width, pty.Window.Height)
	if err != nil {
		s.logger.Error("cannot start run", "user", sshSession.User(), "error", err)
		wish.Fatalln(sshSession, "cannot start today's level, try again later")
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// newSession starts a daily run on the seed published for today.
func (s *SSHServer) newSession(ctx context.Context, id SessionID, width, height int) (Model, error) {
	seed, err := s.config.DailySeeds(ctx, s.clock())
	if err != nil {
		return Model{}, fmt.Errorf("resolve daily seed: %w", err)
	}
	game, err := registry.Create(boulder.IDDaily)
	if err != nil {
		return Model{}, fmt.Errorf("create game: %w", err)
	}

	cfg := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: s.config.TickInterval,
		Seed:         seed,
		Clock:        s.clock,
	}
	model := NewModel(game, cfg, Options{
		Verifier: s.verifier,
		Nonce:    string(id),
	})
	s.sessions.SetSeed(id, seed)
	return model, nil
}

// admissionMiddleware registers the session or turns it away when full.
func (s *SSHServer) admissionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := SessionID(uuid.NewString())
		info := SessionInfo{
			ID:        id,
			User:      sshSession.User(),
			Remote:    sshSession.RemoteAddr().String(),
			StartedAt: s.clock(),
		}
		if !s.sessions.TryRegister(info) {
			s.logger.Warn("session refused", "user", info.User, "active", s.sessions.Count())
			wish.Fatalln(sshSession, "server is full, try again later")
			return
		}
		defer s.sessions.Unregister(id)

		sshSession.Context().SetValue(sessionKey{}, id)
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := s.clock()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", s.clock().Sub(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "maxSessions", s.config.MaxSessions)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}
	s.logger.Info("shutting down...", "active", s.sessions.Count())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
