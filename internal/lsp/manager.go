package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/zkbridge/internal/apperr"
)

// Manager tracks one session per notebook root.
type Manager struct {
	cfg Config
	log *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session registry.
func NewManager(cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		log:      logger,
		sessions: make(map[string]*Session),
	}
}

// Get returns the active session for a notebook root, or
// apperr.ErrNoSession when none exists.
func (m *Manager) Get(root string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[root]
	if !ok {
		return nil, fmt.Errorf("lsp: %w for notebook %s", apperr.ErrNoSession, root)
	}
	return sess, nil
}

// Open returns the session for a notebook root, dialing a new one when
// none is active yet.
func (m *Manager) Open(ctx context.Context, root string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[root]; ok {
		return sess, nil
	}
	sess, err := Dial(ctx, m.cfg, root, m.log)
	if err != nil {
		return nil, err
	}
	m.sessions[root] = sess
	return sess, nil
}

// Register adds an externally constructed session (used by tests with an
// in-process server).
func (m *Manager) Register(sess *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.Root()] = sess
}

// CloseAll tears down every active session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for root, sess := range m.sessions {
		if err := sess.Close(); err != nil {
			m.log.Debug("lsp: session close failed",
				slog.String("root", root),
				slog.String("error", err.Error()))
		}
		delete(m.sessions, root)
	}
}
