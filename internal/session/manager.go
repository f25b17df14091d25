// Package session scopes one conversation memory to one conversation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"astra/internal/companion"
	"astra/internal/logging"
	"astra/internal/memory"

	"github.com/google/uuid"
)

var (
	// ErrClosed is returned when using a session after Close.
	ErrClosed = errors.New("session closed")
	// ErrUnknown is returned for ids the manager does not hold.
	ErrUnknown = errors.New("unknown session")
	// ErrLimit is returned when MaxSessions are already open.
	ErrLimit = errors.New("session limit reached")
)

// HistoryLoader supplies stored exchanges for hydration.
type HistoryLoader interface {
	RecentExchanges(ctx context.Context, sessionID string, limit int) ([]memory.Exchange, error)
}

// ManagerConfig holds configuration for the manager.
type ManagerConfig struct {
	MaxSessions  int
	HistoryLimit int
	IdleTTL      time.Duration
	MoodWindow   int
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MaxSessions:  256,
		HistoryLimit: 20,
		IdleTTL:      30 * time.Minute,
		MoodWindow:   memory.DefaultWindow,
	}
}

// Manager owns the live sessions. Each session gets its own memory.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	companion *companion.Companion
	history   HistoryLoader
	cfg       ManagerConfig
	now       func() time.Time
}

// NewManager creates a manager. history may be nil.
func NewManager(c *companion.Companion, history HistoryLoader, cfg ManagerConfig) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultManagerConfig().MaxSessions
	}
	if cfg.MoodWindow <= 0 {
		cfg.MoodWindow = memory.DefaultWindow
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		companion: c,
		history:   history,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Open returns the live session for id, creating and hydrating it if needed.
// An empty id mints a new one.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.RLock()
	if s, ok := m.sessions[id]; ok {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	// Hydrate outside the lock; the store may be slow.
	mem := m.hydrate(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	if len(m.sessions) >= m.cfg.MaxSessions {
		return nil, fmt.Errorf("open %s: %w (%d)", id, ErrLimit, m.cfg.MaxSessions)
	}

	s := &Session{
		id:       id,
		mem:      mem,
		lastSeen: m.now(),
		manager:  m,
	}
	m.sessions[id] = s
	logging.Session("opened session %s (%d events restored)", id, mem.Len())
	return s, nil
}

func (m *Manager) hydrate(ctx context.Context, id string) *memory.Log {
	mem := memory.New()
	if m.history == nil || m.cfg.HistoryLimit <= 0 {
		return mem
	}
	past, err := m.history.RecentExchanges(ctx, id, m.cfg.HistoryLimit)
	if err != nil {
		logging.SessionWarn("could not restore history for %s: %v", id, err)
		return mem
	}
	for _, x := range past {
		mem.Append(x.Events()...)
	}
	return mem
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close ends a session. Its memory is dropped; stored history is kept.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("close %s: %w", id, ErrUnknown)
	}
	s.markClosed()
	logging.Session("closed session %s", id)
	return nil
}

// CloseAll ends every live session.
func (m *Manager) CloseAll() {
	for _, id := range m.Active() {
		_ = m.Close(id)
	}
}

// Active lists live session ids in sorted order.
func (m *Manager) Active() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run closes sessions idle longer than IdleTTL every interval until ctx ends.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if m.cfg.IdleTTL <= 0 || interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.reap()
		}
	}
}

func (m *Manager) reap() int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)
	var stale []string

	m.mu.RLock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		_ = m.Close(id)
	}
	if len(stale) > 0 {
		logging.SessionDebug("reaped %d idle sessions", len(stale))
	}
	return len(stale)
}
