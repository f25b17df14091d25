package session

import (
	"context"
	"sync"
	"time"

	"astra/internal/companion"
	"astra/internal/emotion"
	"astra/internal/memory"
	"astra/internal/world"
)

// Session is one live conversation. Say calls are serialized so the memory
// sees one exchange at a time. Accessors never wait on an in-flight Say.
type Session struct {
	id      string
	manager *Manager
	mem     *memory.Log

	// sayMu is held for a whole exchange, including the sentiment call.
	sayMu sync.Mutex

	// mu guards the fields below and is only held for field access.
	mu       sync.Mutex
	world    world.ID
	profile  *companion.Profile
	lastSeen time.Time
	closed   bool
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Memory returns the session's log.
func (s *Session) Memory() *memory.Log { return s.mem }

// SetWorld changes the active world. Unknown ids clear it.
func (s *Session) SetWorld(raw string) world.ID {
	id := world.Parse(raw)
	s.mu.Lock()
	s.world = id
	s.mu.Unlock()
	return id
}

// World returns the active world.
func (s *Session) World() world.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world
}

// SetProfile sets or clears (nil) the character.
func (s *Session) SetProfile(p *companion.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// Profile returns the active character, or nil.
func (s *Session) Profile() *companion.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// LastSeen returns when the session last handled a message.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Say sends one player utterance through the companion.
func (s *Session) Say(ctx context.Context, text string) (companion.Reply, error) {
	s.sayMu.Lock()
	defer s.sayMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return companion.Reply{}, ErrClosed
	}
	s.lastSeen = s.manager.now()
	worldID, profile := s.world, s.profile
	s.mu.Unlock()

	return s.manager.companion.Respond(ctx, s.id, text, worldID, profile, s.mem), nil
}

// Mood summarizes the recent window of the conversation.
func (s *Session) Mood() (emotion.Label, emotion.Mood) {
	return companion.ConversationMood(s.mem, s.manager.cfg.MoodWindow)
}

func (s *Session) markClosed() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
