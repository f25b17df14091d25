// Package memory holds the per-conversation utterance log.
package memory

import (
	"sync"
	"time"

	"astra/internal/emotion"
	"astra/internal/logging"
)

// DefaultWindow is the size of the recent-context view.
const DefaultWindow = 5

// Speaker identifies who produced an utterance.
type Speaker string

const (
	Player    Speaker = "player"
	Companion Speaker = "companion"
)

// Event is one immutable utterance. Emotion is empty for companion turns;
// WorldID is empty when no world context was active.
type Event struct {
	Speaker Speaker
	Text    string
	Emotion emotion.Label
	WorldID string
	At      time.Time
}

// Log is an append-only, insertion-ordered sequence of events.
// It is safe for concurrent use, but one Log should back one conversation.
type Log struct {
	mu     sync.RWMutex
	events []Event
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Append adds events to the end of the log, in order.
func (l *Log) Append(events ...Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, events...)
	logging.MemoryDebug("appended %d events (len=%d)", len(events), len(l.events))
}

// Recent returns a copy of the last k events, oldest first.
// k <= 0 yields an empty slice.
func (l *Log) Recent(k int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if k <= 0 || len(l.events) == 0 {
		return []Event{}
	}
	start := len(l.events) - k
	if start < 0 {
		start = 0
	}
	return append([]Event(nil), l.events[start:]...)
}

// All returns a copy of the full log.
func (l *Log) All() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Event{}, l.events...)
}

// Len returns the number of events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
