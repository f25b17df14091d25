package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"astra/internal/emotion"
	"astra/internal/logging"
	"astra/internal/memory"
)

// RecordExchange appends one exchange to its session's log.
func (s *LocalStore) RecordExchange(ctx context.Context, x memory.Exchange) error {
	if x.SessionID == "" {
		return fmt.Errorf("record exchange: empty session id")
	}
	at := x.At
	if at.IsZero() {
		at = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logging.StoreDebug("recording exchange: session=%s emotion=%s world=%q", x.SessionID, x.Emotion, x.WorldID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exchanges (session_id, player_text, reply_text, emotion, world_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		x.SessionID, x.PlayerText, x.ReplyText, string(x.Emotion), nullable(x.WorldID),
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		logging.StoreError("failed to record exchange for %s: %v", x.SessionID, err)
		return fmt.Errorf("failed to insert exchange: %w", err)
	}
	return nil
}

// RecentExchanges returns up to limit of the newest exchanges for a session,
// oldest first.
func (s *LocalStore) RecentExchanges(ctx context.Context, sessionID string, limit int) ([]memory.Exchange, error) {
	timer := logging.StartTimer(logging.CategoryStore, "RecentExchanges")
	defer timer.Stop()

	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, player_text, reply_text, emotion, world_id, created_at
		 FROM exchanges
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var out []memory.Exchange
	for rows.Next() {
		var (
			x       memory.Exchange
			label   string
			worldID sql.NullString
			created string
		)
		if err := rows.Scan(&x.SessionID, &x.PlayerText, &x.ReplyText, &label, &worldID, &created); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		x.Emotion, _ = emotion.Parse(label)
		x.WorldID = worldID.String
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			x.At = ts
		}
		out = append(out, x)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exchanges: %w", err)
	}

	// Reverse into chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	logging.StoreDebug("loaded %d exchanges for session %s", len(out), sessionID)
	return out, nil
}

// SessionSummary describes one stored session.
type SessionSummary struct {
	SessionID string
	Exchanges int
	LastAt    time.Time
}

// ListSessions returns stored sessions, most recently active first.
func (s *LocalStore) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, COUNT(*), MAX(created_at), MAX(id) AS last_id
		 FROM exchanges
		 GROUP BY session_id
		 ORDER BY last_id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			sum    SessionSummary
			last   string
			lastID int64
		)
		if err := rows.Scan(&sum.SessionID, &sum.Exchanges, &last, &lastID); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, last); err == nil {
			sum.LastAt = ts
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
