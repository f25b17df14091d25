package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"astra/internal/logging"
)

// ValidClasses lists the character classes a profile may use.
var ValidClasses = []string{"Explorer", "Scholar", "Mystic"}

// Character is a persisted player persona.
type Character struct {
	Name      string
	Class     string
	CreatedAt time.Time
}

// NormalizeClass maps a class name case-insensitively onto ValidClasses.
func NormalizeClass(class string) (string, error) {
	for _, c := range ValidClasses {
		if strings.EqualFold(c, strings.TrimSpace(class)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid class %q (valid: %s)", class, strings.Join(ValidClasses, ", "))
}

// SaveProfile creates or updates a character.
func (s *LocalStore) SaveProfile(ctx context.Context, name, class string) (Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Character{}, fmt.Errorf("character name is required")
	}
	class, err := NormalizeClass(class)
	if err != nil {
		return Character{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characters (name, char_class, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET char_class = excluded.char_class`,
		name, class, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		logging.StoreError("failed to save character %s: %v", name, err)
		return Character{}, fmt.Errorf("failed to save character: %w", err)
	}
	logging.StoreDebug("saved character %s (%s)", name, class)
	return s.getProfileLocked(ctx, name)
}

// GetProfile loads a character by name.
func (s *LocalStore) GetProfile(ctx context.Context, name string) (Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfileLocked(ctx, name)
}

func (s *LocalStore) getProfileLocked(ctx context.Context, name string) (Character, error) {
	var (
		c       Character
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, char_class, created_at FROM characters WHERE name = ?`, name,
	).Scan(&c.Name, &c.Class, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Character{}, fmt.Errorf("character %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Character{}, fmt.Errorf("failed to load character: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return c, nil
}

// ListProfiles returns all characters ordered by name.
func (s *LocalStore) ListProfiles(ctx context.Context) ([]Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name, char_class, created_at FROM characters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var out []Character
	for rows.Next() {
		var (
			c       Character
			created string
		)
		if err := rows.Scan(&c.Name, &c.Class, &created); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, c)
	}
	return out, rows.Err()
}
