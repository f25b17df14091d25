package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"astra/internal/companion"
	"astra/internal/config"
	"astra/internal/emotion"
	"astra/internal/logging"
	"astra/internal/perception"
	"astra/internal/session"
	"astra/internal/store"
	"astra/internal/world"
)

// app bundles the wired components a command needs.
type app struct {
	cfg       *config.Config
	store     *store.LocalStore
	companion *companion.Companion
	sessions  *session.Manager
}

// newApp opens the store and wires classifier, composer and session manager.
func newApp(ctx context.Context, c *config.Config) (*app, error) {
	timer := logging.StartTimer(logging.CategoryBoot, "wire")
	defer timer.Stop()

	st, err := store.NewLocalStore(c.Store.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	polarity, err := perception.FromConfig(ctx, c)
	if err != nil {
		// An unusable sentiment service only costs us the negation fallback.
		logging.BootWarn("sentiment provider %q unavailable, using neutral fallback: %v", c.Sentiment.Provider, err)
		polarity = nil
	}

	seed := c.Companion.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	classifier := emotion.NewClassifier(emotion.DefaultLexicon(), polarity)
	composer := companion.NewComposer(companion.DefaultTemplates(), world.Catalog(), rng)
	comp := companion.New(classifier, composer,
		companion.WithRecorder(st),
		companion.WithPersistTimeout(c.GetPersistTimeout()),
	)

	mgr := session.NewManager(comp, st, session.ManagerConfig{
		MaxSessions:  c.Store.MaxSessions,
		HistoryLimit: c.Store.HistoryLimit,
		IdleTTL:      c.GetSessionTTL(),
		MoodWindow:   c.Companion.RecentWindow,
	})

	logging.Boot("astra wired: db=%s provider=%s seed=%d", st.Path(), c.Sentiment.Provider, seed)
	return &app{cfg: c, store: st, companion: comp, sessions: mgr}, nil
}

// openSession opens a session and applies the world and character flags.
func (a *app) openSession(ctx context.Context, id, rawWorld, character string) (*session.Session, error) {
	s, err := a.sessions.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	if rawWorld == "" {
		rawWorld = a.cfg.Companion.DefaultWorld
	}
	if rawWorld != "" {
		if s.SetWorld(rawWorld) == world.None {
			logging.SessionWarn("unknown world %q, continuing without one", rawWorld)
		}
	}
	if character != "" {
		p, err := a.profile(ctx, character)
		if err != nil {
			return nil, err
		}
		s.SetProfile(p)
	}
	return s, nil
}

// profile loads a saved character.
func (a *app) profile(ctx context.Context, name string) (*companion.Profile, error) {
	ch, err := a.store.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	return &companion.Profile{Name: ch.Name, Class: ch.Class}, nil
}

func (a *app) Close() error {
	a.sessions.CloseAll()
	return a.store.Close()
}
