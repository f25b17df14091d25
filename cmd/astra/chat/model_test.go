package chat

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astra/internal/companion"
	"astra/internal/emotion"
	"astra/internal/session"
	"astra/internal/world"
)

func newTestModel(t *testing.T, profiles ProfileLoader) (Model, *session.Session) {
	t.Helper()
	classifier := emotion.NewClassifier(nil, nil)
	composer := companion.NewComposer(nil, nil, rand.New(rand.NewPCG(1, 2)))
	mgr := session.NewManager(companion.New(classifier, composer), nil, session.DefaultManagerConfig())
	s, err := mgr.Open(context.Background(), "chat-test")
	require.NoError(t, err)
	return New(Config{Session: s, Profiles: profiles}), s
}

func typeAndEnter(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textinput.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := next.(Model)
	assert.Equal(t, 120, result.width)
	assert.Equal(t, 40, result.height)

	// Should not panic on tiny dimensions
	next, _ = result.Update(tea.WindowSizeMsg{Width: -1, Height: 0})
	assert.Positive(t, next.(Model).viewport.Height)
}

func TestUpdate_SayRoundTrip(t *testing.T) {
	m, s := newTestModel(t, nil)

	m, cmd := typeAndEnter(t, m, "I feel so sad today")
	require.NotNil(t, cmd)
	assert.True(t, m.isLoading)
	assert.Equal(t, "you", m.history[len(m.history)-1].Role)

	reply, err := s.Say(context.Background(), "I feel so sad today")
	require.NoError(t, err)
	next, _ := m.Update(replyMsg{reply: reply})
	m = next.(Model)

	assert.False(t, m.isLoading)
	last := m.history[len(m.history)-1]
	assert.Equal(t, "companion", last.Role)
	assert.Equal(t, emotion.Sadness, last.Emotion)
	assert.Contains(t, m.View(), "supportive")
}

func TestUpdate_EnterIgnoredWhileLoading(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.isLoading = true
	before := len(m.history)

	m, cmd := typeAndEnter(t, m, "hello")
	assert.Nil(t, cmd)
	assert.Len(t, m.history, before)
}

func TestUpdate_ReplyErrorShown(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.isLoading = true

	next, _ := m.Update(replyMsg{err: session.ErrClosed})
	m = next.(Model)
	assert.ErrorIs(t, m.err, session.ErrClosed)
	assert.Contains(t, m.View(), session.ErrClosed.Error())
}

func TestUpdate_PersistErrorKeepsReply(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, _ := m.Update(replyMsg{reply: companion.Reply{
		Text:       "Hello!",
		Emotion:    emotion.Neutral,
		PersistErr: errors.New("disk full"),
	}})
	m = next.(Model)
	assert.Equal(t, "Hello!", m.history[len(m.history)-1].Content)
	assert.ErrorContains(t, m.err, "disk full")
}

func TestCommand_World(t *testing.T) {
	m, s := newTestModel(t, nil)

	m, _ = typeAndEnter(t, m, "/world spirit")
	assert.Equal(t, world.Spirit, s.World())
	assert.Contains(t, m.history[len(m.history)-1].Content, "Entered Spirit")
	assert.Contains(t, m.renderHeader(), "Spirit")

	m, _ = typeAndEnter(t, m, "/world nowhere")
	assert.Equal(t, world.None, s.World())

	m, _ = typeAndEnter(t, m, "/world")
	assert.Contains(t, m.history[len(m.history)-1].Content, "`earth`")
}

func TestCommand_Profile(t *testing.T) {
	loader := func(_ context.Context, name string) (*companion.Profile, error) {
		if name != "Nova" {
			return nil, errors.New("not found")
		}
		return &companion.Profile{Name: "Nova", Class: "Mystic"}, nil
	}
	m, s := newTestModel(t, loader)

	m, _ = typeAndEnter(t, m, "/profile Nova")
	require.NotNil(t, s.Profile())
	assert.Equal(t, "Nova", s.Profile().Name)
	assert.Contains(t, m.renderHeader(), "Nova the Mystic")

	m, _ = typeAndEnter(t, m, "/profile Ghost")
	assert.ErrorContains(t, m.err, "not found")
	assert.NotNil(t, s.Profile())

	_, _ = typeAndEnter(t, m, "/profile off")
	assert.Nil(t, s.Profile())
}

func TestCommand_ProfileWithoutStore(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = typeAndEnter(t, m, "/profile Nova")
	assert.ErrorContains(t, m.err, "no character store")
}

func TestCommand_MoodHelpUnknownQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = typeAndEnter(t, m, "/mood")
	assert.Contains(t, m.history[len(m.history)-1].Content, "neutral")

	m, _ = typeAndEnter(t, m, "/help")
	assert.True(t, strings.Contains(m.history[len(m.history)-1].Content, "/world"))

	m, _ = typeAndEnter(t, m, "/dance")
	assert.ErrorContains(t, m.err, "unknown command /dance")

	m, cmd := typeAndEnter(t, m, "/quit")
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Contains(t, m.View(), "Goodbye")
}

func TestBadge_UsesMood(t *testing.T) {
	st := NewStyles(LightTheme())
	assert.Contains(t, st.Badge(emotion.Anger), "calm")
	assert.Contains(t, st.Badge(emotion.Label("bogus")), "neutral")
}

func TestView_RendersWhileReplyPending(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	slow := emotion.PolarityFunc(func(context.Context, string) (float64, error) {
		entered <- struct{}{}
		<-release
		return 0, nil
	})
	comp := companion.New(
		emotion.NewClassifier(nil, slow),
		companion.NewComposer(nil, nil, rand.New(rand.NewPCG(1, 2))),
	)
	mgr := session.NewManager(comp, nil, session.DefaultManagerConfig())
	s, err := mgr.Open(context.Background(), "slow")
	require.NoError(t, err)
	s.SetWorld("space")

	m := New(Config{Session: s})
	m, cmd := typeAndEnter(t, m, "a chair by the window")
	require.NotNil(t, cmd)

	replied := make(chan tea.Msg, 1)
	go func() { replied <- m.say("a chair by the window")() }()
	<-entered
	defer func() {
		close(release)
		<-replied
	}()

	rendered := make(chan string, 1)
	go func() { rendered <- m.View() }()
	select {
	case v := <-rendered:
		assert.Contains(t, v, "Space World")
		assert.Contains(t, v, "thinking")
	case <-time.After(time.Second):
		t.Fatal("View waited on the pending reply")
	}
}

func TestCommand_WorldMissingFromRegistry(t *testing.T) {
	classifier := emotion.NewClassifier(nil, nil)
	composer := companion.NewComposer(nil, nil, nil)
	mgr := session.NewManager(companion.New(classifier, composer), nil, session.DefaultManagerConfig())
	s, err := mgr.Open(context.Background(), "sparse")
	require.NoError(t, err)

	m := New(Config{Session: s, Worlds: world.NewRegistry()})
	assert.NotPanics(t, func() {
		m, _ = typeAndEnter(t, m, "/world god")
	})
	assert.Equal(t, world.God, s.World())
	assert.Contains(t, m.history[len(m.history)-1].Content, "Entered god")
	assert.NotContains(t, m.renderHeader(), "God World")
}
