package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"astra/internal/emotion"
	"astra/internal/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordExchange_RoundTrip(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	err := s.RecordExchange(ctx, memory.Exchange{
		SessionID:  "sess-1",
		PlayerText: "tell me about mars",
		ReplyText:  "Mars, the Red Planet...",
		Emotion:    emotion.Hope,
		WorldID:    "space",
		At:         at,
	})
	require.NoError(t, err)

	got, err := s.RecentExchanges(ctx, "sess-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tell me about mars", got[0].PlayerText)
	assert.Equal(t, emotion.Hope, got[0].Emotion)
	assert.Equal(t, "space", got[0].WorldID)
	assert.True(t, at.Equal(got[0].At))
}

func TestRecordExchange_NoWorldStoredAsNull(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordExchange(ctx, memory.Exchange{SessionID: "s", PlayerText: "hi", ReplyText: "hello", Emotion: emotion.Neutral}))

	var worldID *string
	require.NoError(t, s.db.QueryRow(`SELECT world_id FROM exchanges`).Scan(&worldID))
	assert.Nil(t, worldID)

	got, err := s.RecentExchanges(ctx, "s", 1)
	require.NoError(t, err)
	assert.Empty(t, got[0].WorldID)
	assert.False(t, got[0].At.IsZero())
}

func TestRecordExchange_RequiresSession(t *testing.T) {
	s := newMemoryStore(t)
	assert.Error(t, s.RecordExchange(context.Background(), memory.Exchange{PlayerText: "x"}))
}

func TestRecentExchanges_LastNChronological(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, s.RecordExchange(ctx, memory.Exchange{
			SessionID:  "a",
			PlayerText: fmt.Sprintf("a-%d", i),
			ReplyText:  "r",
			Emotion:    emotion.Neutral,
		}))
		require.NoError(t, s.RecordExchange(ctx, memory.Exchange{
			SessionID:  "b",
			PlayerText: fmt.Sprintf("b-%d", i),
			ReplyText:  "r",
			Emotion:    emotion.Neutral,
		}))
	}

	got, err := s.RecentExchanges(ctx, "a", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a-5", got[0].PlayerText)
	assert.Equal(t, "a-6", got[1].PlayerText)
	assert.Equal(t, "a-7", got[2].PlayerText)

	none, err := s.RecentExchanges(ctx, "missing", 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListSessions(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "a"} {
		require.NoError(t, s.RecordExchange(ctx, memory.Exchange{SessionID: id, PlayerText: "x", ReplyText: "y", Emotion: emotion.Joy}))
	}

	sessions, err := s.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].SessionID)
	assert.Equal(t, 2, sessions[0].Exchanges)
	assert.Equal(t, "b", sessions[1].SessionID)
}
