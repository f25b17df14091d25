package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, categories map[string]bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	InitializeWithLogger(zap.New(core), categories)
	t.Cleanup(func() { InitializeWithLogger(nil, nil) })
	return logs
}

func TestGet_NoopWhenDisabled(t *testing.T) {
	require.NoError(t, Initialize(Options{DebugMode: false}))

	l := Get(CategoryStore)
	assert.Nil(t, l.sugar)
	// Must not panic
	l.Debug("x %d", 1)
	l.Error("y")
	assert.False(t, IsDebugMode())
}

func TestGet_WritesNamedEntries(t *testing.T) {
	logs := observe(t, nil)

	StoreDebug("stored %d rows", 3)
	PerceptionWarn("service down: %s", "timeout")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "stored 3 rows", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "perception", entries[1].LoggerName)
}

func TestCategoryToggles(t *testing.T) {
	logs := observe(t, map[string]bool{"store": false, "session": true})

	assert.False(t, IsCategoryEnabled(CategoryStore))
	assert.True(t, IsCategoryEnabled(CategorySession))
	// Unlisted categories default to enabled
	assert.True(t, IsCategoryEnabled(CategoryAPI))

	StoreDebug("hidden")
	SessionDebug("shown")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestGet_CachesPerCategory(t *testing.T) {
	observe(t, nil)
	assert.Same(t, Get(CategoryComposer), Get(CategoryComposer))
}

func TestWith_AddsFields(t *testing.T) {
	logs := observe(t, nil)

	Get(CategorySession).With("session", "abc").Info("opened")
	entries := logs.FilterField(zap.String("session", "abc")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "opened", entries[0].Message)
}

func TestTimer_StopWithThreshold(t *testing.T) {
	logs := observe(t, nil)

	timer := StartTimer(CategoryStore, "slow-op")
	time.Sleep(5 * time.Millisecond)
	elapsed := timer.StopWithThreshold(time.Millisecond)

	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.True(t, strings.HasPrefix(warns[0].Message, "slow-op took"))
}

func TestInitialize_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astra.log")
	require.NoError(t, Initialize(Options{
		DebugMode: true,
		Level:     "debug",
		Format:    "json",
		File:      path,
	}))
	t.Cleanup(func() { InitializeWithLogger(nil, nil) })

	SessionDebug("hello %s", "file")
	CloseAll()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger":"session"`)
	assert.Contains(t, string(data), "hello file")
}
