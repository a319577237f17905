package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)

	level, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)

	level, ok = ParseLevel("")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestInitZapRoutesRecords(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	InitZap(zap.New(core), "debug")

	NewComponentLogger("test").Info("hello", "wallet", "0xabc")

	entries := logs.FilterMessage("hello").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "0xabc", fields["wallet"])
		assert.Equal(t, "test", fields["component"])
	}
}
