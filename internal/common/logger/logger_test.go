package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAdapterCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "recommend-universities"})

	log.Info("universities recommended", map[string]interface{}{"count": 3})
	log.WithError(errors.New("boom")).Error("job failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "recommend-universities", first["taskType"])
	assert.EqualValues(t, 3, first["count"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestErrorValuesAreNamedErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	NewZapAdapter(zap.New(core)).Warn("retrying", map[string]interface{}{"cause": errors.New("timeout")})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "timeout", logs.All()[0].ContextMap()["cause"])
}

func TestNewLevelFallback(t *testing.T) {
	l := New("not-a-level", "json")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	d := New("debug", "console")
	assert.True(t, d.Core().Enabled(zapcore.DebugLevel))
}
