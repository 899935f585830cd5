package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := logger{zap: zap.New(core)}

	scoped := base.With(Int64("ride_id", 42))
	scoped.Warning("driver notification failed", Duration("timeout", 5*time.Second), Error(errors.New("boom")))
	base.Info("unscoped", Bool("cookie_secure", true))

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(42), fields["ride_id"])
	assert.Equal(t, 5*time.Second, fields["timeout"])
	assert.Equal(t, "boom", fields["error"])

	fields = entries[1].ContextMap()
	assert.NotContains(t, fields, "ride_id")
	assert.Equal(t, true, fields["cookie_secure"])
}
