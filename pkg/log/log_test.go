package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogSharesCore(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &zapLogger{log: zap.New(core).Sugar().With("svc", "printer-monitor")}

	Slog(l).Info("client connected", "client", "dashboard")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "client connected", entries[0].Message)
		assert.Equal(t, "dashboard", entries[0].ContextMap()["client"])
		assert.Equal(t, "printer-monitor", entries[0].ContextMap()["svc"])
	}
}

func TestSlogOnForeignLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Slog(nil).Warn("dropped") })
}
