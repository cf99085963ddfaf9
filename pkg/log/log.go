// Package log wraps zap behind the small printf-style surface the
// services use.
package log

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

type (
	// Logger is a contract for the logger.
	Logger interface {
		Debugf(format string, args ...interface{})
		Infof(format string, args ...interface{})
		Warnf(format string, args ...interface{})
		Errorf(format string, args ...interface{})
		Fatalf(format string, args ...interface{})
		With(args ...interface{}) Logger
		Flush() error
	}

	zapLogger struct {
		log *zap.SugaredLogger
	}
)

// New returns a JSON logger tagged with appID. An empty or invalid level
// falls back to info.
func New(appID, logLevel string) Logger {
	atom := zap.NewAtomicLevel()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	log := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		atom,
	))

	atom.SetLevel(zap.InfoLevel)
	if logLevel != "" {
		if err := atom.UnmarshalText([]byte(strings.ToLower(logLevel))); err != nil {
			log.Error("invalid log level", zap.String("level", logLevel))
		}
	}

	return &zapLogger{log: log.Sugar().With("svc", appID)}
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() Logger {
	return &zapLogger{log: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l *zapLogger) Infof(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

func (l *zapLogger) Warnf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

func (l *zapLogger) Fatalf(format string, args ...interface{}) {
	l.log.Fatalf(format, args...)
}

// With returns a child logger carrying the given key/value pairs.
func (l *zapLogger) With(args ...interface{}) Logger {
	return &zapLogger{l.log.With(args...)}
}

func (l *zapLogger) Flush() error {
	return l.log.Sync()
}

// Slog returns a *slog.Logger writing to the same core as l, for libraries
// that log through log/slog.
func Slog(l Logger) *slog.Logger {
	if z, ok := l.(*zapLogger); ok {
		return slog.New(zapslog.NewHandler(z.log.Desugar().Core()))
	}
	return slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
}
