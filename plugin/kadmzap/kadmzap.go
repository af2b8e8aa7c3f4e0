// Package kadmzap provides a plug-in kadmin.Logger wrapping uber's zap for
// usage in a kadmin.Client.
//
// This can be used like so:
//
//	cl := kadmin.NewClient(
//	        waiter,
//	        kadmin.WithLogger(kadmzap.New(zapLogger)),
//	        // ...other opts
//	)
//
// By default, the logger chooses the highest level possible that is enabled
// on the zap logger, and then sticks with that level forever. A variable
// level can be chosen by specifying the LevelFn option.
package kadmzap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/twmb/kadmin"
)

// Logger provides the kadmin.Logger interface for usage in
// kadmin.WithLogger when constructing a client.
type Logger struct {
	zl *zap.Logger

	levelFn func() kadmin.LogLevel
}

// New returns a new logger that by default forever logs at the highest
// level enabled in the zap logger.
func New(zl *zap.Logger, opts ...Opt) *Logger {
	static := kadmin.LogLevelError
	switch {
	case zl.Core().Enabled(zapcore.DebugLevel):
		static = kadmin.LogLevelDebug
	case zl.Core().Enabled(zapcore.InfoLevel):
		static = kadmin.LogLevelInfo
	case zl.Core().Enabled(zapcore.WarnLevel):
		static = kadmin.LogLevelWarn
	}
	l := &Logger{
		zl:      zl,
		levelFn: func() kadmin.LogLevel { return static },
	}
	for _, opt := range opts {
		opt.apply(l)
	}
	return l
}

// Opt applies options to the logger.
type Opt interface {
	apply(*Logger)
}

type opt struct{ fn func(*Logger) }

func (o opt) apply(l *Logger) { o.fn(l) }

// LevelFn sets a function that can dynamically change the log level.
//
// This log level is independent of the zap logger level. It sets what
// Level reports; the kadmin driver calls Log without consulting Level
// first.
func LevelFn(fn func() kadmin.LogLevel) Opt {
	return opt{func(l *Logger) { l.levelFn = fn }}
}

// Level sets a static level for the kadmin.Logger Level function.
func Level(level kadmin.LogLevel) Opt {
	return LevelFn(func() kadmin.LogLevel { return level })
}

// Level is for the kadmin.Logger interface.
func (l *Logger) Level() kadmin.LogLevel {
	return l.levelFn()
}

// Log is for the kadmin.Logger interface.
func (l *Logger) Log(level kadmin.LogLevel, msg string, keyvals ...interface{}) {
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		k, v := keyvals[i], keyvals[i+1]
		fields = append(fields, zap.Any(k.(string), v))
	}
	switch level {
	case kadmin.LogLevelDebug:
		l.zl.Debug(msg, fields...)
	case kadmin.LogLevelError:
		l.zl.Error(msg, fields...)
	case kadmin.LogLevelInfo:
		l.zl.Info(msg, fields...)
	case kadmin.LogLevelWarn:
		l.zl.Warn(msg, fields...)
	default:
		// do nothing
	}
}
