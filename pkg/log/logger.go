package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetupLogger configures the process-wide logger.
//
// level is one of debug, info, warn, error. format is "json" or "console"
// (human readable, used by the CLI). A nil writer means stderr. Library
// warnings raised through errors.Warn are routed to the same logger.
func SetupLogger(level, format string, w io.Writer) error {
	lvl, err := ToLogLevel(level)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(format) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	default:
		return errors.NewValidationError("log.format", "must be json or console", format)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(w).With().Timestamp().Logger().Level(toZerolog(lvl))

	mu.Lock()
	root = logger
	mu.Unlock()

	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.Object("warning", m)
		}
		ev.Msg(warning.Error())
	})
	return nil
}

// ToLogLevel parses a textual level.
func ToLogLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log.level", "must be one of debug, info, warn, error", level)
	}
}

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zerologLogger{zl: root}
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// NewZerologLogger adapts an existing zerolog.Logger.
func NewZerologLogger(zl zerolog.Logger) Logger {
	return &zerologLogger{zl: zl}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return &zerologLogger{zl: zerolog.Nop()}
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		switch v := fields[0].(type) {
		case error:
			ev = withError(ev, v)
			fields = fields[1:]
		case Attr:
			if err, ok := v.Value.(error); ok && v.Key == ErrAttrKey {
				ev = withError(ev, err)
				fields = fields[1:]
			}
		}
	}
	emit(ev, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ctx = ctx.AnErr(key, v)
		case string:
			ctx = ctx.Str(key, v)
		case []string:
			ctx = ctx.Strs(key, v)
		case int:
			ctx = ctx.Int(key, v)
		case float64:
			ctx = ctx.Float64(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	zlvl := toZerolog(level)
	return zlvl >= l.zl.GetLevel() && zlvl >= zerolog.GlobalLevel()
}

func toZerolog(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
