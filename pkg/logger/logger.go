package logger

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/shuldan/clikit/pkg/contracts"
)

type Logger struct {
	logger *slog.Logger
	closer io.Closer
}

func New(opts ...Option) *Logger {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return newLogger(s)
}

func newLogger(s *settings) *Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:       s.level,
		AddSource:   s.addSource,
		ReplaceAttr: levelNames(s.replaceAttr),
	}

	var handler slog.Handler
	if s.json {
		handler = slog.NewJSONHandler(s.writer, handlerOpts)
	} else {
		handler = newConsoleHandler(s.writer, s.color && isTerminal(s.writer), handlerOpts)
	}

	return &Logger{logger: slog.New(handler), closer: s.closer}
}

func (l *Logger) log(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func (l *Logger) Trace(msg string, args ...any)    { l.log(LevelTrace, msg, args) }
func (l *Logger) Debug(msg string, args ...any)    { l.log(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)     { l.log(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)     { l.log(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any)    { l.log(slog.LevelError, msg, args) }
func (l *Logger) Critical(msg string, args ...any) { l.log(LevelCritical, msg, args) }

func (l *Logger) With(args ...any) contracts.Logger {
	return &Logger{logger: l.logger.With(args...)}
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func levelNames(replace func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.LevelKey {
			if level, ok := a.Value.Any().(slog.Level); ok {
				a = slog.String(slog.LevelKey, levelName(level))
			}
		}
		if replace != nil {
			a = replace(groups, a)
		}
		return a
	}
}
