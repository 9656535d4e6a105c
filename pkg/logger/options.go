package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Option func(*settings)

type settings struct {
	level       slog.Level
	json        bool
	addSource   bool
	color       bool
	writer      io.Writer
	closer      io.Closer
	replaceAttr func(groups []string, a slog.Attr) slog.Attr
}

func defaultSettings() *settings {
	return &settings{level: slog.LevelInfo, writer: os.Stderr}
}

type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

func WithJSON() Option {
	return func(s *settings) { s.json = true }
}

func WithText() Option {
	return func(s *settings) { s.json = false }
}

func WithSource() Option {
	return func(s *settings) { s.addSource = true }
}

func WithColor() Option {
	return func(s *settings) { s.color = true }
}

func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		if w == nil {
			w = io.Discard
		}
		s.writer = w
		s.closer = nil
	}
}

func WithReplaceAttr(f func(groups []string, a slog.Attr) slog.Attr) Option {
	return func(s *settings) {
		prev := s.replaceAttr
		if prev == nil {
			s.replaceAttr = f
			return
		}
		s.replaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			return f(groups, prev(groups, a))
		}
	}
}

func WithFile(path string, rotation Rotation) Option {
	return func(s *settings) {
		w := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAgeDays,
			Compress:   rotation.Compress,
		}
		s.writer = w
		s.closer = w
		s.color = false
	}
}
