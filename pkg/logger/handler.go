package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"
)

type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	color  bool
	prefix string
	attrs  []byte
	groups []string
}

func newConsoleHandler(w io.Writer, color bool, opts *slog.HandlerOptions) *consoleHandler {
	h := &consoleHandler{mu: &sync.Mutex{}, w: w, color: color}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	level := slog.Any(slog.LevelKey, r.Level)
	if h.opts.ReplaceAttr != nil {
		level = h.opts.ReplaceAttr(nil, level)
	}
	name := level.Value.String()
	if h.color {
		name = colorize(name, r.Level)
	}
	buf.WriteString(name)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		h.appendAttr(&buf, nil, "", slog.String(slog.SourceKey, frame.File+":"+strconv.Itoa(frame.Line)))
	}

	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.groups, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) appendAttr(buf *bytes.Buffer, groups []string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup && h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		sub := groups
		if a.Key != "" {
			inner = prefix + a.Key + "."
			sub = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, sub, inner, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(quote(a.Value.String()))
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	var buf bytes.Buffer
	buf.Write(h.attrs)
	for _, a := range attrs {
		h.appendAttr(&buf, h.groups, h.prefix, a)
	}
	c.attrs = buf.Bytes()
	return &c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	c.groups = append(append([]string(nil), h.groups...), name)
	return &c
}

func colorize(name string, level slog.Level) string {
	const (
		reset  = "\033[0m"
		cyan   = "\033[36m"
		blue   = "\033[34m"
		green  = "\033[32m"
		yellow = "\033[33m"
		red    = "\033[31m"
		alarm  = "\033[37;41m"
	)

	var code string
	switch {
	case level < slog.LevelDebug:
		code = cyan
	case level < slog.LevelInfo:
		code = blue
	case level < slog.LevelWarn:
		code = green
	case level < slog.LevelError:
		code = yellow
	case level < LevelCritical:
		code = red
	default:
		code = alarm
	}
	return code + name + reset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
