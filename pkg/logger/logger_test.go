package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestLogger_TextLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(WithWriter(&buf), WithLevel(LevelTrace))

	log.Trace("resolving", "class", "app.migrate")
	log.Debug("loaded", "commands", 3)
	log.Info("chain started", "parent", "make:migration")
	log.Warn("third-party command", "file", "/go/pkg/mod/x/cmd.go")
	log.Error("step failed", "reason", "exit code 2")
	log.Critical("bus closed")

	want := []string{
		"TRACE resolving class=app.migrate",
		"DEBUG loaded commands=3",
		"INFO chain started parent=make:migration",
		"WARN third-party command file=/go/pkg/mod/x/cmd.go",
		`ERROR step failed reason="exit code 2"`,
		"CRITICAL bus closed",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(WithWriter(&buf), WithLevel(slog.LevelWarn))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Critical("shown too")

	if diff := cmp.Diff([]string{"WARN shown", "CRITICAL shown too"}, lines(&buf)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_WithAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(WithWriter(&buf)).With("run", "abc", slog.Group("step", "class", "app.seed"))

	log.Info("step", "answer", "y")

	want := []string{"INFO step run=abc step.class=app.seed answer=y"}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_OddArguments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(WithWriter(&buf)).Info("odd", "key")

	if got := buf.String(); !strings.Contains(got, "!BADKEY=key") {
		t.Errorf("expected a bad key marker, got %q", got)
	}
}

func TestLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(WithWriter(&buf), WithJSON(), WithLevel(LevelTrace))
	log.Critical("chain broken", "at", "app.seed")
	log.Trace("detail")

	var records []map[string]any
	for _, line := range lines(&buf) {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		delete(rec, slog.TimeKey)
		records = append(records, rec)
	}

	want := []map[string]any{
		{"level": "CRITICAL", "msg": "chain broken", "at": "app.seed"},
		{"level": "TRACE", "msg": "detail"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_ReplaceAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(
		WithWriter(&buf),
		WithReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "token" {
				return slog.String("token", "***")
			}
			return a
		}),
		WithReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "noise" {
				return slog.Attr{}
			}
			return a
		}),
	)
	log.Info("auth", "token", "secret", "noise", 1)

	if diff := cmp.Diff([]string{"INFO auth token=***"}, lines(&buf)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_Source(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(WithWriter(&buf), WithSource()).Info("here")

	if got := buf.String(); !strings.Contains(got, "source=") || !strings.Contains(got, "logger_test.go:") {
		t.Errorf("expected the caller location, got %q", got)
	}
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	t.Parallel()

	if err := New(WithWriter(nil)).Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestColorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		code  string
	}{
		{LevelTrace, "\033[36m"},
		{slog.LevelDebug, "\033[34m"},
		{slog.LevelInfo, "\033[32m"},
		{slog.LevelWarn, "\033[33m"},
		{slog.LevelError, "\033[31m"},
		{LevelCritical, "\033[37;41m"},
	}
	for _, tt := range tests {
		got := colorize("X", tt.level)
		if want := tt.code + "X\033[0m"; got != want {
			t.Errorf("colorize(%v) = %q, want %q", tt.level, got, want)
		}
	}
}

func TestColor_OnlyOnTerminals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(WithWriter(&buf), WithColor()).Info("plain")

	if got := buf.String(); got != "INFO plain\n" {
		t.Errorf("a buffer is not a terminal, got %q", got)
	}
}
