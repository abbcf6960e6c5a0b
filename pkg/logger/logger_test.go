package logger

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStandardLogger_Prefixes(t *testing.T) {
	tests := []struct {
		name   string
		logFn  func(l *StandardLogger)
		prefix string
		body   string
	}{
		{"info", func(l *StandardLogger) { l.Info("selected %d", 14) }, "[INFO]", "selected 14"},
		{"warning", func(l *StandardLogger) { l.Warning("skipping %s", "special") }, "[WARNING]", "skipping special"},
		{"error", func(l *StandardLogger) { l.Error("apply: %v", "exit 1") }, "[ERROR]", "apply: exit 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewStandardLogger(log.New(buf, "", 0))
			tt.logFn(l)
			out := buf.String()
			if !strings.HasPrefix(out, tt.prefix) {
				t.Errorf("expected %s prefix, got: %s", tt.prefix, out)
			}
			if !strings.Contains(out, tt.body) {
				t.Errorf("expected %q in output, got: %s", tt.body, out)
			}
		})
	}
}

func TestStandardLogger_CloseWithoutWriter(t *testing.T) {
	l := NewStandardLogger(log.New(&bytes.Buffer{}, "", 0))
	if err := l.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got: %v", err)
	}
}

func TestNewFileLogger_WritesAndCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "chronowall", "chronowall.log")

	l, err := NewFileLogger(path, FileOptions{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	l.Info("hour %02d bucket resolved", 9)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] hour 09 bucket resolved") {
		t.Errorf("unexpected log content: %s", data)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("x")
	l.Warning("x")
	l.Error("x")
	if err := l.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

func TestMockLogger_RecordsCalls(t *testing.T) {
	l := NewMockLogger()
	l.Info("info %d", 1)
	l.Info("info %d", 2)
	l.Warning("warn %s", "special")
	l.Error("err %v", "backend")

	if got := l.Infos(); len(got) != 2 || got[1] != "info 2" {
		t.Errorf("unexpected info calls: %v", got)
	}
	if !l.HasWarning("special") {
		t.Errorf("expected warning containing 'special', got %v", l.Warnings())
	}
	if !l.HasError("backend") {
		t.Errorf("expected error containing 'backend', got %v", l.Errors())
	}
	if l.HasInfo("missing") {
		t.Error("HasInfo matched a message that was never logged")
	}
	_ = l.Close()
	if !l.CloseCalled {
		t.Error("CloseCalled should be true after Close()")
	}
}

func TestMultiLogger_BroadcastsToAll(t *testing.T) {
	mock1 := NewMockLogger()
	mock2 := NewMockLogger()
	multi := NewMultiLogger(mock1, mock2)

	multi.Info("info msg")
	multi.Warning("warn msg")
	multi.Error("error msg")

	for i, m := range []*MockLogger{mock1, mock2} {
		if !m.HasInfo("info msg") || !m.HasWarning("warn msg") || !m.HasError("error msg") {
			t.Errorf("logger %d did not receive every message", i)
		}
	}
}

func TestMultiLogger_EmptyLoggers(t *testing.T) {
	multi := NewMultiLogger()
	multi.Info("test")
	multi.Warning("test")
	multi.Error("test")
	if err := multi.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

type failingCloseLogger struct {
	NopLogger
	closeErr error
}

func (f *failingCloseLogger) Close() error {
	return f.closeErr
}

func TestMultiLogger_Close_ReturnsFirstError(t *testing.T) {
	err1 := errors.New("file logger failed to close")
	err2 := errors.New("second failure")
	mock := NewMockLogger()

	multi := NewMultiLogger(&failingCloseLogger{closeErr: err1}, mock, &failingCloseLogger{closeErr: err2})

	err := multi.Close()
	if !errors.Is(err, err1) {
		t.Errorf("expected first error %v, got %v", err1, err)
	}
	if !mock.CloseCalled {
		t.Error("expected mock logger to be closed even after first error")
	}
}
