package logger

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerConvertsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newZapLogger(core)

	l.Info("Users API execution",
		String("route", "/api/users"),
		Int("total", 2),
		Duration("duration", 15*time.Millisecond),
		Err(errors.New("boom")),
		Strings("params", []string{"division"}))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["route"] != "/api/users" {
		t.Errorf("Expected route '/api/users', got %v", fields["route"])
	}
	if fields["total"] != int64(2) {
		t.Errorf("Expected total 2, got %v", fields["total"])
	}
	if fields["duration"] != 15*time.Millisecond {
		t.Errorf("Expected duration 15ms, got %v", fields["duration"])
	}
	if fields["error"] != "boom" {
		t.Errorf("Expected error 'boom', got %v", fields["error"])
	}
}

func TestZapLoggerSkipsNilError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newZapLogger(core)

	l.Warn("nothing failed", Err(nil))

	if _, ok := logs.All()[0].ContextMap()["error"]; ok {
		t.Error("Expected nil error to be skipped")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
