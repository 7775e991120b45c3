package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialising with another format must also succeed
	err = Init(WithFormat(FormatPretty), WithWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("failed to initialize pretty logger: %v", err)
	}

	logger = Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat(FormatJSON), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "analysis complete", String("pattern", "arithmetic"), Int("length", 4), Error(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "analysis complete" {
		t.Errorf("expected message, got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("expected info level, got %v", entry["level"])
	}
	if entry["pattern"] != "arithmetic" {
		t.Errorf("expected pattern field, got %v", entry["pattern"])
	}
	if entry["length"] != 4.0 {
		t.Errorf("expected length field, got %v", entry["length"])
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error field, got %v", entry["error"])
	}
	source, _ := entry["source"].(string)
	if !strings.Contains(source, "logger_test.go:") {
		t.Errorf("expected caller to point at this file, got %q", source)
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat(FormatJSON), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("api").Named("batch")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	namedLogger.Info(context.Background(), "test message")
	if !strings.Contains(buf.String(), `"logger":"api.batch"`) {
		t.Errorf("expected nested logger name, got %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat(FormatJSON), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	ctx := context.Background()
	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Get().Debug(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug entry after lowering level, got %q", buf.String())
	}

	for _, lvl := range []string{"", "info", "warn", "warning", "error", " Error "} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("expected %q to be accepted: %v", lvl, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected unknown level to be rejected")
	}
}

func TestStats(t *testing.T) {
	if err := Init(WithFormat(FormatJSON), WithWriter(&bytes.Buffer{})); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ResetStats()

	ctx := context.Background()
	l := Get()
	l.Info(ctx, "one")
	l.Info(ctx, "two")
	l.Warn(ctx, "three")
	l.Error(ctx, "four")
	l.Debug(ctx, "filtered at info level")

	s := Stats()
	if s.TotalLogs != 4 {
		t.Errorf("expected 4 logs, got %d", s.TotalLogs)
	}
	if s.ByLevel.Info != 2 || s.ByLevel.Warn != 1 || s.ByLevel.Error != 1 || s.ByLevel.Debug != 0 {
		t.Errorf("unexpected level counts: %+v", s.ByLevel)
	}

	ResetStats()
	if Stats().TotalLogs != 0 {
		t.Error("expected counters to reset")
	}
}
