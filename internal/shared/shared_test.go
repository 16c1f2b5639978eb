package shared

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFormatTime(t *testing.T) {
	tc := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "one minute five", seconds: 65, want: "1:05"},
		{name: "just under ten minutes", seconds: 599, want: "9:59"},
		{name: "ten minutes", seconds: 600, want: "10:00"},
		{name: "fractional seconds are floored", seconds: 59.99, want: "0:59"},
		{name: "over an hour stays in minutes", seconds: 3725, want: "62:05"},
		{name: "negative", seconds: -3, want: "0:00"},
		{name: "NaN", seconds: math.NaN(), want: "0:00"},
		{name: "infinite", seconds: math.Inf(1), want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.seconds); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}

	t.Run("is pure", func(t *testing.T) {
		for range 3 {
			if got := FormatTime(65); got != "1:05" {
				t.Fatalf("FormatTime(65) = %q on repeated call", got)
			}
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		logger.Info("hello", "key", "value")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := WithLogger(NewLogger(buf), "player", "abc")
		logger.Info("loaded")

		if !strings.Contains(buf.String(), "player=abc") {
			t.Errorf("expected child logger field, got %q", buf.String())
		}
	})

	t.Run("ApplyLogLevel", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})
		if err := ApplyLogLevel(logger, "debug"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", logger.GetLevel())
		}

		err := ApplyLogLevel(logger, "chatty")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}

		if err := ApplyLogLevel(logger, ""); err != nil {
			t.Errorf("empty level should be ignored, got %v", err)
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "tapedeck.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("to file")

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "to file") {
			t.Errorf("expected file to contain log line, got %q", content)
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string length 36, got %d", len(a))
	}
}
