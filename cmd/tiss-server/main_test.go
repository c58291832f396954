package main

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLogLevel_Known(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	for name, want := range cases {
		if got := logLevel(name); got != want {
			t.Errorf("logLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLogLevel_UnknownFallsBackToInfo(t *testing.T) {
	if got := logLevel("verbose"); got != zerolog.InfoLevel {
		t.Errorf("logLevel(verbose) = %v, want info", got)
	}
}

func TestLogLevel_EmptyFallsBackToInfo(t *testing.T) {
	if got := logLevel(""); got != zerolog.InfoLevel {
		t.Errorf("logLevel(empty) = %v, want info", got)
	}
}

func TestNewLogger_AppliesLevel(t *testing.T) {
	logger := newLogger("production", "warn")
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v", logger.GetLevel())
	}
}
