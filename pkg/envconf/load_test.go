package envconf

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type listFlag []string

func (l *listFlag) UnmarshalText(text []byte) error {
	*l = strings.Split(string(text), ",")

	return nil
}

type nestedSection struct {
	Rate int64 `env:"TEST_RATE"`
}

type testConfig struct {
	Port    uint16        `env:"TEST_PORT"`
	Level   slog.Level    `env:"TEST_LEVEL"`
	Wait    time.Duration `env:"TEST_WAIT"`
	Tags    listFlag      `env:"TEST_TAGS"`
	Section nestedSection
}

//nolint:paralleltest
func TestLoadFillsAllFieldKinds(t *testing.T) {
	t.Setenv("TEST_PORT", "8080")
	t.Setenv("TEST_LEVEL", "WARN")
	t.Setenv("TEST_WAIT", "1m30s")
	t.Setenv("TEST_TAGS", "a,b,c")
	t.Setenv("TEST_RATE", "42")

	var cfg testConfig

	err := Load(&cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port: got %d, want 8080", cfg.Port)
	}

	if cfg.Level != slog.LevelWarn {
		t.Errorf("Level: got %v, want WARN", cfg.Level)
	}

	if cfg.Wait != 90*time.Second {
		t.Errorf("Wait: got %v, want 1m30s", cfg.Wait)
	}

	if len(cfg.Tags) != 3 || cfg.Tags[1] != "b" {
		t.Errorf("Tags: got %v, want [a b c]", cfg.Tags)
	}

	if cfg.Section.Rate != 42 {
		t.Errorf("Section.Rate: got %d, want 42", cfg.Section.Rate)
	}
}

//nolint:paralleltest
func TestLoadMissingVariable(t *testing.T) {
	t.Setenv("TEST_PORT", "8080")
	t.Setenv("TEST_LEVEL", "INFO")
	t.Setenv("TEST_WAIT", "1s")
	t.Setenv("TEST_TAGS", "x")
	// TEST_RATE deliberately unset.

	var cfg testConfig

	err := Load(&cfg)
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
}

//nolint:paralleltest
func TestLoadBadValue(t *testing.T) {
	t.Setenv("TEST_PORT", "not-a-number")
	t.Setenv("TEST_LEVEL", "INFO")
	t.Setenv("TEST_WAIT", "1s")
	t.Setenv("TEST_TAGS", "x")
	t.Setenv("TEST_RATE", "1")

	var cfg testConfig

	err := Load(&cfg)
	if err == nil {
		t.Fatal("expected parse error for bad port")
	}
}

func TestLoadRejectsNonPointer(t *testing.T) {
	t.Parallel()

	err := Load(testConfig{})
	if err == nil {
		t.Fatal("expected error for non-pointer destination")
	}

	err = Load(nil)
	if err == nil {
		t.Fatal("expected error for nil destination")
	}
}
