package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diegok/gridiron/internal/physics"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scenario != DefaultScenario() {
		t.Errorf("expected default scenario, got %+v", cfg.Scenario)
	}
	if cfg.TextMode || cfg.Mute {
		t.Error("expected text mode and mute to be off")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
}

func TestParseArgs_CustomOptions(t *testing.T) {
	args := []string{
		"--qb-x", "30", "--qb-y", "20",
		"--wr-x", "50", "--wr-y", "10", "--wr-vy", "4",
		"--speed", "20", "--heading", "downfield",
		"--dt", "0.02", "--samples", "1000", "--workers", "4",
		"--text", "--mute", "--record", "play.gob",
	}
	cfg, err := ParseArgs(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Thrower.X != 30 || cfg.Thrower.Y != 20 {
		t.Errorf("expected thrower (30, 20), got %+v", cfg.Thrower)
	}
	if cfg.Receiver.X != 50 || cfg.Receiver.Y != 10 || cfg.Receiver.VY != 4 {
		t.Errorf("unexpected receiver %+v", cfg.Receiver)
	}
	if cfg.Receiver.VX != DefaultReceiverVX {
		t.Errorf("expected default receiver vx, got %f", cfg.Receiver.VX)
	}
	if cfg.HeadingMode() != physics.HeadingDownfield {
		t.Errorf("expected downfield heading, got %v", cfg.HeadingMode())
	}
	if cfg.Step != 0.02 {
		t.Errorf("expected dt 0.02, got %f", cfg.Step)
	}
	if !cfg.TextMode || !cfg.Mute || cfg.RecordPath != "play.gob" {
		t.Errorf("unexpected mode flags: %+v", cfg)
	}

	solver := cfg.Solver()
	if solver.Samples != 1000 || solver.Workers != 4 || solver.Tolerance != physics.DefaultTolerance {
		t.Errorf("unexpected solver %+v", solver)
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero speed", []string{"--speed", "0"}},
		{"negative speed", []string{"--speed", "-3"}},
		{"negative release height", []string{"--release-height", "-1"}},
		{"negative catch height", []string{"--wr-z", "-0.5"}},
		{"unknown heading", []string{"--heading", "sideways"}},
		{"zero dt", []string{"--dt", "0"}},
		{"huge dt", []string{"--dt", "2"}},
		{"zero catch radius", []string{"--catch-radius", "0"}},
		{"no samples", []string{"--samples", "0"}},
		{"zero tolerance", []string{"--tolerance", "0"}},
		{"inverted window", []string{"--min-time", "3", "--max-time", "1"}},
		{"zero min time", []string{"--min-time", "0"}},
		{"too many workers", []string{"--workers", "65"}},
		{"no workers", []string{"--workers", "0"}},
		{"nan position", []string{"--wr-x", "NaN"}},
		{"bad log level", []string{"--log-level", "verbose"}},
		{"unknown flag", []string{"--bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestParseArgs_ModeConflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"record and replay", []string{"--record", "a.gob", "--replay", "b.gob"}},
		{"scenario and replay", []string{"--scenario", "s.yaml", "--replay", "b.gob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if !errors.Is(err, ErrModeConflict) {
				t.Errorf("expected ErrModeConflict, got %v", err)
			}
		})
	}
}

func TestParseArgs_ReplaySkipsScenarioChecks(t *testing.T) {
	cfg, err := ParseArgs([]string{"--replay", "play.gob", "--speed", "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReplayPath != "play.gob" {
		t.Errorf("expected replay path, got %q", cfg.ReplayPath)
	}
}

func TestParseArgs_ScenarioFile(t *testing.T) {
	path := writeScenario(t, `
thrower:
  x: 25
  y: 20
receiver:
  name: Slot
  x: 35
  y: 15
  vx: 1
  vy: 5
ball_speed: 19.5
heading: downfield
search:
  samples: 800
`)

	cfg, err := ParseArgs([]string{"--scenario", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Thrower != (Spot{X: 25, Y: 20}) {
		t.Errorf("unexpected thrower %+v", cfg.Thrower)
	}
	if cfg.Receiver.Name != "Slot" || cfg.Receiver.VY != 5 {
		t.Errorf("unexpected receiver %+v", cfg.Receiver)
	}
	if cfg.Receiver.Z != DefaultReceiverZ {
		t.Errorf("missing fields should keep defaults, got z=%f", cfg.Receiver.Z)
	}
	if cfg.BallSpeed != 19.5 || cfg.Heading != "downfield" || cfg.Search.Samples != 800 {
		t.Errorf("unexpected scenario %+v", cfg.Scenario)
	}
	if cfg.Search.Tolerance != physics.DefaultTolerance {
		t.Errorf("expected default tolerance, got %f", cfg.Search.Tolerance)
	}
}

func TestParseArgs_FlagsOverrideScenarioFile(t *testing.T) {
	path := writeScenario(t, `
ball_speed: 19.5
receiver:
  x: 35
  vx: 1
`)

	cfg, err := ParseArgs([]string{"--speed", "21", "--scenario", path, "--wr-vx", "2.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BallSpeed != 21 {
		t.Errorf("flag should win over file, got speed %f", cfg.BallSpeed)
	}
	if cfg.Receiver.VX != 2.5 {
		t.Errorf("flag should win over file, got vx %f", cfg.Receiver.VX)
	}
	if cfg.Receiver.X != 35 {
		t.Errorf("file should win over default, got x %f", cfg.Receiver.X)
	}
}

func TestParseArgs_ScenarioFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if _, err := ParseArgs([]string{"--scenario", missing}); err == nil {
			t.Error("expected error for missing scenario file")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeScenario(t, "ball_sped: 20\n")
		if _, err := ParseArgs([]string{"--scenario", path}); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeScenario(t, "ball_speed: -1\n")
		if _, err := ParseArgs([]string{"--scenario", path}); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestDefaultConstants(t *testing.T) {
	if DefaultBallSpeed != 17.08 {
		t.Errorf("expected DefaultBallSpeed 17.08, got %f", DefaultBallSpeed)
	}
	if DefaultReleaseHeight != 2.97 {
		t.Errorf("expected DefaultReleaseHeight 2.97, got %f", DefaultReleaseHeight)
	}
	if DefaultStep != 0.01 {
		t.Errorf("expected DefaultStep 0.01, got %f", DefaultStep)
	}
}
