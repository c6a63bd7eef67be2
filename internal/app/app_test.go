package app

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diegok/gridiron/internal/config"
	"github.com/diegok/gridiron/internal/protocol"
)

func newTestApp(t *testing.T, args ...string) (*App, *bytes.Buffer) {
	t.Helper()
	args = append(args, "--log-file", filepath.Join(t.TempDir(), "gridiron.log"))
	cfg, err := config.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %v", args, err)
	}
	var out bytes.Buffer
	return NewApp(cfg, &out), &out
}

func TestRunText(t *testing.T) {
	a, out := newTestApp(t, "--text")
	if err := a.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Throw to:", "Required angle:", "Result: caught"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q\n%s", want, out.String())
		}
	}
}

func TestRun_NonTerminalOutputIsText(t *testing.T) {
	a, out := newTestApp(t)
	if !a.textMode() {
		t.Fatal("a buffer is not a terminal, text mode expected")
	}
	if err := a.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Result:") {
		t.Errorf("expected a text report, got %q", out.String())
	}
}

func TestRun_NoSolution(t *testing.T) {
	a, out := newTestApp(t, "--text", "--speed", "5")
	if err := a.Run(); err != nil {
		t.Fatalf("no solution should not be an error, got %v", err)
	}
	if !strings.Contains(out.String(), "No viable pass found.") {
		t.Errorf("expected no-solution line, got %q", out.String())
	}
}

func TestRun_RecordThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.gob")

	live, liveOut := newTestApp(t, "--text", "--record", path)
	if err := live.Run(); err != nil {
		t.Fatalf("record: %v", err)
	}

	replay, replayOut := newTestApp(t, "--text", "--replay", path)
	if err := replay.Run(); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if liveOut.String() != replayOut.String() {
		t.Errorf("replay differs from the live play\nlive:\n%s\nreplay:\n%s", liveOut, replayOut)
	}
}

func TestRun_MissingReplay(t *testing.T) {
	a, _ := newTestApp(t, "--text", "--replay", filepath.Join(t.TempDir(), "missing.gob"))
	if err := a.Run(); err == nil {
		t.Error("expected error for a missing recording")
	}
}

func TestLogPaths(t *testing.T) {
	a := NewApp(&config.Config{}, &bytes.Buffer{})
	if got := a.logPaths(true); len(got) != 1 || got[0] != "stderr" {
		t.Errorf("text mode should log to stderr, got %v", got)
	}
	if got := a.logPaths(false); len(got) != 0 {
		t.Errorf("viewer without a log file should not log, got %v", got)
	}
	a.cfg.LogFile = "play.log"
	if got := a.logPaths(false); len(got) != 1 || got[0] != "play.log" {
		t.Errorf("log file should win, got %v", got)
	}
}

func TestCatchUp(t *testing.T) {
	a, _ := newTestApp(t, "--text")
	play, err := buildPlay(a.cfg.Scenario)
	if err != nil {
		t.Fatalf("buildPlay: %v", err)
	}
	f := newLiveFeed(play)

	if n := a.catchUp(f, 50*time.Millisecond); n != 5 {
		t.Errorf("expected 5 ticks in 50ms at dt=0.01, got %d", n)
	}
	if n := a.catchUp(f, 5*time.Millisecond); n != 0 {
		t.Errorf("expected no tick for half a step, got %d", n)
	}
	if n := a.catchUp(f, 5*time.Millisecond); n != 1 {
		t.Errorf("expected leftover time to add up to a tick, got %d", n)
	}
	if tick := f.Current().Tick; tick != 6 {
		t.Errorf("expected tick 6, got %d", tick)
	}
}

func TestReplayFeed(t *testing.T) {
	rec := &protocol.Recording{
		Header: protocol.Header{
			Thrower:       protocol.PlayerState{X: 20, Y: 26},
			Receiver:      protocol.PlayerState{Name: "WR", X: 40, Y: 26},
			ReleaseHeight: 2.97,
			Step:          0.01,
		},
		Frames: []protocol.Frame{
			{Tick: 1, Ball: protocol.BallState{Z: 5}},
			{Tick: 2, Ball: protocol.BallState{Z: 4}, Outcome: protocol.OutcomeCaught},
		},
	}
	f := newReplayFeed(rec)

	start := f.Current()
	if start.Tick != 0 || start.Ball.X != 20 || start.Ball.Z != 2.97 {
		t.Errorf("expected ball in the thrower's hand before the first frame, got %+v", start)
	}
	if f.View().Apex != 5 {
		t.Errorf("expected apex 5, got %f", f.View().Apex)
	}

	f.Next()
	f.Next()
	if last := f.Next(); last.Tick != 2 || !last.Outcome.Over() {
		t.Errorf("expected to stay on the last frame, got %+v", last)
	}

	f.Reset()
	if f.Current().Tick != 0 {
		t.Error("reset should go back to the release")
	}
}
