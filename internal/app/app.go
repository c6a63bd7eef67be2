package app

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diegok/gridiron/internal/config"
	"github.com/diegok/gridiron/internal/game"
	"github.com/diegok/gridiron/internal/logging"
	"github.com/diegok/gridiron/internal/protocol"
	"github.com/diegok/gridiron/internal/report"
	"github.com/diegok/gridiron/internal/ui"
)

// App is the main application controller: it sets up the play (or loads a
// recording) and shows it as text or on the field view.
type App struct {
	cfg *config.Config
	out io.Writer
	log *zap.Logger

	screen   *ui.Screen
	renderer *ui.Renderer
	paused   bool
	lag      time.Duration

	quit    chan struct{}
	sigChan chan os.Signal
}

// NewApp creates a new App writing text output to out.
func NewApp(cfg *config.Config, out io.Writer) *App {
	return &App{
		cfg:  cfg,
		out:  out,
		log:  zap.NewNop(),
		quit: make(chan struct{}),
	}
}

// Run is the main entry point for the application.
func (a *App) Run() error {
	text := a.textMode()

	logger, err := logging.New(a.cfg.LogLevel, a.logPaths(text)...)
	if err != nil {
		return err
	}
	a.log = logger
	defer func() { _ = a.log.Sync() }()

	f, err := a.load()
	if errors.Cause(err) == game.ErrNoSolution {
		a.log.Warn("no viable pass", zap.Error(err))
		r := report.NewWriter(a.out, report.DefaultEvery)
		r.NoSolution()
		return r.Err()
	}
	if err != nil {
		return err
	}

	if text {
		return a.runText(f)
	}
	return a.runViewer(f)
}

// textMode is on when asked for, or when stdout isn't a terminal.
func (a *App) textMode() bool {
	if a.cfg.TextMode {
		return true
	}
	file, ok := a.out.(*os.File)
	return !ok || !term.IsTerminal(int(file.Fd()))
}

// logPaths keeps logs off the terminal while tcell owns it.
func (a *App) logPaths(text bool) []string {
	switch {
	case a.cfg.LogFile != "":
		return []string{a.cfg.LogFile}
	case text:
		return []string{"stderr"}
	}
	return nil
}

// load builds the live play or reads the recording to replay.
func (a *App) load() (feed, error) {
	if a.cfg.ReplayPath != "" {
		rec, err := readRecording(a.cfg.ReplayPath)
		if err != nil {
			return nil, err
		}
		a.log.Info("replaying",
			zap.String("path", a.cfg.ReplayPath),
			zap.Stringer("play_id", rec.Header.PlayID),
			zap.Int("frames", len(rec.Frames)))
		return newReplayFeed(rec), nil
	}

	play, err := buildPlay(a.cfg.Scenario)
	if err != nil {
		return nil, err
	}
	sol := play.Solution
	a.log.Info("pass solved",
		zap.Stringer("play_id", play.ID),
		zap.Float64("target_x", sol.Target.X),
		zap.Float64("target_y", sol.Target.Y),
		zap.Float64("time", sol.Time),
		zap.Float64("angle", sol.AngleDeg),
		zap.Float64("speed", sol.Total))

	if a.cfg.RecordPath != "" {
		rec := play.Record(time.Now())
		if err := writeRecording(a.cfg.RecordPath, rec); err != nil {
			return nil, err
		}
		a.log.Info("play recorded",
			zap.String("path", a.cfg.RecordPath),
			zap.Stringer("outcome", rec.Outcome.Outcome),
			zap.Int("frames", len(rec.Frames)))
		play.Reset()
	}
	return newLiveFeed(play), nil
}

func (a *App) runText(f feed) error {
	rec := f.Recording()
	a.log.Info("play finished",
		zap.Stringer("outcome", rec.Outcome.Outcome),
		zap.Int("ticks", rec.Outcome.Tick),
		zap.Float64("closest", rec.Outcome.Closest))
	return report.Write(a.out, rec, report.DefaultEvery)
}

// buildPlay puts the scenario's players on the field and solves the throw.
func buildPlay(s config.Scenario) (*game.Play, error) {
	thrower := game.NewPlayer("QB", "QB", "offense", s.Thrower.X, s.Thrower.Y)
	thrower.HandsHeight = s.ReleaseHeight

	receiver := game.NewPlayer(s.Receiver.Name, "WR", "offense", s.Receiver.X, s.Receiver.Y)
	receiver.HandsHeight = s.Receiver.Z
	receiver.VX, receiver.VY = s.Receiver.VX, s.Receiver.VY

	return game.NewPlay(game.NewField(), game.Setup{
		Thrower:       thrower,
		Receiver:      receiver,
		BallSpeed:     s.BallSpeed,
		ReleaseHeight: s.ReleaseHeight,
		Heading:       s.HeadingMode(),
		Step:          s.Step,
		CatchRadius:   s.CatchRadius,
	}, s.Solver())
}

func writeRecording(path string, rec *protocol.Recording) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create recording")
	}
	if err := protocol.WriteRecording(file, rec); err != nil {
		file.Close()
		return errors.Wrapf(err, "record to %s", path)
	}
	return errors.Wrap(file.Close(), "close recording")
}

func readRecording(path string) (*protocol.Recording, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open recording")
	}
	defer file.Close()

	rec, err := protocol.ReadRecording(file)
	if err != nil {
		return nil, errors.Wrapf(err, "replay %s", path)
	}
	return rec, nil
}
