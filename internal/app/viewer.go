package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/diegok/gridiron/internal/audio"
	"github.com/diegok/gridiron/internal/ui"
)

const frameInterval = 16 * time.Millisecond

// runViewer shows the play on the field view until the user quits.
func (a *App) runViewer(f feed) error {
	if !a.cfg.Mute {
		// The viewer works without sound.
		if err := audio.Init(); err != nil {
			a.log.Debug("audio unavailable", zap.Error(err))
		}
	}

	screen, err := ui.InitScreen()
	if err != nil {
		audio.Close()
		return errors.Wrap(err, "failed to initialize screen")
	}
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-a.sigChan
		close(a.quit)
	}()

	defer a.cleanup()
	return a.mainLoop(f)
}

// mainLoop is the main event loop that handles input and advances the play.
func (a *App) mainLoop(f feed) error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.restart(f)
	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev, f) {
				return nil
			}

		case <-ticker.C:
			if !a.paused {
				a.catchUp(f, frameInterval)
			}
			a.render(f)
		}
	}
}

// handleEvent processes keyboard and other events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event, f feed) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ui.KeyToAction(ev.Key(), ev.Rune()) {
		case ui.ActionQuit:
			return true
		case ui.ActionPause:
			a.paused = !a.paused
		case ui.ActionStep:
			if a.paused {
				a.advance(f)
			}
		case ui.ActionRestart:
			a.restart(f)
		}
		a.render(f)

	case *tcell.EventResize:
		a.screen.Clear()
		a.render(f)
	}

	return false
}

// catchUp runs as many ticks as fit in elapsed, keeping simulated time in
// step with the wall clock.
func (a *App) catchUp(f feed, elapsed time.Duration) int {
	step := time.Duration(f.Step() * float64(time.Second))
	if step <= 0 {
		return 0
	}

	a.lag += elapsed
	ticks := 0
	for a.lag >= step {
		a.lag -= step
		a.advance(f)
		ticks++
	}
	return ticks
}

// advance runs one tick and sounds the result when the play ends on it.
func (a *App) advance(f feed) {
	before := f.Current().Outcome
	frame := f.Next()
	if before.Over() || !frame.Outcome.Over() {
		return
	}

	audio.PlayOutcome(frame.Outcome)
	a.log.Info("play finished",
		zap.Stringer("outcome", frame.Outcome),
		zap.Int("tick", frame.Tick),
		zap.Float64("t", frame.T),
		zap.Bool("replay", f.Replay()))
}

func (a *App) restart(f feed) {
	f.Reset()
	a.lag = 0
	audio.PlayRelease()
}

func (a *App) render(f feed) {
	if a.renderer == nil {
		return
	}
	v := f.View()
	v.Paused = a.paused
	a.renderer.RenderPlay(v)
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	audio.Close()

	if a.screen != nil {
		a.screen.Fini()
	}

	signal.Stop(a.sigChan)
}
