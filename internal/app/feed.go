package app

import (
	"math"
	"time"

	"github.com/diegok/gridiron/internal/game"
	"github.com/diegok/gridiron/internal/protocol"
	"github.com/diegok/gridiron/internal/ui"
)

// feed hands the viewer one frame per tick, from a live play or a recording.
type feed interface {
	View() ui.View
	Current() protocol.Frame
	Next() protocol.Frame
	Reset()
	Step() float64
	Recording() *protocol.Recording
	Replay() bool
}

type liveFeed struct {
	play     *game.Play
	header   protocol.Header
	solution protocol.SolutionState
}

func newLiveFeed(p *game.Play) *liveFeed {
	return &liveFeed{
		play:     p,
		header:   p.Header(time.Now()),
		solution: p.SolutionState(),
	}
}

func (l *liveFeed) View() ui.View {
	return ui.View{
		Header:   l.header,
		Solution: l.solution,
		Frame:    l.play.Frame(),
		Apex:     l.play.Ball.Apex(),
	}
}

func (l *liveFeed) Current() protocol.Frame { return l.play.Frame() }

func (l *liveFeed) Next() protocol.Frame {
	l.play.Update()
	return l.play.Frame()
}

func (l *liveFeed) Reset() { l.play.Reset() }

func (l *liveFeed) Step() float64 { return l.play.Setup().Step }

// Recording plays from the start to the end. The play is left finished.
func (l *liveFeed) Recording() *protocol.Recording {
	l.play.Reset()
	return l.play.Record(l.header.Recorded)
}

func (l *liveFeed) Replay() bool { return false }

// replayFeed steps through recorded frames. Before the first frame the ball
// is in the thrower's hand.
type replayFeed struct {
	rec  *protocol.Recording
	pos  int
	apex float64
}

func newReplayFeed(rec *protocol.Recording) *replayFeed {
	apex := rec.Header.ReleaseHeight
	for _, f := range rec.Frames {
		apex = math.Max(apex, f.Ball.Z)
	}
	return &replayFeed{rec: rec, pos: -1, apex: apex}
}

func (r *replayFeed) View() ui.View {
	return ui.View{
		Header:   r.rec.Header,
		Solution: r.rec.Solution,
		Frame:    r.Current(),
		Apex:     r.apex,
		Replay:   true,
	}
}

func (r *replayFeed) Current() protocol.Frame {
	if r.pos < 0 || len(r.rec.Frames) == 0 {
		h := r.rec.Header
		return protocol.Frame{
			Ball:     protocol.BallState{X: h.Thrower.X, Y: h.Thrower.Y, Z: h.ReleaseHeight, InFlight: true},
			Receiver: h.Receiver,
		}
	}
	return r.rec.Frames[r.pos]
}

func (r *replayFeed) Next() protocol.Frame {
	if r.pos < len(r.rec.Frames)-1 {
		r.pos++
	}
	return r.Current()
}

func (r *replayFeed) Reset() { r.pos = -1 }

func (r *replayFeed) Step() float64 { return r.rec.Header.Step }

func (r *replayFeed) Recording() *protocol.Recording { return r.rec }

func (r *replayFeed) Replay() bool { return true }
