// Package report prints a play as plain text for pipes and log files.
package report

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diegok/gridiron/internal/protocol"
)

// DefaultEvery prints one frame line per this many ticks.
const DefaultEvery = 10

// Writer formats play output. The first write error sticks and is returned
// by Err.
type Writer struct {
	w     io.Writer
	p     *message.Printer
	every int
	err   error
}

// NewWriter prints every Nth frame; every < 1 prints all of them.
func NewWriter(w io.Writer, every int) *Writer {
	if every < 1 {
		every = 1
	}
	return &Writer{
		w:     w,
		p:     message.NewPrinter(language.English),
		every: every,
	}
}

func (r *Writer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = r.p.Fprintf(r.w, format, args...)
}

// Err returns the first write error.
func (r *Writer) Err() error {
	return r.err
}

// Header prints who is throwing to whom.
func (r *Writer) Header(h protocol.Header) {
	r.printf("Play %s\n", h.PlayID)
	r.printf("%s (%s) at (%.1f, %.1f), release height %.2f yards\n",
		h.Thrower.Name, h.Thrower.Role, h.Thrower.X, h.Thrower.Y, h.ReleaseHeight)
	r.printf("%s (%s) at (%.1f, %.1f), hands at %.2f yards, running (%.2f, %.2f) yd/s\n",
		h.Receiver.Name, h.Receiver.Role, h.Receiver.X, h.Receiver.Y, h.Receiver.Z, h.Receiver.VX, h.Receiver.VY)
	r.printf("Ball speed %.2f yd/s, heading %s, dt %.3fs, catch radius %.2f yards\n",
		h.BallSpeed, h.Heading, h.Step, h.CatchRadius)
}

// Solution prints the interception the throw is aimed at.
func (r *Writer) Solution(s protocol.SolutionState) {
	r.printf("Throw to: (%.2f, %.2f, %.2f)\n", s.TargetX, s.TargetY, s.TargetZ)
	r.printf("Time to arrive: %.2fs\n", s.Time)
	r.printf("Required angle: %.2f°\n", s.AngleDeg)
	r.printf("Velocity: Horizontal = %.2f, Vertical = %.2f, Total = %.2f\n", s.Horizontal, s.Vertical, s.Total)
	if s.StraightOK {
		r.printf("Straight-line speed to the receiver's spot at this angle: %.2f yd/s\n", s.StraightSpeed)
	} else {
		r.printf("Straight-line throw to the receiver's spot is impossible at this angle\n")
	}
}

// NoSolution reports that the solver found nothing.
func (r *Writer) NoSolution() {
	r.printf("No viable pass found.\n")
}

// Frame prints the frame if it falls on the sampling interval or ends the play.
func (r *Writer) Frame(f protocol.Frame) {
	if f.Tick%r.every != 0 && !f.Outcome.Over() {
		return
	}
	r.printf("t=%5.2fs  Ball at x=%.2f, y=%.2f, height=%.2f yards  %s at (%.1f, %.1f)\n",
		f.T, f.Ball.X, f.Ball.Y, f.Ball.Z, f.Receiver.Name, f.Receiver.X, f.Receiver.Y)
}

// Outcome prints how the play ended.
func (r *Writer) Outcome(o protocol.OutcomeState) {
	r.printf("Result: %s after %.2fs (%d ticks), closest approach %.2f yards\n",
		o.Outcome, o.T, o.Tick, o.Closest)
}

// Write prints a whole recording.
func Write(w io.Writer, rec *protocol.Recording, every int) error {
	r := NewWriter(w, every)
	r.Header(rec.Header)
	r.Solution(rec.Solution)
	for _, f := range rec.Frames {
		r.Frame(f)
	}
	r.Outcome(rec.Outcome)
	return r.Err()
}
