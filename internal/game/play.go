package game

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/diegok/gridiron/internal/physics"
	"github.com/diegok/gridiron/internal/protocol"
)

// Play defaults
const (
	DefaultStep        = 0.01 // seconds per tick
	DefaultCatchRadius = 1.0  // yards between ball and hands
	DefaultMaxTicks    = 3000 // hard stop for a single play
)

// ErrNoSolution is returned when no throw at the given speed reaches the receiver.
var ErrNoSolution = errors.New("no viable pass")

// Setup is everything needed to run one throw.
type Setup struct {
	Thrower       *Player
	Receiver      *Player
	BallSpeed     float64
	ReleaseHeight float64
	Heading       physics.HeadingMode
	Step          float64
	CatchRadius   float64
	MaxTicks      int
}

// Play is a single pass: the solver picks the throw, then ball and receiver
// advance together one tick at a time until the ball is caught, lands, or
// leaves the field.
type Play struct {
	ID       uuid.UUID
	Field    *Field
	Thrower  *Player
	Receiver *Player
	Ball     *physics.Trajectory
	Solution physics.Solution
	Tick     int

	// Speed a straight-line throw at the solution angle would need to hit
	// the receiver's spot at release.
	StraightSpeed float64
	StraightOK    bool

	setup   Setup
	launch  physics.Launch
	startX  float64
	startY  float64
	outcome protocol.Outcome
	closest float64
}

// NewPlay solves for the throw and releases the ball.
func NewPlay(field *Field, setup Setup, solver physics.Solver) (*Play, error) {
	if setup.Thrower == nil || setup.Receiver == nil {
		return nil, errors.New("play needs a thrower and a receiver")
	}
	if setup.Step <= 0 {
		setup.Step = DefaultStep
	}
	if setup.CatchRadius <= 0 {
		setup.CatchRadius = DefaultCatchRadius
	}
	if setup.MaxTicks <= 0 {
		setup.MaxTicks = DefaultMaxTicks
	}

	thrower, receiver := setup.Thrower, setup.Receiver
	if !field.InBounds(receiver.X, receiver.Y) {
		return nil, errors.Wrapf(ErrOutOfBounds, "receiver %s", receiver.Name)
	}
	if err := field.SetBallPosition(thrower.X, thrower.Y); err != nil {
		return nil, errors.Wrapf(err, "thrower %s", thrower.Name)
	}

	sol, ok := solver.Solve(thrower.Position(), receiver.Position(), receiver.Velocity(), setup.BallSpeed, setup.ReleaseHeight)
	if !ok {
		return nil, errors.Wrapf(ErrNoSolution, "ball speed %.2f yd/s to %s", setup.BallSpeed, receiver.Name)
	}

	release := physics.Point3{X: thrower.X, Y: thrower.Y, Z: setup.ReleaseHeight}
	straight, straightOK := physics.RequiredSpeedForAngle(release, receiver.Position(), sol.AngleDeg)

	launch := physics.Launch{
		Start:         release,
		Target:        sol.Target,
		Speed:         sol.Total,
		AngleDeg:      sol.AngleDeg,
		ReleaseHeight: setup.ReleaseHeight,
		Heading:       setup.Heading,
	}
	if err := launch.Validate(); err != nil {
		return nil, errors.Wrap(err, "launch")
	}

	p := &Play{
		ID:            uuid.New(),
		Field:         field,
		Thrower:       thrower,
		Receiver:      receiver,
		Solution:      sol,
		StraightSpeed: straight,
		StraightOK:    straightOK,
		setup:         setup,
		launch:        launch,
		startX:        receiver.X,
		startY:        receiver.Y,
	}
	p.Reset()
	return p, nil
}

// Reset puts the receiver back on their starting spot and throws again.
func (p *Play) Reset() {
	p.Receiver.MoveTo(p.startX, p.startY)
	p.Ball = physics.NewTrajectory(p.launch)
	p.Tick = 0
	p.outcome = protocol.OutcomeInFlight
	p.closest = p.Ball.Position().Distance(p.Receiver.Position())
}

// Update runs one tick.
func (p *Play) Update() {
	if p.outcome.Over() {
		return
	}

	p.Tick++
	p.Receiver.Advance(p.setup.Step)
	p.Ball.Update(p.setup.Step)

	ball := p.Ball.Position()
	dist := ball.Distance(p.Receiver.Position())
	p.closest = math.Min(p.closest, dist)

	switch {
	case dist <= p.setup.CatchRadius:
		p.outcome = protocol.OutcomeCaught
	case !p.Field.InBounds(ball.X, ball.Y):
		p.outcome = protocol.OutcomeOutOfBounds
	case p.Ball.Grounded():
		p.outcome = protocol.OutcomeIncomplete
	case p.Tick >= p.setup.MaxTicks:
		p.outcome = protocol.OutcomeIncomplete
	}
}

// Run plays to the end, calling each (if non-nil) after every tick.
func (p *Play) Run(each func(protocol.Frame)) protocol.Outcome {
	for !p.outcome.Over() {
		p.Update()
		if each != nil {
			each(p.Frame())
		}
	}
	return p.outcome
}

// Outcome is the current state of the play.
func (p *Play) Outcome() protocol.Outcome {
	return p.outcome
}

// Closest is the nearest the ball has come to the receiver's hands.
func (p *Play) Closest() float64 {
	return p.closest
}

// Elapsed is the simulated time since release.
func (p *Play) Elapsed() time.Duration {
	return time.Duration(p.Ball.T * float64(time.Second))
}

// Setup returns the setup with defaults filled in.
func (p *Play) Setup() Setup {
	return p.setup
}

func playerState(pl *Player) protocol.PlayerState {
	return protocol.PlayerState{
		Name: pl.Name,
		Role: pl.Role,
		X:    pl.X,
		Y:    pl.Y,
		Z:    pl.HandsHeight,
		VX:   pl.VX,
		VY:   pl.VY,
	}
}

func (p *Play) ballState() protocol.BallState {
	return protocol.BallState{X: p.Ball.X, Y: p.Ball.Y, Z: p.Ball.Z, InFlight: p.Ball.InFlight}
}

// Frame is the current tick in serializable form.
func (p *Play) Frame() protocol.Frame {
	return protocol.Frame{
		Tick:     p.Tick,
		T:        p.Ball.T,
		Ball:     p.ballState(),
		Receiver: playerState(p.Receiver),
		Outcome:  p.outcome,
	}
}

// Header describes the play as set up, with the receiver on their starting spot.
func (p *Play) Header(recorded time.Time) protocol.Header {
	receiver := playerState(p.Receiver)
	receiver.X, receiver.Y = p.startX, p.startY

	return protocol.Header{
		PlayID:        p.ID,
		Recorded:      recorded,
		Thrower:       playerState(p.Thrower),
		Receiver:      receiver,
		BallSpeed:     p.setup.BallSpeed,
		ReleaseHeight: p.setup.ReleaseHeight,
		Step:          p.setup.Step,
		CatchRadius:   p.setup.CatchRadius,
		Heading:       p.setup.Heading.String(),
	}
}

// SolutionState exports the solved throw.
func (p *Play) SolutionState() protocol.SolutionState {
	s := p.Solution
	return protocol.SolutionState{
		TargetX:       s.Target.X,
		TargetY:       s.Target.Y,
		TargetZ:       s.Target.Z,
		Time:          s.Time,
		AngleDeg:      s.AngleDeg,
		Vertical:      s.Vertical,
		Horizontal:    s.Horizontal,
		Total:         s.Total,
		StraightSpeed: p.StraightSpeed,
		StraightOK:    p.StraightOK,
	}
}

// OutcomeState exports the result so far.
func (p *Play) OutcomeState() protocol.OutcomeState {
	return protocol.OutcomeState{
		Outcome:  p.outcome,
		Tick:     p.Tick,
		T:        p.Ball.T,
		Ball:     p.ballState(),
		Receiver: playerState(p.Receiver),
		Closest:  p.closest,
	}
}

// Record runs the play to the end and captures every tick.
func (p *Play) Record(recorded time.Time) *protocol.Recording {
	rec := &protocol.Recording{
		Header:   p.Header(recorded),
		Solution: p.SolutionState(),
	}
	p.Run(func(f protocol.Frame) {
		rec.Frames = append(rec.Frames, f)
	})
	rec.Outcome = p.OutcomeState()
	return rec
}
