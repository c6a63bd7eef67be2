package protocol

import (
	"encoding/gob"
	"time"

	"github.com/google/uuid"
)

// Outcome is how a throw ended, or that it hasn't yet
type Outcome int

const (
	OutcomeInFlight Outcome = iota
	OutcomeCaught
	OutcomeIncomplete
	OutcomeOutOfBounds
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInFlight:
		return "in flight"
	case OutcomeCaught:
		return "caught"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeOutOfBounds:
		return "out of bounds"
	}
	return "unknown"
}

// Over reports whether the play has ended
func (o Outcome) Over() bool {
	return o != OutcomeInFlight
}

// MessageType identifies the type of a recorded message
type MessageType int

const (
	MsgHeader MessageType = iota
	MsgSolution
	MsgFrame
	MsgOutcome
)

// Message is the wrapper for everything written to a recording
type Message struct {
	Type    MessageType
	Payload interface{}
}

// PlayerState is a player's spot and running velocity
type PlayerState struct {
	Name string
	Role string
	X    float64
	Y    float64
	Z    float64
	VX   float64
	VY   float64
}

// Header describes the throw being recorded
type Header struct {
	PlayID        uuid.UUID
	Recorded      time.Time
	Thrower       PlayerState
	Receiver      PlayerState
	BallSpeed     float64
	ReleaseHeight float64
	Step          float64
	CatchRadius   float64
	Heading       string
}

// SolutionState is the interception the throw was aimed at, plus the
// straight-line speed check toward the receiver's spot at release.
type SolutionState struct {
	TargetX       float64
	TargetY       float64
	TargetZ       float64
	Time          float64
	AngleDeg      float64
	Vertical      float64
	Horizontal    float64
	Total         float64
	StraightSpeed float64
	StraightOK    bool
}

// BallState is the ball's position
type BallState struct {
	X        float64
	Y        float64
	Z        float64
	InFlight bool
}

// Frame is one simulation tick
type Frame struct {
	Tick     int
	T        float64
	Ball     BallState
	Receiver PlayerState
	Outcome  Outcome
}

// OutcomeState is the final result of a play
type OutcomeState struct {
	Outcome  Outcome
	Tick     int
	T        float64
	Ball     BallState
	Receiver PlayerState
	Closest  float64 // nearest ball-to-hands distance during the flight
	Checksum uint64  // FramesChecksum of the recorded frames
}

func init() {
	gob.Register(Header{})
	gob.Register(SolutionState{})
	gob.Register(Frame{})
	gob.Register(OutcomeState{})
}
