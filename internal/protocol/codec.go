package protocol

import (
	"encoding/binary"
	"encoding/gob"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// Codec handles message encoding/decoding
type Codec struct {
	enc *gob.Encoder
	dec *gob.Decoder
}

// NewCodec creates a codec for the given read/writer
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{
		enc: gob.NewEncoder(rw),
		dec: gob.NewDecoder(rw),
	}
}

// NewEncoder creates an encoder-only codec
func NewEncoder(w io.Writer) *Codec {
	return &Codec{
		enc: gob.NewEncoder(w),
	}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{
		dec: gob.NewDecoder(r),
	}
}

// Encode writes a message
func (c *Codec) Encode(msg *Message) error {
	return c.enc.Encode(msg)
}

// Decode reads a message. io.EOF is returned unwrapped at a clean end of stream.
func (c *Codec) Decode() (*Message, error) {
	var msg Message
	if err := c.dec.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Recording is a complete play: header, solution, every frame, outcome.
type Recording struct {
	Header   Header
	Solution SolutionState
	Frames   []Frame
	Outcome  OutcomeState
}

// FramesChecksum hashes the simulated values of every frame. Names are left
// out so a renamed receiver still verifies.
func FramesChecksum(frames []Frame) uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	for _, f := range frames {
		put(uint64(f.Tick))
		put(uint64(f.Outcome))
		for _, v := range []float64{f.T, f.Ball.X, f.Ball.Y, f.Ball.Z, f.Receiver.X, f.Receiver.Y} {
			put(math.Float64bits(v))
		}
	}
	return h.Sum64()
}

// WriteRecording streams rec to w as a sequence of messages. The outcome
// carries a checksum of the frames.
func WriteRecording(w io.Writer, rec *Recording) error {
	c := NewEncoder(w)

	if err := c.Encode(&Message{Type: MsgHeader, Payload: rec.Header}); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := c.Encode(&Message{Type: MsgSolution, Payload: rec.Solution}); err != nil {
		return errors.Wrap(err, "write solution")
	}
	for _, f := range rec.Frames {
		if err := c.Encode(&Message{Type: MsgFrame, Payload: f}); err != nil {
			return errors.Wrapf(err, "write frame %d", f.Tick)
		}
	}
	outcome := rec.Outcome
	outcome.Checksum = FramesChecksum(rec.Frames)
	if err := c.Encode(&Message{Type: MsgOutcome, Payload: outcome}); err != nil {
		return errors.Wrap(err, "write outcome")
	}
	return nil
}

// ErrBadRecording is returned for streams that aren't a well-formed recording.
var ErrBadRecording = errors.New("malformed recording")

// ReadRecording reads a stream written by WriteRecording.
func ReadRecording(r io.Reader) (*Recording, error) {
	c := NewDecoder(r)
	rec := &Recording{}
	var sawHeader, sawOutcome bool

	for {
		msg, err := c.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read recording")
		}

		if !sawHeader && msg.Type != MsgHeader {
			return nil, errors.Wrapf(ErrBadRecording, "first message is type %d, want header", msg.Type)
		}
		if sawOutcome {
			return nil, errors.Wrap(ErrBadRecording, "message after outcome")
		}

		switch payload := msg.Payload.(type) {
		case Header:
			if sawHeader {
				return nil, errors.Wrap(ErrBadRecording, "duplicate header")
			}
			rec.Header = payload
			sawHeader = true
		case SolutionState:
			rec.Solution = payload
		case Frame:
			rec.Frames = append(rec.Frames, payload)
		case OutcomeState:
			rec.Outcome = payload
			sawOutcome = true
		default:
			return nil, errors.Wrapf(ErrBadRecording, "unexpected payload %T", msg.Payload)
		}
	}

	if !sawHeader || !sawOutcome {
		return nil, errors.Wrap(ErrBadRecording, "truncated")
	}
	if sum := FramesChecksum(rec.Frames); sum != rec.Outcome.Checksum {
		return nil, errors.Wrapf(ErrBadRecording, "frame checksum %016x, recorded %016x", sum, rec.Outcome.Checksum)
	}
	return rec, nil
}
