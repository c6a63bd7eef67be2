package protocol

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleRecording() *Recording {
	rec := &Recording{
		Header: Header{
			PlayID:        uuid.New(),
			Recorded:      time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			Thrower:       PlayerState{Name: "QB", Role: "QB", X: 20, Y: 26, Z: 2.97},
			Receiver:      PlayerState{Name: "WR", Role: "WR", X: 40, Y: 26, Z: 2.97, VX: 3},
			BallSpeed:     17.08,
			ReleaseHeight: 2.97,
			Step:          0.01,
			CatchRadius:   1,
			Heading:       "target",
		},
		Solution: SolutionState{TargetX: 44.9, TargetY: 26, TargetZ: 2.97, Time: 1.64, AngleDeg: 30.1, Total: 17.5},
		Outcome:  OutcomeState{Outcome: OutcomeCaught, Tick: 160, T: 1.6, Closest: 0.8},
	}
	for i := 1; i <= 3; i++ {
		rec.Frames = append(rec.Frames, Frame{
			Tick: i,
			T:    float64(i) * 0.01,
			Ball: BallState{X: 20 + float64(i)*0.15, Y: 26, Z: 3, InFlight: true},
		})
	}
	return rec
}

func TestCodec_EncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	original := &Message{
		Type: MsgFrame,
		Payload: Frame{
			Tick: 42,
			Ball: BallState{X: 10.5, Y: 20.3, Z: 1.2, InFlight: true},
		},
	}

	if err := codec.Encode(original); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := codec.Decode()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.Type != original.Type {
		t.Errorf("type mismatch: got %v, want %v", decoded.Type, original.Type)
	}

	frame, ok := decoded.Payload.(Frame)
	if !ok {
		t.Fatalf("payload type mismatch")
	}

	if frame.Tick != 42 {
		t.Errorf("tick mismatch: got %d, want 42", frame.Tick)
	}
}

func TestRecording_RoundTrip(t *testing.T) {
	rec := sampleRecording()

	var buf bytes.Buffer
	if err := WriteRecording(&buf, rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadRecording(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if got.Header.PlayID != rec.Header.PlayID {
		t.Errorf("play id mismatch: got %s, want %s", got.Header.PlayID, rec.Header.PlayID)
	}
	if !got.Header.Recorded.Equal(rec.Header.Recorded) {
		t.Errorf("recorded time mismatch: got %v", got.Header.Recorded)
	}
	if got.Solution != rec.Solution {
		t.Errorf("solution mismatch: got %+v", got.Solution)
	}
	if len(got.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got.Frames))
	}
	if got.Frames[2] != rec.Frames[2] {
		t.Errorf("frame mismatch: got %+v, want %+v", got.Frames[2], rec.Frames[2])
	}
	if got.Outcome.Outcome != OutcomeCaught {
		t.Errorf("expected caught, got %v", got.Outcome.Outcome)
	}
}

func TestReadRecording_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		write func(c *Codec)
	}{
		{"empty", func(c *Codec) {}},
		{"frame first", func(c *Codec) {
			c.Encode(&Message{Type: MsgFrame, Payload: Frame{Tick: 1}})
		}},
		{"no outcome", func(c *Codec) {
			c.Encode(&Message{Type: MsgHeader, Payload: Header{Heading: "target"}})
			c.Encode(&Message{Type: MsgFrame, Payload: Frame{Tick: 1}})
		}},
		{"duplicate header", func(c *Codec) {
			c.Encode(&Message{Type: MsgHeader, Payload: Header{Heading: "target"}})
			c.Encode(&Message{Type: MsgHeader, Payload: Header{Heading: "target"}})
		}},
		{"frame after outcome", func(c *Codec) {
			c.Encode(&Message{Type: MsgHeader, Payload: Header{Heading: "target"}})
			c.Encode(&Message{Type: MsgOutcome, Payload: OutcomeState{Outcome: OutcomeIncomplete}})
			c.Encode(&Message{Type: MsgFrame, Payload: Frame{Tick: 1}})
		}},
		{"checksum mismatch", func(c *Codec) {
			c.Encode(&Message{Type: MsgHeader, Payload: Header{Heading: "target"}})
			c.Encode(&Message{Type: MsgFrame, Payload: Frame{Tick: 1}})
			c.Encode(&Message{Type: MsgOutcome, Payload: OutcomeState{Outcome: OutcomeIncomplete, Checksum: 12345}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.write(NewEncoder(&buf))

			_, err := ReadRecording(&buf)
			if !errors.Is(err, ErrBadRecording) {
				t.Errorf("expected ErrBadRecording, got %v", err)
			}
		})
	}
}

func TestFramesChecksum(t *testing.T) {
	frames := sampleRecording().Frames
	sum := FramesChecksum(frames)

	if FramesChecksum(frames) != sum {
		t.Error("checksum should be deterministic")
	}

	renamed := append([]Frame(nil), frames...)
	renamed[0].Receiver.Name = "TE"
	if FramesChecksum(renamed) != sum {
		t.Error("names should not affect the checksum")
	}

	moved := append([]Frame(nil), frames...)
	moved[1].Ball.Z += 0.001
	if FramesChecksum(moved) == sum {
		t.Error("changing the ball height should change the checksum")
	}

	if FramesChecksum(frames[:2]) == sum {
		t.Error("dropping a frame should change the checksum")
	}
}
