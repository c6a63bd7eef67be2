package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/gridiron/internal/protocol"
)

const (
	sampleRate = beep.SampleRate(44100)
)

var (
	initialized bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

type waveform func(phase float64) float64

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func square(phase float64) float64 {
	if math.Mod(phase, 1.0) > 0.5 {
		return -1
	}
	return 1
}

// sweep glides linearly from one frequency to another. A flat tone is a
// sweep with from == to.
func sweep(wave waveform, from, to, volume float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	done := 0
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if done >= total {
				return i, i > 0
			}
			freq := from + (to-from)*float64(done)/float64(total)
			val := wave(phase) * volume
			samples[i][0] = val
			samples[i][1] = val
			phase += freq / float64(sampleRate)
			done++
		}
		return len(samples), true
	})
}

func releaseSound() beep.Streamer {
	return sweep(sine, 440, 880, 0.3, 120*time.Millisecond)
}

func catchSound() beep.Streamer {
	return beep.Seq(
		sweep(square, 660, 660, 0.2, 80*time.Millisecond),
		sweep(square, 880, 880, 0.2, 80*time.Millisecond),
		sweep(square, 1320, 1320, 0.2, 160*time.Millisecond),
	)
}

func incompleteSound() beep.Streamer {
	return beep.Seq(
		sweep(square, 330, 220, 0.2, 120*time.Millisecond),
		sweep(sine, 110, 80, 0.3, 180*time.Millisecond),
	)
}

// PlayRelease plays the sound for the ball leaving the thrower's hand
func PlayRelease() {
	if !initialized {
		return
	}
	speaker.Play(releaseSound())
}

// PlayCatch plays the sound for a completed pass
func PlayCatch() {
	if !initialized {
		return
	}
	speaker.Play(catchSound())
}

// PlayIncomplete plays the sound for a ball that hit the ground or left the field
func PlayIncomplete() {
	if !initialized {
		return
	}
	speaker.Play(incompleteSound())
}

// PlayOutcome plays whatever fits how the play ended. In-flight plays are silent.
func PlayOutcome(o protocol.Outcome) {
	switch o {
	case protocol.OutcomeCaught:
		PlayCatch()
	case protocol.OutcomeIncomplete, protocol.OutcomeOutOfBounds:
		PlayIncomplete()
	}
}
