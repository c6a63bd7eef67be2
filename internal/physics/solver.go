package physics

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Default search window and acceptance for the interception solver.
const (
	DefaultMinTime   = 0.1
	DefaultMaxTime   = 5.0
	DefaultSamples   = 500
	DefaultTolerance = 0.5 // yd/s
)

// cosines smaller than this are treated as a vertical launch.
const verticalCosine = 1e-12

// Solution is the throw that meets a receiver.
type Solution struct {
	Target     Point3
	Time       float64 // time of flight, seconds
	AngleDeg   float64
	Vertical   float64 // yd/s
	Horizontal float64 // yd/s
	Total      float64 // yd/s
}

// Solver samples flight times uniformly over [MinTime, MaxTime] and accepts
// the earliest one whose required total speed is within Tolerance of the
// ball speed.
type Solver struct {
	MinTime   float64
	MaxTime   float64
	Samples   int
	Tolerance float64
	// Workers > 1 splits the samples across goroutines. The earliest
	// feasible time still wins.
	Workers int
}

// DefaultSolver searches 0.1–5.0s in 500 samples with a 0.5 yd/s tolerance.
func DefaultSolver() Solver {
	return Solver{
		MinTime:   DefaultMinTime,
		MaxTime:   DefaultMaxTime,
		Samples:   DefaultSamples,
		Tolerance: DefaultTolerance,
		Workers:   1,
	}
}

// Step is the spacing between sampled flight times.
func (s Solver) Step() float64 {
	if s.Samples < 2 {
		return 0
	}
	return (s.MaxTime - s.MinTime) / float64(s.Samples-1)
}

func (s Solver) sampleAt(i int) float64 {
	return s.MinTime + float64(i)*s.Step()
}

// SolveInterception runs the default solver.
func SolveInterception(thrower, receiver Point3, vel Velocity2, ballSpeed, releaseHeight float64) (Solution, bool) {
	return DefaultSolver().Solve(thrower, receiver, vel, ballSpeed, releaseHeight)
}

// Solve finds a launch that reaches the receiver, extrapolated along vel, at
// the same instant the receiver gets there. The receiver's height is held at
// receiver.Z for the whole window. It reports false when no sampled time fits.
func (s Solver) Solve(thrower, receiver Point3, vel Velocity2, ballSpeed, releaseHeight float64) (Solution, bool) {
	if s.Samples < 1 || ballSpeed <= 0 || s.Tolerance <= 0 {
		return Solution{}, false
	}
	if !finite(thrower.X, thrower.Y, receiver.X, receiver.Y, receiver.Z, vel.VX, vel.VY, ballSpeed, releaseHeight) {
		return Solution{}, false
	}

	p := problem{
		thrower:       thrower,
		receiver:      receiver,
		vel:           vel,
		ballSpeed:     ballSpeed,
		releaseHeight: releaseHeight,
		tolerance:     s.Tolerance,
	}

	if s.Workers <= 1 || s.Samples < 2*s.Workers {
		for i := 0; i < s.Samples; i++ {
			if sol, ok := p.candidate(s.sampleAt(i)); ok {
				return sol, true
			}
		}
		return Solution{}, false
	}

	return s.solveParallel(p)
}

// solveParallel gives each worker a contiguous chunk of sample indices.
// Every chunk stops at its own first hit; the lowest index across chunks is
// the earliest feasible time.
func (s Solver) solveParallel(p problem) (Solution, bool) {
	chunk := (s.Samples + s.Workers - 1) / s.Workers
	firsts := make([]int, s.Workers)
	sols := make([]Solution, s.Workers)

	var g errgroup.Group
	for w := 0; w < s.Workers; w++ {
		w := w
		firsts[w] = -1
		lo := w * chunk
		hi := min(lo+chunk, s.Samples)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if sol, ok := p.candidate(s.sampleAt(i)); ok {
					firsts[w] = i
					sols[w] = sol
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	for w := range firsts {
		if firsts[w] >= 0 {
			return sols[w], true
		}
	}
	return Solution{}, false
}

type problem struct {
	thrower       Point3
	receiver      Point3
	vel           Velocity2
	ballSpeed     float64
	releaseHeight float64
	tolerance     float64
}

// candidate evaluates one flight time t.
func (p problem) candidate(t float64) (Solution, bool) {
	if t <= 0 {
		return Solution{}, false
	}

	target := Point3{
		X: p.receiver.X + p.vel.VX*t,
		Y: p.receiver.Y + p.vel.VY*t,
		Z: p.receiver.Z,
	}

	horizontal := p.thrower.HorizontalDistance(target) / t
	if horizontal > p.ballSpeed {
		return Solution{}, false
	}

	vertical := (target.Z - p.releaseHeight + 0.5*Gravity*t*t) / t
	total := math.Hypot(horizontal, vertical)
	if math.Abs(total-p.ballSpeed) >= p.tolerance {
		return Solution{}, false
	}

	return Solution{
		Target:     target,
		Time:       t,
		AngleDeg:   degrees(math.Atan2(vertical, horizontal)),
		Vertical:   vertical,
		Horizontal: horizontal,
		Total:      total,
	}, true
}

// RequiredSpeedForAngle solves the projectile equation
//
//	dz = d·tan(θ) − g·d² / (2·v²·cos²(θ))
//
// for the launch speed v that lands exactly on target from thrower at a
// fixed angle. thrower.Z is the release height.
//
// A target straight above or below the thrower (d = 0) needs no speed when it
// is at or below release height and cannot be reached at a non-vertical angle
// otherwise.
func RequiredSpeedForAngle(thrower, target Point3, angleDeg float64) (float64, bool) {
	if !finite(thrower.X, thrower.Y, thrower.Z, target.X, target.Y, target.Z, angleDeg) {
		return 0, false
	}

	d := thrower.HorizontalDistance(target)
	dz := target.Z - thrower.Z
	if d == 0 {
		if dz <= 0 {
			return 0, true
		}
		return 0, false
	}

	theta := radians(angleDeg)
	cos := math.Cos(theta)
	if math.Abs(cos) < verticalCosine {
		return 0, false
	}

	numerator := Gravity * d * d
	denominator := 2 * (d*math.Tan(theta) - dz) * cos * cos
	if denominator <= 0 {
		return 0, false
	}

	v2 := numerator / denominator
	if v2 < 0 || !finite(v2) {
		return 0, false
	}
	return math.Sqrt(v2), true
}
