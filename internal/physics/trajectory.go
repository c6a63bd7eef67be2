package physics

import (
	"math"

	"github.com/pkg/errors"
)

// HeadingMode selects how a throw's horizontal direction is resolved.
type HeadingMode int

const (
	// HeadingToTarget points the ball from Start toward Target.
	HeadingToTarget HeadingMode = iota
	// HeadingDownfield sends the ball straight down the +X axis and ignores Target.
	HeadingDownfield
)

func (m HeadingMode) String() string {
	switch m {
	case HeadingToTarget:
		return "target"
	case HeadingDownfield:
		return "downfield"
	}
	return "unknown"
}

// ParseHeadingMode is the inverse of HeadingMode.String.
func ParseHeadingMode(s string) (HeadingMode, error) {
	switch s {
	case "target":
		return HeadingToTarget, nil
	case "downfield":
		return HeadingDownfield, nil
	}
	return 0, errors.Errorf("unknown heading mode %q (want target or downfield)", s)
}

// Launch describes a throw at the moment of release. Only the horizontal
// components of Start and Target are used; ReleaseHeight is the vertical
// origin.
type Launch struct {
	Start         Point3
	Target        Point3
	Speed         float64 // yd/s
	AngleDeg      float64 // above horizontal
	ReleaseHeight float64
	Heading       HeadingMode
}

// Validate reports launch parameters the model cannot represent.
func (l Launch) Validate() error {
	if !finite(l.Start.X, l.Start.Y, l.Target.X, l.Target.Y, l.Speed, l.AngleDeg, l.ReleaseHeight) {
		return errors.New("launch parameters must be finite")
	}
	if l.Speed <= 0 {
		return errors.Errorf("launch speed must be positive, got %g", l.Speed)
	}
	if l.ReleaseHeight < 0 {
		return errors.Errorf("release height must not be negative, got %g", l.ReleaseHeight)
	}
	return nil
}

// Trajectory is a ball in flight. Height is always evaluated from the total
// elapsed time, never accumulated step by step.
type Trajectory struct {
	X, Y, Z float64
	T       float64 // seconds since release

	Speed         float64
	Angle         float64 // radians
	ReleaseHeight float64
	HeadingX      float64
	HeadingY      float64

	VX, VY   float64 // horizontal velocity components
	Vertical float64 // initial vertical speed

	InFlight bool
}

// NewTrajectory releases a ball. A heading that cannot be resolved (Start and
// Target on the same spot) is the zero vector and the ball only moves
// vertically.
func NewTrajectory(l Launch) *Trajectory {
	hx, hy := resolveHeading(l)
	angle := radians(l.AngleDeg)
	horizontal := l.Speed * math.Cos(angle)

	return &Trajectory{
		X:             l.Start.X,
		Y:             l.Start.Y,
		Z:             l.ReleaseHeight,
		Speed:         l.Speed,
		Angle:         angle,
		ReleaseHeight: l.ReleaseHeight,
		HeadingX:      hx,
		HeadingY:      hy,
		VX:            horizontal * hx,
		VY:            horizontal * hy,
		Vertical:      l.Speed * math.Sin(angle),
		InFlight:      true,
	}
}

func resolveHeading(l Launch) (float64, float64) {
	if l.Heading == HeadingDownfield {
		return 1, 0
	}
	dx := l.Target.X - l.Start.X
	dy := l.Target.Y - l.Start.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0
	}
	return dx / dist, dy / dist
}

// HeightAt evaluates the closed-form height at t seconds after release.
func (tr *Trajectory) HeightAt(t float64) float64 {
	return tr.ReleaseHeight + tr.Vertical*t - 0.5*Gravity*t*t
}

// Update advances the ball by dt seconds. Once grounded the ball stays put.
func (tr *Trajectory) Update(dt float64) {
	if !tr.InFlight || dt <= 0 {
		return
	}

	tr.T += dt
	tr.X += tr.VX * dt
	tr.Y += tr.VY * dt
	tr.Z = tr.HeightAt(tr.T)

	if tr.Z <= 0 {
		tr.Z = 0
		tr.InFlight = false
	}
}

// Position returns the current ball position.
func (tr *Trajectory) Position() Point3 {
	return Point3{X: tr.X, Y: tr.Y, Z: tr.Z}
}

// Grounded reports whether the ball has touched the ground.
func (tr *Trajectory) Grounded() bool {
	return !tr.InFlight
}

// Apex is the peak height of the flight, or the release height for throws
// aimed at or below the horizon.
func (tr *Trajectory) Apex() float64 {
	if tr.Vertical <= 0 {
		return tr.ReleaseHeight
	}
	t := tr.Vertical / Gravity
	return tr.HeightAt(t)
}
