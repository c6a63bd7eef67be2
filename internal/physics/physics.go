// Package physics holds the projectile model for a thrown ball and the
// solver that leads a moving receiver.
package physics

import "math"

// Field units are yards and seconds.
const (
	YardsPerMeter = 1.09361
	Gravity       = 9.81 * YardsPerMeter // ~10.73 yd/s²
)

// Point3 is a position on the field. X is downfield, Y is across the field,
// Z is height above the ground.
type Point3 struct {
	X, Y, Z float64
}

// Velocity2 is a horizontal velocity. Receivers never move vertically.
type Velocity2 struct {
	VX, VY float64
}

// HorizontalDistance ignores Z.
func (p Point3) HorizontalDistance(q Point3) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Distance is the straight-line distance between two points.
func (p Point3) Distance(q Point3) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	dz := q.Z - p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Speed returns the magnitude of v.
func (v Velocity2) Speed() float64 {
	return math.Hypot(v.VX, v.VY)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
