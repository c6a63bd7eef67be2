package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field dimensions in yards
const (
	FieldLength    = 120.0 // goal line to goal line plus both end zones
	PlayableLength = 100.0
	FieldWidth     = 53.3
	EndZoneDepth   = 10.0
	HashInset      = 23.375 // hash mark distance from each sideline
)

// ErrOutOfBounds is returned when a spot is off the field.
var ErrOutOfBounds = errors.New("position out of bounds")

// Field is a regulation field with the ball spotted somewhere on it.
type Field struct {
	ballX, ballY float64
}

// NewField spots the ball at the 25, centered.
func NewField() *Field {
	return &Field{ballX: 25, ballY: FieldWidth / 2}
}

// InBounds reports whether (x, y) lies on the field, end zones included.
func (f *Field) InBounds(x, y float64) bool {
	return x >= 0 && x <= FieldLength && y >= 0 && y <= FieldWidth
}

// InEndZone reports whether x is past either goal line.
func (f *Field) InEndZone(x float64) bool {
	return x < EndZoneDepth || x > FieldLength-EndZoneDepth
}

// HashMarks returns the lateral positions of the left and right hashes.
func (f *Field) HashMarks() (float64, float64) {
	return HashInset, FieldWidth - HashInset
}

// SetBallPosition spots the ball.
func (f *Field) SetBallPosition(x, y float64) error {
	if !f.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "spot (%.2f, %.2f)", x, y)
	}
	f.ballX, f.ballY = x, y
	return nil
}

// BallPosition returns the spot of the ball.
func (f *Field) BallPosition() (float64, float64) {
	return f.ballX, f.ballY
}

func (f *Field) String() string {
	left, right := f.HashMarks()
	return fmt.Sprintf("Field: %.0f x %.1f yards, end zones %.0f deep, hashes at y=%.2f and y=%.2f, ball at (%.1f, %.1f)",
		FieldLength, FieldWidth, EndZoneDepth, left, right, f.ballX, f.ballY)
}
