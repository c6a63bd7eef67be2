package game

import (
	"fmt"

	"github.com/diegok/gridiron/internal/physics"
)

// Attributes are the physical traits of a player.
type Attributes struct {
	Speed        float64 // top speed, yd/s
	Strength     int     // 0-100
	Height       float64 // inches
	Weight       int     // pounds
	Route        int
	Agility      int
	Acceleration int
}

func (a Attributes) String() string {
	return fmt.Sprintf("Speed: %.1f yds/s, Strength: %d, Height: %.1f in, Weight: %d lbs, Agility: %d, Acceleration: %d",
		a.Speed, a.Strength, a.Height, a.Weight, a.Agility, a.Acceleration)
}

// Player is someone on the field. VX/VY is the current running velocity.
type Player struct {
	Name        string
	Role        string // QB, WR, ...
	Team        string
	X, Y        float64
	HandsHeight float64 // release height for a passer, catch height for a receiver
	VX, VY      float64
	Attributes  Attributes
}

// NewPlayer places a player at (x, y).
func NewPlayer(name, role, team string, x, y float64) *Player {
	return &Player{Name: name, Role: role, Team: team, X: x, Y: y}
}

// MoveTo places the player at an exact spot.
func (p *Player) MoveTo(x, y float64) {
	p.X = x
	p.Y = y
}

// MoveBy shifts the player by an offset.
func (p *Player) MoveBy(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// Advance runs the player at their velocity for dt seconds.
func (p *Player) Advance(dt float64) {
	p.MoveBy(p.VX*dt, p.VY*dt)
}

// Position returns the player's hands as a field point.
func (p *Player) Position() physics.Point3 {
	return physics.Point3{X: p.X, Y: p.Y, Z: p.HandsHeight}
}

// Velocity returns the player's running velocity.
func (p *Player) Velocity() physics.Velocity2 {
	return physics.Velocity2{VX: p.VX, VY: p.VY}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s, %s) at (%.1f, %.1f)", p.Name, p.Role, p.Team, p.X, p.Y)
}
