package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/diegok/gridiron/internal/game"
	"github.com/diegok/gridiron/internal/protocol"
)

const (
	BallChar     = '●'
	ShadowChar   = '·'
	TargetChar   = 'X'
	ReceiverChar = '@'
	ThrowerChar  = 'Q'
	HashChar     = '+'
	YardLineChar = '│'
)

var (
	groundBall = colorful.Color{R: 1, G: 1, B: 1}
	apexBall   = colorful.Color{R: 1, G: 0.84, B: 0}
)

// View is what the field screen shows for one tick.
type View struct {
	Header   protocol.Header
	Solution protocol.SolutionState
	Frame    protocol.Frame
	Apex     float64 // highest point of the flight, for the ball color ramp
	Paused   bool
	Replay   bool
}

// Renderer handles rendering all screens
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// viewport maps field yards to the cells between the top and bottom bars.
type viewport struct {
	w, h int
}

func (v viewport) cell(x, y float64) (int, int) {
	cx := int(math.Round(x / game.FieldLength * float64(v.w-1)))
	cy := 1 + int(math.Round(y/game.FieldWidth*float64(v.h-1)))
	return cx, cy
}

func (v viewport) contains(cx, cy int) bool {
	return cx >= 0 && cx < v.w && cy >= 1 && cy <= v.h
}

// BallColor ramps from white on the ground to yellow at the apex.
func BallColor(z, apex float64) tcell.Color {
	t := 0.0
	if apex > 0 {
		t = math.Max(0, math.Min(1, z/apex))
	}
	r, g, b := groundBall.BlendLab(apexBall, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// RenderPlay draws the field, the players, the target, and the ball.
func (r *Renderer) RenderPlay(v View) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	if screenW < 2 || screenH < 4 {
		r.screen.Show()
		return
	}
	vp := viewport{w: screenW, h: screenH - 2}

	r.renderField(vp)
	r.renderTitle(v)

	grass := tcell.StyleDefault.Background(GrassColor)

	target := v.Solution
	if tx, ty := vp.cell(target.TargetX, target.TargetY); vp.contains(tx, ty) {
		r.screen.SetCell(tx, ty, grass.Foreground(TargetColor).Bold(true), TargetChar)
	}

	thrower := v.Header.Thrower
	if qx, qy := vp.cell(thrower.X, thrower.Y); vp.contains(qx, qy) {
		r.screen.SetCell(qx, qy, grass.Foreground(ThrowerColor).Bold(true), ThrowerChar)
	}

	wr := v.Frame.Receiver
	if wx, wy := vp.cell(wr.X, wr.Y); vp.contains(wx, wy) {
		r.screen.SetCell(wx, wy, grass.Foreground(PlayerColor).Bold(true), ReceiverChar)
	}

	ball := v.Frame.Ball
	bx, by := vp.cell(ball.X, ball.Y)
	if vp.contains(bx, by) {
		// The top-down view can't show height, so the ball is drawn above
		// its shadow by its height in rows.
		lift := int(math.Round(ball.Z / game.FieldWidth * float64(vp.h-1)))
		if lift > 0 {
			r.screen.SetCell(bx, by, grass.Foreground(tcell.ColorBlack), ShadowChar)
		}
		ly := by - lift
		if ly < 1 {
			ly = 1
		}
		r.screen.SetCell(bx, ly, grass.Foreground(BallColor(ball.Z, v.Apex)), BallChar)
	}

	r.renderStatus(v, screenW, screenH-1)

	if v.Frame.Outcome.Over() {
		r.renderResult(v.Frame.Outcome, screenW, screenH)
	}

	r.screen.Show()
}

func (r *Renderer) renderField(vp viewport) {
	grass := tcell.StyleDefault.Background(GrassColor)
	r.screen.FillRect(0, 1, vp.w, vp.h, grass, ' ')

	endZone := tcell.StyleDefault.Background(EndZoneColor)
	left, _ := vp.cell(game.EndZoneDepth, 0)
	right, _ := vp.cell(game.FieldLength-game.EndZoneDepth, 0)
	r.screen.FillRect(0, 1, left, vp.h, endZone, ' ')
	r.screen.FillRect(right+1, 1, vp.w-right-1, vp.h, endZone, ' ')

	line := grass.Foreground(LineColor)
	for yard := game.EndZoneDepth; yard <= game.FieldLength-game.EndZoneDepth; yard += 10 {
		x, _ := vp.cell(yard, 0)
		r.screen.DrawVerticalLine(x, 1, vp.h, line, YardLineChar)
	}

	leftHash, rightHash := game.HashInset, game.FieldWidth-game.HashInset
	for yard := game.EndZoneDepth + 5; yard < game.FieldLength-game.EndZoneDepth; yard += 10 {
		for _, hy := range []float64{leftHash, rightHash} {
			x, y := vp.cell(yard, hy)
			if vp.contains(x, y) {
				r.screen.SetCell(x, y, line, HashChar)
			}
		}
	}
}

func (r *Renderer) renderTitle(v View) {
	h := v.Header
	s := v.Solution
	title := fmt.Sprintf(" %s → %s  %.2f yd/s at %.1f°  target (%.1f, %.1f) in %.2fs ",
		h.Thrower.Name, h.Receiver.Name, s.Total, s.AngleDeg, s.TargetX, s.TargetY, s.Time)
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true)
	r.screen.DrawCentered(0, title, style)
}

func (r *Renderer) renderStatus(v View, screenW, y int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	for x := 0; x < screenW; x++ {
		r.screen.SetCell(x, y, style, ' ')
	}

	f := v.Frame
	mode := ""
	switch {
	case v.Paused:
		mode = " | PAUSED (n step)"
	case v.Replay:
		mode = " | REPLAY"
	}
	status := fmt.Sprintf(" t=%.2fs tick %d | ball (%.1f, %.1f) h=%.2f | %s%s | space pause, r restart, q quit",
		f.T, f.Tick, f.Ball.X, f.Ball.Y, f.Ball.Z, f.Outcome, mode)
	r.screen.DrawText(0, y, status, style)
}

func (r *Renderer) renderResult(o protocol.Outcome, screenW, screenH int) {
	var (
		text  string
		color tcell.Color
	)
	switch o {
	case protocol.OutcomeCaught:
		text, color = "CAUGHT!", tcell.ColorGreen
	case protocol.OutcomeOutOfBounds:
		text, color = "OUT OF BOUNDS", tcell.ColorYellow
	default:
		text, color = "INCOMPLETE", tcell.ColorRed
	}

	boxW, boxH := 30, 5
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2
	fill := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.FillRect(boxX+1, boxY+1, boxW-2, boxH-2, fill, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, fill.Foreground(tcell.ColorWhite))
	r.screen.DrawCentered(boxY+1, text, fill.Foreground(color).Bold(true))
	r.screen.DrawCentered(boxY+3, "r to throw again", fill.Foreground(tcell.ColorGray))
}

// RenderError displays an error screen
func (r *Renderer) RenderError(err string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed)
	r.screen.DrawCentered(screenH/2-2, "ERROR", titleStyle)

	maxErrLen := screenW - 4
	errMsg := []rune(err)
	if maxErrLen > 3 && len(errMsg) > maxErrLen {
		errMsg = append(errMsg[:maxErrLen-3], []rune("...")...)
	}
	r.screen.DrawCentered(screenH/2, string(errMsg), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	r.screen.DrawCentered(screenH/2+3, "Press any key to quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
