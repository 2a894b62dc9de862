package chessground

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
)

// Brush selects the color of a drawn shape. The brush is picked by the
// modifier keys held when the right button goes down: green with none, red
// with shift, blue with alt, yellow with shift+alt.
type Brush uint8

const (
	BrushGreen Brush = iota
	BrushRed
	BrushBlue
	BrushYellow

	numBrushes
)

func brushForModifiers(mods KeyModifiers) Brush {
	switch {
	case mods&ModShift != 0 && mods&ModAlt != 0:
		return BrushYellow
	case mods&ModAlt != 0:
		return BrushBlue
	case mods&ModShift != 0:
		return BrushRed
	default:
		return BrushGreen
	}
}

// Shape is a user annotation: a circle when Orig == Dest, an arrow from
// Orig to Dest otherwise.
type Shape struct {
	Orig  chess.Square
	Dest  chess.Square
	Brush Brush
}

// IsCircle reports whether the shape is a circle.
func (s Shape) IsCircle() bool { return s.Orig == s.Dest }

// IsArrow reports whether the shape is an arrow.
func (s Shape) IsArrow() bool { return s.Orig != s.Dest }

// drawable holds the committed shapes plus the one being drawn.
type drawable struct {
	drawing      *Shape
	shapes       []Shape
	enabled      bool
	eraseOnClick bool
}

func newDrawable() *drawable {
	return &drawable{enabled: true, eraseOnClick: true}
}

// press starts a shape on a right-button press, or erases everything on a
// left-button press when erase-on-click is on.
func (d *drawable) press(sq chess.Square, button MouseButton, mods KeyModifiers, changed func([]Shape)) {
	if !d.enabled {
		return
	}
	switch button {
	case MouseButtonLeft:
		if d.eraseOnClick && len(d.shapes) > 0 {
			d.shapes = nil
			changed(d.snapshot())
		}
	case MouseButtonRight:
		if sq != noSquare {
			d.drawing = &Shape{Orig: sq, Dest: sq, Brush: brushForModifiers(mods)}
		}
	}
}

// move retargets the shape being drawn; off the board it collapses back to
// a circle on its origin.
func (d *drawable) move(sq chess.Square) {
	if d.drawing == nil {
		return
	}
	if sq == noSquare {
		sq = d.drawing.Orig
	}
	d.drawing.Dest = sq
}

// release commits the shape. Drawing over an existing shape with the same
// endpoints removes it instead, whatever its brush, so a second gesture acts
// as an eraser.
func (d *drawable) release(sq chess.Square, changed func([]Shape)) {
	if d.drawing == nil {
		return
	}
	shape := *d.drawing
	d.drawing = nil
	if !d.enabled {
		return
	}
	if sq != noSquare {
		shape.Dest = sq
	} else {
		shape.Dest = shape.Orig
	}

	kept := d.shapes[:0]
	removed := false
	for _, s := range d.shapes {
		if s.Orig == shape.Orig && s.Dest == shape.Dest {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	d.shapes = kept
	if !removed {
		d.shapes = append(d.shapes, shape)
	}
	changed(d.snapshot())
}

func (d *drawable) snapshot() []Shape {
	out := make([]Shape, len(d.shapes))
	copy(out, d.shapes)
	return out
}

func (d *drawable) clear() {
	d.drawing = nil
	d.shapes = nil
}

// draw renders the committed shapes and then the in-progress one on top.
func (d *drawable) draw(dst *ebiten.Image, m [6]float64, theme *Theme) {
	for _, s := range d.shapes {
		drawShape(dst, m, theme, s)
	}
	if d.drawing != nil {
		drawShape(dst, m, theme, *d.drawing)
	}
}

func drawShape(dst *ebiten.Image, m [6]float64, theme *Theme, s Shape) {
	c := theme.Brushes[s.Brush%numBrushes]

	orig := squareCenter(s.Orig)
	dest := squareCenter(s.Dest)

	if s.IsCircle() {
		stroke := 0.05
		strokeCircle(dst, m, dest.X, dest.Y, 0.5*(1-stroke), stroke, c)
		return
	}

	const (
		markerSize = 0.75
		margin     = 0.1
		stroke     = 0.2
	)

	dx := dest.X - orig.X
	dy := dest.Y - orig.Y
	hypot := math.Hypot(dx, dy)

	shaft := Vec2{
		X: dest.X - dx*(markerSize+margin)/hypot,
		Y: dest.Y - dy*(markerSize+margin)/hypot,
	}
	head := Vec2{
		X: dest.X - dx*margin/hypot,
		Y: dest.Y - dy*margin/hypot,
	}

	// Shaft: a quad perpendicular to the direction of travel.
	nx := -dy / hypot * stroke / 2
	ny := dx / hypot * stroke / 2
	fillPoly(dst, m, []Vec2{
		{orig.X + nx, orig.Y + ny},
		{shaft.X + nx, shaft.Y + ny},
		{shaft.X - nx, shaft.Y - ny},
		{orig.X - nx, orig.Y - ny},
	}, c)

	// Head: a triangle half a marker wide on each side of the shaft end.
	fillPoly(dst, m, []Vec2{
		{shaft.X - dy*0.5*markerSize/hypot, shaft.Y + dx*0.5*markerSize/hypot},
		{head.X, head.Y},
		{shaft.X + dy*0.5*markerSize/hypot, shaft.Y - dx*0.5*markerSize/hypot},
	}, c)
}
