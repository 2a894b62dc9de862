package chessground

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// circleSegments is the triangle-fan resolution for circles and rings.
const circleSegments = 48

// trisOpts are the shared options for solid-color triangle submission.
// Vertex colors are premultiplied by appendVertex.
var trisOpts = &ebiten.DrawTrianglesOptions{
	ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
}

// appendVertex transforms a board-space point by m and appends it with a
// premultiplied vertex color sampling the white pixel.
func appendVertex(verts []ebiten.Vertex, m [6]float64, x, y float64, c Color) []ebiten.Vertex {
	sx, sy := transformPoint(m, x, y)
	return append(verts, ebiten.Vertex{
		DstX:   float32(sx),
		DstY:   float32(sy),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	})
}

// fillPoly fills a convex polygon given in board space as a triangle fan.
func fillPoly(dst *ebiten.Image, m [6]float64, pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	verts := make([]ebiten.Vertex, 0, len(pts))
	for _, p := range pts {
		verts = appendVertex(verts, m, p.X, p.Y, c)
	}
	indices := make([]uint16, 0, (len(pts)-2)*3)
	for i := 2; i < len(pts); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	dst.DrawTriangles(verts, indices, WhitePixel, trisOpts)
}

// fillRect fills an axis-aligned board-space rectangle.
func fillRect(dst *ebiten.Image, m [6]float64, x, y, w, h float64, c Color) {
	fillPoly(dst, m, []Vec2{
		{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h},
	}, c)
}

// fillCircle fills a circle centered at (cx, cy) in board space.
func fillCircle(dst *ebiten.Image, m [6]float64, cx, cy, r float64, c Color) {
	pts := make([]Vec2, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts = append(pts, Vec2{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	fillPoly(dst, m, pts, c)
}

// strokeCircle strokes a circle with the given line width, centered on the
// radius like a cairo stroke.
func strokeCircle(dst *ebiten.Image, m [6]float64, cx, cy, r, width float64, c Color) {
	inner := r - width/2
	outer := r + width/2
	verts := make([]ebiten.Vertex, 0, (circleSegments+1)*2)
	indices := make([]uint16, 0, circleSegments*6)
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		sin, cos := math.Sincos(a)
		verts = appendVertex(verts, m, cx+inner*cos, cy+inner*sin, c)
		verts = appendVertex(verts, m, cx+outer*cos, cy+outer*sin, c)
		if i > 0 {
			base := uint16((i - 1) * 2)
			indices = append(indices,
				base, base+1, base+2,
				base+1, base+3, base+2)
		}
	}
	dst.DrawTriangles(verts, indices, WhitePixel, trisOpts)
}

// gradientStop pairs a radius fraction in [0, 1] with a color.
type gradientStop struct {
	offset float64
	color  Color
}

// fillRadialGradient fills a disc with a radial gradient interpolated
// linearly between stops. Stops must be ordered by offset; the final stop
// must sit at offset 1 (the disc edge).
func fillRadialGradient(dst *ebiten.Image, m [6]float64, cx, cy, r float64, stops []gradientStop) {
	if len(stops) < 2 {
		return
	}
	var verts []ebiten.Vertex
	var indices []uint16
	// Center disc out to the first ring.
	verts = appendVertex(verts, m, cx, cy, stops[0].color)
	ringStart := make([]uint16, len(stops))
	for s, stop := range stops {
		ringStart[s] = uint16(len(verts))
		rr := r * stop.offset
		for i := 0; i <= circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			verts = appendVertex(verts, m, cx+rr*math.Cos(a), cy+rr*math.Sin(a), stop.color)
		}
	}
	for i := 0; i < circleSegments; i++ {
		indices = append(indices, 0, ringStart[0]+uint16(i), ringStart[0]+uint16(i)+1)
	}
	for s := 1; s < len(stops); s++ {
		in, out := ringStart[s-1], ringStart[s]
		for i := 0; i < circleSegments; i++ {
			a := in + uint16(i)
			b := out + uint16(i)
			indices = append(indices,
				a, b, b+1,
				a, b+1, a+1)
		}
	}
	dst.DrawTriangles(verts, indices, WhitePixel, trisOpts)
}
