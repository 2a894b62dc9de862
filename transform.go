package chessground

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
)

// boardUnits is the side length of the board in local units: 8 squares plus
// a half-unit border on each side. All board-space geometry (squares, pieces,
// shapes) is expressed in these units and mapped to screen space by a single
// affine matrix per frame.
const boardUnits = 9.0

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// translation returns a pure translation matrix.
func translation(tx, ty float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, tx, ty}
}

// scaling returns a uniform scale matrix.
func scaling(s float64) [6]float64 {
	return [6]float64{s, 0, 0, s, 0, 0}
}

// rotationAbout returns a rotation matrix about the point (cx, cy).
func rotationAbout(angle, cx, cy float64) [6]float64 {
	sin, cos := math.Sincos(angle)
	return multiplyAffine(
		translation(cx, cy),
		multiplyAffine([6]float64{cos, sin, -sin, cos, 0, 0}, translation(-cx, -cy)),
	)
}

// boardTransform computes the board-space to screen-space matrix for a widget
// of the given pixel size and orientation. Board space spans boardUnits in
// each dimension; the matrix letterboxes the board into the widget and, for a
// black orientation, rotates it by pi about the board center.
func boardTransform(width, height float64, orientation chess.Color) [6]float64 {
	size := math.Min(width, height)
	m := multiplyAffine(
		translation((width-size)/2, (height-size)/2),
		scaling(size/boardUnits),
	)
	if orientation == chess.Black {
		m = multiplyAffine(m, rotationAbout(math.Pi, boardUnits/2, boardUnits/2))
	}
	return m
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// noSquare marks the absence of a square. notnil/chess numbers squares from
// A1 = 0, so any negative value is out of band.
const noSquare chess.Square = -1

// newSquare builds a square from zero-based file and rank indices.
func newSquare(file chess.File, rank chess.Rank) chess.Square {
	return chess.Square(int(rank)*8 + int(file))
}

// squareCenter returns the board-space center of a square. Rank 1 is at the
// bottom of board space; the half-unit border offsets everything by 0.5.
func squareCenter(sq chess.Square) Vec2 {
	p := squareTopLeft(sq)
	return Vec2{X: p.X + 0.5, Y: p.Y + 0.5}
}

// squareTopLeft returns the board-space top-left corner of a square.
func squareTopLeft(sq chess.Square) Vec2 {
	return Vec2{
		X: 0.5 + float64(sq.File()),
		Y: 0.5 + float64(7-int(sq.Rank())),
	}
}

// squareAt maps a board-space point to the square containing it, or noSquare
// if the point lies outside the 8x8 grid (including on the border).
func squareAt(x, y float64) chess.Square {
	file := int(math.Floor(x - 0.5))
	rank := 7 - int(math.Floor(y-0.5))
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return noSquare
	}
	return newSquare(chess.File(file), chess.Rank(rank))
}
