package chessground

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/notnil/chess"
	"golang.org/x/image/font/gofont/goregular"
)

// Board is a chessboard widget. It owns rendering, pointer interaction,
// piece animation, user annotations, and the promotion dialog, but no chess
// rules: the host supplies a Pos (placement plus hints) and receives user
// moves through OnUserMove without any legality judgement by the widget.
//
// The host embeds the Board in its ebiten game, calling Update once per
// tick and Draw once per frame:
//
//	func (g *game) Update() error { return g.board.Update() }
//	func (g *game) Draw(screen *ebiten.Image) { g.board.Draw(screen) }
type Board struct {
	// OnUserMove reports a completed move gesture. promo is NoPieceType
	// unless the gesture went through the promotion dialog. The widget does
	// not validate the move; the host decides whether to apply it and push
	// a new Pos back.
	OnUserMove func(orig, dest chess.Square, promo chess.PieceType)

	// OnShapesChanged reports every change to the annotation shapes.
	OnShapesChanged func(shapes []Shape)

	rect        Rect
	orientation chess.Color
	pos         Pos
	theme       Theme
	set         *PieceSet

	pieces     *pieces
	drawable   *drawable
	promotable *promotable

	pointer     pointerState
	injectQueue []pointerEvent
	script      *ScriptRunner

	coordSource *text.GoTextFaceSource
	drawErr     error
}

// New returns a board showing the standard starting position from white's
// side, with no hints until the host supplies a Pos.
func New() *Board {
	pos := EmptyPos()
	pos.Board = chess.NewGame().Position().Board()

	b := &Board{
		rect:        Rect{Width: 512, Height: 512},
		orientation: chess.White,
		pos:         pos,
		theme:       DefaultTheme(),
		set:         DefaultPieceSet(),
		pieces:      newPieces(pos.Board),
		drawable:    newDrawable(),
		promotable:  newPromotable(),
	}
	return b
}

// SetRect places the widget in screen coordinates. The board is scaled to
// the smaller dimension and centered.
func (b *Board) SetRect(x, y, w, h float64) {
	b.rect = Rect{X: x, Y: y, Width: w, Height: h}
}

// Rect returns the widget bounds.
func (b *Board) Rect() Rect { return b.rect }

// Orientation returns the color whose side faces the viewer.
func (b *Board) Orientation() chess.Color { return b.orientation }

// SetOrientation turns the board so c faces the viewer.
func (b *Board) SetOrientation(c chess.Color) {
	if c == chess.White || c == chess.Black {
		b.orientation = c
	}
}

// Flip turns the board around.
func (b *Board) Flip() {
	b.orientation = b.orientation.Other()
}

// SetPosition replaces the position configuration. The placement is diffed
// against the current one to animate moved pieces, and a pending promotion
// is cancelled if the new legal moves no longer allow it.
func (b *Board) SetPosition(pos Pos) {
	b.pieces.setBoard(pos.Board)
	b.promotable.reconcile(pos)
	b.pos = pos
}

// SetBoard replaces only the placement, clearing all hints and cancelling
// any pending promotion. Intended for editor-style hosts that move pieces
// freely without a game behind them.
func (b *Board) SetBoard(board *chess.Board) {
	b.pieces.setBoard(board)
	pos := EmptyPos()
	pos.Board = board
	b.pos = pos
	b.promotable.cancel()
}

// Position returns the current position configuration.
func (b *Board) Position() Pos { return b.pos }

// SetTheme replaces the color scheme.
func (b *Board) SetTheme(t Theme) { b.theme = t }

// SetPieceSet replaces the piece graphics.
func (b *Board) SetPieceSet(set *PieceSet) {
	if set != nil {
		b.set = set
	}
}

// SetDrawingEnabled controls whether right-button annotation drawing is
// active.
func (b *Board) SetDrawingEnabled(enabled bool) { b.drawable.enabled = enabled }

// SetEraseOnClick controls whether a left click clears all shapes.
func (b *Board) SetEraseOnClick(erase bool) { b.drawable.eraseOnClick = erase }

// Shapes returns a copy of the committed annotation shapes.
func (b *Board) Shapes() []Shape { return b.drawable.snapshot() }

// ClearShapes removes all annotation shapes without firing OnShapesChanged.
func (b *Board) ClearShapes() { b.drawable.clear() }

// Animating reports whether any figurine is mid-slide or mid-fade. Hosts
// driving engines can wait for the board to settle before moving.
func (b *Board) Animating() bool { return b.pieces.animating() }

// SelectedSquare returns the square selected for click-move, or false.
func (b *Board) SelectedSquare() (chess.Square, bool) {
	if b.pieces.selected == noSquare {
		return 0, false
	}
	return b.pieces.selected, true
}

// Update advances animation by one tick and processes pointer input. Call
// it from the host's ebiten Update.
func (b *Board) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	b.step(1 / float64(tps))
	if b.script != nil {
		b.script.step(b)
	}
	b.processInput()
	return b.drawErr
}

// step advances all animation clocks by dt seconds.
func (b *Board) step(dt float64) {
	b.pieces.step(dt)
	b.promotable.step(dt)
}

// transform returns the current board-space to screen-space matrix.
func (b *Board) transform() [6]float64 {
	m := boardTransform(b.rect.Width, b.rect.Height, b.orientation)
	return multiplyAffine(translation(b.rect.X, b.rect.Y), m)
}

// boardPos converts widget screen coordinates to board units.
func (b *Board) boardPos(x, y float64) Vec2 {
	bx, by := transformPoint(invertAffine(b.transform()), x, y)
	return Vec2{bx, by}
}

// unitPixels is the current screen size of one board unit.
func (b *Board) unitPixels() float64 {
	return math.Min(b.rect.Width, b.rect.Height) / boardUnits
}

// userMove routes a completed gesture. A move that the supplied legals say
// needs a promotion opens the dialog and emits later with the chosen role;
// everything else is reported as-is, legality unjudged.
func (b *Board) userMove(orig, dest chess.Square) {
	if orig == dest {
		return
	}
	if b.pos.validMove(orig, dest) && len(b.pos.legalPromotions(orig, dest)) > 0 {
		b.promotable.start(orig, dest)
		return
	}
	b.emitUserMove(orig, dest, chess.NoPieceType)
}

func (b *Board) emitUserMove(orig, dest chess.Square, promo chess.PieceType) {
	if b.OnUserMove != nil {
		b.OnUserMove(orig, dest, promo)
	}
}

func (b *Board) emitShapesChanged(shapes []Shape) {
	if b.OnShapesChanged != nil {
		b.OnShapesChanged(shapes)
	}
}

// renderContext bundles what every layer needs to draw itself.
type renderContext struct {
	dst         *ebiten.Image
	m           [6]float64
	theme       *Theme
	set         *PieceSet
	orientation chess.Color
	unit        float64
	onErr       func(error)
}

// drawPiece draws a piece upright (counter-rotated against the board
// orientation) centered at the board-space point, scaled to scale board
// units, at the given alpha.
func (rc *renderContext) drawPiece(piece chess.Piece, center Vec2, scale, alpha float64) {
	sizePx := int(math.Ceil(rc.unit))
	img, err := rc.set.Image(piece, sizePx)
	if err != nil {
		rc.onErr(err)
		return
	}

	angle := 0.0
	if rc.orientation == chess.Black {
		angle = math.Pi
	}

	local := translation(center.X, center.Y)
	local = multiplyAffine(local, rotationAbout(angle, 0, 0))
	local = multiplyAffine(local, scaling(scale))
	local = multiplyAffine(local, translation(-0.5, -0.5))
	local = multiplyAffine(local, scaling(1/float64(sizePx)))

	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(multiplyAffine(rc.m, local))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	rc.dst.DrawImage(img, op)
}

// Draw renders the widget onto screen. Layers follow a fixed order: board
// surface and hints first, then settled pieces, animating pieces, shapes,
// the dragged piece, and the promotion dialog on top.
func (b *Board) Draw(screen *ebiten.Image) {
	rc := &renderContext{
		dst:         screen,
		m:           b.transform(),
		theme:       &b.theme,
		set:         b.set,
		orientation: b.orientation,
		unit:        b.unitPixels(),
		onErr:       func(err error) { b.drawErr = err },
	}

	b.drawBorder(rc)
	b.drawTurn(rc)
	b.drawSquares(rc)
	b.drawLastMove(rc)
	b.drawCheck(rc)

	b.pieces.draw(rc, b.pos, b.promotable)
	b.drawable.draw(rc.dst, rc.m, rc.theme)
	b.pieces.drawDrag(rc, b.promotable)
	b.promotable.draw(rc, b.pos)
}

func (b *Board) drawBorder(rc *renderContext) {
	fillRect(rc.dst, rc.m, 0, 0, boardUnits, boardUnits, rc.theme.Border)

	for rank := 0; rank < 8; rank++ {
		glyph := chess.Rank(rank).String()
		b.drawCoord(rc, Vec2{0.25, 8 - float64(rank)}, glyph)
		b.drawCoord(rc, Vec2{8.75, 8 - float64(rank)}, glyph)
	}
	for file := 0; file < 8; file++ {
		glyph := chess.File(file).String()
		b.drawCoord(rc, Vec2{1 + float64(file), 0.25}, glyph)
		b.drawCoord(rc, Vec2{1 + float64(file), 8.75}, glyph)
	}
}

// drawCoord draws a border label upright at a board-space point, whatever
// the orientation.
func (b *Board) drawCoord(rc *renderContext, at Vec2, s string) {
	face := b.coordFace(0.2 * rc.unit)
	if face == nil {
		return
	}
	x, y := transformPoint(rc.m, at.X, at.Y)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(rc.theme.Coord.toRGBA())
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(rc.dst, s, face, op)
}

func (b *Board) coordFace(size float64) text.Face {
	if b.coordSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			b.drawErr = fmt.Errorf("chessground: load coordinate font: %w", err)
			return nil
		}
		b.coordSource = src
	}
	return &text.GoTextFace{Source: b.coordSource, Size: size}
}

// drawTurn draws the side-to-move dot in the border corner: white's corner
// at the bottom, black's at the top.
func (b *Board) drawTurn(rc *renderContext) {
	switch b.pos.Turn {
	case chess.White:
		fillCircle(rc.dst, rc.m, 8.75, 8.75, 0.1, Color{1, 1, 1, 1})
	case chess.Black:
		fillCircle(rc.dst, rc.m, 8.75, 0.25, 0.1, Color{0, 0, 0, 1})
	}
}

func (b *Board) drawSquares(rc *renderContext) {
	fillRect(rc.dst, rc.m, 0.5, 0.5, 8, 8, rc.theme.DarkSquare)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if (int(sq.File())+int(sq.Rank()))&1 == 1 {
			p := squareTopLeft(sq)
			fillRect(rc.dst, rc.m, p.X, p.Y, 1, 1, rc.theme.LightSquare)
		}
	}
}

func (b *Board) drawLastMove(rc *renderContext) {
	if b.pos.LastMoveOrig != noSquare {
		p := squareTopLeft(b.pos.LastMoveOrig)
		fillRect(rc.dst, rc.m, p.X, p.Y, 1, 1, rc.theme.LastMove)
	}
	if b.pos.LastMoveDest != noSquare && b.pos.LastMoveDest != b.pos.LastMoveOrig {
		p := squareTopLeft(b.pos.LastMoveDest)
		fillRect(rc.dst, rc.m, p.X, p.Y, 1, 1, rc.theme.LastMove)
	}
}

func (b *Board) drawCheck(rc *renderContext) {
	if b.pos.Check == noSquare {
		return
	}
	center := squareCenter(b.pos.Check)
	radius := math.Hypot(0.5, 0.5)
	fillRadialGradient(rc.dst, rc.m, center.X, center.Y, radius, []gradientStop{
		{offset: 0, color: rc.theme.Check},
		{offset: 0.25, color: rc.theme.CheckMid},
		{offset: 0.89, color: rc.theme.CheckOuter},
		{offset: 1, color: rc.theme.CheckOuter},
	})
}
