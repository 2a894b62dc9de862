package chessground

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
)

// pointerState tracks the physical pointer across frames. The button is
// captured at press time so a second button pressed mid-gesture cannot
// reroute the release.
type pointerState struct {
	down   bool
	button MouseButton
	lastX  float64
	lastY  float64
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Update. Injected events take priority over the
// real mouse so scripted interaction stays deterministic.
func (b *Board) processInput() {
	if b.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	b.processPointer(x, y, pressed, button, readModifiers())
}

// processPointer runs the pointer state machine for one sample of pointer
// state, in widget screen coordinates.
func (b *Board) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	st := &b.pointer

	switch {
	case pressed && !st.down:
		st.down = true
		st.button = button
		b.handlePress(x, y, button, mods)
	case !pressed && st.down:
		st.down = false
		b.handleRelease(x, y, st.button)
	default:
		if x != st.lastX || y != st.lastY {
			b.handleMove(x, y)
		}
	}

	st.lastX = x
	st.lastY = y
}

// handlePress routes a press in a fixed order: the promotion dialog gets
// first refusal; if it does not consume the press, selection and drag react
// to the left button and shape drawing to either button.
func (b *Board) handlePress(x, y float64, button MouseButton, mods KeyModifiers) {
	pos := b.boardPos(x, y)
	sq := squareAt(pos.X, pos.Y)

	if b.promotable.press(sq, b.pos, b.pieces, b.emitUserMove) {
		return
	}
	if button == MouseButtonLeft {
		b.pieces.selectionPress(sq, b.userMove)
		b.pieces.dragPress(sq, pos, Vec2{x, y})
	}
	b.drawable.press(sq, button, mods, b.emitShapesChanged)
}

func (b *Board) handleRelease(x, y float64, button MouseButton) {
	pos := b.boardPos(x, y)
	sq := squareAt(pos.X, pos.Y)

	if button == MouseButtonLeft {
		b.pieces.dragRelease(sq, b.userMove)
	}
	b.drawable.release(sq, b.emitShapesChanged)
}

func (b *Board) handleMove(x, y float64) {
	pos := b.boardPos(x, y)
	sq := squareAt(pos.X, pos.Y)

	b.promotable.move(sq)
	b.pieces.dragMove(pos, Vec2{x, y})
	b.drawable.move(sq)
}

// SquareAt converts widget screen coordinates to the square under them, or
// false when the point is on the border or outside the board.
func (b *Board) SquareAt(x, y float64) (chess.Square, bool) {
	pos := b.boardPos(x, y)
	sq := squareAt(pos.X, pos.Y)
	return sq, sq != noSquare
}
