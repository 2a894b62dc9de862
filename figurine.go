package chessground

import (
	"math"
	"sort"

	"github.com/notnil/chess"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// animateDuration is how long a figurine slides between squares, and how
// long a removed figurine takes to fade out, in seconds.
const animateDuration = 0.2

// dragDeadZoneUnits and dragDeadZonePixels are the minimum pointer travel
// before an armed drag becomes a real drag. Whichever threshold is crossed
// first wins, so the dead zone stays usable on both tiny and huge boards.
const (
	dragDeadZoneUnits  = 0.1
	dragDeadZonePixels = 4.0
)

// snapAfterDrag suppresses the slide animation for a figurine that was
// dropped within this many seconds: the piece is already under the pointer,
// so animating it to the square it was dropped on would look wrong.
const snapAfterDrag = 0.2

// figurine is one animated piece instance. Its logical home is square; pos
// is where it is actually drawn, which lags behind during slides and tracks
// the pointer during drags.
type figurine struct {
	piece  chess.Piece
	square chess.Square

	pos            Vec2
	tweenX, tweenY *gween.Tween

	fading    bool
	replaced  bool
	fadeTween *gween.Tween
	fade      float64 // eased 1 -> 0 while fading

	dragging  bool
	sinceDrag float64 // seconds since the last drag of this figurine ended
}

func newFigurine(piece chess.Piece, square chess.Square) *figurine {
	return &figurine{
		piece:     piece,
		square:    square,
		pos:       squareCenter(square),
		fade:      1,
		sinceDrag: 1e9,
	}
}

// animateTo slides the figurine from its current pos to dest.
func (f *figurine) animateTo(dest chess.Square) {
	f.square = dest
	end := squareCenter(dest)
	f.tweenX = gween.New(float32(f.pos.X), float32(end.X), animateDuration, ease.InOutCubic)
	f.tweenY = gween.New(float32(f.pos.Y), float32(end.Y), animateDuration, ease.InOutCubic)
}

// snapTo places the figurine on dest immediately.
func (f *figurine) snapTo(dest chess.Square) {
	f.square = dest
	f.pos = squareCenter(dest)
	f.tweenX = nil
	f.tweenY = nil
}

// startFading begins the fade-out. replaced halves the starting alpha so a
// captured piece does not fight visually with its captor.
func (f *figurine) startFading(replaced bool) {
	f.fading = true
	f.replaced = replaced
	f.fadeTween = gween.New(1, 0, animateDuration, ease.InOutCubic)
	f.fade = 1
}

func (f *figurine) step(dt float64) {
	f.sinceDrag += dt
	if f.tweenX != nil {
		x, doneX := f.tweenX.Update(float32(dt))
		y, _ := f.tweenY.Update(float32(dt))
		f.pos = Vec2{float64(x), float64(y)}
		if doneX {
			f.tweenX = nil
			f.tweenY = nil
		}
	}
	if f.fading && f.fadeTween != nil {
		v, done := f.fadeTween.Update(float32(dt))
		f.fade = float64(v)
		if done {
			f.fadeTween = nil
			f.fade = 0
		}
	}
}

func (f *figurine) animating() bool {
	return !f.dragging && (f.tweenX != nil || (f.fading && f.fade > 0))
}

// alpha is the figurine's draw alpha at its board position. A dragged
// figurine leaves a faint ghost on its origin square; the piece under the
// pointer is drawn separately at drag alpha.
func (f *figurine) alpha() float64 {
	if f.dragging {
		return 0.2
	}
	return f.dragAlpha()
}

// dragAlpha is the alpha without the ghost reduction.
func (f *figurine) dragAlpha() float64 {
	base := 1.0
	if f.fading && f.replaced {
		base = 0.5
	}
	if f.fading {
		return base * f.fade
	}
	return base
}

// dragArm is a press on an occupied square that may become a drag once the
// pointer leaves the dead zone.
type dragArm struct {
	square chess.Square
	pos    Vec2 // board units
	screen Vec2 // widget pixels
}

// pieces manages the figurines, the click-move selection, and the drag
// state machine.
type pieces struct {
	figurines []*figurine
	selected  chess.Square
	dragStart *dragArm
	dragPos   Vec2 // pointer in board units while a figurine is dragged
}

func newPieces(board *chess.Board) *pieces {
	ps := &pieces{selected: noSquare}
	if board != nil {
		for _, pl := range sortedPlacements(board) {
			ps.figurines = append(ps.figurines, newFigurine(pl.piece, pl.square))
		}
	}
	return ps
}

type placement struct {
	square chess.Square
	piece  chess.Piece
}

// sortedPlacements returns the board's pieces ordered by square, so diffing
// is deterministic even though SquareMap iteration is not.
func sortedPlacements(board *chess.Board) []placement {
	return sortedPlacementsOf(board.SquareMap())
}

// setBoard diffs the new placement against the current figurines. A removed
// piece is matched to the nearest appearing square holding the same piece
// and slides there; unmatched removals fade out; appearing pieces with no
// donor pop in without animation.
func (ps *pieces) setBoard(board *chess.Board) {
	// Drop figurines that finished fading.
	kept := ps.figurines[:0]
	for _, f := range ps.figurines {
		if !f.fading || f.fade > 0.0001 {
			kept = append(kept, f)
		}
	}
	ps.figurines = kept

	occupied := map[chess.Square]chess.Piece{}
	if board != nil {
		occupied = board.SquareMap()
	}

	var added []placement
	for _, pl := range sortedPlacementsOf(occupied) {
		f := ps.at(pl.square)
		if f == nil || f.piece != pl.piece {
			added = append(added, pl)
		}
	}

	for _, f := range ps.figurines {
		if f.fading {
			continue
		}
		if piece, ok := occupied[f.square]; ok && piece == f.piece {
			continue
		}

		// The figurine's square no longer holds it.
		best := -1
		bestDist := 0
		for i, pl := range added {
			if pl.piece != f.piece {
				continue
			}
			d := squareDistance(f.square, pl.square)
			if best < 0 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		if best >= 0 {
			dest := added[best].square
			added = append(added[:best], added[best+1:]...)
			if f.sinceDrag < snapAfterDrag {
				f.snapTo(dest)
			} else {
				f.animateTo(dest)
			}
		} else {
			_, nowOccupied := occupied[f.square]
			f.startFading(nowOccupied)
		}
	}

	for _, pl := range added {
		ps.figurines = append(ps.figurines, newFigurine(pl.piece, pl.square))
	}
}

func sortedPlacementsOf(m map[chess.Square]chess.Piece) []placement {
	pls := make([]placement, 0, len(m))
	for sq, piece := range m {
		pls = append(pls, placement{square: sq, piece: piece})
	}
	sort.Slice(pls, func(i, j int) bool { return pls[i].square < pls[j].square })
	return pls
}

// squareDistance is the king-move distance between two squares.
func squareDistance(a, b chess.Square) int {
	df := int(a.File()) - int(b.File())
	if df < 0 {
		df = -df
	}
	dr := int(a.Rank()) - int(b.Rank())
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// at returns the non-fading figurine on sq, or nil.
func (ps *pieces) at(sq chess.Square) *figurine {
	for _, f := range ps.figurines {
		if !f.fading && f.square == sq {
			return f
		}
	}
	return nil
}

// dragged returns the figurine currently under the pointer, or nil.
func (ps *pieces) dragged() *figurine {
	for _, f := range ps.figurines {
		if f.dragging {
			return f
		}
	}
	return nil
}

func (ps *pieces) step(dt float64) {
	for _, f := range ps.figurines {
		f.step(dt)
	}
}

func (ps *pieces) animating() bool {
	for _, f := range ps.figurines {
		if f.animating() {
			return true
		}
	}
	return false
}

// selectionPress implements click-move: the first press selects an occupied
// square, the second press reports the move and clears the selection.
// Pressing the selected square again just deselects.
func (ps *pieces) selectionPress(sq chess.Square, emit func(orig, dest chess.Square)) {
	orig := ps.selected
	ps.selected = noSquare

	if sq != noSquare && ps.at(sq) != nil {
		ps.selected = sq
	}
	if orig != noSquare && sq != noSquare {
		ps.selected = noSquare
		if orig != sq {
			emit(orig, sq)
		}
	}
}

// dragPress arms a potential drag on an occupied square.
func (ps *pieces) dragPress(sq chess.Square, pos, screen Vec2) {
	if sq != noSquare && ps.at(sq) != nil {
		ps.dragStart = &dragArm{square: sq, pos: pos, screen: screen}
	}
}

// dragMove promotes an armed drag once the pointer leaves the dead zone and
// keeps the dragged figurine under the pointer.
func (ps *pieces) dragMove(pos, screen Vec2) {
	if arm := ps.dragStart; arm != nil {
		du := math.Hypot(arm.pos.X-pos.X, arm.pos.Y-pos.Y)
		dp := math.Hypot(arm.screen.X-screen.X, arm.screen.Y-screen.Y)
		if du >= dragDeadZoneUnits || dp >= dragDeadZonePixels {
			if f := ps.at(arm.square); f != nil {
				f.dragging = true
			}
			ps.selected = arm.square
		}
	}

	if ps.dragged() != nil {
		ps.dragPos = pos
	}
}

// dragRelease ends a drag. The move is reported when the figurine was
// dropped on a different square; dropping it off the board or back on its
// own square snaps it home silently.
func (ps *pieces) dragRelease(sq chess.Square, emit func(orig, dest chess.Square)) {
	ps.dragStart = nil

	f := ps.dragged()
	if f == nil {
		return
	}

	dest := sq
	if dest == noSquare {
		dest = f.square
	}

	f.dragging = false
	f.sinceDrag = 0
	f.pos = squareCenter(f.square)
	f.tweenX = nil
	f.tweenY = nil

	if f.square == dest || f.fading {
		return
	}

	ps.selected = noSquare
	emit(f.square, dest)
}

// draw renders selection and hint highlights, then the figurines in three
// passes so fading pieces sit under settled ones and sliding pieces travel
// over everything else.
func (ps *pieces) draw(rc *renderContext, pos Pos, pm *promotable) {
	ps.drawSelection(rc, pos)
	ps.drawMoveHints(rc, pos)

	for _, f := range ps.figurines {
		if f.fading {
			f.draw(rc, pm)
		}
	}
	for _, f := range ps.figurines {
		if !f.fading && !f.animating() {
			f.draw(rc, pm)
		}
	}
	for _, f := range ps.figurines {
		if !f.fading && f.animating() {
			f.draw(rc, pm)
		}
	}
}

func (ps *pieces) drawSelection(rc *renderContext, pos Pos) {
	if ps.selected == noSquare {
		return
	}
	p := squareTopLeft(ps.selected)
	fillRect(rc.dst, rc.m, p.X, p.Y, 1, 1, rc.theme.Selected)

	if ps.dragged() == nil {
		return
	}
	hovered := squareAt(ps.dragPos.X, ps.dragPos.Y)
	if hovered != noSquare && pos.validMove(ps.selected, hovered) {
		p := squareTopLeft(hovered)
		fillRect(rc.dst, rc.m, p.X, p.Y, 1, 1, rc.theme.DragTarget)
	}
}

// drawMoveHints marks the legal destinations of the selected piece: a dot
// on empty squares, corner notches on occupied ones.
func (ps *pieces) drawMoveHints(rc *renderContext, pos Pos) {
	if ps.selected == noSquare {
		return
	}

	const radius = 0.12
	const corner = 1.8 * radius

	for _, sq := range pos.moveTargets(ps.selected) {
		if ps.at(sq) != nil {
			p := squareTopLeft(sq)
			fillPoly(rc.dst, rc.m, []Vec2{
				{p.X, p.Y}, {p.X + corner, p.Y}, {p.X, p.Y + corner},
			}, rc.theme.Hint)
			fillPoly(rc.dst, rc.m, []Vec2{
				{p.X + 1, p.Y}, {p.X + 1, p.Y + corner}, {p.X + 1 - corner, p.Y},
			}, rc.theme.Hint)
			fillPoly(rc.dst, rc.m, []Vec2{
				{p.X, p.Y + 1}, {p.X + corner, p.Y + 1}, {p.X, p.Y + 1 - corner},
			}, rc.theme.Hint)
			fillPoly(rc.dst, rc.m, []Vec2{
				{p.X + 1, p.Y + 1}, {p.X + 1 - corner, p.Y + 1}, {p.X + 1, p.Y + 1 - corner},
			}, rc.theme.Hint)
		} else {
			c := squareCenter(sq)
			fillCircle(rc.dst, rc.m, c.X, c.Y, radius, rc.theme.Hint)
		}
	}
}

// drawDrag renders the dragged piece under the pointer, above shapes.
func (ps *pieces) drawDrag(rc *renderContext, pm *promotable) {
	if f := ps.dragged(); f != nil && !pm.promoting(f.square) {
		rc.drawPiece(f.piece, ps.dragPos, 1, f.dragAlpha())
	}
}

func (f *figurine) draw(rc *renderContext, pm *promotable) {
	if pm.promoting(f.square) {
		return
	}
	rc.drawPiece(f.piece, f.pos, 1, f.alpha())
}
