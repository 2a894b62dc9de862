package chessground

import (
	"math"

	"github.com/notnil/chess"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// promotionRoles is the order the dialog offers, top to bottom from the
// promoting side's point of view. King and pawn are listed for variant
// hosts; they are skipped unless the legal-move list carries them.
var promotionRoles = [6]chess.PieceType{
	chess.Queen,
	chess.Rook,
	chess.Bishop,
	chess.Knight,
	chess.King,
	chess.Pawn,
}

// hoverDuration is how long the hovered choice takes to grow and tint fully.
const hoverDuration = 1.0

type promotionHover struct {
	square   chess.Square
	tween    *gween.Tween
	progress float64
}

// promotable runs the promotion dialog. While a promotion is pending the
// board dims, the origin figurine hides, and the dialog lists the legal
// promotion roles down the destination file.
type promotable struct {
	active bool
	orig   chess.Square
	dest   chess.Square
	hover  *promotionHover
}

func newPromotable() *promotable {
	return &promotable{}
}

// start opens the dialog for a move from orig to dest. The destination is
// hovered initially since the pointer is still there.
func (p *promotable) start(orig, dest chess.Square) {
	p.active = true
	p.orig = orig
	p.dest = dest
	p.hover = newPromotionHover(dest)
}

func newPromotionHover(sq chess.Square) *promotionHover {
	return &promotionHover{
		square: sq,
		tween:  gween.New(0, 1, hoverDuration, ease.InOutCubic),
	}
}

// cancel closes the dialog without a choice.
func (p *promotable) cancel() {
	p.active = false
	p.hover = nil
}

// promoting reports whether the dialog is open for a move leaving orig.
// Figurine drawing consults this to hide the pawn under the dialog.
func (p *promotable) promoting(orig chess.Square) bool {
	return p.active && p.orig == orig
}

// promotionSide is the promoting color, inferred from the destination rank
// the way a rule-agnostic widget must: promotions land on the far rank.
func promotionSide(dest chess.Square) chess.Color {
	if dest.Rank() > chess.Rank5 {
		return chess.White
	}
	return chess.Black
}

// promotionRoleRank is the rank on which dialog slot offset is drawn.
func promotionRoleRank(side chess.Color, offset int) chess.Rank {
	if side == chess.White {
		return chess.Rank(7 - offset)
	}
	return chess.Rank(offset)
}

// promotionRoleAt maps a square to the dialog slot drawn there for a
// promotion landing on dest, or NoPieceType.
func promotionRoleAt(sq, dest chess.Square) chess.PieceType {
	if sq == noSquare || sq.File() != dest.File() {
		return chess.NoPieceType
	}
	side := promotionSide(dest)
	for offset, role := range promotionRoles {
		if sq.Rank() == promotionRoleRank(side, offset) {
			return role
		}
	}
	return chess.NoPieceType
}

func (p *promotable) step(dt float64) {
	if p.hover != nil && p.hover.tween != nil {
		v, done := p.hover.tween.Update(float32(dt))
		p.hover.progress = float64(v)
		if done {
			p.hover.tween = nil
			p.hover.progress = 1
		}
	}
}

// move restarts the hover animation when the pointer moves to a different
// square in the dialog's file, and clears it off the file.
func (p *promotable) move(sq chess.Square) {
	if !p.active {
		return
	}
	var prev chess.Square = noSquare
	if p.hover != nil {
		prev = p.hover.square
	}
	next := noSquare
	if sq != noSquare && sq.File() == p.dest.File() {
		next = sq
	}
	if next == prev {
		return
	}
	if next == noSquare {
		p.hover = nil
	} else {
		p.hover = newPromotionHover(next)
	}
}

// press resolves the dialog. A press on a legal role square completes the
// user move and returns true to stop further press handling; any other
// press cancels, sliding the pawn back from the destination to its origin,
// and lets the press fall through to selection and drawing.
func (p *promotable) press(sq chess.Square, pos Pos, ps *pieces, emit func(orig, dest chess.Square, role chess.PieceType)) bool {
	if !p.active {
		return false
	}
	orig, dest := p.orig, p.dest
	p.cancel()

	if f := ps.at(orig); f != nil {
		f.pos = squareCenter(dest)
		f.animateTo(orig)
	}

	if role := promotionRoleAt(sq, dest); role != chess.NoPieceType {
		if legalPromotion(pos, orig, dest, role) {
			emit(orig, dest, role)
			return true
		}
	}
	return false
}

func legalPromotion(pos Pos, orig, dest chess.Square, role chess.PieceType) bool {
	for _, r := range pos.legalPromotions(orig, dest) {
		if r == role {
			return true
		}
	}
	return false
}

// reconcile closes the dialog when a new legal-move list no longer allows
// the pending promotion, which happens when the host advanced the game some
// other way while the dialog was open.
func (p *promotable) reconcile(pos Pos) {
	if !p.active {
		return
	}
	if len(pos.legalPromotions(p.orig, p.dest)) == 0 {
		p.cancel()
	}
}

// draw renders the dim layer and the dialog.
func (p *promotable) draw(rc *renderContext, pos Pos) {
	if !p.active {
		return
	}

	// Dim the playing surface, not the border.
	fillRect(rc.dst, rc.m, 0.5, 0.5, 8, 8, rc.theme.PromotionDim)

	maxRadius := math.Hypot(0.5, 0.5)
	side := promotionSide(p.dest)

	for offset, role := range promotionRoles {
		if !legalPromotion(pos, p.orig, p.dest, role) {
			continue
		}

		rank := promotionRoleRank(side, offset)
		sq := newSquare(p.dest.File(), rank)
		center := squareCenter(sq)
		topLeft := squareTopLeft(sq)

		// Field background keeps the board's checker parity.
		field := rc.theme.PromotionDarkField
		if (int(p.dest.File())+int(rank))&1 == 1 {
			field = rc.theme.PromotionLightField
		}
		fillRect(rc.dst, rc.m, topLeft.X, topLeft.Y, 1, 1, field)

		radius := 0.5
		ring := rc.theme.PromotionRing
		if p.hover != nil && p.hover.square.Rank() == rank {
			t := p.hover.progress
			radius = lerp(0.5, maxRadius, t)
			ring = lerpColor(rc.theme.PromotionRing, rc.theme.PromotionRingHover, t)
		}
		fillCircle(rc.dst, rc.m, center.X, center.Y, radius, ring)

		scale := math.Sqrt2 * radius
		rc.drawPiece(pieceOf(role, side), center, scale, 1)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}
