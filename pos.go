package chessground

import "github.com/notnil/chess"

// Pos is a complete position configuration: the piece placement plus the
// hints derived from it. The widget never computes legality itself; the host
// supplies LegalMoves and the widget only consults that list to filter
// gestures and draw hints.
type Pos struct {
	// Board is the piece placement. Nil means an empty board.
	Board *chess.Board

	// LegalMoves are the moves the side to move may play. The widget uses
	// them for move hints and promotion detection only; gestures are
	// reported to the host whether or not they match an entry.
	LegalMoves []*chess.Move

	// Check is the square of a king in check, or noSquare. The zero value
	// of chess.Square is A1, so build a Pos with NewPos or EmptyPos rather
	// than a struct literal.
	Check chess.Square

	// LastMoveOrig and LastMoveDest highlight the most recent move.
	LastMoveOrig chess.Square
	LastMoveDest chess.Square

	// Turn is the side to move, shown by the turn indicator on the border.
	// NoColor hides the indicator.
	Turn chess.Color
}

// EmptyPos returns a Pos with no board and no hints.
func EmptyPos() Pos {
	return Pos{
		Check:        noSquare,
		LastMoveOrig: noSquare,
		LastMoveDest: noSquare,
		Turn:         chess.NoColor,
	}
}

// NewPos derives a full position configuration from a game: placement, legal
// moves, side to move, last-move highlight, and the checked king if the last
// move gave check.
func NewPos(game *chess.Game) Pos {
	position := game.Position()
	p := EmptyPos()
	p.Board = position.Board()
	p.LegalMoves = game.ValidMoves()
	p.Turn = position.Turn()

	moves := game.Moves()
	if len(moves) > 0 {
		last := moves[len(moves)-1]
		p.LastMoveOrig = last.S1()
		p.LastMoveDest = last.S2()
		if last.HasTag(chess.Check) {
			p.Check = kingSquare(p.Board, p.Turn)
		}
	}
	return p
}

// WithCheck returns a copy with the checked king set to sq.
func (p Pos) WithCheck(sq chess.Square) Pos {
	p.Check = sq
	return p
}

// WithLastMove returns a copy with the last-move highlight set.
func (p Pos) WithLastMove(orig, dest chess.Square) Pos {
	p.LastMoveOrig = orig
	p.LastMoveDest = dest
	return p
}

// WithTurn returns a copy with the side to move set.
func (p Pos) WithTurn(c chess.Color) Pos {
	p.Turn = c
	return p
}

// validMove reports whether some legal move goes from orig to dest.
func (p Pos) validMove(orig, dest chess.Square) bool {
	for _, m := range p.LegalMoves {
		if m.S1() == orig && m.S2() == dest {
			return true
		}
	}
	return false
}

// legalMove returns the first legal move from orig to dest, or nil.
func (p Pos) legalMove(orig, dest chess.Square) *chess.Move {
	for _, m := range p.LegalMoves {
		if m.S1() == orig && m.S2() == dest {
			return m
		}
	}
	return nil
}

// moveTargets returns the destination squares of the legal moves leaving
// orig, deduplicated (promotions contribute one entry per destination).
func (p Pos) moveTargets(orig chess.Square) []chess.Square {
	var targets []chess.Square
	seen := make(map[chess.Square]bool)
	for _, m := range p.LegalMoves {
		if m.S1() == orig && !seen[m.S2()] {
			seen[m.S2()] = true
			targets = append(targets, m.S2())
		}
	}
	return targets
}

// legalPromotions returns the promotion piece types available for a move
// from orig to dest, in the order the dialog presents them.
func (p Pos) legalPromotions(orig, dest chess.Square) []chess.PieceType {
	var roles []chess.PieceType
	for _, m := range p.LegalMoves {
		if m.S1() == orig && m.S2() == dest && m.Promo() != chess.NoPieceType {
			roles = append(roles, m.Promo())
		}
	}
	return roles
}

// kingSquare finds the king of the given color, or noSquare.
func kingSquare(board *chess.Board, c chess.Color) chess.Square {
	if board == nil {
		return noSquare
	}
	for sq, piece := range board.SquareMap() {
		if piece.Type() == chess.King && piece.Color() == c {
			return sq
		}
	}
	return noSquare
}

// pieceOf combines a piece type and color into a chess.Piece.
func pieceOf(t chess.PieceType, c chess.Color) chess.Piece {
	if c == chess.Black {
		switch t {
		case chess.King:
			return chess.BlackKing
		case chess.Queen:
			return chess.BlackQueen
		case chess.Rook:
			return chess.BlackRook
		case chess.Bishop:
			return chess.BlackBishop
		case chess.Knight:
			return chess.BlackKnight
		case chess.Pawn:
			return chess.BlackPawn
		}
		return chess.NoPiece
	}
	switch t {
	case chess.King:
		return chess.WhiteKing
	case chess.Queen:
		return chess.WhiteQueen
	case chess.Rook:
		return chess.WhiteRook
	case chess.Bishop:
		return chess.WhiteBishop
	case chess.Knight:
		return chess.WhiteKnight
	case chess.Pawn:
		return chess.WhitePawn
	}
	return chess.NoPiece
}
