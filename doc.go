// Package chessground is a chessboard widget for [Ebitengine].
//
// Chessground renders a board with pieces, lets the user move them by click
// or drag, animates position changes, draws circle and arrow annotations,
// and runs an integrated promotion dialog. It is chess rule agnostic: the
// widget never decides what is legal. The host hands it a [Pos] — placement
// plus legal moves, check, last move, and side to move — and gets completed
// gestures back through [Board.OnUserMove], unvalidated.
//
// # Quick start
//
// Embed a [Board] in an [ebiten.Game], forward Update and Draw, and apply
// user moves to your own game state:
//
//	game := chess.NewGame()
//	board := chessground.New()
//	board.SetRect(0, 0, 512, 512)
//	board.SetPosition(chessground.NewPos(game))
//
//	board.OnUserMove = func(orig, dest chess.Square, promo chess.PieceType) {
//		// Apply the move with your rules library, then push the
//		// resulting position back to the widget.
//		board.SetPosition(chessground.NewPos(game))
//	}
//
// [NewPos] derives all hints from a [github.com/notnil/chess] game; hosts
// with their own rules build a [Pos] by hand starting from [EmptyPos].
//
// # Interaction
//
// A left press selects an occupied square; a second press reports the move.
// Holding the button and moving past a small dead zone starts a drag
// instead, leaving a ghost of the piece on its origin square. Legal
// destinations of the selected piece are marked with dots, captures with
// corner notches. When the supplied legal moves say a gesture needs a
// promotion, a dialog opens down the destination file and the move is
// reported only once a role is chosen.
//
// Right-button drags draw arrows and circles; shift, alt, and shift+alt
// switch the brush color. [Board.OnShapesChanged] reports every change.
//
// # Testing and scripting
//
// Inject* methods queue synthetic pointer events that drain one per Update,
// so interactions can be driven headlessly. [ScriptRunner] replays a JSON
// script of clicks, drags, and shapes given in algebraic square names.
//
// [Ebitengine]: https://ebitengine.org
package chessground
