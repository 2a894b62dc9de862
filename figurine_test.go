package chessground

import (
	"testing"

	"github.com/notnil/chess"
)

// settle advances the figurines far past any running animation.
func settle(ps *pieces) {
	for i := 0; i < 60; i++ {
		ps.step(1.0 / 60)
	}
}

func boardFromFEN(t *testing.T, fen string) *chess.Board {
	t.Helper()
	opt, err := chess.FEN(fen + " w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	return chess.NewGame(opt).Position().Board()
}

func TestNewPiecesStartingBoard(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	if got := len(ps.figurines); got != 32 {
		t.Fatalf("len(figurines) = %d, want 32", got)
	}
	if f := ps.at(chess.E2); f == nil || f.piece != chess.WhitePawn {
		t.Errorf("at(e2) = %v, want white pawn", f)
	}
	if f := ps.at(chess.E4); f != nil {
		t.Errorf("at(e4) = %v, want nil", f)
	}
	if ps.selected != noSquare {
		t.Errorf("selected = %v, want noSquare", ps.selected)
	}
}

func TestSetBoardAnimatesMove(t *testing.T) {
	game := chess.NewGame()
	ps := newPieces(game.Position().Board())

	if err := game.MoveStr("e4"); err != nil {
		t.Fatal(err)
	}
	ps.setBoard(game.Position().Board())

	if got := len(ps.figurines); got != 32 {
		t.Fatalf("len(figurines) = %d, want 32", got)
	}
	f := ps.at(chess.E4)
	if f == nil || f.piece != chess.WhitePawn {
		t.Fatal("pawn did not move to e4")
	}
	if !f.animating() {
		t.Error("moved pawn should animate")
	}

	// It starts where it left and eases toward the new center.
	start := squareCenter(chess.E2)
	if f.pos != start {
		t.Errorf("pos = %v, want %v before stepping", f.pos, start)
	}
	settle(ps)
	end := squareCenter(chess.E4)
	assertNear(t, "settled x", f.pos.X, end.X)
	assertNear(t, "settled y", f.pos.Y, end.Y)
	if ps.animating() {
		t.Error("still animating after settling")
	}
}

func TestSetBoardFadesCapture(t *testing.T) {
	ps := newPieces(boardFromFEN(t, "8/8/8/8/8/8/3p4/3R4"))

	// The rook captures on d2.
	ps.setBoard(boardFromFEN(t, "8/8/8/8/8/8/3R4/8"))

	var fading *figurine
	for _, f := range ps.figurines {
		if f.fading {
			fading = f
		}
	}
	if fading == nil {
		t.Fatal("captured pawn should fade")
	}
	if fading.piece != chess.BlackPawn {
		t.Errorf("fading piece = %v, want black pawn", fading.piece)
	}
	if !fading.replaced {
		t.Error("captured piece should fade at replaced alpha")
	}
	assertNear(t, "initial fade alpha", fading.dragAlpha(), 0.5)

	settle(ps)
	if fading.fade != 0 {
		t.Errorf("fade = %v, want 0 after settling", fading.fade)
	}

	// The next diff prunes the finished fade.
	ps.setBoard(boardFromFEN(t, "8/8/8/8/8/8/3R4/8"))
	if got := len(ps.figurines); got != 1 {
		t.Errorf("len(figurines) = %d, want 1 after pruning", got)
	}
}

func TestSetBoardFadesRemoval(t *testing.T) {
	ps := newPieces(boardFromFEN(t, "8/8/8/8/8/8/8/3R4"))
	ps.setBoard(boardFromFEN(t, "8/8/8/8/8/8/8/8"))

	if got := len(ps.figurines); got != 1 {
		t.Fatalf("len(figurines) = %d, want 1", got)
	}
	f := ps.figurines[0]
	if !f.fading || f.replaced {
		t.Errorf("fading=%v replaced=%v, want fading at full alpha", f.fading, f.replaced)
	}
	assertNear(t, "initial fade alpha", f.dragAlpha(), 1)
}

func TestSetBoardAddsPiece(t *testing.T) {
	ps := newPieces(boardFromFEN(t, "8/8/8/8/8/8/8/8"))
	ps.setBoard(boardFromFEN(t, "8/8/8/4Q3/8/8/8/8"))

	f := ps.at(chess.E5)
	if f == nil || f.piece != chess.WhiteQueen {
		t.Fatal("queen did not appear")
	}
	if f.animating() {
		t.Error("appearing piece should pop in without animation")
	}
}

func TestSetBoardMatchesNearestPiece(t *testing.T) {
	// Two white knights; b1 disappears and d2 appears. The b1 knight is the
	// nearer donor, so it slides while g1 stays put.
	ps := newPieces(boardFromFEN(t, "8/8/8/8/8/8/8/1N4N1"))
	ps.setBoard(boardFromFEN(t, "8/8/8/8/8/8/3N4/6N1"))

	mover := ps.at(chess.D2)
	if mover == nil {
		t.Fatal("no knight on d2")
	}
	if !mover.animating() {
		t.Error("nearest knight should slide to d2")
	}
	if mover.pos != squareCenter(chess.B1) {
		t.Errorf("mover starts at %v, want b1 center", mover.pos)
	}
	if stay := ps.at(chess.G1); stay == nil || stay.animating() {
		t.Error("far knight should stay settled on g1")
	}
}

func TestSetBoardSnapsAfterDrag(t *testing.T) {
	ps := newPieces(boardFromFEN(t, "8/8/8/8/8/8/8/3R4"))
	f := ps.at(chess.D1)
	f.sinceDrag = 0

	ps.setBoard(boardFromFEN(t, "8/8/8/3R4/8/8/8/8"))
	if f.animating() {
		t.Error("recently dragged piece should snap, not slide")
	}
	if f.pos != squareCenter(chess.D5) {
		t.Errorf("pos = %v, want d5 center", f.pos)
	}
}

func TestSelectionPress(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	var moves []string
	emit := func(orig, dest chess.Square) {
		moves = append(moves, orig.String()+dest.String())
	}

	// Empty square selects nothing.
	ps.selectionPress(chess.E4, emit)
	if ps.selected != noSquare {
		t.Errorf("selected = %v after pressing empty square", ps.selected)
	}

	// Occupied square selects; second press reports the move.
	ps.selectionPress(chess.E2, emit)
	if ps.selected != chess.E2 {
		t.Fatalf("selected = %v, want e2", ps.selected)
	}
	ps.selectionPress(chess.E4, emit)
	if ps.selected != noSquare {
		t.Errorf("selected = %v after move, want noSquare", ps.selected)
	}
	if len(moves) != 1 || moves[0] != "e2e4" {
		t.Errorf("moves = %v, want [e2e4]", moves)
	}

	// Pressing the selected square again deselects without reporting.
	ps.selectionPress(chess.D2, emit)
	ps.selectionPress(chess.D2, emit)
	if ps.selected != noSquare {
		t.Errorf("selected = %v, want noSquare", ps.selected)
	}
	if len(moves) != 1 {
		t.Errorf("moves = %v, want no second move", moves)
	}
}

func TestDragDeadZone(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	start := squareCenter(chess.E2)
	ps.dragPress(chess.E2, start, Vec2{100, 100})

	// A wiggle inside both thresholds keeps the drag armed only.
	ps.dragMove(Vec2{start.X + 0.05, start.Y}, Vec2{102, 100})
	if ps.dragged() != nil {
		t.Fatal("dead-zone move should not start a drag")
	}

	// Crossing the unit threshold starts it.
	ps.dragMove(Vec2{start.X + 0.2, start.Y}, Vec2{103, 100})
	f := ps.dragged()
	if f == nil || f.square != chess.E2 {
		t.Fatal("drag did not start past the dead zone")
	}
	if ps.selected != chess.E2 {
		t.Errorf("selected = %v, want e2 while dragging", ps.selected)
	}
	if ps.dragPos != (Vec2{start.X + 0.2, start.Y}) {
		t.Errorf("dragPos = %v", ps.dragPos)
	}
}

func TestDragDeadZonePixels(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	start := squareCenter(chess.E2)
	ps.dragPress(chess.E2, start, Vec2{100, 100})

	// A huge board: tiny unit travel but enough pixels.
	ps.dragMove(Vec2{start.X + 0.01, start.Y}, Vec2{105, 100})
	if ps.dragged() == nil {
		t.Error("pixel threshold should start the drag")
	}
}

func TestDragRelease(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	var moves []string
	emit := func(orig, dest chess.Square) {
		moves = append(moves, orig.String()+dest.String())
	}

	start := squareCenter(chess.E2)
	ps.dragPress(chess.E2, start, Vec2{0, 0})
	ps.dragMove(squareCenter(chess.E4), Vec2{0, 100})
	ps.dragRelease(chess.E4, emit)

	if len(moves) != 1 || moves[0] != "e2e4" {
		t.Fatalf("moves = %v, want [e2e4]", moves)
	}
	f := ps.at(chess.E2)
	if f == nil {
		t.Fatal("figurine gone after release")
	}
	if f.dragging {
		t.Error("still dragging after release")
	}
	if f.pos != squareCenter(chess.E2) {
		t.Errorf("pos = %v, want back on e2 until the board updates", f.pos)
	}
	if f.sinceDrag != 0 {
		t.Errorf("sinceDrag = %v, want 0", f.sinceDrag)
	}
	if ps.selected != noSquare {
		t.Errorf("selected = %v, want noSquare", ps.selected)
	}
}

func TestDragReleaseOffBoard(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	emitted := false

	ps.dragPress(chess.E2, squareCenter(chess.E2), Vec2{0, 0})
	ps.dragMove(Vec2{-3, -3}, Vec2{-300, -300})
	ps.dragRelease(noSquare, func(orig, dest chess.Square) { emitted = true })

	if emitted {
		t.Error("off-board release should not report a move")
	}
	if f := ps.at(chess.E2); f == nil || f.pos != squareCenter(chess.E2) {
		t.Error("piece should snap back to e2")
	}
}

func TestDragReleaseSameSquare(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())
	emitted := false

	ps.dragPress(chess.E2, squareCenter(chess.E2), Vec2{0, 0})
	ps.dragMove(Vec2{squareCenter(chess.E2).X + 0.3, squareCenter(chess.E2).Y}, Vec2{30, 0})
	ps.dragRelease(chess.E2, func(orig, dest chess.Square) { emitted = true })

	if emitted {
		t.Error("dropping on the origin square should not report a move")
	}
}

func TestDragReleaseFadingPiece(t *testing.T) {
	ps := newPieces(chess.NewGame().Position().Board())

	// Drag the e2 pawn, then the host removes it from the board while the
	// drag is still in flight.
	start := squareCenter(chess.E2)
	ps.dragPress(chess.E2, start, Vec2{0, 0})
	ps.dragMove(squareCenter(chess.E4), Vec2{0, 100})
	if ps.dragged() == nil {
		t.Fatal("setup: drag did not start")
	}
	ps.setBoard(boardFromFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPP1PPP/RNBQKBNR"))

	f := ps.dragged()
	if f == nil || !f.fading {
		t.Fatal("setup: dragged pawn should be fading")
	}

	ps.dragRelease(chess.E4, func(orig, dest chess.Square) {
		t.Errorf("fading piece emitted %v%v", orig, dest)
	})
	if f.dragging {
		t.Error("drag should end")
	}
}

func TestFigurineGhostAlpha(t *testing.T) {
	f := newFigurine(chess.WhitePawn, chess.E2)
	assertNear(t, "settled alpha", f.alpha(), 1)
	f.dragging = true
	assertNear(t, "ghost alpha", f.alpha(), 0.2)
	assertNear(t, "drag alpha", f.dragAlpha(), 1)
}
