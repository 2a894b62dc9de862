package chessground

import (
	"testing"

	"github.com/notnil/chess"
)

func TestPromotionSide(t *testing.T) {
	tests := []struct {
		dest chess.Square
		want chess.Color
	}{
		{chess.A8, chess.White},
		{chess.H8, chess.White},
		{chess.C6, chess.White},
		{chess.A1, chess.Black},
		{chess.H1, chess.Black},
		{chess.C5, chess.Black},
	}
	for _, tt := range tests {
		if got := promotionSide(tt.dest); got != tt.want {
			t.Errorf("promotionSide(%v) = %v, want %v", tt.dest, got, tt.want)
		}
	}
}

func TestPromotionRoleAtWhite(t *testing.T) {
	// White promotion on a8: roles run down the a-file from the top.
	tests := []struct {
		sq   chess.Square
		want chess.PieceType
	}{
		{chess.A8, chess.Queen},
		{chess.A7, chess.Rook},
		{chess.A6, chess.Bishop},
		{chess.A5, chess.Knight},
		{chess.A4, chess.King},
		{chess.A3, chess.Pawn},
		{chess.A2, chess.NoPieceType},
		{chess.A1, chess.NoPieceType},
		{chess.B8, chess.NoPieceType},
		{noSquare, chess.NoPieceType},
	}
	for _, tt := range tests {
		if got := promotionRoleAt(tt.sq, chess.A8); got != tt.want {
			t.Errorf("promotionRoleAt(%v, a8) = %v, want %v", tt.sq, got, tt.want)
		}
	}
}

func TestPromotionRoleAtBlack(t *testing.T) {
	// Black promotion on h1: roles run up the h-file from the bottom.
	tests := []struct {
		sq   chess.Square
		want chess.PieceType
	}{
		{chess.H1, chess.Queen},
		{chess.H2, chess.Rook},
		{chess.H3, chess.Bishop},
		{chess.H4, chess.Knight},
		{chess.H7, chess.NoPieceType},
	}
	for _, tt := range tests {
		if got := promotionRoleAt(tt.sq, chess.H1); got != tt.want {
			t.Errorf("promotionRoleAt(%v, h1) = %v, want %v", tt.sq, got, tt.want)
		}
	}
}

func TestPromotableHover(t *testing.T) {
	p := newPromotable()
	p.start(chess.A7, chess.A8)

	if !p.active || p.orig != chess.A7 || p.dest != chess.A8 {
		t.Fatal("start did not open the dialog")
	}
	if p.hover == nil || p.hover.square != chess.A8 {
		t.Fatal("destination should be hovered initially")
	}
	assertNear(t, "initial hover", p.hover.progress, 0)

	p.step(hoverDuration / 2)
	assertNear(t, "mid hover", p.hover.progress, 0.5)

	p.step(hoverDuration)
	assertNear(t, "finished hover", p.hover.progress, 1)
	if p.hover.tween != nil {
		t.Error("finished tween should be dropped")
	}
}

func TestPromotableMoveRestartsHover(t *testing.T) {
	p := newPromotable()
	p.start(chess.A7, chess.A8)
	p.step(hoverDuration)

	// The same square keeps the finished hover.
	p.move(chess.A8)
	assertNear(t, "same square hover", p.hover.progress, 1)

	// A different dialog square restarts the animation.
	p.move(chess.A6)
	if p.hover == nil || p.hover.square != chess.A6 {
		t.Fatal("hover did not follow the pointer")
	}
	assertNear(t, "restarted hover", p.hover.progress, 0)

	// Off the dialog file clears it.
	p.move(chess.C4)
	if p.hover != nil {
		t.Error("hover should clear off the dialog file")
	}
	p.move(noSquare)
	if p.hover != nil {
		t.Error("hover should stay clear off the board")
	}
}

func TestPromotablePressRole(t *testing.T) {
	pos := NewPos(promotionGame(t))
	ps := newPieces(pos.Board)
	p := newPromotable()
	p.start(chess.A7, chess.A8)

	var got *recordedMove
	consumed := p.press(chess.A5, pos, ps, func(orig, dest chess.Square, role chess.PieceType) {
		got = &recordedMove{orig, dest, role}
	})

	if !consumed {
		t.Error("a legal role press should be consumed")
	}
	want := recordedMove{chess.A7, chess.A8, chess.Knight}
	if got == nil || *got != want {
		t.Errorf("emitted %v, want %v", got, want)
	}
	if p.active {
		t.Error("dialog should close")
	}
}

func TestPromotablePressIllegalRoleCancels(t *testing.T) {
	// King is a dialog slot but not among the legal promotions here, so
	// pressing it cancels like any outside press.
	pos := NewPos(promotionGame(t))
	ps := newPieces(pos.Board)
	p := newPromotable()
	p.start(chess.A7, chess.A8)

	consumed := p.press(chess.A4, pos, ps, func(chess.Square, chess.Square, chess.PieceType) {
		t.Error("illegal role must not emit")
	})
	if consumed {
		t.Error("cancel press should fall through to other handlers")
	}
	if p.active {
		t.Error("dialog should close")
	}
}

func TestPromotableInactivePress(t *testing.T) {
	pos := NewPos(promotionGame(t))
	ps := newPieces(pos.Board)
	p := newPromotable()

	if p.press(chess.A8, pos, ps, nil) {
		t.Error("inactive dialog should ignore presses")
	}
}

func TestPromotableReconcile(t *testing.T) {
	p := newPromotable()
	p.start(chess.A7, chess.A8)

	// The same legals keep the dialog open.
	p.reconcile(NewPos(promotionGame(t)))
	if !p.active {
		t.Error("dialog should survive a position with the promotion still legal")
	}

	// A position without the promotion closes it.
	p.reconcile(NewPos(chess.NewGame()))
	if p.active {
		t.Error("dialog should close when the promotion is no longer legal")
	}
}

func TestPromotingHidesOrigin(t *testing.T) {
	p := newPromotable()
	if p.promoting(chess.A7) {
		t.Error("inactive dialog promotes nothing")
	}
	p.start(chess.A7, chess.A8)
	if !p.promoting(chess.A7) {
		t.Error("origin square should be promoting")
	}
	if p.promoting(chess.A8) {
		t.Error("destination square is not the hidden one")
	}
}

func TestLerpColor(t *testing.T) {
	a := Color{0, 0, 0, 0}
	b := Color{1, 0.5, 0.25, 1}
	mid := lerpColor(a, b, 0.5)
	assertNear(t, "R", mid.R, 0.5)
	assertNear(t, "G", mid.G, 0.25)
	assertNear(t, "B", mid.B, 0.125)
	assertNear(t, "A", mid.A, 0.5)
}
