package chessground

import (
	"testing"

	"github.com/notnil/chess"
)

func TestBrushForModifiers(t *testing.T) {
	tests := []struct {
		mods KeyModifiers
		want Brush
	}{
		{0, BrushGreen},
		{ModShift, BrushRed},
		{ModAlt, BrushBlue},
		{ModShift | ModAlt, BrushYellow},
		{ModCtrl, BrushGreen},
		{ModShift | ModCtrl, BrushRed},
	}
	for _, tt := range tests {
		if got := brushForModifiers(tt.mods); got != tt.want {
			t.Errorf("brushForModifiers(%b) = %v, want %v", tt.mods, got, tt.want)
		}
	}
}

func TestDrawableCommit(t *testing.T) {
	d := newDrawable()
	var last []Shape
	changed := func(s []Shape) { last = s }

	d.press(chess.G1, MouseButtonRight, 0, changed)
	if d.drawing == nil || d.drawing.Orig != chess.G1 {
		t.Fatal("right press should start a shape")
	}
	d.move(chess.E3)
	d.move(chess.F3)
	d.release(chess.F3, changed)

	want := Shape{Orig: chess.G1, Dest: chess.F3, Brush: BrushGreen}
	if len(last) != 1 || last[0] != want {
		t.Errorf("shapes = %v, want [%v]", last, want)
	}
	if d.drawing != nil {
		t.Error("drawing should be cleared after release")
	}
}

func TestDrawableOffBoardCollapsesToCircle(t *testing.T) {
	d := newDrawable()
	changed := func([]Shape) {}

	d.press(chess.E4, MouseButtonRight, 0, changed)
	d.move(chess.F5)
	d.move(noSquare)
	if d.drawing.Dest != chess.E4 {
		t.Errorf("dest = %v, want collapse back to e4", d.drawing.Dest)
	}
	d.release(noSquare, changed)

	if len(d.shapes) != 1 || !d.shapes[0].IsCircle() {
		t.Errorf("shapes = %v, want a circle on e4", d.shapes)
	}
}

func TestDrawableToggleRemoves(t *testing.T) {
	d := newDrawable()
	changed := func([]Shape) {}

	d.press(chess.A1, MouseButtonRight, 0, changed)
	d.release(chess.H8, changed)
	d.press(chess.A1, MouseButtonRight, ModShift, changed)
	d.release(chess.H8, changed)

	if len(d.shapes) != 0 {
		t.Errorf("shapes = %v, want none after redrawing the same endpoints", d.shapes)
	}
}

func TestDrawableDisabled(t *testing.T) {
	d := newDrawable()
	d.enabled = false
	changed := func([]Shape) { t.Error("disabled drawable should not fire") }

	d.press(chess.E4, MouseButtonRight, 0, changed)
	if d.drawing != nil {
		t.Error("disabled drawable should not start a shape")
	}
	d.release(chess.E4, changed)
}

func TestDrawableEraseOnClickOff(t *testing.T) {
	d := newDrawable()
	changed := func([]Shape) {}
	d.press(chess.E4, MouseButtonRight, 0, changed)
	d.release(chess.E4, changed)

	d.eraseOnClick = false
	d.press(chess.A1, MouseButtonLeft, 0, changed)
	if len(d.shapes) != 1 {
		t.Errorf("shapes = %v, want the circle kept", d.shapes)
	}
}

func TestDrawableSnapshotIsACopy(t *testing.T) {
	d := newDrawable()
	changed := func([]Shape) {}
	d.press(chess.E4, MouseButtonRight, 0, changed)
	d.release(chess.E4, changed)

	snap := d.snapshot()
	snap[0].Brush = BrushYellow
	if d.shapes[0].Brush != BrushGreen {
		t.Error("mutating the snapshot must not touch the committed shapes")
	}
}
