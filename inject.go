package chessground

// pointerEvent is a single injected pointer sample in widget screen
// coordinates. The queue is drained one event per Update, exactly like real
// mouse sampling, so injected gestures exercise the same state machine.
type pointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	mods    KeyModifiers
}

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed on the next Update.
func (b *Board) InjectPress(x, y float64) {
	b.InjectPressWith(x, y, MouseButtonLeft, 0)
}

// InjectPressWith queues a press with an explicit button and modifier set.
func (b *Board) InjectPressWith(x, y float64, button MouseButton, mods KeyModifiers) {
	b.injectQueue = append(b.injectQueue, pointerEvent{
		x: x, y: y, pressed: true, button: button, mods: mods,
	})
}

// InjectMove queues a move with the button still held. Use between
// InjectPress and InjectRelease to simulate a drag.
func (b *Board) InjectMove(x, y float64) {
	b.InjectMoveWith(x, y, MouseButtonLeft, 0)
}

// InjectMoveWith queues a held move with an explicit button and modifiers.
func (b *Board) InjectMoveWith(x, y float64, button MouseButton, mods KeyModifiers) {
	b.injectQueue = append(b.injectQueue, pointerEvent{
		x: x, y: y, pressed: true, button: button, mods: mods,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (b *Board) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, pointerEvent{x: x, y: y})
}

// InjectHover queues an unpressed pointer move, for promotion dialog hover.
func (b *Board) InjectHover(x, y float64) {
	b.injectQueue = append(b.injectQueue, pointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two Updates.
func (b *Board) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated held moves, and release at (toX, toY). Minimum frames is 2.
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	b.InjectDragWith(fromX, fromY, toX, toY, frames, MouseButtonLeft, 0)
}

// InjectDragWith is InjectDrag with an explicit button and modifier set,
// which makes it double as a scripted shape-drawing gesture.
func (b *Board) InjectDragWith(fromX, fromY, toX, toY float64, frames int, button MouseButton, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	b.InjectPressWith(fromX, fromY, button, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		b.InjectMoveWith(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, button, mods)
	}
	b.InjectRelease(toX, toY)
}

// processInjectedInput pops one queued event and feeds it through the
// pointer state machine. Returns true if an event was consumed, in which
// case real mouse input is skipped this Update.
func (b *Board) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	b.processPointer(evt.x, evt.y, evt.pressed, evt.button, evt.mods)
	return true
}
