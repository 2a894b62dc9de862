package chessground

import (
	"encoding/json"
	"fmt"

	"github.com/notnil/chess"
)

// scriptStep is a single action in an interaction script. Squares are given
// in algebraic form ("e4"); the runner converts them to screen coordinates
// through the board's current transform, so scripts are independent of
// widget size and orientation.
type scriptStep struct {
	Action string `json:"action"`
	Square string `json:"square,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Brush  string `json:"brush,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON interaction script against a board, one step
// per Update, waiting for injected events to drain between steps. It powers
// scripted demos and headless interaction tests.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("chessground: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("chessground: parse script: no steps")
	}
	for _, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, err
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "click":
		_, err := parseSquare(st.Square)
		return err
	case "drag", "shape":
		if _, err := parseSquare(st.From); err != nil {
			return err
		}
		_, err := parseSquare(st.To)
		return err
	case "wait", "flip":
		return nil
	default:
		return fmt.Errorf("chessground: parse script: unknown action %q", st.Action)
	}
}

// SetScript attaches a script runner. The runner advances one step per
// Update; pass nil to detach.
func (b *Board) SetScript(runner *ScriptRunner) {
	b.script = runner
}

// Done reports whether all script steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the script by one Update.
func (r *ScriptRunner) step(b *Board) {
	if r.done {
		return
	}
	if len(b.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		if sq, err := parseSquare(st.Square); err == nil {
			x, y := b.squareScreenCenter(sq)
			b.InjectClick(x, y)
		}
	case "drag":
		r.injectSquareDrag(b, st, MouseButtonLeft, 0)
	case "shape":
		r.injectSquareDrag(b, st, MouseButtonRight, brushModifiers(st.Brush))
	case "flip":
		b.Flip()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this Update counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) injectSquareDrag(b *Board, st scriptStep, button MouseButton, mods KeyModifiers) {
	from, err := parseSquare(st.From)
	if err != nil {
		return
	}
	to, err := parseSquare(st.To)
	if err != nil {
		return
	}
	frames := st.Frames
	if frames < 4 {
		frames = 4
	}
	fx, fy := b.squareScreenCenter(from)
	tx, ty := b.squareScreenCenter(to)
	b.InjectDragWith(fx, fy, tx, ty, frames, button, mods)
}

// squareScreenCenter returns the screen position of a square's center under
// the current transform.
func (b *Board) squareScreenCenter(sq chess.Square) (float64, float64) {
	c := squareCenter(sq)
	return transformPoint(b.transform(), c.X, c.Y)
}

// parseSquare reads an algebraic square name like "e4".
func parseSquare(s string) (chess.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return noSquare, fmt.Errorf("chessground: parse script: bad square %q", s)
	}
	return newSquare(chess.File(s[0]-'a'), chess.Rank(s[1]-'1')), nil
}

// brushModifiers maps a script brush name to the modifier set that selects
// it, defaulting to green.
func brushModifiers(name string) KeyModifiers {
	switch name {
	case "red":
		return ModShift
	case "blue":
		return ModAlt
	case "yellow":
		return ModShift | ModAlt
	default:
		return 0
	}
}
