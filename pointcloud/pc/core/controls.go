package core

// MoveIntent is the set of movement keys held during one frame.
type MoveIntent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
}

func (m MoveIntent) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right || m.Up || m.Down
}

// LookTracker turns absolute cursor positions into look deltas.
//
// After Reset the next event only records where the cursor is, so capturing
// the pointer never produces a jump. Vertical deltas are inverted: screen Y
// grows downwards, pitch grows upwards.
type LookTracker struct {
	lastX, lastY float64
	primed       bool
}

func (t *LookTracker) Reset() {
	t.primed = false
}

// Track returns the delta since the previous event. ok is false for the first
// event after Reset.
func (t *LookTracker) Track(x, y float64) (dx, dy float32, ok bool) {
	if !t.primed {
		t.lastX, t.lastY = x, y
		t.primed = true
		return 0, 0, false
	}
	dx = float32(x - t.lastX)
	dy = float32(t.lastY - y)
	t.lastX, t.lastY = x, y
	return dx, dy, true
}
