package core

// FrameClock turns timestamps from a monotonic clock (seconds) into frame
// deltas and a frames-per-second count over one-second windows.
type FrameClock struct {
	Time float64
	Dt   float64

	frames int
	window float64
	FPS    int
}

func NewFrameClock(now float64) *FrameClock {
	return &FrameClock{Time: now}
}

// Tick advances the clock to now. It returns true when a one-second window
// closed, in which case FPS holds the frame count of that window.
func (c *FrameClock) Tick(now float64) bool {
	c.Dt = now - c.Time
	if c.Dt < 0 {
		c.Dt = 0
	}
	c.Time = now

	c.frames++
	c.window += c.Dt
	if c.window >= 1.0 {
		c.FPS = c.frames
		c.frames = 0
		c.window = 0
		return true
	}
	return false
}
