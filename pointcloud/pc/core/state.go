package core

// LoopState is the lifecycle of the frame loop.
type LoopState int

const (
	Running LoopState = iota
	ShuttingDown
	Stopped
)

func (s LoopState) String() string {
	switch s {
	case Running:
		return "Running"
	case ShuttingDown:
		return "ShuttingDown"
	case Stopped:
		return "Stopped"
	}
	return "Unknown"
}
