package gesture

// State is the gesture state of a Controller.
type State int

const (
	StateIdle     State = iota // No pointer down
	StateDragging              // Single pointer drag
	StatePinching              // Two-finger pinch
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StatePinching:
		return "pinching"
	default:
		return "unknown"
	}
}
