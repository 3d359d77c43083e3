package game

// Status is the lifecycle state of a game.
// Transitions are one-directional: Created → Started → Ended. Ended is
// absorbing; there are no other transitions.
type Status string

const (
	StatusCreated Status = "CREATED"
	StatusStarted Status = "STARTED"
	StatusEnded   Status = "ENDED"
)

// CanTransitionTo reports whether moving from s to next is a legal transition
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusCreated:
		return next == StatusStarted
	case StatusStarted:
		return next == StatusEnded
	default:
		return false
	}
}
