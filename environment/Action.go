package environment

import "fmt"

// Action is a discrete driving action. Actions are enumerated in the
// canonical order Accelerate, Right, Left, Brake, which is also the
// order used to index action values.
type Action int

const (
	Accelerate Action = iota
	Right
	Left
	Brake
)

// NumActions is the number of available actions
const NumActions int = 4

// Actions returns all actions in canonical order
func Actions() []Action {
	return []Action{Accelerate, Right, Left, Brake}
}

// Valid returns whether the action is one of the canonical actions
func (a Action) Valid() bool {
	return a >= Accelerate && a <= Brake
}

func (a Action) String() string {
	switch a {
	case Accelerate:
		return "Accelerate"
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Brake:
		return "Brake"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}
