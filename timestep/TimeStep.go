// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single tick of the control loop
type TimeStep struct {
	StepType
	Episode   int     // 1-based episode index
	Number    int     // Ticks elapsed in the episode
	Total     int     // Ticks elapsed over the whole run
	Reward    float64 // Reward for the action taken on this tick
	Speed     int     // Relative speed after the tick
	Collision bool    // Whether a collision was detected on this tick
}

// New returns a new TimeStep
func New(t StepType, episode, number, total int, reward float64) TimeStep {
	return TimeStep{StepType: t, Episode: episode, Number: number,
		Total: total, Reward: reward}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Episode: %v  |  Reward:  %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Episode, t.Reward, t.Number)
}

// Transition is a single (s, a, r, s') transition, built and consumed
// within one tick
type Transition struct {
	State     state.State
	Action    environment.Action
	Reward    float64
	NextState state.State
}

// NewTransition returns a new Transition
func NewTransition(s state.State, a environment.Action, r float64,
	next state.State) Transition {
	return Transition{s, a, r, next}
}
