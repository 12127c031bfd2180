// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"github.com/samuelfneumann/enduro/timestep"
)

// Agent determines the implementation details of a driving agent.
//
// The control loop calls Initialise at the start of each episode and
// then, on every tick: Act, Sense, Learn (only when learning), and
// Callback, in that order.
type Agent interface {
	// Initialise is called at the beginning of an episode with the
	// initial perception, and constructs the initial state
	Initialise(p environment.Perception, speed int) error

	// Act selects an action in the current state and executes it
	// through the Mover, recording the obtained reward
	Act(m Mover) error

	// Sense constructs the next state from the latest perception
	Sense(p environment.Perception, speed int) error

	// Learn updates the agent from the latest (s, a, r, s') transition
	Learn() error

	// Callback is called at the end of every tick for reporting
	Callback(learn bool, episode, tick int)
}

// Finisher is an Agent that must be notified when the last episode of
// a run has ended
type Finisher interface {
	Agent
	Finish()
}

// Mover executes actions in the environment. The control loop is the
// Mover of its agent: it applies the action to the relative speed and
// steps the environment.
type Mover interface {
	Move(a environment.Action) (float64, error)
}

// Learner implements a learning algorithm that defines how weights are
// updated.
//
// The Learner and Policy of an Agent should have pointers to the same
// weights so that any changes the learner makes to the weights are
// reflected in the actions the Policy chooses.
type Learner interface {
	// Step performs a single update to the learner
	Step(t timestep.Transition) error

	// TdError returns the TD error on a transition
	TdError(t timestep.Transition) (float64, error)
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions.
type Policy interface {
	SelectAction(s state.State) (environment.Action, error)
}

// Callback is a telemetry function called once per tick with whether
// the agent is learning, the 1-based episode index, and the number of
// ticks elapsed in the episode
type Callback func(learn bool, episode, tick int)
