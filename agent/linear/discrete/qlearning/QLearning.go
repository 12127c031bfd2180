// Package qlearning implements the linear Q-Learning algorithm for the
// driving agent.
//
// The agent estimates action values with a linear function of
// hand-crafted features, explores with an ε-softmax policy, and updates
// its weights online with the TD(0) rule after every tick.
package qlearning

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/enduro/agent"
	"github.com/samuelfneumann/enduro/agent/linear/discrete/policy"
	"github.com/samuelfneumann/enduro/agent/linear/value"
	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"github.com/samuelfneumann/enduro/timestep"
	"github.com/samuelfneumann/enduro/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	learner   *QLearner
	behaviour *policy.EpsilonSoftmax
	target    *policy.Greedy
	model     *value.Model
	builder   state.Builder
	eval      bool

	state     state.State
	nextState state.State
	action    environment.Action
	reward    float64

	totalReward float64
	log         agent.EpisodeLog
	logged      bool // Whether the current episode has been logged

	callback agent.Callback
	seed     uint64
}

// New creates a new QLearning struct. Weights are initialized with
// init.
func New(c Config, init weights.Initializer, seed uint64) (*QLearning,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	w := mat.NewVecDense(value.NumFeatures+1, nil)
	init.Initialize(w)

	// Ensure both policies and learner reference the same weights
	model, err := value.NewModel(w)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	behaviour := policy.NewEpsilonSoftmax(c.Epsilon, seed, model)
	learner := NewQLearner(model, c.LearningRate, c.Discount,
		Decay{c.DecayEvery, c.DecayRate})

	return &QLearning{
		learner:   learner,
		behaviour: behaviour,
		target:    behaviour.Greedy,
		model:     model,
		builder:   state.DefaultBuilder(),
		seed:      seed,
	}, nil
}

// SetCallback sets the telemetry function called at the end of every
// tick
func (q *QLearning) SetCallback(c agent.Callback) {
	q.callback = c
}

// Eval sets the agent to evaluation mode, selecting actions greedily
func (q *QLearning) Eval() { q.eval = true }

// Train sets the agent to training mode, selecting actions with the
// ε-softmax behaviour policy
func (q *QLearning) Train() { q.eval = false }

// IsEval indicates if the agent is in evaluation mode
func (q *QLearning) IsEval() bool { return q.eval }

// Initialise logs the previous episode, resets the episodic return, and
// constructs the initial state of the new episode
func (q *QLearning) Initialise(p environment.Perception, speed int) error {
	if !q.logged {
		q.log.Append(q.totalReward, q.model.Snapshot())
	}
	q.logged = false
	q.totalReward = 0

	next, err := q.builder.Build(p, speed)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	q.nextState = next
	return nil
}

// Act selects an action in the current state, executes it, and records
// the reward
func (q *QLearning) Act(m agent.Mover) error {
	q.state = q.nextState

	var p agent.Policy = q.behaviour
	if q.eval {
		p = q.target
	}
	action, err := p.SelectAction(q.state)
	if err != nil {
		return fmt.Errorf("act: %w", err)
	}
	q.action = action

	reward, err := m.Move(action)
	if err != nil {
		return fmt.Errorf("act: %w", err)
	}
	q.reward = reward
	q.totalReward += reward

	return nil
}

// Sense constructs the next state from the latest perception
func (q *QLearning) Sense(p environment.Perception, speed int) error {
	next, err := q.builder.Build(p, speed)
	if err != nil {
		return fmt.Errorf("sense: %w", err)
	}
	q.nextState = next
	return nil
}

// Learn updates the weights using the latest (s, a, r, s') transition
func (q *QLearning) Learn() error {
	t := timestep.NewTransition(q.state, q.action, q.reward, q.nextState)
	if err := q.learner.Step(t); err != nil {
		return fmt.Errorf("learn: %w", err)
	}
	return nil
}

// Callback decays the learning rate on the run's tick schedule and
// forwards the tick to the telemetry function, if one is set
func (q *QLearning) Callback(learn bool, episode, tick int) {
	q.learner.Tick()
	if q.callback != nil {
		q.callback(learn, episode, tick)
	}
}

// Finish logs the final episode of a run
func (q *QLearning) Finish() {
	if !q.logged {
		q.log.Append(q.totalReward, q.model.Snapshot())
		q.logged = true
	}
}

// TotalReward returns the total reward of the current episode
func (q *QLearning) TotalReward() float64 {
	return q.totalReward
}

// Log returns the episode log. The first entry holds the initial
// weights.
func (q *QLearning) Log() agent.EpisodeLog {
	return q.log
}

// Weights returns a copy of the current weights
func (q *QLearning) Weights() []float64 {
	return q.model.Snapshot()
}

// LearningRate returns the current learning rate
func (q *QLearning) LearningRate() float64 {
	return q.learner.LearningRate()
}

// Epsilon returns the probability of exploring with the softmax
// behaviour policy
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// Save saves the current weights to disk
func (q *QLearning) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open weights file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(q.model.Snapshot()); err != nil {
		return fmt.Errorf("save: could not encode weights: %v", err)
	}
	return nil
}

// LoadWeights loads weights saved by Save
func LoadWeights(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadWeights: could not open weights file: "+
			"%v", err)
	}
	defer file.Close()

	var w []float64
	if err = gob.NewDecoder(file).Decode(&w); err != nil {
		return nil, fmt.Errorf("loadWeights: could not decode weights: %v",
			err)
	}
	if len(w) != value.NumFeatures+1 {
		return nil, fmt.Errorf("loadWeights: have %d weights, want %d: %w",
			len(w), value.NumFeatures+1, value.ErrConfiguration)
	}
	return w, nil
}
