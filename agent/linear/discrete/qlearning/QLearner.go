package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/enduro/agent/linear/value"
	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"github.com/samuelfneumann/enduro/timestep"
	"gonum.org/v1/gonum/mat"
)

// Approximator is a differentiable action-value function whose weights
// can be updated in place. A *value.Model is an Approximator.
type Approximator interface {
	Q(s state.State, a environment.Action) (float64, error)
	GradQ(s state.State, a environment.Action) (mat.Vector, error)
	MaxQs(s state.State) (float64, error)
	Weights() *mat.VecDense
}

// Decay describes a step decay of the learning rate: every Every ticks
// the learning rate is multiplied by Rate. An Every of 0 disables decay.
type Decay struct {
	Every int
	Rate  float64
}

// QLearner implements the TD(0) update functionality for the linear
// Q-Learning algorithm.
type QLearner struct {
	model        Approximator
	learningRate float64
	discount     float64
	decay        Decay
	ticks        int // Ticks over the whole run
}

// NewQLearner creates a new QLearner struct
//
// model is the action-value function to learn, whose weights are shared
// with the agent's policies
func NewQLearner(model Approximator, learningRate, discount float64,
	decay Decay) *QLearner {
	if model == nil {
		panic("newQLearner: model cannot be nil")
	}
	return &QLearner{
		model:        model,
		learningRate: learningRate,
		discount:     discount,
		decay:        decay,
	}
}

// TdError returns the TD error on a transition
func (q *QLearner) TdError(t timestep.Transition) (float64, error) {
	maxVal, err := q.model.MaxQs(t.NextState)
	if err != nil {
		return 0, fmt.Errorf("tdError: %w", err)
	}
	target := t.Reward + q.discount*maxVal

	currentEstimate, err := q.model.Q(t.State, t.Action)
	if err != nil {
		return 0, fmt.Errorf("tdError: %w", err)
	}
	return target - currentEstimate, nil
}

// Step updates the weights of the Agent's Learner and Policy
func (q *QLearner) Step(t timestep.Transition) error {
	tdError, err := q.TdError(t)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}

	grad, err := q.model.GradQ(t.State, t.Action)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}

	weights := q.model.Weights()
	if grad.Len() != weights.Len() {
		return fmt.Errorf("step: gradient has length %d but weights have "+
			"length %d: %w", grad.Len(), weights.Len(),
			value.ErrConfiguration)
	}

	// Perform gradient descent: ∇weights = scale * features
	scale := q.learningRate * tdError
	weights.AddScaledVec(weights, scale, grad)

	return nil
}

// Tick records that a tick of the run has elapsed and decays the
// learning rate every decay.Every ticks
func (q *QLearner) Tick() {
	q.ticks++
	if q.decay.Every > 0 && q.ticks%q.decay.Every == 0 {
		q.learningRate *= q.decay.Rate
	}
}

// Ticks returns the number of ticks recorded over the whole run
func (q *QLearner) Ticks() int {
	return q.ticks
}

// LearningRate returns the current learning rate
func (q *QLearner) LearningRate() float64 {
	return q.learningRate
}
