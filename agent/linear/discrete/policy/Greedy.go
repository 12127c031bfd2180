// Package policy implements policies using linear function
// approximation
package policy

import (
	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"gonum.org/v1/gonum/mat"
)

// ActionValuer computes the action values of a state. A *value.Model is
// an ActionValuer.
type ActionValuer interface {
	Qs(s state.State) (*mat.VecDense, error)
	ArgmaxQs(s state.State) (environment.Action, error)
}

// Greedy implements a greedy policy using linear function approximation
type Greedy struct {
	model ActionValuer
}

// NewGreedy creates a new Greedy policy
func NewGreedy(model ActionValuer) *Greedy {
	if model == nil {
		panic("newGreedy: model cannot be nil")
	}
	return &Greedy{model}
}

// SelectAction selects the action with the highest value, breaking ties
// in favour of the first action in canonical order
func (p *Greedy) SelectAction(s state.State) (environment.Action, error) {
	return p.model.ArgmaxQs(s)
}
