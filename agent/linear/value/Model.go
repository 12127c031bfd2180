package value

import (
	"fmt"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"github.com/samuelfneumann/enduro/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Model is a linear action-value function Q(s, a) = wᵀx(s, a), where
// x(s, a) is given by Features. The Model owns its weights. Policies
// and learners hold a pointer to the same Model so that any update to
// the weights is reflected in the actions the policies choose.
type Model struct {
	weights *mat.VecDense
}

// NewModel returns a new Model using weights as its weight vector. The
// weights are not copied.
func NewModel(weights *mat.VecDense) (*Model, error) {
	if weights == nil {
		return nil, fmt.Errorf("newModel: nil weights: %w", ErrConfiguration)
	}
	if weights.Len() != NumFeatures+1 {
		return nil, fmt.Errorf("newModel: weights have length %d, want %d: "+
			"%w", weights.Len(), NumFeatures+1, ErrConfiguration)
	}
	return &Model{weights}, nil
}

// Weights returns the weights of the model
func (m *Model) Weights() *mat.VecDense {
	return m.weights
}

// Snapshot returns a copy of the current weights
func (m *Model) Snapshot() []float64 {
	return mat.Col(nil, 0, m.weights)
}

// Q returns the value of taking action a in state s
func (m *Model) Q(s state.State, a environment.Action) (float64, error) {
	features, err := Features(s, a)
	if err != nil {
		return 0, err
	}
	if features.Len() != m.weights.Len() {
		return 0, fmt.Errorf("q: %d features but %d weights: %w",
			features.Len(), m.weights.Len(), ErrConfiguration)
	}
	return mat.Dot(features, m.weights), nil
}

// GradQ returns the gradient of Q(s, a) with respect to the weights,
// which are the features of (s, a) since the model is linear
func (m *Model) GradQ(s state.State, a environment.Action) (mat.Vector,
	error) {
	return Features(s, a)
}

// Qs returns the values of all actions in state s, in canonical action
// order
func (m *Model) Qs(s state.State) (*mat.VecDense, error) {
	values := mat.NewVecDense(environment.NumActions, nil)
	for i, a := range environment.Actions() {
		q, err := m.Q(s, a)
		if err != nil {
			return nil, err
		}
		values.SetVec(i, q)
	}
	return values, nil
}

// MaxQs returns the maximum action value in state s
func (m *Model) MaxQs(s state.State) (float64, error) {
	values, err := m.Qs(s)
	if err != nil {
		return 0, err
	}
	return mat.Max(values), nil
}

// ArgmaxQs returns the action with the highest value in state s. Ties
// are broken in favour of the action which comes first in canonical
// order.
func (m *Model) ArgmaxQs(s state.State) (environment.Action, error) {
	values, err := m.Qs(s)
	if err != nil {
		return 0, err
	}
	return environment.Actions()[matutils.MaxVec(values)], nil
}
