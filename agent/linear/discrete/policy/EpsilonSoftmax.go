package policy

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EpsilonSoftmax implements an ε-softmax policy using linear function
// approximation. With probability ε, an action is sampled from the
// softmax distribution over action values, so that exploration favours
// actions of higher value. Otherwise the greedy action is taken.
type EpsilonSoftmax struct {
	*Greedy
	model   ActionValuer
	epsilon float64
	rng     *rand.Rand
	seed    rand.Source // Seed for random number generation
}

// NewEpsilonSoftmax constructs a new EpsilonSoftmax policy, where
// e=epsilon is the probability with which an action is sampled from the
// softmax distribution
func NewEpsilonSoftmax(e float64, seed uint64,
	model ActionValuer) *EpsilonSoftmax {
	if e < 0 || e > 1 {
		panic(fmt.Sprintf("newEpsilonSoftmax: epsilon must be in [0, 1], "+
			"have %v", e))
	}

	source := rand.NewSource(seed)
	return &EpsilonSoftmax{
		Greedy:  NewGreedy(model),
		model:   model,
		epsilon: e,
		rng:     rand.New(source),
		seed:    source,
	}
}

// Epsilon returns the probability of sampling from the softmax
func (p *EpsilonSoftmax) Epsilon() float64 {
	return p.epsilon
}

// SelectAction selects an action from the ε-softmax policy
func (p *EpsilonSoftmax) SelectAction(s state.State) (environment.Action,
	error) {
	if p.rng.Float64() >= p.epsilon {
		return p.Greedy.SelectAction(s)
	}

	actionValues, err := p.model.Qs(s)
	if err != nil {
		return 0, err
	}
	probs := Softmax(actionValues)

	// Construct a categorical distribution over actions using action
	// probabilities
	dist := distuv.NewCategorical(probs, p.seed)

	return environment.Actions()[int(dist.Rand())], nil
}

// Softmax returns the softmax distribution, with temperature 1, over a
// vector of action values. The maximum value is subtracted before
// exponentiating, which leaves the distribution unchanged.
func Softmax(actionValues mat.Vector) []float64 {
	probs := mat.Col(nil, 0, actionValues)
	max := floats.Max(probs)
	for i := range probs {
		probs[i] = math.Exp(probs[i] - max)
	}
	floats.Scale(1/floats.Sum(probs), probs)

	return probs
}
