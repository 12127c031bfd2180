package weights

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LinearUV initializes a single linear layer of weights, drawn from
// a univariate distribution
type LinearUV struct {
	distuv.Rander
}

// NewLinearUV  creates and returns a new LinearUV
func NewLinearUV(rand distuv.Rander) LinearUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return LinearUV{rand}
}

// Initialize initializes a vector of weights using values drawn from
// a univariate distribution
func (l LinearUV) Initialize(weights *mat.VecDense) {
	if weights == nil {
		return
	}

	for i := 0; i < weights.Len(); i++ {
		weights.SetVec(i, l.Rand())
	}
}

// Values initializes weights by copying a fixed set of values, such as
// weights restored from a checkpoint
type Values []float64

// NewValues returns a new Values initializer
func NewValues(values []float64) Values {
	v := make(Values, len(values))
	copy(v, values)
	return v
}

// Initialize copies the values into the weights. It panics if the
// number of values differs from the number of weights.
func (v Values) Initialize(weights *mat.VecDense) {
	if weights == nil {
		return
	}
	if weights.Len() != len(v) {
		panic(fmt.Sprintf("incorrect size \n\twant: %d \n\thave: %d",
			weights.Len(), len(v)))
	}

	for i := range v {
		weights.SetVec(i, v[i])
	}
}
