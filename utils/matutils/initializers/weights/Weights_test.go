package weights

import (
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestLinearUVConstant(t *testing.T) {
	w := mat.NewVecDense(10, nil)
	NewLinearUV(NewConstantUV(0.1)).Initialize(w)

	for i := 0; i < w.Len(); i++ {
		if w.AtVec(i) != 0.1 {
			t.Errorf("weight %d: want 0.1, have %v", i, w.AtVec(i))
		}
	}

	NewLinearUV(NewZeroUV()).Initialize(w)
	if mat.Sum(w) != 0 {
		t.Errorf("zero initialization: want sum 0, have %v", mat.Sum(w))
	}
}

func TestLinearUVUniform(t *testing.T) {
	w := mat.NewVecDense(100, nil)
	rng := distuv.Uniform{Min: -0.5, Max: 0.5, Src: rand.NewSource(1)}
	NewLinearUV(rng).Initialize(w)

	for i := 0; i < w.Len(); i++ {
		if v := w.AtVec(i); v < -0.5 || v >= 0.5 {
			t.Errorf("weight %d: %v not in [-0.5, 0.5)", i, v)
		}
	}
}

func TestValues(t *testing.T) {
	values := []float64{1, 2, 3}
	init := NewValues(values)
	values[0] = 100 // Initializer must not alias its argument

	w := mat.NewVecDense(3, nil)
	init.Initialize(w)
	if !mat.Equal(w, mat.NewVecDense(3, []float64{1, 2, 3})) {
		t.Errorf("values: want [1 2 3], have %v", mat.Formatted(w.T()))
	}

	defer func() {
		if recover() == nil {
			t.Error("values: want panic on size mismatch")
		}
	}()
	init.Initialize(mat.NewVecDense(4, nil))
}
