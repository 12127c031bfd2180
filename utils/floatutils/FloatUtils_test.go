package floatutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestInOpenInterval(t *testing.T) {
	cone := r1.Interval{Min: 0.1 * math.Pi, Max: 0.9 * math.Pi}

	tests := []struct {
		value float64
		want  bool
	}{
		{math.Pi / 2, true},
		{0.1 * math.Pi, false},
		{0.9 * math.Pi, false},
		{0, false},
		{-math.Pi / 2, false},
	}
	for _, test := range tests {
		if have := InOpenInterval(test.value, cone); have != test.want {
			t.Errorf("inOpenInterval(%v): want %v, have %v", test.value,
				test.want, have)
		}
	}
}
