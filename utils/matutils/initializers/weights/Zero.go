package weights

// ZeroUV implements the distuv.Rander interface so that zero
// initialization can be accomplished thorugh the weight initialization
// structs which take a distuv.Rander argument
type ZeroUV struct{}

// NewZeroUV returns a new ZeroUV
func NewZeroUV() ZeroUV {
	return ZeroUV{}
}

// Rand draws a random number from the interval [0, 0]
func (z ZeroUV) Rand() float64 {
	return 0.0
}

// ConstantUV implements the distuv.Rander interface so that constant
// initialization can be accomplished through the weight initialization
// structs which take a distuv.Rander argument. Small positive constants
// give optimistic initial action values.
type ConstantUV struct {
	value float64
}

// NewConstantUV returns a new ConstantUV which always draws value
func NewConstantUV(value float64) ConstantUV {
	return ConstantUV{value}
}

// Rand draws a random number from the interval [value, value]
func (c ConstantUV) Rand() float64 {
	return c.value
}
