// Package floatutils provides utilities for working with floats
package floatutils

import (
	"gonum.org/v1/gonum/spatial/r1"
)

// InOpenInterval returns whether value lies strictly inside the
// interval, excluding both end points
func InOpenInterval(value float64, interval r1.Interval) bool {
	return interval.Min < value && value < interval.Max
}
