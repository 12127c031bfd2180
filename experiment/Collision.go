package experiment

import (
	"math"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

// CollisionDistance is the distance in pixels to the nearest car below
// which a collision may be declared
const CollisionDistance float64 = 18.0

// ForwardCone is the range of angles, in radians, in which the nearest
// car must lie for a collision to be declared. Angles are measured
// from the positive x-axis with screen y growing downwards, so cars
// ahead of the agent lie at angles in (0, π).
var ForwardCone = r1.Interval{Min: 0.1 * math.Pi, Max: 0.9 * math.Pi}

// ClosestCar returns the distance and angle from the agent's car to the
// nearest other car. If there are no other cars, ok is false.
func ClosestCar(cars environment.Cars) (dist, angle float64, ok bool) {
	if len(cars.Others) == 0 {
		return 0, 0, false
	}

	self := cars.Self.Position()
	dist = math.MaxFloat64
	for _, c := range cars.Others {
		other := c.Position()
		d := math.Hypot(other.X-self.X, other.Y-self.Y)
		if d < dist {
			dist = d
			angle = math.Atan2(self.Y-other.Y, other.X-self.X)
		}
	}
	return dist, angle, true
}

// Collision returns whether the agent's car has collided with the
// nearest car ahead of it
func Collision(cars environment.Cars) bool {
	dist, angle, ok := ClosestCar(cars)
	if !ok {
		return false
	}
	return dist < CollisionDistance &&
		floatutils.InOpenInterval(angle, ForwardCone)
}
