// Package value implements linear action-value functions over a fixed
// set of hand-crafted driving features.
package value

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"github.com/samuelfneumann/enduro/utils/intutils"
	"gonum.org/v1/gonum/mat"
)

const (
	// NumFeatures is the number of features, excluding the bias
	NumFeatures int = 9

	// FastSpeed and SlowSpeed are the relative speeds at or beyond which
	// the agent is considered to be driving fast or slow
	FastSpeed int = 40
	SlowSpeed int = -40

	// CollisionLanes is the lane distance below which an opponent is a
	// potential collision
	CollisionLanes int = 3

	// Lanes at the left and right edges of the road, beyond which the
	// agent should steer back towards the centre
	LeftEdge  int = 4
	RightEdge int = 5
)

// ErrConfiguration is returned for upstream programming errors, such as
// weights of the wrong length or invalid actions
var ErrConfiguration = errors.New("configuration error")

// Features returns the feature vector of a state-action pair. The
// vector has NumFeatures+1 elements, the last of which is a bias unit.
func Features(s state.State, a environment.Action) (*mat.VecDense, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("features: invalid action %v: %w", a,
			ErrConfiguration)
	}
	f := mat.NewVecDense(NumFeatures+1, nil)

	// Driving fast or slow
	if s.RelativeSpeed >= FastSpeed {
		f.SetVec(0, 1)
	}
	if s.RelativeSpeed <= SlowSpeed {
		f.SetVec(1, 1)
	}

	collision := s.OpponentLane != state.NoOpponent &&
		intutils.Abs(s.AgentLane-s.OpponentLane) < CollisionLanes
	if collision {
		f.SetVec(2, -1)
	} else {
		f.SetVec(2, 1)
	}

	// Steer away from an opponent on the right, on the left, or ahead
	if collision && s.OpponentLane > s.AgentLane {
		f.SetVec(3, sign(a == environment.Left))
	}
	if collision && s.OpponentLane < s.AgentLane {
		f.SetVec(4, sign(a == environment.Right))
	}
	if collision && s.OpponentLane == s.AgentLane {
		f.SetVec(5, sign(a == environment.Left || a == environment.Right))
	}

	// Keep accelerating on a clear road
	if !collision {
		f.SetVec(6, sign(a == environment.Accelerate))
	}

	// Move back towards the centre from either edge
	if s.AgentLane < LeftEdge {
		f.SetVec(7, sign(a == environment.Right))
	}
	if s.AgentLane > RightEdge {
		f.SetVec(8, sign(a == environment.Left))
	}

	f.SetVec(NumFeatures, 1)
	return f, nil
}

func sign(b bool) float64 {
	if b {
		return 1
	}
	return -1
}
