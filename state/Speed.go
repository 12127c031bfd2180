package state

import (
	"fmt"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/utils/intutils"
)

// Speed tracks the relative speed of the agent with respect to the
// traffic. Accelerating and braking change the speed by one unit per
// tick within [-speedRange, speedRange]. Steering leaves it unchanged.
type Speed struct {
	value      int
	speedRange int
}

// NewSpeed returns a new Speed at the minimum relative speed
func NewSpeed(speedRange int) *Speed {
	if speedRange <= 0 {
		panic("newSpeed: speed range must be positive")
	}
	return &Speed{-speedRange, speedRange}
}

// Value returns the current relative speed
func (s *Speed) Value() int {
	return s.value
}

// Set sets the relative speed, clamped to the speed range
func (s *Speed) Set(value int) {
	s.value = intutils.Clip(value, -s.speedRange, s.speedRange)
}

// Reset sets the speed to its minimum, which is the speed at the start
// of an episode
func (s *Speed) Reset() {
	s.value = -s.speedRange
}

// Crash sets the speed to its minimum after a collision
func (s *Speed) Crash() {
	s.value = -s.speedRange
}

// Apply updates the speed given the action taken on this tick
func (s *Speed) Apply(a environment.Action) error {
	switch a {
	case environment.Accelerate:
		s.value = intutils.Min(s.value+1, s.speedRange)
	case environment.Brake:
		s.value = intutils.Max(s.value-1, -s.speedRange)
	case environment.Left, environment.Right:
	default:
		return fmt.Errorf("apply: invalid action %v", a)
	}
	return nil
}
