// Package state implements the compact state abstraction used by the
// driving agent, built from the perception of a single frame and the
// agent's relative speed.
package state

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/utils/intutils"
)

// NoOpponent is the opponent lane when no opponent is within the
// horizon rows
const NoOpponent int = -1

// SpeedRange bounds the relative speed to [-SpeedRange, SpeedRange]
const SpeedRange int = 50

// ErrPrecondition is returned when the perception breaks its contract,
// for example by not containing exactly one agent car in the horizon.
var ErrPrecondition = errors.New("perception precondition violated")

// State is the agent's view of the road on a single tick
type State struct {
	AgentLane     int
	OpponentLane  int
	RelativeSpeed int
}

func (s State) String() string {
	return fmt.Sprintf("State{agent: %d, opponent: %d, speed: %d}",
		s.AgentLane, s.OpponentLane, s.RelativeSpeed)
}

// Builder builds States from perceptions
type Builder struct {
	horizonRows int
	speedRange  int
}

// NewBuilder returns a Builder which looks at the first horizonRows rows
// of the occupancy grid and clamps speeds to [-speedRange, speedRange]
func NewBuilder(horizonRows, speedRange int) Builder {
	if horizonRows <= 0 {
		panic("newBuilder: horizon rows must be positive")
	}
	if speedRange <= 0 {
		panic("newBuilder: speed range must be positive")
	}
	return Builder{horizonRows, speedRange}
}

// DefaultBuilder returns a Builder with the standard horizon and speed
// range
func DefaultBuilder() Builder {
	return NewBuilder(environment.HorizonRows, SpeedRange)
}

// Build constructs the State for a perception and relative speed. The
// road and car boxes in the perception are not used.
//
// Build returns an error wrapping ErrPrecondition if the horizon rows
// of the grid do not contain exactly one Self cell.
func (b Builder) Build(p environment.Perception, speed int) (State, error) {
	horizon := p.Grid.Horizon(b.horizonRows)

	agent, err := agentLane(horizon)
	if err != nil {
		return State{}, err
	}

	return State{
		AgentLane:     agent,
		OpponentLane:  opponentLane(horizon),
		RelativeSpeed: intutils.Clip(speed, -b.speedRange, b.speedRange),
	}, nil
}

// agentLane returns the column of the single Self cell in the horizon
func agentLane(horizon environment.Grid) (int, error) {
	lane, found := NoOpponent, 0
	for _, row := range horizon {
		for col, cell := range row {
			if cell == environment.Self {
				lane = col
				found++
			}
		}
	}

	if found != 1 {
		return 0, fmt.Errorf("build: found %d agent cells in %d horizon "+
			"rows, want 1: %w", found, len(horizon), ErrPrecondition)
	}
	return lane, nil
}

// opponentLane returns the leftmost opponent column of the nearest row
// in the horizon which is occupied by an opponent
func opponentLane(horizon environment.Grid) int {
	for _, row := range horizon {
		occupancy := 0
		for _, cell := range row {
			// The agent's own cell does not count as occupied
			if cell != environment.Self {
				occupancy += cell
			}
		}
		if occupancy <= 0 {
			continue
		}

		for col, cell := range row {
			if cell == environment.Opponent {
				return col
			}
		}
		return NoOpponent
	}
	return NoOpponent
}
