// Package lanes implements a seeded, scrolling multi-lane road on which
// the agent races against opponent cars. The simulator is both an
// environment.Adapter and an environment.Extractor, producing
// perceptions directly rather than from emulator frames.
//
// The agent's car always sits in row 0 of the occupancy grid, and rows
// with higher indices lie further ahead. Opponents drive at a constant
// speed, so they scroll towards the agent when the agent's relative
// speed is positive and away from it when negative. Each opponent the
// agent overtakes is worth +1 reward, and each opponent that overtakes
// the agent is worth -1.
package lanes

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/state"
	"github.com/samuelfneumann/enduro/utils/intutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// StartLane is the lane of the agent's car at the start of an episode
	StartLane int = 4

	// ScrollDivisor converts relative speed to rows scrolled per tick
	ScrollDivisor float64 = 100.0

	// CrashRows is the distance in rows ahead of the agent at which an
	// opponent in the agent's lane causes a crash
	CrashRows float64 = 1.125
)

// Config configures a Lanes simulator
type Config struct {
	Rows             int     // Rows in the occupancy grid
	SpawnProbability float64 // Probability of an opponent spawning each tick
}

// DefaultConfig returns the default simulator configuration
func DefaultConfig() Config {
	return Config{Rows: 12, SpawnProbability: 0.04}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Rows < environment.HorizonRows {
		return fmt.Errorf("rows must be at least %v, got %v",
			environment.HorizonRows, c.Rows)
	}
	if c.SpawnProbability < 0 || c.SpawnProbability > 1 {
		return fmt.Errorf("spawn probability must be in [0, 1], got %v",
			c.SpawnProbability)
	}
	return nil
}

// car is an opponent car
type car struct {
	lane int
	pos  float64 // Rows ahead of the agent, negative when behind
}

// Lanes implements the scrolling road simulator
type Lanes struct {
	rows  int
	tick  int
	lane  int
	speed *state.Speed
	cars  []car

	crashed bool // Whether the agent crashed on the last tick

	spawn distuv.Bernoulli
	rng   *rand.Rand
}

// New returns a new Lanes simulator
func New(c Config, seed uint64) (*Lanes, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	// Create the spawning distributions
	src := rand.NewSource(seed)
	spawn := distuv.Bernoulli{P: c.SpawnProbability, Src: src}
	rng := rand.New(src)

	l := &Lanes{
		rows:  c.Rows,
		speed: state.NewSpeed(state.SpeedRange),
		spawn: spawn,
		rng:   rng,
	}
	if err := l.Reset(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return l, nil
}

// Tick returns the number of ticks stepped since the simulator was
// created
func (l *Lanes) Tick() int {
	return l.tick
}

// Reset starts a new episode with the agent's car at the start lane, at
// minimum speed, and with an empty road
func (l *Lanes) Reset() error {
	l.lane = StartLane
	l.speed.Reset()
	l.cars = l.cars[:0]
	l.crashed = false
	return nil
}

// Lane returns the agent's current lane
func (l *Lanes) Lane() int {
	return l.lane
}

// Speed returns the agent's current relative speed
func (l *Lanes) Speed() int {
	return l.speed.Value()
}

// Crashed returns whether the agent crashed on the last tick
func (l *Lanes) Crashed() bool {
	return l.crashed
}

// Step takes one tick in the simulator with the given action and
// returns the reward for the tick
func (l *Lanes) Step(a environment.Action) (float64, error) {
	if err := l.speed.Apply(a); err != nil {
		return 0, fmt.Errorf("step: %w", err)
	}

	switch a {
	case environment.Left:
		l.lane = intutils.Max(l.lane-1, 0)
	case environment.Right:
		l.lane = intutils.Min(l.lane+1, environment.GridCols-1)
	}
	l.tick++

	// Scroll opponents and count overtakes
	reward := 0.0
	delta := float64(l.speed.Value()) / ScrollDivisor
	for i := range l.cars {
		before := l.cars[i].pos
		l.cars[i].pos -= delta
		after := l.cars[i].pos

		if before >= 0 && after < 0 {
			reward++
		} else if before < 0 && after >= 0 {
			reward--
		}
	}

	l.crash()
	l.removeOffscreen()
	l.spawnCar()

	return reward, nil
}

// crash checks whether an opponent has run into the agent's car. The
// agent drops to minimum speed and the opponent is pushed to the cell
// ahead of the agent. Any opponent tailing the agent in its lane is
// pushed back out of collision range, so the car ahead is always the
// closest one after a crash.
func (l *Lanes) crash() {
	l.crashed = false
	for i := range l.cars {
		c := &l.cars[i]
		if c.lane == l.lane && c.pos >= 0 && c.pos < CrashRows {
			c.pos = 1
			l.crashed = true
		}
	}

	if !l.crashed {
		return
	}
	l.speed.Crash()
	for i := range l.cars {
		c := &l.cars[i]
		if c.lane == l.lane && c.pos < 0 && c.pos > -CrashRows {
			c.pos = -CrashRows
		}
	}
}

// removeOffscreen removes opponents which have left the road
func (l *Lanes) removeOffscreen() {
	cars := l.cars[:0]
	for _, c := range l.cars {
		if c.pos >= -1 && c.pos < float64(l.rows) {
			cars = append(cars, c)
		}
	}
	l.cars = cars
}

// spawnCar spawns a new opponent at the top of the road, or behind the
// agent if the agent is slower than the traffic
func (l *Lanes) spawnCar() {
	if l.spawn.Rand() != 1.0 {
		return
	}

	pos := float64(l.rows - 1)
	if l.speed.Value() < 0 {
		pos = -1
	}
	lane := l.rng.Intn(environment.GridCols)

	// Opponents never spawn on top of each other
	for _, c := range l.cars {
		if c.lane == lane && math.Abs(c.pos-pos) < 1 {
			return
		}
	}
	l.cars = append(l.cars, car{lane: lane, pos: pos})
}

// Extract returns the perception of the current tick. If draw is true,
// a debug image scaled by scale is rendered.
func (l *Lanes) Extract(draw bool, scale float64) (environment.Perception,
	error) {
	grid := environment.NewGrid(l.rows)
	grid[0][l.lane] = environment.Self

	others := make([]environment.Box, 0, len(l.cars))
	for _, c := range l.cars {
		others = append(others, l.box(c.lane, c.pos))

		row := int(math.Floor(c.pos))
		if row < 0 || row >= l.rows || grid[row][c.lane] == environment.Self {
			continue
		}
		grid[row][c.lane] = environment.Opponent
	}

	p := environment.Perception{
		Road: l.road(),
		Cars: environment.Cars{Self: l.box(l.lane, 0), Others: others},
		Grid: grid,
	}

	if draw {
		if scale <= 0 {
			return environment.Perception{}, fmt.Errorf("extract: scale "+
				"must be positive, got %v", scale)
		}
		p.Image = render(p, l.rows, scale)
	}
	return p, nil
}
