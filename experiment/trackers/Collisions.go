package trackers

import (
	"github.com/samuelfneumann/enduro/experiment/tracker"
	"github.com/samuelfneumann/enduro/timestep"
)

// Collisions tracks and saves the number of collisions in each episode
// of an experiment. Counts are saved as float64 so that they can be
// loaded with tracker.LoadData.
type Collisions struct {
	current    int
	collisions []float64
	filename   string
}

// NewCollisions returns a new Collisions tracker which will save
// its data at the specified location filename
func NewCollisions(filename string) *Collisions {
	return &Collisions{filename: filename}
}

// Track counts the collisions in an episode. The count is cached when
// the last timestep in the episode is tracked.
func (c *Collisions) Track(t timestep.TimeStep) {
	if t.First() {
		c.current = 0
		return
	}

	if t.Collision {
		c.current++
	}
	if t.Last() {
		c.collisions = append(c.collisions, float64(c.current))
		c.current = 0
	}
}

// Current returns the number of collisions so far in the current
// episode
func (c *Collisions) Current() int {
	return c.current
}

// Data returns the collision counts of all finished episodes
func (c *Collisions) Data() []float64 {
	return c.collisions
}

// Save saves the data tracked by the Collisions Tracker to disk.
func (c *Collisions) Save() error {
	return tracker.Save(c.filename, c.collisions)
}
