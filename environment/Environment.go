// Package environment outlines the contracts between the learning core
// and the racing environment it drives: the Adapter which steps the
// emulated game, and the Extractor which turns the latest frame into a
// road layout, a list of car positions, and an occupancy grid.
package environment

// Adapter implements a stepped racing environment. The environment is
// assumed to be fully configured (seeded, deterministic) when it is
// handed to the learning core.
type Adapter interface {
	// Tick returns the current frame number of the environment. Frame
	// numbers keep increasing across episodes.
	Tick() int

	// Step applies the action for one tick and returns the reward
	Step(a Action) (float64, error)

	// Reset starts a new episode. Learned weights are not affected.
	Reset() error
}

// Extractor extracts the perception of the most recent frame.
//
// If draw is true, the Extractor renders a debug image of what it
// perceived, scaled by scale, into the returned Perception.
type Extractor interface {
	Extract(draw bool, scale float64) (Perception, error)
}

// Environment is both an Adapter and an Extractor, as is the case for
// simulated environments which produce perceptions directly.
type Environment interface {
	Adapter
	Extractor
}
