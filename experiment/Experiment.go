// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments will track environment TimeSteps, caching each TimeStep
// in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes, while the RunEpisode() function will run a single
// episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments will
// send each TimeStep to Trackers using the Tracker's Track() method.
// The Tracker then determines which data from the TimeStep it caches
// and saves. New Trackers can be registered with an Experiment through
// the constructor or through an Experiment's Register() function.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode(ctx context.Context) error

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a specified
	// event.
	Register(t tracker.Tracker)
}

// Config represents a configuration of an experiment
type Config struct {
	Episodes     int     // Number of episodes to run
	EpisodeTicks int     // Ticks per episode
	Learn        bool    // Whether the agent learns
	Draw         bool    // Whether the Extractor draws debug images
	Scale        float64 // Scale of the debug images
}

// DefaultConfig returns the default experiment configuration
func DefaultConfig() Config {
	return Config{
		Episodes:     500,
		EpisodeTicks: environment.EpisodeTicks,
		Learn:        true,
		Draw:         false,
		Scale:        4.0,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("number of episodes must be positive")
	}
	if c.EpisodeTicks <= 0 {
		return fmt.Errorf("episode ticks must be positive")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive")
	}
	return nil
}
