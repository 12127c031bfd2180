package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/enduro/agent"
	"github.com/samuelfneumann/enduro/agent/linear/value"
	env "github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/experiment/checkpointer"
	"github.com/samuelfneumann/enduro/experiment/tracker"
	"github.com/samuelfneumann/enduro/state"
	ts "github.com/samuelfneumann/enduro/timestep"
)

// Online is an Experiment that runs an agent online, learning (if
// enabled) after every tick.
//
// Each episode starts with the agent at the minimum relative speed and
// lasts a fixed number of environment ticks. On every tick the agent
// acts, the perception is extracted again, collisions are detected,
// and the agent senses, learns, and reports, in that order. The Online
// experiment is the agent's Mover, keeping track of the relative speed
// as actions are executed.
type Online struct {
	env       env.Adapter
	extractor env.Extractor
	agent.Agent
	config        Config
	speed         *state.Speed
	ender         env.StepLimit
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer

	episode    int     // 1-based index of the current episode
	totalSteps int     // Ticks over all episodes
	reward     float64 // Reward of the latest Move
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The t parameter is a slice of
// tracker.Tracker which determine what data is saved, and the check
// parameter is a slice of checkpointers which periodically save the
// agent.
func NewOnline(e env.Adapter, x env.Extractor, a agent.Agent, c Config,
	t []tracker.Tracker, check []checkpointer.Checkpointer) (*Online,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newOnline: %w", err)
	}
	if e == nil || x == nil || a == nil {
		return nil, fmt.Errorf("newOnline: environment, extractor, and " +
			"agent cannot be nil")
	}

	return &Online{
		env:           e,
		extractor:     x,
		Agent:         a,
		config:        c,
		speed:         state.NewSpeed(state.SpeedRange),
		ender:         env.NewStepLimit(c.EpisodeTicks),
		trackers:      t,
		checkpointers: check,
	}, nil
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Episode returns the 1-based index of the current episode
func (o *Online) Episode() int {
	return o.episode
}

// TotalSteps returns the number of ticks run over all episodes
func (o *Online) TotalSteps() int {
	return o.totalSteps
}

// Speed returns the current relative speed
func (o *Online) Speed() int {
	return o.speed.Value()
}

// Move applies an action to the relative speed and steps the
// environment with it
func (o *Online) Move(a env.Action) (float64, error) {
	if !a.Valid() {
		return 0, fmt.Errorf("move: invalid action %v: %w", a,
			value.ErrConfiguration)
	}
	if err := o.speed.Apply(a); err != nil {
		return 0, fmt.Errorf("move: %w", err)
	}

	reward, err := o.env.Step(a)
	if err != nil {
		return 0, fmt.Errorf("move: could not step environment: %w", err)
	}
	o.reward = reward
	return reward, nil
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode(ctx context.Context) error {
	o.episode++
	o.speed.Reset()

	// Observe the environment to set the initial state
	p, err := o.extractor.Extract(o.config.Draw, o.config.Scale)
	if err != nil {
		return fmt.Errorf("runEpisode: could not extract perception: %w", err)
	}
	if err := o.Agent.Initialise(p, o.speed.Value()); err != nil {
		return fmt.Errorf("runEpisode: episode %d: %w", o.episode, err)
	}

	start := o.env.Tick()
	o.track(ts.TimeStep{StepType: ts.First, Episode: o.episode,
		Total: o.totalSteps, Speed: o.speed.Value()})

	for elapsed := 0; !o.ender.End(elapsed); {
		// Episodes can only be cancelled between ticks
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := o.Agent.Act(o); err != nil {
			return fmt.Errorf("runEpisode: episode %d: %w", o.episode, err)
		}

		// Update the environment grid
		p, err = o.extractor.Extract(o.config.Draw, o.config.Scale)
		if err != nil {
			return fmt.Errorf("runEpisode: could not extract perception: %w",
				err)
		}

		collision := Collision(p.Cars)
		if collision {
			o.speed.Crash()
		}

		if err := o.Agent.Sense(p, o.speed.Value()); err != nil {
			return fmt.Errorf("runEpisode: episode %d: %w", o.episode, err)
		}

		// Perform learning if required
		if o.config.Learn {
			if err := o.Agent.Learn(); err != nil {
				return fmt.Errorf("runEpisode: episode %d: %w", o.episode,
					err)
			}
		}

		elapsed = o.env.Tick() - start
		o.totalSteps++
		o.Agent.Callback(o.config.Learn, o.episode, elapsed)

		step := ts.TimeStep{
			StepType:  ts.Mid,
			Episode:   o.episode,
			Number:    elapsed,
			Total:     o.totalSteps,
			Reward:    o.reward,
			Speed:     o.speed.Value(),
			Collision: collision,
		}
		if o.ender.End(elapsed) {
			step.StepType = ts.Last
		}
		o.track(step)
		if err := o.checkpoint(step); err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}
	}

	if err := o.env.Reset(); err != nil {
		return fmt.Errorf("runEpisode: could not reset environment: %w", err)
	}
	return nil
}

// Run runs the entire experiment for all episodes
func (o *Online) Run(ctx context.Context) error {
	for o.episode < o.config.Episodes {
		if err := o.RunEpisode(ctx); err != nil {
			return err
		}
	}

	if f, ok := o.Agent.(agent.Finisher); ok {
		f.Finish()
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint checkpoints the agent with each checkpointer
func (o *Online) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return err
		}
	}
	return nil
}
