package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"github.com/samuelfneumann/enduro/agent/linear/discrete/qlearning"
	"github.com/samuelfneumann/enduro/config"
	"github.com/samuelfneumann/enduro/environment"
	"github.com/samuelfneumann/enduro/environment/lanes"
	"github.com/samuelfneumann/enduro/experiment"
	"github.com/samuelfneumann/enduro/experiment/checkpointer"
	"github.com/samuelfneumann/enduro/experiment/tracker"
	"github.com/samuelfneumann/enduro/experiment/trackers"
	"github.com/samuelfneumann/enduro/utils/matutils"
	"github.com/samuelfneumann/enduro/utils/matutils/initializers/weights"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// Files written to the directory of a run
const (
	configFile     = "config.yaml"
	logFile        = "log.gob"
	weightsFile    = "weights.gob"
	returnsFile    = "returns.bin"
	collisionsFile = "collisions.bin"
	frameFile      = "frame.png"
)

type runFlags struct {
	config   string
	episodes int
	seed     uint64
	noLearn  bool
	draw     bool
	weights  string
	noColour bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train or evaluate the agent on the lane simulator",
		Long: "Train or evaluate the agent on the lane simulator. The " +
			"configuration, episode log, final weights, and per-episode " +
			"returns and collisions are written to a new directory named " +
			"by a random run id under the configured output directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadRunConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd, c, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "YAML config file")
	flags.IntVarP(&f.episodes, "episodes", "e", 0,
		"number of episodes, overriding the config")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed, overriding the config")
	flags.BoolVar(&f.noLearn, "no-learn", false,
		"evaluate the greedy policy without learning")
	flags.BoolVar(&f.draw, "draw", false,
		"render debug frames of the simulator")
	flags.StringVarP(&f.weights, "weights", "w", "",
		"weights saved by a previous run to start from")
	flags.BoolVar(&f.noColour, "no-color", false, "disable coloured output")
	return cmd
}

// loadRunConfig loads the run configuration and applies the flags which
// override it
func loadRunConfig(cmd *cobra.Command, f runFlags) (config.Config, error) {
	c, err := config.FromYaml(f.config)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("episodes") {
		c.Episodes = f.episodes
	}
	if flags.Changed("seed") {
		c.Seed = f.seed
	}
	if f.noLearn {
		c.Learn = false
	}
	if f.draw {
		c.Draw = true
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

// newAgent creates the agent, starting from saved weights if a weights
// file is given. An agent which does not learn acts greedily.
func newAgent(c config.Config, weightsFile string) (*qlearning.QLearning,
	error) {
	var q *qlearning.QLearning
	if weightsFile != "" {
		w, err := qlearning.LoadWeights(weightsFile)
		if err != nil {
			return nil, err
		}
		q, err = qlearning.New(c.QLearning(), weights.NewValues(w), c.Seed)
		if err != nil {
			return nil, err
		}
	} else {
		a, err := c.QLearning().CreateAgent(c.Seed)
		if err != nil {
			return nil, err
		}
		q = a.(*qlearning.QLearning)
	}

	if !c.Learn {
		q.Eval()
	}
	return q, nil
}

func run(cmd *cobra.Command, c config.Config, f runFlags) error {
	out := cmd.OutOrStdout()

	// Create the run directory and record the configuration
	id := uuid.New().String()
	dir := filepath.Join(c.Output.Dir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run: could not create run directory: %w", err)
	}
	data, err := c.YAML()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), data, 0o644); err != nil {
		return fmt.Errorf("run: could not save config: %w", err)
	}

	// Create the environment
	sim, err := lanes.New(c.Lanes(), c.Seed)
	if err != nil {
		return err
	}
	var extractor environment.Extractor = sim
	if c.Draw {
		every := c.Output.ReportEvery
		if every == 0 {
			every = c.EpisodeTicks
		}
		extractor = &frameSaver{Extractor: sim,
			filename: filepath.Join(dir, frameFile), every: every}
	}

	// Create the agent
	q, err := newAgent(c, f.weights)
	if err != nil {
		return err
	}
	report := newReporter(out, q, c.Output.ReportEvery, c.Episodes,
		c.EpisodeTicks, !f.noColour)
	q.SetCallback(report.Callback)

	// Create the trackers and checkpointers
	returns := trackers.NewReturn(filepath.Join(dir, returnsFile))
	collisions := trackers.NewCollisions(filepath.Join(dir, collisionsFile))
	t := []tracker.Tracker{returns, collisions}

	var check []checkpointer.Checkpointer
	if c.Output.CheckpointEvery > 0 {
		naming, err := checkpointer.Naming(c.Output.CheckpointNaming,
			filepath.Join(dir, "weights-"), ".gob")
		if err != nil {
			return err
		}
		check = append(check, checkpointer.NewNStep(c.Output.CheckpointEvery,
			q, naming))
	}

	e, err := experiment.NewOnline(sim, extractor, q, c.Experiment(), t, check)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Printf("Starting run %v: %v episodes, learning: %v, ε: %v, α: %v",
		id, c.Episodes, c.Learn, q.Epsilon(), q.LearningRate())
	err = e.Run(ctx)
	report.close()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Warning: run interrupted in episode %v, "+
			"saving partial results\n", e.Episode())
		q.Finish()
	} else if err != nil {
		return err
	}

	// Save the results
	if err := e.Save(); err != nil {
		return err
	}
	if err := q.Log().Save(filepath.Join(dir, logFile)); err != nil {
		return err
	}
	if err := q.Save(filepath.Join(dir, weightsFile)); err != nil {
		return err
	}

	w := q.Weights()
	log.Printf("Final weights: %v", matutils.Format(mat.NewDense(1, len(w), w)))
	log.Printf("Run %v written to %v", id, dir)
	return nil
}

// frameSaver is an Extractor which saves the latest debug image of the
// simulator every `every` extractions
type frameSaver struct {
	environment.Extractor
	filename string
	every    int
	n        int
}

// Extract extracts a perception, drawing and saving it when due
func (f *frameSaver) Extract(draw bool, scale float64) (environment.Perception,
	error) {
	f.n++
	save := draw && f.n%f.every == 0

	p, err := f.Extractor.Extract(save, scale)
	if err != nil || !save {
		return p, err
	}

	if err := gg.SavePNG(f.filename, p.Image); err != nil {
		return p, fmt.Errorf("extract: could not save frame: %w", err)
	}
	return p, nil
}
