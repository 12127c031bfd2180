// Package config implements the configuration of a run: the experiment,
// the agent's hyper-parameters, the lane simulator, and where output is
// written. Configurations are read from YAML files with viper, and any
// key can be overridden with an ENDURO_ environment variable, for
// example ENDURO_AGENT_EPSILON=0.05.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samuelfneumann/enduro/agent/linear/discrete/qlearning"
	"github.com/samuelfneumann/enduro/environment/lanes"
	"github.com/samuelfneumann/enduro/experiment"
	"github.com/samuelfneumann/enduro/experiment/checkpointer"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables which override
// configuration keys
const EnvPrefix string = "ENDURO"

// Agent configures the Q-learning agent
type Agent struct {
	Epsilon       float64 `yaml:"epsilon" mapstructure:"epsilon"`
	LearningRate  float64 `yaml:"learning_rate" mapstructure:"learning_rate"`
	Discount      float64 `yaml:"discount" mapstructure:"discount"`
	InitialWeight float64 `yaml:"initial_weight" mapstructure:"initial_weight"`
	DecayEvery    int     `yaml:"decay_every" mapstructure:"decay_every"`
	DecayRate     float64 `yaml:"decay_rate" mapstructure:"decay_rate"`
}

// Environment configures the lane simulator
type Environment struct {
	Rows             int     `yaml:"rows" mapstructure:"rows"`
	SpawnProbability float64 `yaml:"spawn_probability" mapstructure:"spawn_probability"`
}

// Output configures where and how often a run writes its output
type Output struct {
	Dir              string `yaml:"dir" mapstructure:"dir"`
	CheckpointEvery  int    `yaml:"checkpoint_every" mapstructure:"checkpoint_every"`
	CheckpointNaming string `yaml:"checkpoint_naming" mapstructure:"checkpoint_naming"`
	ReportEvery      int    `yaml:"report_every" mapstructure:"report_every"`
}

// Config is the configuration of a run
type Config struct {
	Episodes     int     `yaml:"episodes" mapstructure:"episodes"`
	Learn        bool    `yaml:"learn" mapstructure:"learn"`
	Seed         uint64  `yaml:"seed" mapstructure:"seed"`
	Draw         bool    `yaml:"draw" mapstructure:"draw"`
	Scale        float64 `yaml:"scale" mapstructure:"scale"`
	EpisodeTicks int     `yaml:"episode_ticks" mapstructure:"episode_ticks"`

	Agent       Agent       `yaml:"agent" mapstructure:"agent"`
	Environment Environment `yaml:"environment" mapstructure:"environment"`
	Output      Output      `yaml:"output" mapstructure:"output"`
}

// Default returns the default configuration
func Default() Config {
	e := experiment.DefaultConfig()
	a := qlearning.DefaultConfig()
	l := lanes.DefaultConfig()

	return Config{
		Episodes:     e.Episodes,
		Learn:        e.Learn,
		Seed:         123,
		Draw:         e.Draw,
		Scale:        e.Scale,
		EpisodeTicks: e.EpisodeTicks,
		Agent: Agent{
			Epsilon:       a.Epsilon,
			LearningRate:  a.LearningRate,
			Discount:      a.Discount,
			InitialWeight: a.InitialWeight,
			DecayEvery:    a.DecayEvery,
			DecayRate:     a.DecayRate,
		},
		Environment: Environment{
			Rows:             l.Rows,
			SpawnProbability: l.SpawnProbability,
		},
		Output: Output{
			Dir:              "runs",
			CheckpointEvery:  0,
			CheckpointNaming: "enumerate",
			ReportEvery:      100,
		},
	}
}

// setDefaults registers every key of the default configuration with
// vp, so that each key can be overridden by the environment
func setDefaults(vp *viper.Viper) {
	d := Default()
	vp.SetDefault("episodes", d.Episodes)
	vp.SetDefault("learn", d.Learn)
	vp.SetDefault("seed", d.Seed)
	vp.SetDefault("draw", d.Draw)
	vp.SetDefault("scale", d.Scale)
	vp.SetDefault("episode_ticks", d.EpisodeTicks)

	vp.SetDefault("agent.epsilon", d.Agent.Epsilon)
	vp.SetDefault("agent.learning_rate", d.Agent.LearningRate)
	vp.SetDefault("agent.discount", d.Agent.Discount)
	vp.SetDefault("agent.initial_weight", d.Agent.InitialWeight)
	vp.SetDefault("agent.decay_every", d.Agent.DecayEvery)
	vp.SetDefault("agent.decay_rate", d.Agent.DecayRate)

	vp.SetDefault("environment.rows", d.Environment.Rows)
	vp.SetDefault("environment.spawn_probability",
		d.Environment.SpawnProbability)

	vp.SetDefault("output.dir", d.Output.Dir)
	vp.SetDefault("output.checkpoint_every", d.Output.CheckpointEvery)
	vp.SetDefault("output.checkpoint_naming", d.Output.CheckpointNaming)
	vp.SetDefault("output.report_every", d.Output.ReportEvery)
}

// FromYaml reads a configuration from the YAML file at path. Keys
// missing from the file take their default values. If path is empty,
// only the defaults and the environment are used.
func FromYaml(path string) (Config, error) {
	vp := viper.New()
	setDefaults(vp)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		vp.AddConfigPath(filepath.Dir(path))
		if err := vp.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("fromYaml: %w", err)
		}
	}

	var c Config
	if err := vp.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("fromYaml: could not decode config: %w",
			err)
	}
	return c, nil
}

// YAML returns the configuration encoded as YAML
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Experiment().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.QLearning().Validate(); err != nil {
		return fmt.Errorf("validate: agent: %w", err)
	}
	if err := c.Lanes().Validate(); err != nil {
		return fmt.Errorf("validate: environment: %w", err)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("validate: output: dir cannot be empty")
	}
	if c.Output.CheckpointEvery < 0 {
		return fmt.Errorf("validate: output: checkpoint_every cannot be " +
			"negative")
	}
	if c.Output.ReportEvery < 0 {
		return fmt.Errorf("validate: output: report_every cannot be negative")
	}
	if _, err := checkpointer.Naming(c.Output.CheckpointNaming, "", ""); err != nil {
		return fmt.Errorf("validate: output: %w", err)
	}
	return nil
}

// Experiment returns the configuration of the experiment
func (c Config) Experiment() experiment.Config {
	return experiment.Config{
		Episodes:     c.Episodes,
		EpisodeTicks: c.EpisodeTicks,
		Learn:        c.Learn,
		Draw:         c.Draw,
		Scale:        c.Scale,
	}
}

// QLearning returns the configuration of the agent
func (c Config) QLearning() qlearning.Config {
	return qlearning.Config{
		Epsilon:       c.Agent.Epsilon,
		LearningRate:  c.Agent.LearningRate,
		Discount:      c.Agent.Discount,
		InitialWeight: c.Agent.InitialWeight,
		DecayEvery:    c.Agent.DecayEvery,
		DecayRate:     c.Agent.DecayRate,
	}
}

// Lanes returns the configuration of the lane simulator
func (c Config) Lanes() lanes.Config {
	return lanes.Config{
		Rows:             c.Environment.Rows,
		SpawnProbability: c.Environment.SpawnProbability,
	}
}
