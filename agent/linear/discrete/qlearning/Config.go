package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/enduro/agent"
	"github.com/samuelfneumann/enduro/utils/matutils/initializers/weights"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon       float64 // probability of sampling from the softmax
	LearningRate  float64
	Discount      float64
	InitialWeight float64 // every weight starts at this value
	DecayEvery    int     // ticks between learning rate decays
	DecayRate     float64
}

// DefaultConfig returns the default configuration of the agent
func DefaultConfig() Config {
	return Config{
		Epsilon:       0.01,
		LearningRate:  0.01,
		Discount:      0.9,
		InitialWeight: 0.1,
		DecayEvery:    1000,
		DecayRate:     0.99,
	}
}

// CreateAgent creates the agent from the Config. Every weight is
// initialized to c.InitialWeight. To initialize from some other
// distribution, use the agent's constructor manually.
func (c Config) CreateAgent(seed uint64) (agent.Agent, error) {
	rand := weights.NewConstantUV(c.InitialWeight)
	init := weights.NewLinearUV(rand)

	return New(c, init, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1]")
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1]")
	}
	if c.DecayEvery < 0 {
		return fmt.Errorf("decay interval cannot be negative")
	}
	if c.DecayEvery > 0 && (c.DecayRate <= 0 || c.DecayRate > 1) {
		return fmt.Errorf("decay rate must be in (0, 1]")
	}
	return nil
}
