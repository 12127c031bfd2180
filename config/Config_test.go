package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: default config is invalid: %v", err)
	}

	if c.Episodes != 500 || c.EpisodeTicks != 6500 || c.Seed != 123 {
		t.Errorf("default: unexpected experiment config %+v", c)
	}
	want := Agent{Epsilon: 0.01, LearningRate: 0.01, Discount: 0.9,
		InitialWeight: 0.1, DecayEvery: 1000, DecayRate: 0.99}
	if c.Agent != want {
		t.Errorf("default: want agent %+v, have %+v", want, c.Agent)
	}
}

func TestFromYamlEmptyPath(t *testing.T) {
	c, err := FromYaml("")
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("fromYaml: want %+v, have %+v", Default(), c)
	}
}

func TestFromYamlPartial(t *testing.T) {
	path := writeConfig(t, `
episodes: 10
learn: false
agent:
  epsilon: 0.2
environment:
  rows: 8
`)

	c, err := FromYaml(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Episodes = 10
	want.Learn = false
	want.Agent.Epsilon = 0.2
	want.Environment.Rows = 8
	if c != want {
		t.Errorf("fromYaml: want %+v, have %+v", want, c)
	}
}

func TestFromYamlEnvironmentOverride(t *testing.T) {
	t.Setenv("ENDURO_EPISODES", "7")
	t.Setenv("ENDURO_AGENT_LEARNING_RATE", "0.5")
	t.Setenv("ENDURO_OUTPUT_DIR", "elsewhere")

	path := writeConfig(t, "episodes: 10\n")
	c, err := FromYaml(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Episodes != 7 {
		t.Errorf("fromYaml: want episodes 7, have %v", c.Episodes)
	}
	if c.Agent.LearningRate != 0.5 {
		t.Errorf("fromYaml: want learning rate 0.5, have %v",
			c.Agent.LearningRate)
	}
	if c.Output.Dir != "elsewhere" {
		t.Errorf("fromYaml: want output dir elsewhere, have %v", c.Output.Dir)
	}
}

func TestFromYamlMissingFile(t *testing.T) {
	if _, err := FromYaml(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("fromYaml: expected error for missing file")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := Default().YAML()
	if err != nil {
		t.Fatal(err)
	}

	c, err := FromYaml(writeConfig(t, string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("fromYaml: want %+v, have %+v", Default(), c)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no episodes", func(c *Config) { c.Episodes = 0 }},
		{"no ticks", func(c *Config) { c.EpisodeTicks = 0 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"epsilon", func(c *Config) { c.Agent.Epsilon = 1.5 }},
		{"learning rate", func(c *Config) { c.Agent.LearningRate = 0 }},
		{"discount", func(c *Config) { c.Agent.Discount = -0.1 }},
		{"rows", func(c *Config) { c.Environment.Rows = 2 }},
		{"spawn probability", func(c *Config) {
			c.Environment.SpawnProbability = 2
		}},
		{"output dir", func(c *Config) { c.Output.Dir = "" }},
		{"checkpoint", func(c *Config) { c.Output.CheckpointEvery = -1 }},
		{"naming", func(c *Config) { c.Output.CheckpointNaming = "random" }},
		{"report", func(c *Config) { c.Output.ReportEvery = -1 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Default()
			test.modify(&c)
			if err := c.Validate(); err == nil {
				t.Errorf("validate: expected error for %+v", c)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	c := Default()
	c.Agent.Epsilon = 0.3
	c.Environment.SpawnProbability = 0.1
	c.Learn = false

	if q := c.QLearning(); q.Epsilon != 0.3 || q.DecayEvery != 1000 {
		t.Errorf("qLearning: unexpected config %+v", q)
	}
	if l := c.Lanes(); l.SpawnProbability != 0.1 || l.Rows != 12 {
		t.Errorf("lanes: unexpected config %+v", l)
	}
	if e := c.Experiment(); e.Learn || e.Episodes != 500 {
		t.Errorf("experiment: unexpected config %+v", e)
	}
}
