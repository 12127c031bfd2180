package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/enduro/agent"
	"github.com/samuelfneumann/enduro/agent/linear/discrete/qlearning"
	"github.com/samuelfneumann/enduro/agent/linear/value"
	"github.com/samuelfneumann/enduro/experiment/tracker"
	"github.com/samuelfneumann/enduro/state"
)

// execute runs the root command with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// runDirs returns the run directories under dir
func runDirs(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var dirs []string
	for _, e := range entries {
		dirs = append(dirs, filepath.Join(dir, e.Name()))
	}
	return dirs
}

func writeRunConfig(t *testing.T, out string, reportEvery int) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := fmt.Sprintf(`
episodes: 2
episode_ticks: 50
output:
  dir: %v
  report_every: %v
  checkpoint_every: 40
`, out, reportEvery)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPlotEvaluate(t *testing.T) {
	out := t.TempDir()
	path := writeRunConfig(t, out, 25)

	// Train
	output, err := execute(t, "run", "-c", path, "--no-color")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Count(output, "total reward") != 4 {
		t.Errorf("run: want 4 report lines, have output %q", output)
	}

	dirs := runDirs(t, out)
	if len(dirs) != 1 {
		t.Fatalf("run: want 1 run directory, have %v", dirs)
	}
	dir := dirs[0]
	for _, f := range []string{configFile, logFile, weightsFile, returnsFile,
		collisionsFile, "weights-1.gob", "weights-2.gob"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("run: missing output file %v", f)
		}
	}

	log, err := agent.LoadEpisodeLog(filepath.Join(dir, logFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 3 {
		t.Errorf("run: want 3 log entries, have %v", len(log))
	}
	returns, err := tracker.LoadData(filepath.Join(dir, returnsFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(returns) != 2 || returns[1] != log[2].TotalReward {
		t.Errorf("run: returns %v do not match log %v", returns, log.Returns())
	}

	// Plot
	html := filepath.Join(t.TempDir(), "plots.html")
	if _, err := execute(t, "plot", filepath.Join(dir, logFile), "-o", html,
		"--collisions", filepath.Join(dir, collisionsFile)); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if info, err := os.Stat(html); err != nil || info.Size() == 0 {
		t.Errorf("plot: no plots written")
	}

	// Evaluate the learned weights
	evalOut := t.TempDir()
	trained := filepath.Join(dir, weightsFile)
	if _, err := execute(t, "run", "-c", writeRunConfig(t, evalOut, 0),
		"--no-learn", "--weights", trained, "--episodes", "1"); err != nil {
		t.Fatalf("run: %v", err)
	}

	evalDirs := runDirs(t, evalOut)
	if len(evalDirs) != 1 {
		t.Fatalf("run: want 1 run directory, have %v", evalDirs)
	}
	want, _ := qlearning.LoadWeights(trained)
	have, err := qlearning.LoadWeights(filepath.Join(evalDirs[0], weightsFile))
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if want[i] != have[i] {
			t.Fatalf("run: weights changed without learning: want %v, have %v",
				want, have)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	if _, err := execute(t, "run", "--episodes", "0"); err == nil {
		t.Error("run: expected error for zero episodes")
	}
}

func TestConfigCmd(t *testing.T) {
	output, err := execute(t, "config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"episodes: 500", "learning_rate: 0.01",
		"spawn_probability: 0.04", "report_every: 100"} {
		if !strings.Contains(output, want) {
			t.Errorf("config: output does not contain %q:\n%v", want, output)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("build: %w", state.ErrPrecondition), exitPrecondition},
		{fmt.Errorf("features: %w", value.ErrConfiguration), exitConfiguration},
		{errors.New("emulator crashed"), exitError},
	}

	for _, test := range tests {
		if have := exitCode(test.err); have != test.want {
			t.Errorf("exitCode(%v): want %v, have %v", test.err, test.want,
				have)
		}
	}
}
