package agent

import (
	"encoding/gob"
	"fmt"
	"os"
)

// LogEntry records the total reward of an episode and the weights at
// the end of that episode
type LogEntry struct {
	TotalReward float64
	Weights     []float64
}

// EpisodeLog is a sequence of LogEntry's appended at episode
// boundaries
type EpisodeLog []LogEntry

// Append appends an entry to the log. The weights are copied.
func (e *EpisodeLog) Append(totalReward float64, weights []float64) {
	w := make([]float64, len(weights))
	copy(w, weights)
	*e = append(*e, LogEntry{TotalReward: totalReward, Weights: w})
}

// Returns returns the total reward of each logged episode
func (e EpisodeLog) Returns() []float64 {
	returns := make([]float64, len(e))
	for i := range e {
		returns[i] = e[i].TotalReward
	}
	return returns
}

// Save saves the log to disk
func (e EpisodeLog) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open log file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(e); err != nil {
		return fmt.Errorf("save: could not encode episode log: %v", err)
	}
	return nil
}

// LoadEpisodeLog loads an EpisodeLog saved with Save
func LoadEpisodeLog(filename string) (EpisodeLog, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadEpisodeLog: could not open log file: %v",
			err)
	}
	defer file.Close()

	var log EpisodeLog
	dec := gob.NewDecoder(file)
	if err = dec.Decode(&log); err != nil {
		return nil, fmt.Errorf("loadEpisodeLog: could not decode episode "+
			"log: %v", err)
	}
	return log, nil
}
