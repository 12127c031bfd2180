package environment

// EpisodeTicks is the number of ticks in a single episode
const EpisodeTicks int = 6500

// StepLimit ends episodes once a specific number of ticks have elapsed
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	if episodeSteps <= 0 {
		panic("newStepLimit: episode steps must be positive")
	}
	return StepLimit{episodeSteps}
}

// End determines whether or not an episode which has run for steps
// ticks should be ended
func (s StepLimit) End(steps int) bool {
	return steps >= s.episodeSteps
}

