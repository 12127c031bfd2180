package main

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/enduro/utils/progressbar"
)

// returner returns the total reward of the current episode
type returner interface {
	TotalReward() float64
}

// reporter prints telemetry as the agent runs. Every `every` ticks a
// line with the episode, tick, and total reward so far is printed. If
// every is zero, a progress bar over episodes is shown instead.
type reporter struct {
	out          io.Writer
	au           aurora.Aurora
	agent        returner
	every        int
	episodeTicks int
	bar          *progressbar.ManualProgressBar
}

// newReporter returns a new reporter for a run of the given number of
// episodes
func newReporter(out io.Writer, a returner, every, episodes,
	episodeTicks int, colour bool) *reporter {
	r := &reporter{
		out:          out,
		au:           aurora.NewAurora(colour),
		agent:        a,
		every:        every,
		episodeTicks: episodeTicks,
	}
	if every == 0 {
		r.bar = progressbar.NewManualProgressBar(out, 40, episodes)
	}
	return r
}

// Callback reports on a tick of the run
func (r *reporter) Callback(learn bool, episode, tick int) {
	total := r.agent.TotalReward()

	if r.bar != nil {
		if tick == r.episodeTicks {
			r.bar.Increment()
			r.bar.SetSuffix(fmt.Sprintf("episode %d: total reward %v", episode,
				total))
			r.bar.Display()
		}
		return
	}

	if tick%r.every != 0 {
		return
	}
	mode := r.au.Cyan("train")
	if !learn {
		mode = r.au.Magenta("eval")
	}
	fmt.Fprintf(r.out, "[%v] %v/%v: total reward %v\n", mode,
		r.au.Bold(episode), tick, r.reward(total))
}

// reward colours a reward by its sign
func (r *reporter) reward(total float64) aurora.Value {
	switch {
	case total > 0:
		return r.au.Green(total)
	case total < 0:
		return r.au.Red(total)
	}
	return r.au.White(total)
}

// close finishes the report
func (r *reporter) close() {
	if r.bar != nil {
		r.bar.Close()
	}
}
