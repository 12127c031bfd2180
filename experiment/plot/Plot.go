// Package plot renders the learning curve and weights of a run as an
// HTML page of charts
package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/enduro/agent"
)

// ErrEmptyLog is returned when a log has no finished episodes to plot
var ErrEmptyLog = errors.New("log has no finished episodes")

// episodes returns the x-axis labels for n episodes, starting at 1
func episodes(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	return labels
}

// LearningCurve returns a line chart of the total reward of every
// finished episode. The first log entry, which holds the initial
// weights, is skipped.
func LearningCurve(log agent.EpisodeLog) *charts.Line {
	returns := log.Returns()[1:]

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Learning curve"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total reward"}),
	)

	items := make([]opts.LineData, 0, len(returns))
	for _, r := range returns {
		items = append(items, opts.LineData{Value: r})
	}
	line.SetXAxis(episodes(len(returns))).AddSeries("Total reward", items)
	return line
}

// FinalWeights returns a bar chart of the weights after the last
// episode
func FinalWeights(log agent.EpisodeLog) *charts.Bar {
	final := log[len(log)-1].Weights

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Final weights"}),
	)

	names := make([]string, len(final))
	items := make([]opts.BarData, 0, len(final))
	for i, w := range final {
		names[i] = fmt.Sprintf("w%d", i)
		items = append(items, opts.BarData{Value: w})
	}
	bar.SetXAxis(names).AddSeries("Weight", items)
	return bar
}

// WeightTraces returns a line chart with one series per weight, tracing
// the weight's value at the end of every episode
func WeightTraces(log agent.EpisodeLog) *charts.Line {
	entries := log[1:]

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Weights"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(episodes(len(entries)))

	for i := range entries[0].Weights {
		items := make([]opts.LineData, 0, len(entries))
		for _, e := range entries {
			items = append(items, opts.LineData{Value: e.Weights[i]})
		}
		line.AddSeries(fmt.Sprintf("w%d", i), items)
	}
	return line
}

// Tracked returns a line chart of per-episode data saved by a Tracker
func Tracked(title string, data []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
	)

	items := make([]opts.LineData, 0, len(data))
	for _, d := range data {
		items = append(items, opts.LineData{Value: d})
	}
	line.SetXAxis(episodes(len(data))).AddSeries(title, items)
	return line
}

// Render renders the learning curve, final weights, and weight traces
// of a log, followed by any extra charts, as an HTML page to w
func Render(log agent.EpisodeLog, w io.Writer,
	extra ...components.Charter) error {
	if len(log) < 2 {
		return fmt.Errorf("render: %w", ErrEmptyLog)
	}

	page := components.NewPage()
	page.PageTitle = "enduro"
	page.AddCharts(LearningCurve(log), FinalWeights(log), WeightTraces(log))
	page.AddCharts(extra...)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
