package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/samuelfneumann/enduro/agent"
	"github.com/samuelfneumann/enduro/experiment/plot"
	"github.com/samuelfneumann/enduro/experiment/tracker"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	var out, collisions string

	cmd := &cobra.Command{
		Use:   "plot <log.gob>",
		Short: "Plot the learning curve and weights of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := agent.LoadEpisodeLog(args[0])
			if err != nil {
				return err
			}

			var extra []components.Charter
			if collisions != "" {
				data, err := tracker.LoadData(collisions)
				if err != nil {
					return err
				}
				extra = append(extra, plot.Tracked("Collisions", data))
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("plot: could not create output file: %w", err)
			}
			defer file.Close()

			if err := plot.Render(log, file, extra...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plots written to %v\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "plots.html",
		"HTML file to write the plots to")
	cmd.Flags().StringVar(&collisions, "collisions", "",
		"collision counts saved by a run, plotted if given")
	return cmd
}
