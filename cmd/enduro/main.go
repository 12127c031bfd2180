// Command enduro trains and evaluates the linear Q-learning driving
// agent on the lane simulator, and plots the results of a run.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/samuelfneumann/enduro/agent/linear/value"
	"github.com/samuelfneumann/enduro/state"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitError         = 1
	exitPrecondition  = 2
	exitConfiguration = 3
)

func main() {
	// ENDURO_ overrides may live in a .env file
	for _, envFile := range []string{".env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd returns the root command with all subcommands attached
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "enduro",
		Short:         "Online linear Q-learning for a scrolling-lane racer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newPlotCmd(), newConfigCmd())
	return root
}

// exitCode returns the process exit code for an error
func exitCode(err error) int {
	switch {
	case errors.Is(err, state.ErrPrecondition):
		return exitPrecondition
	case errors.Is(err, value.ErrConfiguration):
		return exitConfiguration
	}
	return exitError
}
