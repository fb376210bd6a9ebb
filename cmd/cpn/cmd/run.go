package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cpnkit/cpn/sim"
)

var (
	steps  int
	policy string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a net until it deadlocks or a sink fires",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := loadNet(inputFile)
		if err != nil {
			return err
		}
		opts := []sim.Option{sim.WithLogger(logger)}
		switch policy {
		case "first":
		case "roundrobin":
			opts = append(opts, sim.WithPolicy(&sim.RoundRobin{}))
		default:
			return fmt.Errorf("unknown policy %q", policy)
		}
		trace, err := sim.New(net, opts...).Run(cmd.Context(), steps)
		if err != nil {
			return err
		}
		fmt.Printf("fired %d transitions, token delta %s, %d tokens remaining\n",
			trace.Steps, trace.NetDelta(), net.TokenCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&steps, "steps", "n", 0, "maximum firings, 0 for unbounded")
	runCmd.Flags().StringVarP(&policy, "policy", "p", "first", "conflict policy: first or roundrobin")
}
