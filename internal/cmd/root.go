package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "gridmcts",
		Short: "Monte-Carlo Tree Search for two-player grid games",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.Version = "v0.1.0"

	root.AddCommand(Play())
	root.AddCommand(Search())
	root.AddCommand(Experiment())
	root.AddCommand(Records())

	return root
}
