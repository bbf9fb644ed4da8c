package cmd

import (
	"fmt"
	"time"

	"gridmcts/experiments"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Experiment() *cobra.Command {
	var (
		gameName    string
		games       int
		records     string
		seed        uint64
		goroutines  []int
		exploration []float64
	)

	cmd := &cobra.Command{
		Use:   "experiment parallelization|exploration",
		Short: "Run matchups against a baseline agent and store the records",
		Long: heredoc.Doc(`experiment pairs a baseline MCTS agent with one variant per value
			of the chosen parameter, plays every matchup and stores configs,
			game records and move records (CSV and parquet) for analysis.
		`),
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"parallelization", "exploration"},

		RunE: func(cmd *cobra.Command, args []string) error {
			newGame, err := experiments.LookupGame(gameName)
			if err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " running " + args[0] + " experiment..."
			s.Start()

			var results []experiments.Result
			switch args[0] {
			case "parallelization":
				results, err = experiments.RunParallelizationExperiment(newGame, games, goroutines, seed)
			case "exploration":
				results, err = experiments.RunExplorationExperiment(newGame, games, exploration, seed)
			default:
				err = fmt.Errorf("unknown experiment %q", args[0])
			}
			s.Stop()
			if err != nil {
				return err
			}

			for _, result := range results {
				config := result.Configs[1]
				fmt.Printf("agent %d (goroutines %d, exploration %g) vs baseline: %d-%d, %d draws\n",
					config.ID, config.Goroutines, config.Exploration,
					result.Tally.Wins[1], result.Tally.Wins[0], result.Tally.Draws)
			}

			dir, err := experiments.Store(records, args[0], results...)
			if err != nil {
				return err
			}
			log.Info().Msgf("records stored in %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&gameName, "game", "g", "connectfour", fmt.Sprintf("Game to play %v", experiments.GameNames()))
	cmd.Flags().IntVarP(&games, "number", "n", 10, "Games per matchup")
	cmd.Flags().StringVar(&records, "records", recordsDir, "Directory for game and move records")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
	cmd.Flags().IntSliceVar(&goroutines, "goroutines", []int{2, 4, 8}, "Goroutine counts to compare")
	cmd.Flags().Float64SliceVar(&exploration, "exploration", []float64{0.5, 1.0, 2.0}, "Exploration constants to compare")

	return cmd
}
