package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gridmcts/experiments"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/searcher"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func Search() *cobra.Command {
	var (
		gameName    string
		moves       []int
		simulations int
		exploration float64
		goroutines  int
		cutoff      int
		evaluator   string
		seed        uint64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a single position and print the root statistics",
		Long: heredoc.Doc(`search plays the given actions from the start of a game and runs
			one search on the resulting position. Every explored root action
			is listed with its visit count and average value for the player
			to move.
		`),
		Example: "  gridmcts search --game tictactoe --moves 5,1 --simulations 5000",
		Args:    cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			newGame, err := experiments.LookupGame(gameName)
			if err != nil {
				return err
			}

			state := newGame(0)
			for _, action := range moves {
				if err := state.Apply(game.Action(action)); err != nil {
					return fmt.Errorf("replaying moves: %w", err)
				}
			}
			renderBoard(os.Stdout, gameName, state)

			evaluate, err := experiments.LookupEvaluator(evaluator)
			if err != nil {
				return err
			}
			mcts := searcher.NewMCTS(
				searcher.WithSimulations(simulations),
				searcher.WithExploration(exploration),
				searcher.WithGoroutines(goroutines),
				searcher.WithCutoff(cutoff),
				searcher.WithEvaluationFn(evaluate),
				searcher.WithSeed(seed),
				searcher.WithMetrics(),
			)
			result, err := mcts.Search(state)
			if err != nil {
				return err
			}

			policy := append([]searcher.ActionStat(nil), result.Policy...)
			sort.SliceStable(policy, func(i, j int) bool {
				return policy[i].Visits > policy[j].Visits
			})

			fmt.Printf("player %s to move, %d simulations in %s\n",
				game.Symbol(state.CurrentPlayer()), result.Visits, result.Metric.Duration.Round(time.Microsecond))
			fmt.Printf("%6s %8s %8s\n", "action", "visits", "value")
			for _, stat := range policy {
				fmt.Printf("%6d %8d %8.3f\n", stat.Action, stat.Visits, stat.Value)
			}
			fmt.Printf("best action: %d (tree size %d, max depth %d, seed %d)\n",
				result.Action, result.Metric.TreeSize, result.Metric.MaxDepth, mcts.Seed())
			return nil
		},
	}

	cmd.Flags().StringVarP(&gameName, "game", "g", "tictactoe", fmt.Sprintf("Game to search %v", experiments.GameNames()))
	cmd.Flags().IntSliceVarP(&moves, "moves", "m", nil, "Actions played from the start, comma separated")
	cmd.Flags().IntVar(&simulations, "simulations", meta.SIMULATIONS, "Number of simulations")
	cmd.Flags().Float64Var(&exploration, "exploration", meta.EXPLORATION, "UCT exploration constant")
	cmd.Flags().IntVar(&goroutines, "goroutines", meta.GO_ROUTINES, "Root-parallel search trees")
	cmd.Flags().IntVar(&cutoff, "cutoff", 0, "Random moves played before the evaluator scores a leaf")
	cmd.Flags().StringVar(&evaluator, "evaluator", "", fmt.Sprintf("Leaf evaluator %v, empty plays rollouts to the end", experiments.EvaluatorNames))
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Random seed")

	return cmd
}
