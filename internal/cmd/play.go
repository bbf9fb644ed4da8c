package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridmcts/engine"
	"gridmcts/experiments"
	"gridmcts/experiments/metrics"
	"gridmcts/meta"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// recordsDir is where match records go unless --records says otherwise.
var recordsDir = filepath.Join(xdg.DataHome, "gridmcts")

type agentFlags struct {
	simulations int
	exploration float64
	goroutines  int
	cutoff      int
	evaluator   string
	temperature float64
	depth       int
	seed        uint64
}

func (f agentFlags) config(id int, kind string, seed uint64) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Kind:        kind,
		Simulations: f.simulations,
		Exploration: f.exploration,
		Goroutines:  f.goroutines,
		Cutoff:      f.cutoff,
		Evaluator:   f.evaluator,
		Temperature: f.temperature,
		Depth:       f.depth,
		Seed:        seed,
	}
}

func addAgentFlags(cmd *cobra.Command, f *agentFlags) {
	cmd.Flags().IntVar(&f.simulations, "simulations", meta.SIMULATIONS, "Simulations per MCTS move")
	cmd.Flags().Float64Var(&f.exploration, "exploration", meta.EXPLORATION, "UCT exploration constant")
	cmd.Flags().IntVar(&f.goroutines, "goroutines", meta.GO_ROUTINES, "Root-parallel search trees per move")
	cmd.Flags().IntVar(&f.cutoff, "cutoff", 0, "Random moves played before the evaluator scores a leaf")
	cmd.Flags().StringVar(&f.evaluator, "evaluator", "", fmt.Sprintf("Leaf evaluator of search agents %v, empty plays rollouts to the end", experiments.EvaluatorNames))
	cmd.Flags().Float64Var(&f.temperature, "temperature", 1.0, "Sampling temperature of training agents")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "Search depth of minimax agents, 0 searches to the end")
	cmd.Flags().Uint64Var(&f.seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
}

func Play() *cobra.Command {
	var (
		gameName  string
		player    string
		opponent  string
		games     int
		alternate bool
		save      bool
		records   string
		render    bool
		agents    agentFlags
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a number of games between two agents",
		Long: heredoc.Doc(`play pits two agents against each other for a number of games
			and prints how many each of them won.

			Agents are one of mcts, training, random or minimax. The player
			always plays the first mark and the opponent the second; with
			--alternate the side to move first changes after every game.
		`),
		Example: heredoc.Doc(`
			gridmcts play --game connectfour --player mcts --opponent random -n 20
			gridmcts play --player minimax --opponent mcts --simulations 200 --render
			gridmcts play --game connectfour --player mcts --opponent mcts --evaluator lines --cutoff 4
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			newGame, err := experiments.LookupGame(gameName)
			if err != nil {
				return err
			}

			names := [2]string{player, opponent}
			matchup := experiments.Matchup{
				NewGame: newGame,
				Agents: [2]metrics.AgentConfig{
					agents.config(1, player, agents.seed),
					agents.config(2, opponent, agents.seed+2),
				},
				Games:     games,
				Alternate: alternate,
			}

			var s *spinner.Spinner
			if render {
				matchup.EngineOptions = append(matchup.EngineOptions, engine.WithObserver(func(u engine.Update) {
					fmt.Printf("turn %d: %s plays %d\n", u.Step, playerName(names, u.Player), u.Action)
					renderBoard(os.Stdout, gameName, u.State)
				}))
			} else {
				// Keep per-game logs from fighting with the spinner
				if !cmd.Flag("trace").Changed {
					level := zerolog.GlobalLevel()
					zerolog.SetGlobalLevel(zerolog.WarnLevel)
					defer zerolog.SetGlobalLevel(level)
				}

				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = " playing..."
				s.Start()
				matchup.Progress = func(game int, tally experiments.Tally) {
					s.Lock()
					s.Suffix = fmt.Sprintf(" game %d/%d: %s %d, %s %d, draws %d",
						game, games, names[0], tally.Wins[0], names[1], tally.Wins[1], tally.Draws)
					s.Unlock()
				}
			}

			result, err := matchup.Run()
			if s != nil {
				s.Stop()
			}
			if err != nil {
				return err
			}

			printTally(names, result.Tally)

			if save || cmd.Flag("records").Changed {
				dir, err := experiments.Store(records, gameName, result)
				if err != nil {
					return err
				}
				log.Info().Msgf("records stored in %s", dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&gameName, "game", "g", "tictactoe", fmt.Sprintf("Game to play %v", experiments.GameNames()))
	cmd.Flags().StringVarP(&player, "player", "p", experiments.MCTS, fmt.Sprintf("First agent %v", experiments.AgentKinds))
	cmd.Flags().StringVarP(&opponent, "opponent", "o", experiments.Random, fmt.Sprintf("Second agent %v", experiments.AgentKinds))
	cmd.Flags().IntVarP(&games, "number", "n", meta.GAMES, "Number of games to play")
	cmd.Flags().BoolVar(&alternate, "alternate", true, "Alternate the starting player")
	cmd.Flags().BoolVar(&save, "save", false, "Store game and move records")
	cmd.Flags().StringVar(&records, "records", recordsDir, "Directory for game and move records")
	cmd.Flags().BoolVar(&render, "render", false, "Print the board after every move")
	addAgentFlags(cmd, &agents)

	return cmd
}

func printTally(names [2]string, tally experiments.Tally) {
	games := tally.Games()
	percent := func(n int) float64 {
		if games == 0 {
			return 0
		}
		return float64(n) / float64(games) * 100
	}

	for i, name := range names {
		fmt.Printf("%s: %d / %d (%.2f%%)\n", name, tally.Wins[i], games, percent(tally.Wins[i]))
	}
	fmt.Printf("Draws: %d / %d (%.2f%%)\n", tally.Draws, games, percent(tally.Draws))
}
