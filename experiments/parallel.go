package experiments

import (
	"gridmcts/experiments/metrics"
	"gridmcts/meta"

	"github.com/rs/zerolog/log"
)

// RunParallelizationExperiment pairs root-parallel agents against a
// sequential baseline with the same total budget per move.
func RunParallelizationExperiment(newGame NewGame, games int, goroutines []int, seed uint64) ([]Result, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: MCTS, Simulations: meta.SIMULATIONS, Goroutines: 1, Seed: seed}

	// Each matchup pairs an agent against the baseline agent
	var matchups []Matchup
	for i, g := range goroutines {
		config := baseline
		config.ID = i + 1
		config.Goroutines = g
		config.Seed = seed + uint64(i) + 1
		matchups = append(matchups, Matchup{
			NewGame:   newGame,
			Agents:    [2]metrics.AgentConfig{baseline, config},
			Games:     games,
			Alternate: true,
		})
	}
	return runExperiment("parallelization", matchups)
}

// RunExplorationExperiment pairs agents with different exploration
// constants against the default one.
func RunExplorationExperiment(newGame NewGame, games int, constants []float64, seed uint64) ([]Result, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: MCTS, Simulations: meta.SIMULATIONS, Exploration: meta.EXPLORATION, Goroutines: 1, Seed: seed}

	var matchups []Matchup
	for i, c := range constants {
		config := baseline
		config.ID = i + 1
		config.Exploration = c
		config.Seed = seed + uint64(i) + 1
		matchups = append(matchups, Matchup{
			NewGame:   newGame,
			Agents:    [2]metrics.AgentConfig{baseline, config},
			Games:     games,
			Alternate: true,
		})
	}
	return runExperiment("exploration", matchups)
}

func runExperiment(name string, matchups []Matchup) ([]Result, error) {
	log.Info().Msgf("starting %s experiment...", name)

	results := make([]Result, 0, len(matchups))
	for mi, matchup := range matchups {
		log.Info().Msgf("starting matchup %d of %d", mi+1, len(matchups))

		result, err := matchup.Run()
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	log.Info().Msgf("completed %s experiment", name)
	return results, nil
}
