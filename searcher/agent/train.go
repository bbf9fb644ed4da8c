package agent

import (
	"math"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples root actions
// in proportion to visits^(1/temperature). A zero temperature plays the most
// visited action.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	return &trainingAgent{
		mcts:        mcts,
		temperature: max(temperature, 0),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(state)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	if a.temperature == 0 {
		return result.Action, result.Metric, nil
	}

	probs := adjustTemperature(result.Policy, a.temperature)
	return sample(result.Policy, probs, a.rng), result.Metric, nil
}

// adjustTemperature turns visit counts into move probabilities.
func adjustTemperature(policy []searcher.ActionStat, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	probs := make([]float64, len(policy))
	for i, stat := range policy {
		probs[i] = math.Pow(float64(stat.Visits), exponent)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample(policy []searcher.ActionStat, probs []float64, rng *rand.Rand) game.Action {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return policy[i].Action
		}
	}
	return policy[len(policy)-1].Action // Rounding
}
