package agent

import (
	"gridmcts/experiments/metrics"
	"gridmcts/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal actions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return 0, metrics.SearchMetric{}, game.ErrGameOver
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
