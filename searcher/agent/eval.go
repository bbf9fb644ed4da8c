package agent

import (
	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the most visited root action.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(state)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return result.Action, result.Metric, nil
}
