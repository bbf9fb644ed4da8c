package agent

import (
	"fmt"
	"math"
	"time"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
)

// Terminal scores shrink by this much per ply, so quicker wins and slower
// losses rank higher.
const plyDiscount = 0.01

type minimaxAgent struct {
	depth    int
	evaluate game.Evaluate
}

// NewMinimaxAgent returns an agent that searches the game tree exhaustively
// with alpha-beta pruning. A positive depth stops the search early and scores
// the frontier with evaluate, or as a draw when evaluate is nil.
func NewMinimaxAgent(depth int, evaluate game.Evaluate) Agent {
	return minimaxAgent{depth: depth, evaluate: evaluate}
}

func (a minimaxAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	actions := state.LegalActions()
	if state.IsTerminal() || len(actions) == 0 {
		return 0, metrics.SearchMetric{}, game.ErrGameOver
	}

	self := state.CurrentPlayer()
	search := minimax{agent: a, self: self}
	best := math.Inf(-1)
	bestAction := actions[0]
	for _, action := range actions {
		next := state.Clone()
		if err := next.Apply(action); err != nil {
			return 0, metrics.SearchMetric{}, fmt.Errorf("minimax action %d: %w", action, err)
		}

		score, err := search.value(next, 1, best, math.Inf(1))
		if err != nil {
			return 0, metrics.SearchMetric{}, err
		}
		if score > best {
			best = score
			bestAction = action
		}
	}

	return bestAction, metrics.SearchMetric{
		Duration:  time.Since(start),
		TreeSize:  search.nodes,
		MaxDepth:  search.maxDepth,
		Evaluator: a.evaluate != nil,
	}, nil
}

type minimax struct {
	agent    minimaxAgent
	self     game.Player
	nodes    int
	maxDepth int
}

// value scores state, reached after depth plies, for self. Self maximizes,
// the opponent minimizes.
func (m *minimax) value(state game.State, depth int, alpha, beta float64) (float64, error) {
	m.nodes++
	m.maxDepth = max(m.maxDepth, depth)

	if state.IsTerminal() {
		return game.Result(state.Winner(), m.self) * (1 - plyDiscount*float64(depth)), nil
	}
	if m.agent.depth > 0 && depth >= m.agent.depth {
		return m.frontier(state), nil
	}

	maximizing := state.CurrentPlayer() == m.self
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, action := range state.LegalActions() {
		next := state.Clone()
		if err := next.Apply(action); err != nil {
			return 0, fmt.Errorf("minimax action %d: %w", action, err)
		}
		score, err := m.value(next, depth+1, alpha, beta)
		if err != nil {
			return 0, err
		}

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

func (m *minimax) frontier(state game.State) float64 {
	if m.agent.evaluate == nil {
		return 0
	}
	value := m.agent.evaluate(state)
	if state.CurrentPlayer() != m.self {
		value = -value
	}
	return value
}
