package searcher

import (
	"fmt"
	"math"

	"gridmcts/experiments/metrics"
	"gridmcts/game"

	"golang.org/x/exp/rand"
)

// Rollout estimates the value of a leaf from rootPlayer's point of view, in
// [-1, 1]. The state is a private working copy and may be mutated.
type Rollout interface {
	Estimate(state game.State, rootPlayer game.Player, rng *rand.Rand, metrics metrics.Collector) (float64, error)
}

type randomRollout struct{}

// NewRandomRollout plays uniformly random legal actions until the game ends.
func NewRandomRollout() Rollout {
	return randomRollout{}
}

func (randomRollout) Estimate(state game.State, rootPlayer game.Player, rng *rand.Rand, metrics metrics.Collector) (float64, error) {
	if err := playout(state, -1, rng); err != nil {
		return 0, err
	}
	metrics.AddFullPlayout()
	return game.Result(state.Winner(), rootPlayer), nil
}

type evaluatorRollout struct {
	evaluate game.Evaluate
	cutoff   int
}

// NewEvaluatorRollout queries evaluate at the leaf instead of playing it
// out. A positive cutoff first plays that many random moves.
func NewEvaluatorRollout(evaluate game.Evaluate, cutoff int) Rollout {
	if evaluate == nil {
		panic("evaluator rollout needs an evaluation function")
	}
	return evaluatorRollout{evaluate: evaluate, cutoff: max(cutoff, 0)}
}

func (r evaluatorRollout) Estimate(state game.State, rootPlayer game.Player, rng *rand.Rand, metrics metrics.Collector) (float64, error) {
	if err := playout(state, r.cutoff, rng); err != nil {
		return 0, err
	}

	if state.IsTerminal() {
		metrics.AddFullPlayout()
		return game.Result(state.Winner(), rootPlayer), nil
	}

	// Evaluations are given for the player to move
	value := r.evaluate(state)
	if math.IsNaN(value) || value < -1 || value > 1 {
		return 0, fmt.Errorf("%w: %v", ErrEvaluatorRange, value)
	}
	metrics.AddEvaluation()

	if state.CurrentPlayer() != rootPlayer {
		value = -value
	}
	return value, nil
}

// playout applies random legal actions until the game ends or depth moves
// have been played. A negative depth plays to the end.
func playout(state game.State, depth int, rng *rand.Rand) error {
	for played := 0; !state.IsTerminal() && (depth < 0 || played < depth); played++ {
		moves := state.LegalActions()
		if len(moves) == 0 {
			return ErrNoLegalActions
		}

		move := moves[rng.Intn(len(moves))] // Random rollout policy
		if err := state.Apply(move); err != nil {
			return fmt.Errorf("rollout action %d: %w", move, err)
		}
	}
	return nil
}
