package searcher

import (
	"math"
	"testing"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/game/connectfour"
	"gridmcts/game/tictactoe"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// o x o
// o x x
// x o _   o to move, every playout is a draw
func drawInOne() *tictactoe.State {
	return tictactoe.FromCells([9]game.Player{o, x, o, o, x, x, x, o, e}, o)
}

func TestRandomRollout(t *testing.T) {
	t.Run("draws score exactly zero", func(t *testing.T) {
		rollout := NewRandomRollout()

		for seed := uint64(0); seed < 20; seed++ {
			for _, perspective := range []game.Player{o, x} {
				value, err := rollout.Estimate(drawInOne(), perspective, rand.New(rand.NewSource(seed)),
					metrics.NewDummyCollector())

				require.NoError(t, err)
				require.Equal(t, 0.0, value, "Draw should be worth exactly 0 to both players")
			}
		}
	})

	t.Run("scoring decided games for the root player", func(t *testing.T) {
		rollout := NewRandomRollout()
		won := playActions(t, forcedWin(), 3)

		value, err := rollout.Estimate(won.Clone(), o, newRand(), metrics.NewDummyCollector())
		require.NoError(t, err)
		require.Equal(t, game.Win, value)

		value, err = rollout.Estimate(won.Clone(), x, newRand(), metrics.NewDummyCollector())
		require.NoError(t, err)
		require.Equal(t, game.Loss, value)
	})

	t.Run("playing to the end", func(t *testing.T) {
		rollout := NewRandomRollout()
		state := connectfour.New()

		value, err := rollout.Estimate(state, o, newRand(), metrics.NewDummyCollector())

		require.NoError(t, err)
		require.True(t, state.IsTerminal(), "Rollout should leave a finished game")
		require.Contains(t, []float64{game.Win, game.Loss, 0}, value)
	})
}

func TestEvaluatorRollout(t *testing.T) {
	favoursMover := func(game.State) float64 { return 0.5 }

	t.Run("keeping the evaluation when the root player is to move", func(t *testing.T) {
		rollout := NewEvaluatorRollout(favoursMover, 0)

		value, err := rollout.Estimate(tictactoe.New(), o, newRand(), metrics.NewDummyCollector())

		require.NoError(t, err)
		require.Equal(t, 0.5, value)
	})

	t.Run("negating the evaluation when the opponent is to move", func(t *testing.T) {
		rollout := NewEvaluatorRollout(favoursMover, 0)

		value, err := rollout.Estimate(tictactoe.New(), x, newRand(), metrics.NewDummyCollector())

		require.NoError(t, err)
		require.Equal(t, -0.5, value)
	})

	t.Run("scoring terminal leaves without the evaluator", func(t *testing.T) {
		calls := 0
		counting := func(game.State) float64 {
			calls++
			return 0.5
		}
		rollout := NewEvaluatorRollout(counting, 0)

		value, err := rollout.Estimate(playActions(t, forcedWin(), 3), x, newRand(), metrics.NewDummyCollector())

		require.NoError(t, err)
		require.Equal(t, game.Loss, value)
		require.Zero(t, calls)
	})

	t.Run("playing random moves before evaluating", func(t *testing.T) {
		var seen game.State
		recording := func(s game.State) float64 {
			seen = s
			return 0
		}
		rollout := NewEvaluatorRollout(recording, 3)

		_, err := rollout.Estimate(connectfour.New(), o, newRand(), metrics.NewDummyCollector())

		require.NoError(t, err)
		require.NotNil(t, seen)
		require.Equal(t, 3, seen.(*connectfour.State).Turns, "Evaluator should see the position after the cutoff")
	})

	t.Run("rejecting evaluations outside the range", func(t *testing.T) {
		for _, bad := range []float64{1.5, -1.01, math.NaN()} {
			rollout := NewEvaluatorRollout(func(game.State) float64 { return bad }, 0)

			_, err := rollout.Estimate(tictactoe.New(), o, newRand(), metrics.NewDummyCollector())

			require.ErrorIs(t, err, ErrEvaluatorRange)
		}
	})

	t.Run("failing a search on a bad evaluation", func(t *testing.T) {
		_, err := Run(tictactoe.New(), 10, 1.4, WithEvaluationFn(func(game.State) float64 { return 2 }))

		require.ErrorIs(t, err, ErrEvaluatorRange)
	})

	t.Run("panics without an evaluation function", func(t *testing.T) {
		require.Panics(t, func() {
			NewEvaluatorRollout(nil, 0)
		})
	})
}

func TestPlayout(t *testing.T) {
	t.Run("stopping after depth moves", func(t *testing.T) {
		state := connectfour.New()

		require.NoError(t, playout(state, 5, newRand()))
		require.Equal(t, 5, state.Turns)
	})

	t.Run("zero depth leaves the state alone", func(t *testing.T) {
		state := connectfour.New()

		require.NoError(t, playout(state, 0, newRand()))
		require.Zero(t, state.Turns)
	})
}
