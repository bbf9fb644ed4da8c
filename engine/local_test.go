package engine

import (
	"errors"
	"testing"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/game/connectfour"
	"gridmcts/game/tictactoe"
	"gridmcts/searcher"
	"gridmcts/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scripted plays a fixed list of actions.
type scripted struct {
	actions []game.Action
	err     error
}

func (s *scripted) FindMove(game.State) (game.Action, metrics.SearchMetric, error) {
	if s.err != nil {
		return 0, metrics.SearchMetric{}, s.err
	}
	action := s.actions[0]
	s.actions = s.actions[1:]
	return action, metrics.SearchMetric{Simulations: 7}, nil
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("playing a scripted game to a win", func(t *testing.T) {
		first := &scripted{actions: []game.Action{1, 2, 3}}
		second := &scripted{actions: []game.Action{4, 5}}
		var updates []Update

		e := NewLocalEngine(tictactoe.New(), [2]agent.Agent{first, second},
			WithObserver(func(u Update) { updates = append(updates, u) }))
		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.Player(0), winner)
		require.Equal(t, 0, gameMetric.Winner)
		require.Equal(t, 0, gameMetric.StartingPlayer)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.NotEmpty(t, gameMetric.ID)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))

		require.Len(t, moveMetrics, 5)
		require.Equal(t, metrics.MoveMetric{Step: 2, Player: 1, Action: 4,
			SearchMetric: metrics.SearchMetric{Simulations: 7}}, moveMetrics[1])

		require.Len(t, updates, 5, "Observer should see every move")
		require.True(t, updates[4].State.IsTerminal())
		require.False(t, updates[3].State.IsTerminal(), "Observer should receive copies")
	})

	t.Run("respecting the starting player", func(t *testing.T) {
		state := tictactoe.New()
		state.Reset(1)
		first := &scripted{actions: []game.Action{4, 5}}
		second := &scripted{actions: []game.Action{1, 2, 3}}

		winner, gameMetric, _, err := NewLocalEngine(state, [2]agent.Agent{first, second}).Run()

		require.NoError(t, err)
		require.Equal(t, game.Player(1), winner)
		require.Equal(t, 1, gameMetric.StartingPlayer)
	})

	t.Run("scoring a cut off game as a draw", func(t *testing.T) {
		random := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}

		winner, gameMetric, moveMetrics, err := NewLocalEngine(connectfour.New(), random, WithMaxTurns(4)).Run()

		require.NoError(t, err)
		require.Equal(t, game.Draw, winner)
		require.Equal(t, 4, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 4)
	})

	t.Run("stopping on an illegal action", func(t *testing.T) {
		first := &scripted{actions: []game.Action{1}}
		cheat := &scripted{actions: []game.Action{1}}

		_, _, moveMetrics, err := NewLocalEngine(tictactoe.New(), [2]agent.Agent{first, cheat}).Run()

		require.ErrorIs(t, err, game.ErrIllegalAction)
		require.Len(t, moveMetrics, 1)
	})

	t.Run("stopping on an agent error", func(t *testing.T) {
		failing := &scripted{err: errors.New("no move")}
		other := &scripted{}

		_, _, _, err := NewLocalEngine(tictactoe.New(), [2]agent.Agent{failing, other}).Run()

		require.ErrorContains(t, err, "no move")
	})

	t.Run("mcts never loses to random at tic-tac-toe", func(t *testing.T) {
		mcts := agent.NewEvaluationAgent(searcher.NewMCTS(searcher.WithSimulations(3000), searcher.WithSeed(1)))
		random := agent.NewRandomAgent(2)

		for i := 0; i < 4; i++ {
			state := tictactoe.New()
			state.Reset(game.Player(i % 2))

			winner, _, _, err := NewLocalEngine(state, [2]agent.Agent{mcts, random}).Run()

			require.NoError(t, err)
			require.NotEqual(t, game.Player(1), winner)
		}
	})

	t.Run("panics without two agents", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocalEngine(tictactoe.New(), [2]agent.Agent{agent.NewRandomAgent(1), nil})
		})
	})
}
