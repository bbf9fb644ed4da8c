package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type boardState struct {
	Grid
}

func (s *boardState) LegalActions() []Action { return nil }
func (s *boardState) Apply(Action) error     { return nil }
func (s *boardState) Clone() State {
	return &boardState{Grid: s.Copy()}
}

func TestEvaluateLines(t *testing.T) {
	t.Run("empty board is balanced", func(t *testing.T) {
		s := &boardState{Grid: NewGrid(3, 3, 3)}

		require.Equal(t, 0.0, EvaluateLines(s))
	})

	t.Run("scoring open lines for the player to move", func(t *testing.T) {
		s := &boardState{Grid: NewGrid(3, 3, 3)}
		require.NoError(t, s.Place(1, 1)) // Player 0 takes the centre, player 1 to move

		require.Equal(t, -1.0, EvaluateLines(s), "Only the opponent has open lines")

		s.Current = 0
		require.Equal(t, 1.0, EvaluateLines(s), "Score should flip with the player to move")
	})

	t.Run("blocked lines count for nobody", func(t *testing.T) {
		s := &boardState{Grid: NewGrid(1, 3, 3)}
		require.NoError(t, s.Place(0, 0))
		require.NoError(t, s.Place(0, 2))

		require.Equal(t, 0.0, EvaluateLines(s))
	})

	t.Run("staying within range", func(t *testing.T) {
		s := &boardState{Grid: NewGrid(6, 7, 4)}
		for _, cell := range [][2]int{{0, 3}, {1, 3}, {0, 2}, {0, 4}, {0, 1}, {1, 2}} {
			require.NoError(t, s.Place(cell[0], cell[1]))

			value := EvaluateLines(s)
			require.GreaterOrEqual(t, value, -1.0)
			require.LessOrEqual(t, value, 1.0)
		}
	})

	t.Run("more marks in a line weigh more", func(t *testing.T) {
		s := &boardState{Grid: NewGrid(2, 4, 4)}
		s.Cells = []Player{0, 0, Draw, Draw, 1, Draw, Draw, Draw}

		require.InDelta(t, 0.6, EvaluateLines(s), 1e-9, "Two marks should outweigh one four times over")
	})

	t.Run("mixed lines are closed", func(t *testing.T) {
		s := &boardState{Grid: NewGrid(1, 4, 4)}
		s.Cells = []Player{0, 0, Draw, 1}

		require.Equal(t, 0.0, EvaluateLines(s))
	})

	t.Run("panics on states without a grid", func(t *testing.T) {
		require.Panics(t, func() {
			EvaluateLines(nil)
		})
	})
}
