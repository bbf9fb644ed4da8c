package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Run("scoring a win, a loss and a draw", func(t *testing.T) {
		require.Equal(t, Win, Result(1, 1), "Winner should score a win")
		require.Equal(t, Loss, Result(0, 1), "Other player should score a loss")
		require.Equal(t, 0.0, Result(Draw, 1), "Draw should score exactly zero")
		require.Equal(t, 0.0, Result(Draw, 0), "Draw should score exactly zero")
	})

	t.Run("opponent of each player", func(t *testing.T) {
		require.Equal(t, Player(1), Player(0).Opponent())
		require.Equal(t, Player(0), Player(1).Opponent())
	})
}
