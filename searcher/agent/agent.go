package agent

import (
	"gridmcts/experiments/metrics"
	"gridmcts/game"
)

type Agent interface {
	// FindMove returns an action for the player to move and performance
	// metrics (if collected) from the search process
	FindMove(state game.State) (game.Action, metrics.SearchMetric, error)
}
