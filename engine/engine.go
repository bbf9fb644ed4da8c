package engine

import (
	"gridmcts/experiments/metrics"
	"gridmcts/game"
)

type Engine interface {
	// Run plays a game till it ends or a max number of turns is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
