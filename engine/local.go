package engine

import (
	"fmt"
	"time"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Update is handed to the move observer after every applied action.
type Update struct {
	Step   int
	Player game.Player
	Action game.Action
	State  game.State
}

type LocalEngine struct {
	State    game.State
	Agents   [2]agent.Agent // Indexed by player
	MaxTurns int
	observer func(Update)
}

type EngineOption func(*LocalEngine)

// WithObserver registers a callback receiving a copy of the state after
// every move.
func WithObserver(observer func(Update)) EngineOption {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

func WithMaxTurns(turns int) EngineOption {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.MaxTurns = turns
		}
	}
}

// NewLocalEngine plays state out between two agents, agents[p] moving for
// player p. The engine owns state and mutates it.
func NewLocalEngine(state game.State, agents [2]agent.Agent, options ...EngineOption) *LocalEngine {
	for _, a := range agents {
		if a == nil {
			panic("need an agent for each player")
		}
	}

	e := &LocalEngine{
		State:    state,
		Agents:   agents,
		MaxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

var _ Engine = (*LocalEngine)(nil)

// Run executes the entire game loop until the game ends. A game cut off by
// the turn limit is scored as a draw.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: int(e.State.CurrentPlayer()),
		StartTime:      time.Now(),
	}

	log.Info().Msgf("game %s: player %d is starting", gameMetric.ID, gameMetric.StartingPlayer)

	var moveMetrics []metrics.MoveMetric
	turn := 1
	for ; !e.State.IsTerminal() && turn <= e.MaxTurns; turn++ {
		player := e.State.CurrentPlayer()

		action, searchMetric, err := e.Agents[player].FindMove(e.State.Clone())
		if err != nil {
			return game.Draw, gameMetric, moveMetrics, fmt.Errorf("turn %d, player %d: %w", turn, player, err)
		}
		if err := e.State.Apply(action); err != nil {
			return game.Draw, gameMetric, moveMetrics, fmt.Errorf("turn %d, player %d: %w", turn, player, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       int(player),
			Action:       int(action),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("turn %d: player %d played %d", turn, player, action)

		if e.observer != nil {
			e.observer(Update{Step: turn, Player: player, Action: action, State: e.State.Clone()})
		}
	}

	winner := game.Draw
	if e.State.IsTerminal() {
		winner = e.State.Winner()
	} else {
		log.Warn().Msgf("game %s: stopped after %d turns without a result", gameMetric.ID, e.MaxTurns)
	}

	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game %s: over after %d moves, winner %d", gameMetric.ID, gameMetric.TotalMoves, winner)

	return winner, gameMetric, moveMetrics, nil
}
