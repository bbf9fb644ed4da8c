package game

import "errors"

// Player identifies one of the two sides of a game.
type Player int

// Draw is the winner of a drawn game. It doubles as "no winner yet" while a
// game is still being played.
const Draw Player = -1

// Opponent returns the other player of a two-player game.
func (p Player) Opponent() Player {
	return 1 - p
}

// Action is a game-defined move encoding (a board cell, a column, ...).
type Action int

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrGameOver      = errors.New("game is over")
)

// State is the contract a two-player zero-sum game must satisfy to be
// searched. Apply mutates the state in place, so searchers work on clones.
type State interface {
	LegalActions() []Action
	// Apply plays the action for the current player. It returns an error
	// wrapping ErrIllegalAction (or ErrGameOver) and leaves the state
	// untouched when the action is not legal.
	Apply(Action) error
	IsTerminal() bool
	// Winner is only meaningful once IsTerminal reports true.
	Winner() Player
	CurrentPlayer() Player
	// Clone returns an independent deep copy.
	Clone() State
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the position is for the player to move.
type Evaluate func(State) float64

// Result maps a winner to a score from perspective's point of view: 1 for a
// win, -1 for a loss and exactly 0 for a draw.
func Result(winner Player, perspective Player) float64 {
	switch winner {
	case Draw:
		return 0
	case perspective:
		return Win
	default:
		return Loss
	}
}

const (
	Win  = 1.0
	Loss = -Win
)
