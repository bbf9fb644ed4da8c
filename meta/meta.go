// meta/meta.go
package meta

// SIMULATIONS defines the default number of MCTS simulations per move.
const SIMULATIONS = 1000

// EXPLORATION defines the default UCT exploration constant.
const EXPLORATION = 1.4

// GO_ROUTINES defines the default number of search goroutines.
const GO_ROUTINES = 1

// GAMES defines the default number of games in a match.
const GAMES = 100

// MAX_TURNS caps the length of a single game.
const MAX_TURNS = 300
