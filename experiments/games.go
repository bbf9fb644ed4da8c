package experiments

import (
	"fmt"
	"sort"

	"gridmcts/game"
	"gridmcts/game/connectfour"
	"gridmcts/game/tictactoe"
)

// NewGame returns a fresh game with starting to move first.
type NewGame func(starting game.Player) game.State

var games = map[string]NewGame{
	"tictactoe": func(starting game.Player) game.State {
		s := tictactoe.New()
		s.Reset(starting)
		return s
	},
	"connectfour": func(starting game.Player) game.State {
		s := connectfour.New()
		s.Reset(starting)
		return s
	},
}

func LookupGame(name string) (NewGame, error) {
	newGame, ok := games[name]
	if !ok {
		return nil, fmt.Errorf("unknown game %q, expected one of %v", name, GameNames())
	}
	return newGame, nil
}

func GameNames() []string {
	names := make([]string, 0, len(games))
	for name := range games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
