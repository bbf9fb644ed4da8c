// Package tictactoe implements 3x3 tic-tac-toe. Actions number the cells
// 1 to 9, row by row from the top-left corner.
package tictactoe

import (
	"fmt"

	"gridmcts/game"
)

const Size = 3

type State struct {
	game.Grid
}

var _ game.State = (*State)(nil)

// New returns an empty board with player 0 to move.
func New() *State {
	return &State{Grid: game.NewGrid(Size, Size, Size)}
}

// FromCells builds a position from a row-major board and the player to
// move. The game is settled if the position already holds a line or is
// full.
func FromCells(cells [Size * Size]game.Player, toMove game.Player) *State {
	s := New()
	marks := 0
	for i, p := range cells {
		s.Cells[i] = p
		if p != game.Draw {
			marks++
		}
	}
	s.Current = toMove
	s.Turns = marks
	for i, p := range cells {
		if p == game.Draw {
			continue
		}
		if s.Completes(i/Size, i%Size) {
			s.Done = true
			s.Won = p
			return s
		}
	}
	if marks == Size*Size {
		s.Done = true
	}
	return s
}

// Cell converts a 0-based (row, col) pair to an action.
func Cell(row, col int) game.Action {
	return game.Action(row*Size + col + 1)
}

func decode(action game.Action) (row, col int) {
	index := int(action) - 1
	return index / Size, index % Size
}

func (s *State) LegalActions() []game.Action {
	if s.Done {
		return nil
	}
	actions := make([]game.Action, 0, Size*Size-s.Turns)
	for i, p := range s.Cells {
		if p == game.Draw {
			actions = append(actions, game.Action(i+1))
		}
	}
	return actions
}

func (s *State) Apply(action game.Action) error {
	if action < 1 || action > Size*Size {
		return fmt.Errorf("%w: cell %d is not in 1-%d", game.ErrIllegalAction, action, Size*Size)
	}
	row, col := decode(action)
	return s.Place(row, col)
}

func (s *State) Clone() game.State {
	return &State{Grid: s.Copy()}
}

func (s *State) String() string {
	return s.Render(false)
}
