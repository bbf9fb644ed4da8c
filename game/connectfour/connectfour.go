// Package connectfour implements connect four on a 6x7 board. Actions are
// the columns 1 to 7; a mark falls to the lowest empty row, row 0 being the
// bottom of the board.
package connectfour

import (
	"fmt"
	"strings"

	"gridmcts/game"
)

const (
	Rows    = 6
	Cols    = 7
	Connect = 4
)

type State struct {
	game.Grid
}

var _ game.State = (*State)(nil)

// New returns an empty board with player 0 to move.
func New() *State {
	return &State{Grid: game.NewGrid(Rows, Cols, Connect)}
}

// drop returns the lowest empty row of a column, or -1 if it is full.
func (s *State) drop(col int) int {
	for row := 0; row < Rows; row++ {
		if s.At(row, col) == game.Draw {
			return row
		}
	}
	return -1
}

func (s *State) LegalActions() []game.Action {
	if s.Done {
		return nil
	}
	actions := make([]game.Action, 0, Cols)
	for col := 0; col < Cols; col++ {
		if s.drop(col) >= 0 {
			actions = append(actions, game.Action(col+1))
		}
	}
	return actions
}

func (s *State) Apply(action game.Action) error {
	if action < 1 || action > Cols {
		return fmt.Errorf("%w: column %d is not in 1-%d", game.ErrIllegalAction, action, Cols)
	}
	col := int(action) - 1
	row := s.drop(col)
	if row < 0 {
		return fmt.Errorf("%w: column %d is full", game.ErrIllegalAction, action)
	}
	return s.Place(row, col)
}

func (s *State) Clone() game.State {
	return &State{Grid: s.Copy()}
}

func (s *State) String() string {
	header := make([]string, Cols)
	for i := range header {
		header[i] = fmt.Sprintf(" %d ", i+1)
	}
	return strings.Join(header, " ") + "\n" + s.Render(true)
}
