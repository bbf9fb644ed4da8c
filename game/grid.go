package game

import (
	"fmt"
	"strings"
)

// Marks used to render each player's cells.
var Marks = [2]string{"o", "x"}

// Grid is the rectangular board shared by the "k in a row" games. Players
// take turns placing marks; a player wins by lining up Connect marks
// horizontally, vertically or diagonally, and a full board is a draw.
type Grid struct {
	Rows    int
	Cols    int
	Connect int
	Cells   []Player // Row-major, Draw marks an empty cell
	Current Player
	Turns   int
	Done    bool
	Won     Player
}

// NewGrid returns an empty grid with player 0 to move.
func NewGrid(rows, cols, connect int) Grid {
	g := Grid{
		Rows:    rows,
		Cols:    cols,
		Connect: connect,
		Cells:   make([]Player, rows*cols),
	}
	g.Reset(0)
	return g
}

// Reset empties the board and hands the first move to starting.
func (g *Grid) Reset(starting Player) {
	for i := range g.Cells {
		g.Cells[i] = Draw
	}
	g.Current = starting
	g.Turns = 0
	g.Done = false
	g.Won = Draw
}

// Copy returns a grid that shares no cells with g.
func (g *Grid) Copy() Grid {
	cells := make([]Player, len(g.Cells))
	copy(cells, g.Cells)
	clone := *g
	clone.Cells = cells
	return clone
}

// Board exposes the grid of any game embedding it.
func (g *Grid) Board() *Grid {
	return g
}

func (g *Grid) At(row, col int) Player {
	return g.Cells[row*g.Cols+col]
}

func (g *Grid) Inside(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

func (g *Grid) IsTerminal() bool {
	return g.Done
}

func (g *Grid) Winner() Player {
	return g.Won
}

func (g *Grid) CurrentPlayer() Player {
	return g.Current
}

// Place puts the current player's mark on an empty cell and settles the
// game: a winning line or a full board ends it, otherwise the turn passes
// to the opponent. The current player does not change on a final move.
func (g *Grid) Place(row, col int) error {
	if g.Done {
		return ErrGameOver
	}
	if !g.Inside(row, col) {
		return fmt.Errorf("%w: cell (%d, %d) is off the board", ErrIllegalAction, row, col)
	}
	if g.At(row, col) != Draw {
		return fmt.Errorf("%w: cell (%d, %d) is taken", ErrIllegalAction, row, col)
	}

	g.Cells[row*g.Cols+col] = g.Current
	g.Turns++

	switch {
	case g.Completes(row, col):
		g.Done = true
		g.Won = g.Current
	case g.Turns == g.Rows*g.Cols:
		g.Done = true
		g.Won = Draw
	default:
		g.Current = g.Current.Opponent()
	}
	return nil
}

// Completes reports whether the mark at (row, col) is part of a line of
// at least Connect marks.
func (g *Grid) Completes(row, col int) bool {
	player := g.At(row, col)
	if player == Draw {
		return false
	}
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range directions {
		count := 1 + g.run(row, col, d[0], d[1], player) + g.run(row, col, -d[0], -d[1], player)
		if count >= g.Connect {
			return true
		}
	}
	return false
}

func (g *Grid) run(row, col, dr, dc int, player Player) int {
	count := 0
	for r, c := row+dr, col+dc; g.Inside(r, c) && g.At(r, c) == player; r, c = r+dr, c+dc {
		count++
	}
	return count
}

// Render draws the board as text. With bottomUp the last row is printed
// first, which suits games where marks fall to row 0.
func (g *Grid) Render(bottomUp bool) string {
	return g.RenderWith(bottomUp, Symbol)
}

// RenderWith draws the board like Render, drawing each cell with mark.
func (g *Grid) RenderWith(bottomUp bool, mark func(Player) string) string {
	var b strings.Builder
	separator := strings.Repeat("---|", g.Cols-1) + "---\n"
	for i := 0; i < g.Rows; i++ {
		row := i
		if bottomUp {
			row = g.Rows - 1 - i
		}
		cells := make([]string, g.Cols)
		for col := range cells {
			cells[col] = " " + mark(g.At(row, col)) + " "
		}
		b.WriteString(strings.Join(cells, "|"))
		b.WriteString("\n")
		if i < g.Rows-1 {
			b.WriteString(separator)
		}
	}
	return b.String()
}

// Symbol returns the mark of a player, or a blank for an empty cell.
func Symbol(p Player) string {
	if p == 0 || p == 1 {
		return Marks[p]
	}
	return " "
}
