package cmd

import (
	"fmt"
	"io"
	"strings"

	"gridmcts/game"

	"github.com/muesli/termenv"
)

var markColors = [2]string{"4", "1"} // ANSI blue, red

type board interface {
	Board() *game.Grid
}

// renderBoard writes state to w with coloured marks when w is a terminal.
// Boards of games where marks drop are drawn bottom up with column numbers.
func renderBoard(w io.Writer, gameName string, state game.State) {
	b, ok := state.(board)
	if !ok {
		fmt.Fprintln(w, state)
		return
	}
	grid := b.Board()

	out := termenv.NewOutput(w)
	mark := func(p game.Player) string {
		if p == game.Draw {
			return " "
		}
		return out.String(game.Symbol(p)).Foreground(out.Color(markColors[p])).Bold().String()
	}

	bottomUp := gameName == "connectfour"
	if bottomUp {
		header := make([]string, grid.Cols)
		for i := range header {
			header[i] = fmt.Sprintf(" %d ", i+1)
		}
		fmt.Fprintln(w, out.String(strings.Join(header, " ")).Faint())
	}
	fmt.Fprintln(w, grid.RenderWith(bottomUp, mark))
}

func playerName(names [2]string, p game.Player) string {
	if p == game.Draw {
		return "draw"
	}
	return fmt.Sprintf("%s (%s)", names[p], game.Symbol(p))
}
