package game

// Boarded is implemented by games played on a Grid.
type Boarded interface {
	Board() *Grid
}

// EvaluateLines scores a grid position from the current player's perspective
// between -1 and 1. Every window of Connect cells still open to one player
// counts for that player, weighted by the square of the marks already in it.
func EvaluateLines(s State) float64 {
	b, ok := s.(Boarded)
	if !ok {
		panic("unexpected state type")
	}
	g := b.Board()

	current := g.CurrentPlayer()
	var lines [2]float64
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			for _, d := range directions {
				owner, marks, open := g.window(row, col, d[0], d[1])
				if open && marks > 0 {
					lines[owner] += float64(marks * marks)
				}
			}
		}
	}

	return normalize(lines[current], lines[current.Opponent()])
}

// window inspects the Connect cells starting at (row, col) in direction
// (dr, dc). It is open when it fits on the board and holds marks of at most
// one player.
func (g *Grid) window(row, col, dr, dc int) (owner Player, marks int, open bool) {
	endRow, endCol := row+dr*(g.Connect-1), col+dc*(g.Connect-1)
	if !g.Inside(endRow, endCol) {
		return Draw, 0, false
	}

	owner = Draw
	for i := 0; i < g.Connect; i++ {
		p := g.At(row+dr*i, col+dc*i)
		if p == Draw {
			continue
		}
		if owner != Draw && p != owner {
			return Draw, 0, false
		}
		owner = p
		marks++
	}
	return owner, marks, true
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
