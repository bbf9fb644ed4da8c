package searcher

import (
	"fmt"
	"math"

	"gridmcts/game"
	"gridmcts/utils"

	"golang.org/x/exp/rand"
)

// node is one explored position. Its value is kept from the point of view of
// playerJustMoved, the player whose action led here.
type node struct {
	state           game.State
	parent          *node
	action          game.Action
	playerJustMoved game.Player
	depth           int
	unexplored      []game.Action
	explored        []game.Action
	children        []*node
	visits          int
	value           float64
}

func newNode(parent *node, action game.Action, playerJustMoved game.Player, state game.State) *node {
	var unexplored []game.Action
	if !state.IsTerminal() {
		unexplored = append(unexplored, state.LegalActions()...)
	}

	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}

	return &node{
		state:           state,
		parent:          parent,
		action:          action,
		playerJustMoved: playerJustMoved,
		depth:           depth,
		unexplored:      unexplored,
		explored:        make([]game.Action, 0, len(unexplored)),
		children:        make([]*node, 0, len(unexplored)),
	}
}

// newRoot wraps a clone of state. No move produced the root, so the player
// who just moved is taken to be the opponent of the player to move.
func newRoot(state game.State) *node {
	return newNode(nil, 0, state.CurrentPlayer().Opponent(), state.Clone())
}

func (n *node) average() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.value / float64(n.visits)
}

func (n *node) isTerminal() bool {
	return n.state.IsTerminal()
}

func (n *node) isFullyExpanded() bool {
	return len(n.unexplored) == 0
}

// selectChild picks the child with the best UCT score for the player to move
// at n. Ties are broken uniformly at random.
func (n *node) selectChild(exploration float64, rng *rand.Rand) *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(exploration, n.visits)
	toMove := n.playerJustMoved.Opponent()

	best := math.Inf(-1)
	var candidates []*node
	for _, child := range n.children {
		exploitation := child.average()
		if child.playerJustMoved != toMove {
			exploitation = -exploitation
		}

		score := policy.evaluate(exploitation, child.visits)
		switch {
		case len(candidates) > 0 && isClose(score, best):
			candidates = append(candidates, child)
		case score > best:
			best = score
			candidates = append(candidates[:0], child)
		}
	}
	return candidates[rng.Intn(len(candidates))]
}

// expand adds a child for a random unexplored action and returns it.
func (n *node) expand(rng *rand.Rand) (*node, error) {
	i := rng.Intn(len(n.unexplored))
	action := n.unexplored[i]
	n.unexplored = utils.RemoveAt(n.unexplored, i)

	// Read the mover before the move: a final move does not pass the turn
	mover := n.state.CurrentPlayer()
	state := n.state.Clone()
	if err := state.Apply(action); err != nil {
		return nil, fmt.Errorf("expanding action %d: %w", action, err)
	}

	child := newNode(n, action, mover, state)
	n.explored = append(n.explored, action)
	n.children = append(n.children, child)
	return child, nil
}

// update records one simulation result, given from rootPlayer's point of
// view, and returns the parent.
func (n *node) update(result float64, rootPlayer game.Player) *node {
	n.visits++
	if n.playerJustMoved == rootPlayer {
		n.value += result
	} else {
		n.value -= result
	}
	return n.parent
}
