package searcher

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var (
	ErrNoSimulations  = errors.New("simulation budget must be positive")
	ErrTerminalState  = errors.New("cannot search a terminal state")
	ErrNoLegalActions = errors.New("non-terminal state has no legal actions")
	ErrNoChildren     = errors.New("root has no children")
	ErrEvaluatorRange = errors.New("evaluation outside [-1, 1]")
)

type Option func(mcts *MCTS)

// MCTS runs a fixed budget of simulations over a tree built from scratch on
// every search. It owns a single random source, so a seeded engine replays
// the same searches.
type MCTS struct {
	simulations int
	exploration float64
	goroutines  int
	cutoff      int
	seed        uint64
	evaluate    game.Evaluate
	rollout     Rollout
	rng         *rand.Rand
	metrics     metrics.Collector
}

// ActionStat summarises one explored root action. Value is the average from
// the point of view of the player choosing at the root.
type ActionStat struct {
	Action game.Action
	Visits int
	Value  float64
}

type Result struct {
	Action game.Action
	Policy []ActionStat // In expansion order
	Visits int          // Root visits, equal to the simulation budget
	Metric metrics.SearchMetric
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		m.simulations = simulations
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRollout(rollout Rollout) Option {
	return func(m *MCTS) {
		if rollout != nil {
			m.rollout = rollout
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		simulations: meta.SIMULATIONS,
		exploration: meta.EXPLORATION,
		goroutines:  meta.GO_ROUTINES,
		seed:        uint64(time.Now().UnixNano()),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rollout == nil {
		if m.evaluate != nil {
			m.rollout = NewEvaluatorRollout(m.evaluate, m.cutoff)
		} else {
			m.rollout = NewRandomRollout()
		}
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	return m
}

// Run searches state with the given budget and exploration constant and
// returns the most visited root action.
func Run(state game.State, simulations int, exploration float64, options ...Option) (game.Action, error) {
	all := make([]Option, 0, len(options)+2)
	all = append(all, options...)
	all = append(all, WithSimulations(simulations), WithExploration(exploration))
	return NewMCTS(all...).Run(state)
}

func (m *MCTS) Run(state game.State) (game.Action, error) {
	result, err := m.Search(state)
	if err != nil {
		return 0, err
	}
	return result.Action, nil
}

func (m *MCTS) Seed() uint64 {
	return m.seed
}

// Search runs every simulation and reports the chosen action together with
// the root statistics. The caller's state is never mutated.
func (m *MCTS) Search(state game.State) (Result, error) {
	if m.simulations <= 0 {
		return Result{}, ErrNoSimulations
	}
	if state.IsTerminal() {
		return Result{}, ErrTerminalState
	}
	if len(state.LegalActions()) == 0 {
		return Result{}, ErrNoLegalActions
	}

	m.metrics.Start(m.goroutines, m.cutoff, m.exploration, m.evaluate != nil)

	var roots []*node
	var err error
	if m.goroutines > 1 {
		roots, err = m.iterateParallel(state)
	} else {
		var root *node
		root, err = m.iterate(state, m.simulations, m.rng)
		roots = []*node{root}
	}
	if err != nil {
		return Result{}, err
	}

	policy, visits := merge(roots)
	action, err := mostVisited(policy, m.rng)
	if err != nil {
		return Result{}, err
	}
	metric := m.metrics.Complete()

	log.Debug().Msgf("chose action %d after %d simulations (%d root actions explored) in %s",
		action, visits, len(policy), metric.Duration)

	return Result{
		Action: action,
		Policy: policy,
		Visits: visits,
		Metric: metric,
	}, nil
}

// iterate builds a private tree for state with the given budget.
func (m *MCTS) iterate(state game.State, simulations int, rng *rand.Rand) (*node, error) {
	root := newRoot(state)
	rootPlayer := state.CurrentPlayer()
	m.metrics.AddNodes(1)

	for i := 0; i < simulations; i++ {
		if err := m.simulate(root, rootPlayer, rng); err != nil {
			return nil, fmt.Errorf("simulation %d: %w", i+1, err)
		}
		m.metrics.AddSimulation()
	}
	return root, nil
}

// iterateParallel splits the budget over independent trees, one per
// goroutine. Worker seeds are drawn from the engine source in worker order
// so results do not depend on scheduling.
func (m *MCTS) iterateParallel(state game.State) ([]*node, error) {
	roots := make([]*node, m.goroutines)
	errs := make([]error, m.goroutines)
	seeds := make([]uint64, m.goroutines)
	for i := range seeds {
		seeds[i] = m.rng.Uint64()
	}

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		budget := m.simulations / m.goroutines
		if i < m.simulations%m.goroutines {
			budget++
		}
		if budget == 0 {
			continue
		}

		wg.Add(1)
		go func(i, budget int, state game.State) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seeds[i]))
			roots[i], errs[i] = m.iterate(state, budget, rng)
		}(i, budget, state.Clone())
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	built := roots[:0]
	for _, root := range roots {
		if root != nil {
			built = append(built, root)
		}
	}
	return built, nil
}

func (m *MCTS) simulate(root *node, rootPlayer game.Player, rng *rand.Rand) error {
	leaf, added, err := selectThenExpand(root, m.exploration, rng)
	if err != nil {
		return err
	}
	if added {
		m.metrics.AddNodes(1)
	}
	m.metrics.ObserveDepth(leaf.depth)

	score, err := m.rollout.Estimate(leaf.state.Clone(), rootPlayer, rng, m.metrics)
	if err != nil {
		return err
	}
	backup(leaf, score, rootPlayer)
	return nil
}

// selectThenExpand descends by UCT while nodes are fully expanded, then adds
// one child if the reached node can still grow.
func selectThenExpand(root *node, exploration float64, rng *rand.Rand) (*node, bool, error) {
	node := root
	for !node.isTerminal() && node.isFullyExpanded() && len(node.children) > 0 {
		node = node.selectChild(exploration, rng)
	}

	if node.isTerminal() || node.isFullyExpanded() {
		return node, false, nil
	}

	child, err := node.expand(rng)
	if err != nil {
		return nil, false, err
	}
	return child, true, nil
}

func backup(leaf *node, score float64, rootPlayer game.Player) {
	node := leaf
	for node != nil {
		parent := node.update(score, rootPlayer)
		node = parent
	}
}

// merge sums root statistics across trees, keyed by action, keeping the
// order in which actions were first explored.
func merge(roots []*node) ([]ActionStat, int) {
	var policy []ActionStat
	var actions []game.Action // Parallel to policy
	var totals []float64
	visits := 0

	for _, root := range roots {
		visits += root.visits
		for _, child := range root.children {
			i := utils.FindIndex(actions, child.action)
			if i < 0 {
				i = len(policy)
				actions = append(actions, child.action)
				policy = append(policy, ActionStat{Action: child.action})
				totals = append(totals, 0)
			}
			policy[i].Visits += child.visits
			totals[i] += child.value
		}
	}

	for i := range policy {
		if policy[i].Visits > 0 {
			policy[i].Value = totals[i] / float64(policy[i].Visits)
		}
	}
	return policy, visits
}

// mostVisited returns the action with the largest visit count, breaking
// ties uniformly at random.
func mostVisited(policy []ActionStat, rng *rand.Rand) (game.Action, error) {
	if len(policy) == 0 {
		return 0, ErrNoChildren
	}

	maxVisits := -1
	var candidates []game.Action
	for _, stat := range policy {
		switch {
		case stat.Visits > maxVisits:
			maxVisits = stat.Visits
			candidates = append(candidates[:0], stat.Action)
		case stat.Visits == maxVisits:
			candidates = append(candidates, stat.Action)
		}
	}
	return candidates[rng.Intn(len(candidates))], nil
}
