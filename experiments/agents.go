package experiments

import (
	"fmt"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher"
	"gridmcts/searcher/agent"
)

const (
	MCTS     = "mcts"
	Training = "training"
	Random   = "random"
	Minimax  = "minimax"
)

var AgentKinds = []string{MCTS, Training, Random, Minimax}

// Lines scores open k-in-a-row windows, see game.EvaluateLines.
const Lines = "lines"

var evaluators = map[string]game.Evaluate{
	Lines: game.EvaluateLines,
}

var EvaluatorNames = []string{Lines}

// LookupEvaluator returns the named evaluation function, or nil for an
// empty name.
func LookupEvaluator(name string) (game.Evaluate, error) {
	if name == "" {
		return nil, nil
	}
	evaluate, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator %q, expected one of %v", name, EvaluatorNames)
	}
	return evaluate, nil
}

// CreateAgent builds the agent described by config. Search agents always
// collect metrics.
func CreateAgent(config metrics.AgentConfig) (agent.Agent, error) {
	evaluate, err := LookupEvaluator(config.Evaluator)
	if err != nil {
		return nil, err
	}

	switch config.Kind {
	case MCTS:
		return agent.NewEvaluationAgent(createMCTS(config, evaluate)), nil
	case Training:
		return agent.NewTrainingAgent(createMCTS(config, evaluate), config.Temperature, config.Seed+1), nil
	case Random:
		return agent.NewRandomAgent(config.Seed), nil
	case Minimax:
		return agent.NewMinimaxAgent(config.Depth, evaluate), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q, expected one of %v", config.Kind, AgentKinds)
	}
}

func createMCTS(config metrics.AgentConfig, evaluate game.Evaluate) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(config.Seed)}

	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}
