package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Exploration  float64
	Cutoff       int
	Evaluator    bool
	Duration     time.Duration
	Simulations  int
	FullPlayouts int
	Evaluations  int
	TreeSize     int
	MaxDepth     int
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Action int
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Player ID
	Winner         int // Player ID, -1 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers search statistics. Implementations must be safe for
// concurrent use by search workers.
type Collector interface {
	Start(goroutines, cutoff int, exploration float64, evaluator bool)
	AddSimulation()
	AddFullPlayout()
	AddEvaluation()
	AddNodes(n int)
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	exploration  float64
	evaluator    bool
	startTime    time.Time
	simulations  atomic.Int32
	fullPlayouts atomic.Int32
	evaluations  atomic.Int32
	nodes        atomic.Int32
	maxDepth     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int, exploration float64, evaluator bool) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.exploration = exploration
	m.evaluator = evaluator
	m.simulations.Store(0)
	m.fullPlayouts.Store(0)
	m.evaluations.Store(0)
	m.nodes.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int32(n))
}

func (m *collector) ObserveDepth(depth int) {
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Exploration:  m.exploration,
		Cutoff:       m.cutoff,
		Evaluator:    m.evaluator,
		Duration:     time.Since(m.startTime),
		Simulations:  int(m.simulations.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Evaluations:  int(m.evaluations.Load()),
		TreeSize:     int(m.nodes.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int, exploration float64, evaluator bool) {}
func (m *dummyCollector) AddSimulation()                                                    {}
func (m *dummyCollector) AddFullPlayout()                                                   {}
func (m *dummyCollector) AddEvaluation()                                                    {}
func (m *dummyCollector) AddNodes(n int)                                                    {}
func (m *dummyCollector) ObserveDepth(depth int)                                            {}
func (m *dummyCollector) Complete() SearchMetric                                            { return SearchMetric{} }
