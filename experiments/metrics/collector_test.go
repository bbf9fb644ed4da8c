package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting search events", func(t *testing.T) {
		c := NewCollector()
		c.Start(2, 5, 1.4, true)

		c.AddSimulation()
		c.AddSimulation()
		c.AddFullPlayout()
		c.AddEvaluation()
		c.AddNodes(3)
		c.ObserveDepth(4)
		c.ObserveDepth(2)

		metric := c.Complete()
		require.Equal(t, 2, metric.Goroutines)
		require.Equal(t, 5, metric.Cutoff)
		require.Equal(t, 1.4, metric.Exploration)
		require.True(t, metric.Evaluator)
		require.Equal(t, 2, metric.Simulations)
		require.Equal(t, 1, metric.FullPlayouts)
		require.Equal(t, 1, metric.Evaluations)
		require.Equal(t, 3, metric.TreeSize)
		require.Equal(t, 4, metric.MaxDepth, "Max depth should keep the deepest observation")
	})

	t.Run("starting over resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 0, 1.4, false)
		c.AddSimulation()
		c.ObserveDepth(3)

		c.Start(1, 0, 1.4, false)

		metric := c.Complete()
		require.Zero(t, metric.Simulations)
		require.Zero(t, metric.MaxDepth)
	})

	t.Run("safe for concurrent workers", func(t *testing.T) {
		c := NewCollector()
		c.Start(8, 0, 1.4, false)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					c.AddSimulation()
					c.ObserveDepth(i*1000 + j)
				}
			}(i)
		}
		wg.Wait()

		metric := c.Complete()
		require.Equal(t, 8000, metric.Simulations)
		require.Equal(t, 7999, metric.MaxDepth)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(1, 0, 1.4, false)
		c.AddSimulation()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
