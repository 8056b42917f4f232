package status

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/evo-terrain/pcg"
)

func TestAtomicFloatConcurrent(t *testing.T) {
	var sum, peak AtomicFloat
	peak.Set(-1)

	const workers = 50
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				sum.Add(0.5)
				peak.Max(float64(i*perWorker + j))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, float64(workers*perWorker)*0.5, sum.Get())
	assert.Equal(t, float64(workers*perWorker-1), peak.Get())
}

func TestAtomicFloatMinMax(t *testing.T) {
	var f AtomicFloat
	f.Set(3)

	assert.Equal(t, 3.0, f.Max(2))
	assert.Equal(t, 5.0, f.Max(5))
	assert.Equal(t, 5.0, f.Min(7))
	assert.Equal(t, -1.0, f.Min(-1))
	assert.Equal(t, -1.0, f.Get())
}

func TestMetricMapStablePointers(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("b")
	a.Add(2)
	m.Get("a")

	assert.Same(t, a, m.Get("b"))
	assert.True(t, m.Has("a"))
	assert.False(t, m.Has("c"))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 2, m.Count())

	var visited []string
	m.Range(func(key string, v *atomic.Int64) { visited = append(visited, key) })
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestObserveGeneration(t *testing.T) {
	r := NewRegistry()
	r.ObserveGeneration(10, 20, 4*time.Millisecond, pcg.NormalizingValues{Min: 0.2, Max: 0.8})
	r.ObserveGeneration(5, 5, 2*time.Millisecond, pcg.NormalizingValues{Min: 0.4, Max: 0.9})
	r.ObserveCache(true)
	r.ObserveCache(false)
	r.ObserveCache(false)

	snap := r.Snapshot()
	require.NotEmpty(t, snap)

	assert.Equal(t, int64(2), snap[KeyGenerations])
	assert.Equal(t, int64(225), snap[KeyCells])
	assert.Equal(t, 2.0, snap[KeyLastMillis])
	assert.Equal(t, 6.0, snap[KeyTotalMillis])
	assert.Equal(t, 4.0, snap[KeyMaxMillis])
	assert.Equal(t, 0.4, snap[KeyRangeMin])
	assert.Equal(t, 0.2, snap[KeyLowestRange])
	assert.Equal(t, 0.9, snap[KeyHighestRange])
	assert.Equal(t, int64(1), snap[KeyCacheHits])
	assert.Equal(t, int64(2), snap[KeyCacheMisses])
	assert.Equal(t, len(snap), r.TotalCount())
}

func TestAtomicFloatNaNIsUnset(t *testing.T) {
	var lo, hi AtomicFloat
	lo.Set(math.NaN())
	hi.Set(math.NaN())

	assert.Equal(t, 0.7, lo.Min(0.7))
	assert.Equal(t, 0.3, lo.Min(0.3))
	assert.Equal(t, 0.3, lo.Min(0.9))
	assert.Equal(t, -2.0, hi.Max(-2))
	assert.Equal(t, -1.0, hi.Max(-1))
}

func TestObserveGenerationUnsetExtremes(t *testing.T) {
	r := NewRegistry()
	snap := r.Snapshot()
	assert.NotContains(t, snap, KeyLowestRange)
	assert.NotContains(t, snap, KeyHighestRange)

	// A range above zero must not be pinned to the zero value
	r.ObserveGeneration(1, 1, time.Millisecond, pcg.NormalizingValues{Min: 0.3, Max: 0.6})
	snap = r.Snapshot()
	assert.Equal(t, 0.3, snap[KeyLowestRange])
	assert.Equal(t, 0.6, snap[KeyHighestRange])
}

func TestObserveGenerationConcurrentExtremes(t *testing.T) {
	const workers = 64

	for round := 0; round < 20; round++ {
		r := NewRegistry()
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(i int) {
				defer wg.Done()
				lo := 1 + float64(i)
				r.ObserveGeneration(2, 2, time.Millisecond, pcg.NormalizingValues{Min: lo, Max: lo + 1})
			}(i)
		}
		wg.Wait()

		snap := r.Snapshot()
		require.Equal(t, int64(workers), snap[KeyGenerations])
		require.Equal(t, 1.0, snap[KeyLowestRange], "round %d", round)
		require.Equal(t, float64(workers+1), snap[KeyHighestRange], "round %d", round)
	}
}
