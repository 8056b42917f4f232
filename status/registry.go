// Package status keeps process wide generation metrics
package status

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/evo-terrain/pcg"
)

// Metric keys written by ObserveGeneration
const (
	KeyGenerations  = "generations"
	KeyCells        = "cells"
	KeyLastMillis   = "last_ms"
	KeyTotalMillis  = "total_ms"
	KeyMaxMillis    = "max_ms"
	KeyRangeMin     = "range_min"
	KeyRangeMax     = "range_max"
	KeyLowestRange  = "lowest_range_min"
	KeyHighestRange = "highest_range_max"
	KeyCacheHits    = "cache_hits"
	KeyCacheMisses  = "cache_misses"
)

// Registry is the central metrics facade
// Callers may cache the pointers returned by Get and write atomics directly
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
// The range extremes start unset (NaN); the first observation replaces them
func NewRegistry() *Registry {
	r := &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
	r.Floats.Get(KeyLowestRange).Set(math.NaN())
	r.Floats.Get(KeyHighestRange).Set(math.NaN())
	return r
}

// ObserveGeneration records one completed height map
func (r *Registry) ObserveGeneration(width, height int, elapsed time.Duration, rng pcg.NormalizingValues) {
	ms := float64(elapsed.Microseconds()) / 1000

	r.Ints.Get(KeyGenerations).Add(1)
	r.Ints.Get(KeyCells).Add(int64(width) * int64(height))

	r.Floats.Get(KeyLastMillis).Set(ms)
	r.Floats.Get(KeyTotalMillis).Add(ms)
	r.Floats.Get(KeyMaxMillis).Max(ms)
	r.Floats.Get(KeyRangeMin).Set(rng.Min)
	r.Floats.Get(KeyRangeMax).Set(rng.Max)
	r.Floats.Get(KeyLowestRange).Min(rng.Min)
	r.Floats.Get(KeyHighestRange).Max(rng.Max)
}

// ObserveCache counts a result cache lookup
func (r *Registry) ObserveCache(hit bool) {
	if hit {
		r.Ints.Get(KeyCacheHits).Add(1)
		return
	}
	r.Ints.Get(KeyCacheMisses).Add(1)
}

// Snapshot copies every metric into a plain map
// Unset (NaN) floats are left out so the map stays JSON encodable
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		if f := v.Get(); !math.IsNaN(f) {
			out[key] = f
		}
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}
